package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":4000"
	WebOrigin     string `mapstructure:"WEB_ORIGIN"`     // allowed CORS origin for the web app
	DatabasePath  string `mapstructure:"DATABASE_PATH"`  // sqlite database file

	// Website Generation Configuration
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"` // absent -> fallback template mode
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`   // e.g., "gemini-1.5-flash"

	// Caption Suggestion Configuration
	OpenAIKey string `mapstructure:"OPENAI_API_KEY"` // absent -> deterministic caption fallback

	// Deployment Provider Configuration
	VercelToken       string `mapstructure:"VERCEL_TOKEN"`
	VercelProjectID   string `mapstructure:"VERCEL_PROJECT_ID"`   // takes precedence over project name
	VercelProjectName string `mapstructure:"VERCEL_PROJECT_NAME"`
	VercelTeamID      string `mapstructure:"VERCEL_TEAM_ID"`      // added as teamId query parameter
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Defaults double as key registrations so AutomaticEnv can resolve them.
	viper.SetDefault("SERVER_ADDRESS", ":4000")
	viper.SetDefault("WEB_ORIGIN", "")
	viper.SetDefault("DATABASE_PATH", "promo.db")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("VERCEL_TOKEN", "")
	viper.SetDefault("VERCEL_PROJECT_ID", "")
	viper.SetDefault("VERCEL_PROJECT_NAME", "")
	viper.SetDefault("VERCEL_TEAM_ID", "")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", viper.ConfigFileUsed())
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if config.GeminiAPIKey == "" {
		log.Println("WARN: GEMINI_API_KEY is not set. Website generation will serve the fallback template.")
	}
	if config.VercelToken == "" {
		log.Println("WARN: VERCEL_TOKEN is not set. Website deployment requests will be rejected.")
	}

	return
}
