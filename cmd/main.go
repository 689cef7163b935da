package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"retail_promo_server/config"
	"retail_promo_server/internal/ai"
	"retail_promo_server/internal/api"
	"retail_promo_server/internal/store"
	"retail_promo_server/internal/vercel"
	"retail_promo_server/internal/website"
)

func main() {
	// Load .env before viper reads the environment.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	// --- Dependency Initialization ---
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Cannot open database at %s: %v", cfg.DatabasePath, err)
	}
	defer st.Close()

	var backend website.TextBackend
	if cfg.GeminiAPIKey != "" {
		backend = website.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, "")
	}
	siteBuilder := website.NewBuilder(backend)

	publisher := vercel.NewClient(vercel.Options{
		Token:       cfg.VercelToken,
		ProjectID:   cfg.VercelProjectID,
		ProjectName: cfg.VercelProjectName,
		TeamID:      cfg.VercelTeamID,
	}, "")

	captionGenerator := ai.NewGenerator(cfg.OpenAIKey)

	apiHandler := api.NewAPIHandler(siteBuilder, publisher, captionGenerator, st)

	// --- HTTP Server ---
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in Gin Debug Mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.WebOrigin != "" {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = []string{cfg.WebOrigin}
		corsConfig.AllowCredentials = true
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
		router.Use(cors.New(corsConfig))
	}

	api.RegisterRoutes(router, apiHandler)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Generation calls can take a while; keep the write timeout generous.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s\n", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server listen error: %s\n", err)
		}
		log.Println("API server has stopped listening.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Received signal: %s. Shutting down server...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server forced shutdown error: %v", err)
	} else {
		log.Println("API server gracefully stopped.")
	}

	log.Println("Application exiting.")
}
