package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"retail_promo_server/internal/ai/prompts"
	"retail_promo_server/internal/metrics"
	"retail_promo_server/internal/types"
	"retail_promo_server/internal/utils"
)

// FallbackModel is reported when no OpenAI credential is configured and the
// deterministic caption was served instead.
const FallbackModel = "fallback-suggestion"

// Generator produces marketing captions through the OpenAI chat API. A nil
// client means no credential is configured and SuggestCaption degrades to a
// deterministic suggestion.
type Generator struct {
	client *openai.Client
	model  string
}

func NewGenerator(apiKey string) *Generator {
	if apiKey == "" {
		return &Generator{}
	}
	return &Generator{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// CaptionRequest describes the product being promoted.
type CaptionRequest struct {
	Product     string
	Tone        string
	CompanyName string
}

type captionPayload struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

// SuggestCaption returns a caption plus hashtags for the request. Transient
// OpenAI failures are retried once.
func (g *Generator) SuggestCaption(ctx context.Context, req CaptionRequest) (types.CaptionSuggestion, error) {
	if g.client == nil {
		return fallbackSuggestion(req), nil
	}

	userPrompt, systemPrompt := prompts.GetCaptionPrompt(req.Product, req.Tone, req.CompanyName)

	chatReq := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   300,
		Temperature: 0.7,
	}

	metrics.IncLLMRequest(g.model)
	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil && utils.ShouldRetry(err) {
		log.Printf("OpenAI caption call failed, retrying once after delay... Error: %v", err)
		time.Sleep(1 * time.Second)
		resp, err = g.client.CreateChatCompletion(ctx, chatReq)
	}
	if err != nil {
		return types.CaptionSuggestion{}, fmt.Errorf("openai caption completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return types.CaptionSuggestion{}, errors.New("openai returned empty caption response")
	}

	payload, err := parseCaptionJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return types.CaptionSuggestion{}, err
	}

	return types.CaptionSuggestion{
		Caption:  payload.Caption,
		Hashtags: payload.Hashtags,
		Model:    g.model,
		Warnings: []string{},
	}, nil
}

// parseCaptionJSON strips an optional code fence and decodes the caption
// object. Models sometimes fence JSON even when told not to.
func parseCaptionJSON(raw string) (captionPayload, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload captionPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return captionPayload{}, fmt.Errorf("failed to parse caption JSON output: %w", err)
	}
	if payload.Caption == "" {
		return captionPayload{}, errors.New("caption JSON output has no caption field")
	}
	return payload, nil
}

func fallbackSuggestion(req CaptionRequest) types.CaptionSuggestion {
	var caption string
	if req.CompanyName != "" {
		caption = fmt.Sprintf("%s — now at %s!", req.Product, req.CompanyName)
	} else {
		caption = fmt.Sprintf("%s — available now!", req.Product)
	}

	hashtags := []string{"#shoplocal", "#promo"}
	for _, word := range strings.Fields(strings.ToLower(req.Product)) {
		word = strings.Trim(word, ".,!?'\"")
		if len(word) >= 4 && len(hashtags) < 6 {
			hashtags = append(hashtags, "#"+word)
		}
	}

	return types.CaptionSuggestion{
		Caption:  caption,
		Hashtags: hashtags,
		Model:    FallbackModel,
		Warnings: []string{"OPENAI_API_KEY is not set. Returned a deterministic suggestion instead of a real AI response."},
	}
}
