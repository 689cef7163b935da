package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"retail_promo_server/internal/ai"
	"retail_promo_server/internal/metrics"
	"retail_promo_server/internal/store"
	"retail_promo_server/internal/types"
	"retail_promo_server/internal/vercel"
	"retail_promo_server/internal/website"
)

// SiteBuilder turns a structured generation request into a renderable page.
type SiteBuilder interface {
	Build(ctx context.Context, req website.GenerateRequest) (types.WebsiteGeneration, error)
}

// Publisher ships a finished HTML document to the hosting provider.
type Publisher interface {
	Deploy(ctx context.Context, in vercel.DeployInput) (types.Deployment, error)
}

// CaptionSuggester proposes marketing copy for the image studio.
type CaptionSuggester interface {
	SuggestCaption(ctx context.Context, req ai.CaptionRequest) (types.CaptionSuggestion, error)
}

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	builder   SiteBuilder
	publisher Publisher
	captions  CaptionSuggester
	store     *store.Store
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(builder SiteBuilder, publisher Publisher, captions CaptionSuggester, st *store.Store) *APIHandler {
	return &APIHandler{
		builder:   builder,
		publisher: publisher,
		captions:  captions,
		store:     st,
	}
}

// --- Structs for API Requests/Responses ---

type GenerateWebsiteRequest struct {
	Prompt      string   `json:"prompt" binding:"required"`
	CompanyName string   `json:"companyName"`
	Menu        []string `json:"menu"`
	LayoutParts []string `json:"layoutParts"`
	Palette     []string `json:"palette"`
}

type DeployWebsiteRequest struct {
	HTML        string `json:"html" binding:"required"`
	CompanyName string `json:"companyName"`
	Prompt      string `json:"prompt"`
}

// --- API Handlers ---

// POST /api/website/generate
func (h *APIHandler) GenerateWebsite(c *gin.Context) {
	var req GenerateWebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	generation, err := h.builder.Build(c.Request.Context(), website.GenerateRequest{
		Prompt:      req.Prompt,
		CompanyName: req.CompanyName,
		Menu:        req.Menu,
		Layout:      req.LayoutParts,
		Palette:     req.Palette,
	})
	if err != nil {
		log.Printf("Error generating website: %v", err)
		metrics.IncGeneration("error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(generation.Warnings) > 0 {
		metrics.IncGeneration("fallback")
	} else {
		metrics.IncGeneration("ok")
	}
	c.JSON(http.StatusOK, generation)
}

// POST /api/website/deploy
func (h *APIHandler) DeployWebsite(c *gin.Context) {
	var req DeployWebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "html is required"})
		return
	}

	deployment, err := h.publisher.Deploy(c.Request.Context(), vercel.DeployInput{
		HTML:        req.HTML,
		CompanyName: req.CompanyName,
		Prompt:      req.Prompt,
	})
	if err != nil {
		metrics.IncDeployment("error")
		if errors.Is(err, vercel.ErrTokenMissing) {
			// Configuration failure, not a client error. Surface the exact
			// missing credential so operators can diagnose quickly.
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error deploying website: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.IncDeployment("ok")
	c.JSON(http.StatusOK, deployment)
}
