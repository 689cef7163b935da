package api

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"retail_promo_server/internal/ai"
	"retail_promo_server/internal/metrics"
	"retail_promo_server/internal/store"
	"retail_promo_server/internal/types"
)

type LoginRequest struct {
	Email string `json:"email" binding:"required"`
}

type BrandRequest struct {
	TenantID       string          `json:"tenantId" binding:"required"`
	CompanyName    string          `json:"companyName" binding:"required"`
	Tagline        string          `json:"tagline"`
	Description    string          `json:"description"`
	Contact        json.RawMessage `json:"contact"`
	Address        json.RawMessage `json:"address"`
	PrimaryColor   string          `json:"primaryColor"`
	SecondaryColor string          `json:"secondaryColor"`
	FontPrimary    string          `json:"fontPrimary"`
	FontSecondary  string          `json:"fontSecondary"`
	LogoURL        string          `json:"logoUrl"`
}

type GenerateImageRequest struct {
	TenantID   string `json:"tenantId" binding:"required"`
	TemplateID string `json:"templateId"`
	Title      string `json:"title"`
	Caption    string `json:"caption"`
	Hashtags   string `json:"hashtags"`
}

type CreatePostRequest struct {
	TenantID    string     `json:"tenantId" binding:"required"`
	Platform    string     `json:"platform" binding:"required"`
	MediaURL    string     `json:"mediaUrl" binding:"required"`
	Caption     string     `json:"caption"`
	Hashtags    string     `json:"hashtags"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

type SuggestCaptionRequest struct {
	Product     string `json:"product" binding:"required"`
	Tone        string `json:"tone"`
	CompanyName string `json:"companyName"`
}

// POST /api/auth/login
// Demo login: binds the caller to the first tenant, creating one with a
// default brand profile on first use.
func (h *APIHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	tenant, err := h.store.FirstTenant(ctx)
	if err != nil {
		log.Printf("Error loading tenant for login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tenant"})
		return
	}
	if tenant == nil {
		tenant, err = h.store.CreateTenant(ctx, "Demo Tenant", "demo")
		if err != nil {
			log.Printf("Error creating demo tenant: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant"})
			return
		}
		metrics.IncContentWrite("tenant")
		if _, err := h.store.UpsertBrandProfile(ctx, store.BrandProfile{
			TenantID:    tenant.ID,
			CompanyName: "Demo Co.",
		}); err != nil {
			log.Printf("Error creating default brand profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand profile"})
			return
		}
		metrics.IncContentWrite("brand")
	}

	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":       "demo",
		"name":     "Demo",
		"email":    req.Email,
		"role":     "owner",
		"tenantId": tenant.ID,
	}})
}

// GET /api/brand?tid=
func (h *APIHandler) GetBrand(c *gin.Context) {
	tenantID := c.Query("tid")
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing tid"})
		return
	}

	profile, err := h.store.BrandProfileByTenant(c.Request.Context(), tenantID)
	if err != nil {
		log.Printf("Error loading brand profile for tenant %s: %v", tenantID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load brand profile"})
		return
	}
	// A missing profile serialises as JSON null, matching the web app's
	// expectations.
	c.JSON(http.StatusOK, profile)
}

// PUT /api/brand
func (h *APIHandler) PutBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	_, err := h.store.UpsertBrandProfile(c.Request.Context(), store.BrandProfile{
		TenantID:       req.TenantID,
		CompanyName:    req.CompanyName,
		Tagline:        req.Tagline,
		Description:    req.Description,
		Contact:        req.Contact,
		Address:        req.Address,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		FontPrimary:    req.FontPrimary,
		FontSecondary:  req.FontSecondary,
		LogoURL:        req.LogoURL,
	})
	if err != nil {
		log.Printf("Error upserting brand profile for tenant %s: %v", req.TenantID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save brand profile"})
		return
	}
	metrics.IncContentWrite("brand")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/image-templates
func (h *APIHandler) ImageTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, []types.ImageTemplate{
		{ID: "sale", Name: "Sale Flyer", AspectRatio: "1:1"},
		{ID: "arrival", Name: "New Arrival", AspectRatio: "4:5"},
	})
}

// GET /api/generated-images?tid=
func (h *APIHandler) ListGeneratedImages(c *gin.Context) {
	tenantID := c.Query("tid")
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing tid"})
		return
	}

	images, err := h.store.GeneratedImagesByTenant(c.Request.Context(), tenantID)
	if err != nil {
		log.Printf("Error listing generated images for tenant %s: %v", tenantID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list generated images"})
		return
	}
	c.JSON(http.StatusOK, images)
}

// POST /api/generate-image
// Image rendering is stubbed: the record is stored with a placeholder image
// URL seeded by the title.
func (h *APIHandler) CreateGeneratedImage(c *gin.Context) {
	var req GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	seed := req.Title
	if seed == "" {
		seed = "promo"
	}
	outURL := "https://picsum.photos/seed/" + url.PathEscape(seed) + "/1024/1024"

	img, err := h.store.InsertGeneratedImage(c.Request.Context(), store.GeneratedImage{
		TenantID:    req.TenantID,
		TemplateID:  req.TemplateID,
		Title:       req.Title,
		Caption:     req.Caption,
		Hashtags:    req.Hashtags,
		OutURL:      outURL,
		AspectRatio: "1:1",
		Width:       1024,
		Height:      1024,
	})
	if err != nil {
		log.Printf("Error inserting generated image for tenant %s: %v", req.TenantID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store generated image"})
		return
	}
	metrics.IncContentWrite("image")
	c.JSON(http.StatusOK, img)
}

// GET /api/posts?tid=
func (h *APIHandler) ListPosts(c *gin.Context) {
	tenantID := c.Query("tid")
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing tid"})
		return
	}

	posts, err := h.store.PostsByTenant(c.Request.Context(), tenantID)
	if err != nil {
		log.Printf("Error listing posts for tenant %s: %v", tenantID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// POST /api/posts
func (h *APIHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	post, err := h.store.InsertPost(c.Request.Context(), store.Post{
		TenantID:    req.TenantID,
		Platform:    req.Platform,
		MediaURL:    req.MediaURL,
		Caption:     req.Caption,
		Hashtags:    req.Hashtags,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		log.Printf("Error inserting post for tenant %s: %v", req.TenantID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store post"})
		return
	}
	metrics.IncContentWrite("post")
	c.JSON(http.StatusOK, post)
}

// POST /api/captions/suggest
func (h *APIHandler) SuggestCaption(c *gin.Context) {
	var req SuggestCaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product is required"})
		return
	}

	suggestion, err := h.captions.SuggestCaption(c.Request.Context(), ai.CaptionRequest{
		Product:     req.Product,
		Tone:        req.Tone,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		log.Printf("Error suggesting caption: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, suggestion)
}
