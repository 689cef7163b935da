package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail_promo_server/internal/metrics"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {

	// --- Health & Metrics ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := router.Group("/api")
	{
		// --- Auth (demo) ---
		apiGroup.POST("/auth/login", h.Login)

		// --- Brand profile ---
		apiGroup.GET("/brand", h.GetBrand)
		apiGroup.PUT("/brand", h.PutBrand)

		// --- Image studio ---
		apiGroup.GET("/image-templates", h.ImageTemplates)
		apiGroup.GET("/generated-images", h.ListGeneratedImages)
		apiGroup.POST("/generate-image", h.CreateGeneratedImage)
		apiGroup.POST("/captions/suggest", h.SuggestCaption)

		// --- Posts ---
		apiGroup.GET("/posts", h.ListPosts)
		apiGroup.POST("/posts", h.CreatePost)

		// --- Website builder ---
		websiteGroup := apiGroup.Group("/website")
		{
			websiteGroup.POST("/generate", h.GenerateWebsite)
			websiteGroup.POST("/deploy", h.DeployWebsite)
		}
	}
}
