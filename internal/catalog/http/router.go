package http

import "github.com/gin-gonic/gin"

// RegisterPublic registers the storefront catalog routes.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/services", h.ListStorefront)
	rg.GET("/services/stream", h.StreamStorefront)
	rg.GET("/services/:id", h.GetStorefront)
	rg.GET("/pricing/units", h.PricingUnits)
}

// RegisterAdmin registers catalog management routes.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/services", h.ListAdmin)
	rg.POST("/services", h.CreateService)
	rg.GET("/services/stream", h.StreamAdmin)
	rg.POST("/services/reset", h.ResetToDefaults)
	rg.PATCH("/services/:id", h.UpdateService)
	rg.DELETE("/services/:id", h.DeleteService)
	rg.POST("/services/:id/toggle", h.ToggleService)
	rg.PUT("/pricing", h.UpdatePrices)
	rg.GET("/stats", h.Stats)
	rg.GET("/catalog/export", h.Export)
	rg.POST("/catalog/import", h.PreviewImport)
	rg.GET("/settings/summary", h.Summary)
}
