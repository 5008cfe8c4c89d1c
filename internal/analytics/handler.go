package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weddingmoments/studio-backend/internal/catalog/domain"
)

// CatalogSource supplies the admin view of the catalog.
type CatalogSource interface {
	AdminServices() []domain.Service
}

// CatalogFunc adapts a function to CatalogSource.
type CatalogFunc func() []domain.Service

func (f CatalogFunc) AdminServices() []domain.Service { return f() }

type Handler struct {
	catalog CatalogSource
}

func NewHandler(catalog CatalogSource) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/analytics", h.Report)
	rg.GET("/pricing/summary", h.PricingSummary)
}

func (h *Handler) Report(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "report": Build(h.catalog.AdminServices())})
}

func (h *Handler) PricingSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "summary": SummarisePricing(h.catalog.AdminServices())})
}
