package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weddingmoments/studio-backend/internal/docstore"
	"github.com/weddingmoments/studio-backend/internal/live"
	"github.com/weddingmoments/studio-backend/internal/logging"
	"github.com/weddingmoments/studio-backend/internal/offers/domain"
	"github.com/weddingmoments/studio-backend/internal/offers/service"
)

// Promotions returns the active ticker texts and the badge.
func (h *Handler) Promotions(c *gin.Context) {
	p := service.Split(h.store.List())
	c.JSON(http.StatusOK, gin.H{"ok": true, "ticker": p.Ticker, "badge": p.Badge})
}

func (h *Handler) StreamPromotions(c *gin.Context) {
	live.ServeSSE(c, h.store.Feed(), func(all []domain.Offer) any {
		return service.Split(all)
	})
}

func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "offers": h.store.List()})
}

func (h *Handler) Create(c *gin.Context) {
	var req createOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "code, description and a ticker or badge type are required"})
		return
	}

	offer, err := h.store.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		h.writeFailed(c, "create_offer", err, "failed to add offer")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "message": "Offer added successfully", "offer": offer})
}

func (h *Handler) Update(c *gin.Context) {
	var patch domain.OfferPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	if err := h.store.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		h.writeFailed(c, "update_offer", err, "failed to update offer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Offer updated successfully"})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeFailed(c, "delete_offer", err, "failed to delete offer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Offer deleted successfully"})
}

func (h *Handler) Toggle(c *gin.Context) {
	active, err := h.store.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeFailed(c, "toggle_offer", err, "failed to update offer status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "isActive": active})
}

func (h *Handler) writeFailed(c *gin.Context, operation string, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrOfferNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "offer not found"})
		return
	case errors.Is(err, domain.ErrInvalidType):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	case errors.Is(err, docstore.ErrPermissionDenied):
		logging.NewLogger(c.Request.Context()).Error(operation, err)
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": message + ": permission denied"})
		return
	}

	logging.NewLogger(c.Request.Context()).Error(operation, err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": message})
}
