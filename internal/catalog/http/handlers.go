package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weddingmoments/studio-backend/internal/catalog/domain"
	"github.com/weddingmoments/studio-backend/internal/catalog/service"
	"github.com/weddingmoments/studio-backend/internal/docstore"
	"github.com/weddingmoments/studio-backend/internal/live"
	"github.com/weddingmoments/studio-backend/internal/logging"
	"github.com/weddingmoments/studio-backend/internal/pricing"
)

const invalidFormMessage = "name, description and at least one sub-service with a non-negative price are required"

func (h *Handler) ListStorefront(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "services": h.store.List(service.ViewStorefront)})
}

func (h *Handler) GetStorefront(c *gin.Context) {
	svc, err := h.store.Get(c.Param("id"), service.ViewStorefront)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "service not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "service": svc})
}

func (h *Handler) StreamStorefront(c *gin.Context) {
	live.ServeSSE(c, h.store.Feed(), func(all []domain.Service) any {
		return gin.H{"services": service.Filter(all, service.ViewStorefront)}
	})
}

func (h *Handler) PricingUnits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "pricingTypes": pricing.Types()})
}

func (h *Handler) ListAdmin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "services": h.store.List(service.ViewAdmin)})
}

func (h *Handler) StreamAdmin(c *gin.Context) {
	live.ServeSSE(c, h.store.Feed(), func(all []domain.Service) any {
		return gin.H{"services": all, "stats": service.ComputeStats(all)}
	})
}

func (h *Handler) CreateService(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.valid() {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": invalidFormMessage})
		return
	}

	created, err := h.store.Create(c.Request.Context(), domain.Service{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Offer:       req.Offer,
		SubServices: toDomainSubs(req.SubServices),
		IsActive:    req.IsActive,
	})
	if err != nil {
		if errors.Is(err, domain.ErrServiceExists) {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "a service with this id already exists"})
			return
		}
		h.writeFailed(c, "create_service", err, "failed to add service")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "message": "Service added successfully", "service": created})
}

func (h *Handler) UpdateService(c *gin.Context) {
	var req updateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.valid() {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": invalidFormMessage})
		return
	}

	if err := h.store.Update(c.Request.Context(), c.Param("id"), req.toPatch()); err != nil {
		h.writeFailed(c, "update_service", err, "failed to update service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Service updated successfully"})
}

func (h *Handler) DeleteService(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeFailed(c, "delete_service", err, "failed to delete service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Service deleted successfully"})
}

func (h *Handler) ToggleService(c *gin.Context) {
	active, err := h.store.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeFailed(c, "toggle_service", err, "failed to update service status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "isActive": active})
}

func (h *Handler) UpdatePrices(c *gin.Context) {
	var req priceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	n, err := h.store.UpdatePrices(c.Request.Context(), req.Prices)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNegativePrice), errors.Is(err, domain.ErrSubServiceNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		default:
			h.writeFailed(c, "update_prices", err, "failed to update prices")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "updated": n, "message": "Prices updated successfully"})
}

func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "stats": h.store.Stats()})
}

func (h *Handler) ResetToDefaults(c *gin.Context) {
	if err := h.store.ResetToDefaults(c.Request.Context()); err != nil {
		h.writeFailed(c, "reset_services", err, "failed to reset services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Services reset to defaults"})
}

// writeFailed maps a failed remote write to a response and logs it.
func (h *Handler) writeFailed(c *gin.Context, operation string, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "service not found"})
		return
	case errors.Is(err, domain.ErrDuplicateSubService):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": message + ": sub-service ids must be unique"})
		return
	case errors.Is(err, docstore.ErrPermissionDenied):
		logging.NewLogger(c.Request.Context()).Error(operation, err)
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": message + ": permission denied"})
		return
	}

	logging.NewLogger(c.Request.Context()).Error(operation, err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": message})
}
