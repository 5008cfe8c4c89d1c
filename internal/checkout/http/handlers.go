package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bookings "github.com/weddingmoments/studio-backend/internal/bookings/domain"
	"github.com/weddingmoments/studio-backend/internal/cart"
	"github.com/weddingmoments/studio-backend/internal/catalog/domain"
	"github.com/weddingmoments/studio-backend/internal/checkout"
	"github.com/weddingmoments/studio-backend/internal/logging"
)

// Studio returns the public contact details shown on the storefront.
func (h *Handler) Studio(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "studio": h.studio})
}

func (h *Handler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "serviceId is required"})
		return
	}

	item, err := h.checkout.Quote(req.ServiceID, req.Quantities)
	if err != nil {
		writeCartError(c, "quote", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "item": item})
}

func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "items are required"})
		return
	}

	res, err := h.checkout.Checkout(c.Request.Context(), req.Items, req.Channel)
	if err != nil {
		writeCartError(c, "checkout", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "checkout": res})
}

// RateLimit throttles checkout submissions per client IP.
func (h *Handler) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "Too many booking requests. Please try again in a minute."})
			return
		}
		c.Next()
	}
}

func writeCartError(c *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, domain.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "service not found"})
	case errors.Is(err, cart.ErrEmptySelection), errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Please select at least one service"})
	case errors.Is(err, cart.ErrUnknownSubService),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, bookings.ErrInvalidChannel):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		logging.NewLogger(c.Request.Context()).Error(operation, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to prepare booking request"})
	}
}
