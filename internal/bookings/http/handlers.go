package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weddingmoments/studio-backend/internal/bookings/domain"
	"github.com/weddingmoments/studio-backend/internal/logging"
)

func (h *Handler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid query parameters"})
		return
	}

	out, err := h.bookings.List(c.Request.Context(), domain.ListFilter{Status: q.Status, Limit: q.Limit})
	if err != nil {
		h.writeFailed(c, "list_bookings", err, "failed to load booking requests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "bookings": out})
}

func (h *Handler) Get(c *gin.Context) {
	req, err := h.bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeFailed(c, "get_booking", err, "failed to load booking request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "booking": req})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var body updateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": domain.ErrInvalidStatus.Error()})
		return
	}

	req, err := h.bookings.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		h.writeFailed(c, "update_booking_status", err, "failed to update booking request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Booking updated successfully", "booking": req})
}

func (h *Handler) writeFailed(c *gin.Context, operation string, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	default:
		logging.NewLogger(c.Request.Context()).Error(operation, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": message})
	}
}
