package http

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.List)
	rg.GET("/bookings/:id", h.Get)
	rg.PATCH("/bookings/:id", h.UpdateStatus)
}
