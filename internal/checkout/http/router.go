package http

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/studio", h.Studio)
	rg.POST("/cart/quote", h.Quote)
	rg.POST("/checkout", h.RateLimit(), h.Checkout)
}
