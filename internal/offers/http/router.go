package http

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/offers", h.Promotions)
	rg.GET("/offers/stream", h.StreamPromotions)
}

func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/offers", h.List)
	rg.POST("/offers", h.Create)
	rg.PATCH("/offers/:id", h.Update)
	rg.DELETE("/offers/:id", h.Delete)
	rg.POST("/offers/:id/toggle", h.Toggle)
}
