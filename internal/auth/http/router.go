package http

import (
	"github.com/gin-gonic/gin"

	"github.com/weddingmoments/studio-backend/internal/auth/middleware"
)

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
	rg.GET("/state", h.State)

	authed := rg.Group("")
	authed.Use(middleware.RequireAuth(h.gate))
	authed.GET("/me", h.Me)
	authed.POST("/session", h.RecordSession)
	authed.POST("/logout", h.Logout)
}
