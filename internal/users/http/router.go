package http

import (
	"github.com/gin-gonic/gin"

	"github.com/weddingmoments/studio-backend/internal/auth"
	"github.com/weddingmoments/studio-backend/internal/auth/middleware"
)

// RegisterAdmin expects rg to already run middleware.RequireAuth.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/users", middleware.RequirePermission(auth.PermViewUsers), h.List)
	rg.GET("/users/stream", middleware.RequirePermission(auth.PermViewUsers), h.Stream)
	rg.POST("/users", middleware.RequirePermission(auth.PermManageUsers), h.Create)
	rg.DELETE("/users/:id", middleware.RequirePermission(auth.PermManageUsers), h.Delete)
}
