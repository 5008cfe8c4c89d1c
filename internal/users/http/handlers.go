package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weddingmoments/studio-backend/internal/docstore"
	"github.com/weddingmoments/studio-backend/internal/live"
	"github.com/weddingmoments/studio-backend/internal/logging"
	"github.com/weddingmoments/studio-backend/internal/users/domain"
)

func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "users": h.directory.List()})
}

func (h *Handler) Stream(c *gin.Context) {
	live.ServeSSE(c, h.directory.Feed(), func(all []domain.UserProfile) any {
		return gin.H{"users": all}
	})
}

func (h *Handler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "a valid email address is required"})
		return
	}

	profile, err := h.directory.Provision(c.Request.Context(), req.toDomain())
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"ok": true, "message": "User added successfully", "user": profile})
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrProvisionerUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": err.Error()})
	default:
		h.writeFailed(c, "create_user", err, "failed to add user")
	}
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.directory.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeFailed(c, "delete_user", err, "failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "User deleted successfully"})
}

func (h *Handler) writeFailed(c *gin.Context, operation string, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
	case errors.Is(err, docstore.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": message})
	default:
		logging.NewLogger(c.Request.Context()).Error(operation, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": message})
	}
}
