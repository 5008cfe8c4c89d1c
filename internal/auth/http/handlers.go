package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/weddingmoments/studio-backend/internal/auth"
	"github.com/weddingmoments/studio-backend/internal/auth/middleware"
	"github.com/weddingmoments/studio-backend/internal/logging"
)

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email and password are required"})
		return
	}

	ctx := c.Request.Context()
	session, err := h.signer.SignIn(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			status = http.StatusUnauthorized
		case errors.Is(err, auth.ErrTooManyAttempts):
			status = http.StatusTooManyRequests
		default:
			logging.NewLogger(ctx).Error("login", err)
		}
		c.JSON(status, gin.H{"ok": false, "error": auth.LoginMessage(err)})
		return
	}

	h.recordLogin(c, session.UID, session.Email)

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"idToken":      session.IDToken,
		"refreshToken": session.RefreshToken,
		"expiresIn":    session.ExpiresIn,
		"uid":          session.UID,
		"email":        session.Email,
	})
}

// State never fails: it reports unknown, unauthenticated or authenticated.
func (h *Handler) State(c *gin.Context) {
	state, principal := h.gate.Evaluate(c.Request.Context(), middleware.ExtractToken(c))

	resp := gin.H{"ok": true, "state": state}
	switch state {
	case auth.StateAuthenticated:
		resp["user"] = principal
		resp["permissions"] = auth.Permissions(principal.Role)
	case auth.StateUnauthenticated:
		resp["redirect"] = auth.LoginPath
	}
	c.JSON(http.StatusOK, resp)
}

// Me also stamps the profile's last login; dashboards call it once per visit.
func (h *Handler) Me(c *gin.Context) {
	principal, _ := auth.PrincipalFrom(c)
	h.recordLogin(c, principal.UID, principal.Email)
	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"user":        principal,
		"permissions": auth.Permissions(principal.Role),
	})
}

// RecordSession is called by clients that sign in directly against the
// provider, so the profile's last login stays current.
func (h *Handler) RecordSession(c *gin.Context) {
	principal, _ := auth.PrincipalFrom(c)
	h.recordLogin(c, principal.UID, principal.Email)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Logout(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if err := h.gate.Logout(c.Request.Context(), uid); err != nil {
		logging.NewLogger(c.Request.Context()).Error("logout", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to sign out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "redirect": auth.LoginPath})
}

// recordLogin is best effort; a sign-in is not failed over a profile write.
func (h *Handler) recordLogin(c *gin.Context, uid, email string) {
	if h.recorder == nil || uid == "" {
		return
	}
	if err := h.recorder.RecordLogin(c.Request.Context(), uid, email); err != nil {
		logging.NewLogger(c.Request.Context()).Warnf("record_login", "uid=%s: %v", uid, err)
	}
}
