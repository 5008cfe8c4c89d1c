package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/weddingmoments/studio-backend/internal/auth"
)

// RequireAuth admits only requests carrying a valid Firebase ID token.
// While the gate is still resolving it answers 503 so clients render
// nothing rather than a login redirect.
func RequireAuth(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, principal := gate.Evaluate(c.Request.Context(), ExtractToken(c))
		switch state {
		case auth.StateUnknown:
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"ok": false, "state": state, "error": "authentication is initializing"})
			return
		case auth.StateUnauthenticated:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "state": state, "error": "authentication required", "redirect": auth.LoginPath})
			return
		}

		auth.SetPrincipal(c, principal)
		c.Next()
	}
}

// RequirePermission must run after RequireAuth.
func RequirePermission(p auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "authentication required", "redirect": auth.LoginPath})
			return
		}
		if !auth.Authorize(principal.Role, p) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "you do not have permission to perform this action"})
			return
		}
		c.Next()
	}
}

// ExtractToken extracts the Bearer token from the Authorization header
func ExtractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
