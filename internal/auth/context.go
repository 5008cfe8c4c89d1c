package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
	CtxPrincipal   = "principal"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context
// This is set by RequireAuth
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// SetPrincipal stores p on the Gin context.
func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(CtxPrincipal, p)
	c.Set(CtxFirebaseUID, p.UID)
	c.Set(CtxEmail, p.Email)
}

// PrincipalFrom returns the principal set by RequireAuth.
func PrincipalFrom(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(CtxPrincipal)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok && p != nil
}
