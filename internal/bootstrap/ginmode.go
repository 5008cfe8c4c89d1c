package bootstrap

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SetGinMode picks the gin mode for APP_ENV. Anything that is not a
// production or test environment keeps gin's debug output.
func SetGinMode(env string) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
}
