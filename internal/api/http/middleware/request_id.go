package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weddingmoments/studio-backend/internal/logging"
)

const RequestIDHeader = "X-Request-Id"

// maxRequestIDLen bounds ids accepted from callers; longer or non-printable
// ids are replaced.
const maxRequestIDLen = 64

// RequestIDMiddleware tags each request with an id, taken from the caller's
// X-Request-Id when usable, and logs one line per finished request. The id
// reaches handlers through the request context so logging.NewLogger picks it
// up.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if !usableRequestID(rid) {
			rid = newRequestID()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), rid))
		c.Header(RequestIDHeader, rid)

		start := time.Now()
		c.Next()

		log.Printf("[req] id=%s client=%s method=%s path=%s status=%d latency=%s",
			rid, c.ClientIP(), c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

func usableRequestID(rid string) bool {
	if rid == "" || len(rid) > maxRequestIDLen {
		return false
	}
	for _, r := range rid {
		if r < 0x21 || r > 0x7e {
			return false
		}
	}
	return true
}

func newRequestID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return time.Now().UTC().Format("20060102T150405.000000000")
	}
	return hex.EncodeToString(b[:])
}
