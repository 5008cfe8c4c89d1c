package live

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const keepAliveInterval = 15 * time.Second

// ServeSSE streams feed snapshots to the client as Server-Sent Events until
// the request is cancelled. The first frame is an "initial" event, every
// later snapshot an "update" event. render shapes each snapshot for the wire.
func ServeSSE[T any](c *gin.Context, feed *Feed[T], render func(T) any) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	updates, cancel := feed.Subscribe()
	defer cancel()

	ctx := c.Request.Context()
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	event := "initial"
	if _, ready := feed.Load(); !ready {
		// nothing confirmed yet, open the stream so the client can wait
		fmt.Fprint(c.Writer, ": syncing\n\n")
		flusher.Flush()
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case v := <-updates:
			data, err := json.Marshal(render(v))
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, string(data))
			flusher.Flush()
			event = "update"
		}
	}
}
