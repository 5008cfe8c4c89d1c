package http

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/weddingmoments/studio-backend/internal/catalog/service"
	"github.com/weddingmoments/studio-backend/internal/logging"
)

const maxImportBytes = 5 << 20

func (h *Handler) Export(c *gin.Context) {
	file, err := h.store.Export()
	if err != nil {
		logging.NewLogger(c.Request.Context()).Error("export_catalog", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to export data"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, "application/json", file.Data)
}

// PreviewImport parses an uploaded catalog file and reports what it holds.
// The catalog is not modified.
func (h *Handler) PreviewImport(c *gin.Context) {
	data, err := readImport(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "failed to read import file"})
		return
	}

	preview, err := service.PreviewImport(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "failed to import data: invalid file format"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"committed": false,
		"preview":   preview,
		"message":   fmt.Sprintf("Found %d services in file", preview.Count),
	})
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.store.Summary()
	if err != nil {
		logging.NewLogger(c.Request.Context()).Error("settings_summary", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to summarise catalog"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "summary": summary})
}

// readImport accepts either a multipart "file" field or a raw JSON body.
func readImport(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return io.ReadAll(c.Request.Body)
}
