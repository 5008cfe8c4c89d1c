package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	DB        string            `json:"db,omitempty"`
	Stores    map[string]string `json:"stores,omitempty"`
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// FeedStatus reports "syncing", "up" or "degraded" for one live collection.
type FeedStatus func() string

type HealthHandler struct {
	serviceName string
	version     string
	db          Pinger
	stores      map[string]FeedStatus
}

func NewHealthHandler(serviceName, version string, db Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		stores:      map[string]FeedStatus{},
	}
}

// WithStore adds a live collection to the report.
func (h *HealthHandler) WithStore(name string, status FeedStatus) *HealthHandler {
	h.stores[name] = status
	return h
}

// HealthCheck answers 200 while the process is serving; a degraded
// dependency shows up in the body and the overall status.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"

	dbStatus := "disabled"
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.db.Ping(pingCtx); err != nil {
			dbStatus = "down"
			status = "degraded"
		} else {
			dbStatus = "up"
		}
	}

	var stores map[string]string
	if len(h.stores) > 0 {
		stores = make(map[string]string, len(h.stores))
		for name, fn := range h.stores {
			s := fn()
			stores[name] = s
			if s == "degraded" {
				status = "degraded"
			}
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
		Stores:    stores,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
