package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger reports liveness of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles liveness requests
type HealthHandlers struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandlers creates new health handlers
func NewHealthHandlers(db, cache Pinger) *HealthHandlers {
	return &HealthHandlers{db: db, cache: cache}
}

// Check pings the database and Redis and reports per-dependency status
func (h *HealthHandlers) Check(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{"database": "ok", "redis": "ok"}

	if err := h.db.Ping(c.Request.Context()); err != nil {
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}
	if err := h.cache.Ping(c.Request.Context()); err != nil {
		checks["redis"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"ok": status == http.StatusOK, "checks": checks})
}
