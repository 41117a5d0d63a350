package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus is the body served on /health.
type HealthStatus struct {
	Status      string    `json:"status"`
	Storage     string    `json:"storage"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
}

// Health reports liveness plus the reachability of the storage backend.
// Results are cached for a few seconds so probes do not hammer the backend.
type Health struct {
	mu        sync.Mutex
	check     func(ctx context.Context) error
	version   string
	startTime time.Time
	cacheFor  time.Duration
	last      HealthStatus
	lastAt    time.Time
}

func NewHealth(version string, check func(ctx context.Context) error) *Health {
	return &Health{
		check:     check,
		version:   version,
		startTime: time.Now(),
		cacheFor:  5 * time.Second,
	}
}

func (h *Health) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := h.status(c.Request.Context())

		code := http.StatusOK
		if status.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}

func (h *Health) status(ctx context.Context) HealthStatus {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.lastAt.IsZero() && time.Since(h.lastAt) < h.cacheFor {
		return h.last
	}

	status := HealthStatus{
		Status:      "ok",
		Storage:     "ok",
		LastChecked: time.Now(),
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Version:     h.version,
	}

	if h.check != nil {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.check(checkCtx); err != nil {
			status.Status = "degraded"
			status.Storage = err.Error()
		}
	}

	h.last = status
	h.lastAt = time.Now()
	return status
}
