package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/session"

	"github.com/labstack/echo/v4"
)

// Pinger is anything whose liveness can be probed. pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers serves liveness and readiness probes.
type HealthHandlers struct {
	db       Pinger
	sessions session.Store
}

func NewHealthHandlers(db Pinger, sessions session.Store) *HealthHandlers {
	return &HealthHandlers{db: db, sessions: sessions}
}

// HealthStatus is the probe response body.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
}

// HealthCheck reports process liveness.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck probes the account store and the session store.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	health := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	if err := h.db.Ping(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.sessions.Ping(ctx); err != nil {
		health.Services["sessions"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["sessions"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}
	return c.JSON(statusCode, health)
}
