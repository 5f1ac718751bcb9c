package api

import (
	"context"
	"net/http"
	"time"

	"github.com/campustrade/campustrade/internal/api/respond"
	"github.com/campustrade/campustrade/internal/health"
	"github.com/campustrade/campustrade/internal/store"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	serviceHealthy func() bool
	store          store.Store
}

// NewHealthHandler creates a new health handler. isHealthy reports aggregate
// service health; pass nil to report healthy unconditionally.
func NewHealthHandler(isHealthy func() bool, st store.Store) *HealthHandler {
	if isHealthy == nil {
		isHealthy = func() bool { return true }
	}
	return &HealthHandler{serviceHealthy: isHealthy, store: st}
}

// CheckHealth handles GET /api/health
// Always returns 200; body reports healthy/unhealthy. 500 indicates handler failure only.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	if h.serviceHealthy() {
		status = "healthy"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// CheckStoreHealth handles GET /api/health/db with a synchronous probe.
func (h *HealthHandler) CheckStoreHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if p, ok := h.store.(health.HealthPinger); ok {
		if err := p.HealthPing(ctx); err != nil {
			respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":    "unhealthy",
				"database":  "unreachable",
				"timestamp": time.Now().Format(time.RFC3339),
			})
			return
		}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
