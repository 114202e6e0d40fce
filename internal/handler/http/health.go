// Package http holds the HTTP surface of the digest service: middleware,
// health probes, Prometheus metrics and route registration. The upload
// handler itself lives in the document subpackage.
package http

import (
	"net/http"
	"time"

	"docdigest/internal/handler/http/respond"
	"docdigest/internal/infra/summarizer"
)

// Health status values.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // healthy, degraded or unhealthy
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ModelStatus reports the state of the process-wide summarization model.
// *summarizer.Handle implements it.
type ModelStatus interface {
	State() summarizer.State
	Ready() bool
}

// HealthHandler reports the model state and rate limiter usage.
// A failed model degrades the service, since every chunk still gets an
// extractive summary, so it answers 200 with status "degraded".
type HealthHandler struct {
	Model       ModelStatus
	Provider    string
	RateLimiter *RateLimiter
	Version     string
}

// ServeHTTP writes the health report.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := map[string]CheckStatus{
		"model": h.checkModel(),
	}
	if h.RateLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  StatusHealthy,
			Details: map[string]any{"active_keys": h.RateLimiter.ActiveKeys()},
		}
	}

	status := StatusHealthy
	for _, c := range checks {
		if c.Status != StatusHealthy {
			status = StatusDegraded
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkModel() CheckStatus {
	if h.Model == nil {
		return CheckStatus{Status: StatusUnhealthy, Message: "not configured"}
	}
	state := h.Model.State()
	details := map[string]any{
		"provider": h.Provider,
		"state":    state.String(),
	}
	switch state {
	case summarizer.StateReady:
		return CheckStatus{Status: StatusHealthy, Details: details}
	case summarizer.StateDisabled:
		return CheckStatus{Status: StatusHealthy, Message: "extractive summaries only", Details: details}
	case summarizer.StateNotLoaded:
		return CheckStatus{Status: StatusDegraded, Message: "model not loaded yet", Details: details}
	default:
		return CheckStatus{Status: StatusUnhealthy, Message: "model unavailable, using extractive fallback", Details: details}
	}
}

// ReadyHandler handles readiness probes. The service is ready once the model
// handle has loaded, or when no model is configured.
type ReadyHandler struct {
	Model ModelStatus
}

// ServeHTTP returns 200 when ready and 503 otherwise.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Model == nil || !h.Model.Ready() {
		state := "not configured"
		if h.Model != nil {
			state = h.Model.State().String()
		}
		writeText(w, http.StatusServiceUnavailable, "model not ready: "+state)
		return
	}
	writeText(w, http.StatusOK, "ready")
}

// LiveHandler handles liveness probes and always answers 200.
type LiveHandler struct{}

// ServeHTTP writes "alive".
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "alive")
}

func writeText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}
