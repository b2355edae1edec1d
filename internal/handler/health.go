package handler

import (
	"context"
	"net/http"
)

// Pinger is anything whose reachability the health check reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

// FormCounter reports how many donation forms are mounted.
type FormCounter interface {
	Len() int
}

// HealthHandler handles the health check endpoint.
type HealthHandler struct {
	db    Pinger
	forms FormCounter
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger, forms FormCounter) *HealthHandler {
	return &HealthHandler{db: db, forms: forms}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"forms":  h.forms.Len(),
	}

	if err := h.db.Ping(r.Context()); err != nil {
		status["database"] = "error"
		status["status"] = "degraded"
	} else {
		status["database"] = "ok"
	}

	code := http.StatusOK
	if status["status"] == "degraded" {
		code = http.StatusServiceUnavailable
	}

	JSON(w, code, status)
}
