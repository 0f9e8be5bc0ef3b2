package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health-check endpoints.
type HealthHandler struct {
	db      pinger
	timeout time.Duration
}

func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 3 * time.Second}
}

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "action") == "ping" {
		writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "pong"})
		return
	}
	writeJSON(w, http.StatusBadRequest, MessageEnvelope{Message: "unknown action"})
}

// Health reports whether the account store answers.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "account store ping failed", "err", err)
		writeJSON(w, http.StatusServiceUnavailable, HealthEnvelope{Status: "error", Database: "disconnected"})
		return
	}
	writeJSON(w, http.StatusOK, HealthEnvelope{Status: "ok", Database: "connected"})
}
