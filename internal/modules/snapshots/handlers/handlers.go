// Package handlers provides HTTP handlers for portfolio snapshots.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/modules/snapshots"
)

const maxListLimit = 365

// SnapshotService is the subset of snapshots.Service used by the handlers
type SnapshotService interface {
	Take(ctx context.Context) (*snapshots.Snapshot, error)
	List(ctx context.Context, limit int) ([]snapshots.Snapshot, error)
}

// Handler handles snapshot HTTP requests
type Handler struct {
	service SnapshotService
	log     zerolog.Logger
}

// NewHandler creates a new snapshot handler
func NewHandler(service SnapshotService, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "snapshots").Logger(),
	}
}

// RegisterRoutes mounts the snapshot history under /snapshots
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/snapshots", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleTake)
	})
}

// HandleList handles GET /api/snapshots?limit=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := snapshots.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if n > maxListLimit {
			n = maxListLimit
		}
		limit = n
	}

	list, err := h.service.List(r.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list snapshots")
		h.writeError(w, http.StatusInternalServerError, "Failed to list snapshots")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": list,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"count":     len(list),
		},
	})
}

// HandleTake handles POST /api/snapshots
func (h *Handler) HandleTake(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Take(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to take snapshot")
		h.writeError(w, http.StatusInternalServerError, "Failed to take snapshot")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": snap,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
