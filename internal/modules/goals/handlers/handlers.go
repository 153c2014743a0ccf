// Package handlers provides HTTP handlers for goals.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/internal/modules/goals"
)

// GoalService is the subset of goals.Service used by the handlers
type GoalService interface {
	List(ctx context.Context) ([]domain.Goal, error)
	SetTarget(ctx context.Context, goalID string, target float64) error
}

// Handler handles goal HTTP requests
type Handler struct {
	service GoalService
	log     zerolog.Logger
}

// NewHandler creates a new goals handler
func NewHandler(service GoalService, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "goals").Logger(),
	}
}

// RegisterRoutes registers goal routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/goals", func(r chi.Router) {
		r.Get("/", h.HandleListGoals)
		r.Put("/{id}", h.HandleSetTarget)
	})
}

// HandleListGoals handles GET /api/goals
func (h *Handler) HandleListGoals(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list goals")
		h.writeError(w, http.StatusInternalServerError, "Failed to list goals")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": list,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleSetTarget handles PUT /api/goals/{id}
func (h *Handler) HandleSetTarget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Target *float64 `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Target == nil {
		h.writeError(w, http.StatusBadRequest, "target is required")
		return
	}

	err := h.service.SetTarget(r.Context(), id, *req.Target)
	switch {
	case errors.Is(err, goals.ErrUnknownGoal):
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, goals.ErrInvalidTarget):
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.log.Error().Err(err).Str("goal_id", id).Msg("Failed to set goal target")
		h.writeError(w, http.StatusInternalServerError, "Failed to set goal target")
		return
	}

	h.HandleListGoals(w, r)
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
