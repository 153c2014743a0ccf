// Package handlers provides HTTP handlers for portfolio analytics.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/modules/analytics"
)

// DashboardService is the subset of analytics.Service used by the handlers
type DashboardService interface {
	Dashboard(ctx context.Context, r analytics.Range) (analytics.Dashboard, error)
}

// Handler handles analytics HTTP requests
type Handler struct {
	service DashboardService
	log     zerolog.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(service DashboardService, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "analytics").Logger(),
	}
}

// RegisterRoutes registers analytics routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/dashboard", h.view(func(d analytics.Dashboard) interface{} { return d }))
		r.Get("/income", h.view(func(d analytics.Dashboard) interface{} { return d.Income }))
		r.Get("/performance", h.view(func(d analytics.Dashboard) interface{} {
			return map[string]interface{}{
				"metrics": d.Performance,
				"period":  d.Series.Period,
			}
		}))
		r.Get("/health", h.view(func(d analytics.Dashboard) interface{} { return d.Health }))
		r.Get("/series", h.view(func(d analytics.Dashboard) interface{} { return d.Series }))
		r.Get("/geography", h.view(func(d analytics.Dashboard) interface{} { return d.Geography }))
		r.Get("/calendar", h.view(func(d analytics.Dashboard) interface{} { return d.Calendar }))
		r.Get("/diversification", h.view(func(d analytics.Dashboard) interface{} {
			return map[string]interface{}{
				"grade":      d.Diversification,
				"allocation": d.Allocation,
			}
		}))
	})
}

// view builds a handler that computes the dashboard for ?range= and responds with one part of it
func (h *Handler) view(pick func(analytics.Dashboard) interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, err := analytics.ParseRange(r.URL.Query().Get("range"))
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		dash, err := h.service.Dashboard(r.Context(), rng)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			h.log.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to compute analytics")
			h.writeError(w, http.StatusInternalServerError, "Failed to compute analytics")
			return
		}

		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": pick(dash),
			"metadata": map[string]interface{}{
				"timestamp": time.Now().Format(time.RFC3339),
				"range":     rng,
				"empty":     dash.Empty,
			},
		})
	}
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
