// Package handlers provides HTTP handlers for ledger operations.
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
	"github.com/domufi/analytics/internal/modules/ledger"
	"github.com/domufi/analytics/internal/modules/portfolio"
)

// LedgerService is the subset of ledger.Service used by the handlers
type LedgerService interface {
	Snapshot(ctx context.Context) (domain.Ledger, error)
	AddInvestment(ctx context.Context, inv *domain.Investment) error
	RecordTransaction(ctx context.Context, tx *domain.Transaction) error
	UpdateValuation(ctx context.Context, id string, value float64) error
}

// Handler handles ledger HTTP requests
type Handler struct {
	service LedgerService
	log     zerolog.Logger
}

// NewHandler creates a new ledger handler
func NewHandler(service LedgerService, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "ledger").Logger(),
	}
}

// HandleGetLedger handles GET /api/ledger
func (h *Handler) HandleGetLedger(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read ledger")
		h.writeError(w, http.StatusInternalServerError, "Failed to read ledger")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"investments":  snapshot.Investments,
			"transactions": snapshot.Transactions,
			"summary":      portfolio.Summarize(snapshot.Investments),
		},
		"metadata": metadata(),
	})
}

// HandleCreateInvestment handles POST /api/ledger/investments
func (h *Handler) HandleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var inv domain.Investment
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.AddInvestment(r.Context(), &inv); err != nil {
		h.writeServiceError(w, err, "Failed to create investment")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data":     inv,
		"metadata": metadata(),
	})
}

// HandleCreateTransaction handles POST /api/ledger/transactions
func (h *Handler) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var tx domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.RecordTransaction(r.Context(), &tx); err != nil {
		h.writeServiceError(w, err, "Failed to record transaction")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data":     tx,
		"metadata": metadata(),
	})
}

// HandleUpdateValue handles PUT /api/ledger/investments/{id}/value
func (h *Handler) HandleUpdateValue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		CurrentValue *float64 `json:"current_value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CurrentValue == nil {
		h.writeError(w, http.StatusBadRequest, "current_value is required")
		return
	}

	if err := h.service.UpdateValuation(r.Context(), id, *req.CurrentValue); err != nil {
		h.writeServiceError(w, err, "Failed to update valuation")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"id":            id,
			"current_value": *req.CurrentValue,
		},
		"metadata": metadata(),
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ledger.ErrInvalidRecord):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Error().Err(err).Msg(msg)
		h.writeError(w, http.StatusInternalServerError, msg)
	}
}

func metadata() map[string]interface{} {
	return map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
