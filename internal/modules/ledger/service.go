package ledger

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/internal/events"
)

const moduleName = "ledger"

// Service applies ledger writes and announces them on the event bus
type Service struct {
	repo   *Repository
	events *events.Manager
	log    zerolog.Logger
}

// NewService creates a new ledger service
func NewService(repo *Repository, eventManager *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: eventManager,
		log:    log.With().Str("service", "ledger").Logger(),
	}
}

// Snapshot implements domain.LedgerProvider
func (s *Service) Snapshot(ctx context.Context) (domain.Ledger, error) {
	return s.repo.Snapshot(ctx)
}

// Version returns the ledger write counter
func (s *Service) Version(ctx context.Context) (int64, error) {
	return s.repo.Version(ctx)
}

// AddInvestment stores a new investment and its purchase transaction
func (s *Service) AddInvestment(ctx context.Context, inv *domain.Investment) error {
	if err := s.repo.CreateInvestment(ctx, inv); err != nil {
		return err
	}
	s.emit(&events.InvestmentAddedData{
		InvestmentID:  inv.ID,
		PropertyID:    inv.PropertyID,
		TotalInvested: inv.TotalInvested,
	})
	return nil
}

// RecordTransaction appends a transaction to the ledger
func (s *Service) RecordTransaction(ctx context.Context, tx *domain.Transaction) error {
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return err
	}
	s.emit(&events.TransactionRecordedData{
		TransactionID: tx.ID,
		PropertyID:    tx.PropertyID,
		Type:          string(tx.Type),
		Amount:        tx.Amount,
	})
	return nil
}

// UpdateValuation records a new current value for an investment
func (s *Service) UpdateValuation(ctx context.Context, id string, value float64) error {
	if err := s.repo.UpdateCurrentValue(ctx, id, value); err != nil {
		return err
	}
	s.emit(&events.ValuationUpdatedData{InvestmentID: id, CurrentValue: value})
	return nil
}

// Import loads a whole ledger, skipping records that already exist
func (s *Service) Import(ctx context.Context, ledger domain.Ledger) (int, int, error) {
	investments, transactions, err := s.repo.Import(ctx, ledger)
	if err != nil {
		return 0, 0, err
	}
	s.emit(&events.LedgerImportedData{Investments: investments, Transactions: transactions})
	return investments, transactions, nil
}

func (s *Service) emit(data events.EventData) {
	if s.events == nil {
		return
	}
	s.events.EmitTyped(moduleName, data)
}
