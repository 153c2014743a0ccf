// Package ledger stores investments and the append-only transaction log.
// This file implements the Repository, which keeps the ledger in ledger.db.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/database"
	"github.com/domufi/analytics/internal/domain"
)

const investmentColumns = `id, property_id, property_name, location, total_invested, current_value,
annual_roi, purchase_date, tokens`

const transactionColumns = `id, property_id, type, amount, date`

// Repository handles ledger database operations.
// Investments are mutable only through UpdateCurrentValue; transactions are append-only.
type Repository struct {
	db  *sql.DB
	now func() time.Time
	log zerolog.Logger
}

// NewRepository creates a new ledger repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		now: time.Now,
		log: log.With().Str("repository", "ledger").Logger(),
	}
}

// Snapshot returns every investment and transaction, oldest first.
// Both lists are read in one transaction so a concurrent write is either fully in or fully out.
func (r *Repository) Snapshot(ctx context.Context) (domain.Ledger, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	investments, err := listInvestments(ctx, tx)
	if err != nil {
		return domain.Ledger{}, err
	}
	transactions, err := listTransactions(ctx, tx)
	if err != nil {
		return domain.Ledger{}, err
	}
	return domain.Ledger{Investments: investments, Transactions: transactions}, nil
}

// Version returns a counter that increases on every ledger write
func (r *Repository) Version(ctx context.Context) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx, "SELECT version FROM ledger_version WHERE id = 1").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read ledger version: %w", err)
	}
	return version, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// ListInvestments returns all investments ordered by purchase date
func (r *Repository) ListInvestments(ctx context.Context) ([]domain.Investment, error) {
	return listInvestments(ctx, r.db)
}

func listInvestments(ctx context.Context, q querier) ([]domain.Investment, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+investmentColumns+" FROM investments ORDER BY purchase_date, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}
	defer rows.Close()

	investments := make([]domain.Investment, 0)
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		investments = append(investments, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investments: %w", err)
	}
	return investments, nil
}

// ListTransactions returns all transactions ordered by date
func (r *Repository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return listTransactions(ctx, r.db)
}

func listTransactions(ctx context.Context, q querier) ([]domain.Transaction, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+transactionColumns+" FROM transactions ORDER BY date, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var tx domain.Transaction
		var propertyID sql.NullString
		var date int64
		if err := rows.Scan(&tx.ID, &propertyID, &tx.Type, &tx.Amount, &date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.PropertyID = propertyID.String
		tx.Date = time.Unix(date, 0).UTC()
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

// GetInvestment returns the investment with id, or nil if it does not exist
func (r *Repository) GetInvestment(ctx context.Context, id string) (*domain.Investment, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+investmentColumns+" FROM investments WHERE id = ?", id)
	inv, err := scanInvestment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get investment %s: %w", id, err)
	}
	return &inv, nil
}

// CreateInvestment validates and stores an investment together with its purchase transaction.
// Missing ids are generated.
func (r *Repository) CreateInvestment(ctx context.Context, inv *domain.Investment) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if err := ValidateInvestment(*inv); err != nil {
		return err
	}

	purchase := domain.Transaction{
		ID:         uuid.New().String(),
		PropertyID: inv.PropertyID,
		Type:       domain.TransactionPurchase,
		Amount:     inv.TotalInvested,
		Date:       inv.PurchaseDate,
	}

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if err := r.insertInvestment(ctx, tx, *inv); err != nil {
			return err
		}
		if err := r.insertTransaction(ctx, tx, purchase); err != nil {
			return err
		}
		return bumpVersion(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}

	r.log.Info().
		Str("investment_id", inv.ID).
		Str("property_id", inv.PropertyID).
		Float64("total_invested", inv.TotalInvested).
		Msg("Investment created")
	return nil
}

// CreateTransaction validates and appends a transaction. Missing ids are generated.
func (r *Repository) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if err := ValidateTransaction(*t); err != nil {
		return err
	}

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if err := r.insertTransaction(ctx, tx, *t); err != nil {
			return err
		}
		return bumpVersion(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	r.log.Debug().
		Str("transaction_id", t.ID).
		Str("type", string(t.Type)).
		Float64("amount", t.Amount).
		Msg("Transaction recorded")
	return nil
}

// UpdateCurrentValue records a new valuation for an investment
func (r *Repository) UpdateCurrentValue(ctx context.Context, id string, value float64) error {
	if !validAmount(value) || value < 0 {
		return invalid("current_value must not be negative")
	}

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE investments SET current_value = ?, updated_at = ? WHERE id = ?",
			value, r.now().Unix(), id)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("investment %s: %w", id, ErrNotFound)
		}
		return bumpVersion(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("failed to update current value: %w", err)
	}
	return nil
}

// Import stores a whole ledger in one transaction. Investments arrive with
// their own transaction history, so no purchase transactions are synthesized.
// Records whose id already exists are skipped.
func (r *Repository) Import(ctx context.Context, ledger domain.Ledger) (int, int, error) {
	for _, inv := range ledger.Investments {
		if err := ValidateInvestment(inv); err != nil {
			return 0, 0, fmt.Errorf("investment %s: %w", inv.ID, err)
		}
	}
	for _, t := range ledger.Transactions {
		if err := ValidateTransaction(t); err != nil {
			return 0, 0, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
	}

	var investments, transactions int
	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		for _, inv := range ledger.Investments {
			if inv.ID == "" {
				inv.ID = uuid.New().String()
			}
			ok, err := r.insertInvestmentIfAbsent(ctx, tx, inv)
			if err != nil {
				return err
			}
			if ok {
				investments++
			}
		}
		for _, t := range ledger.Transactions {
			if t.ID == "" {
				t.ID = uuid.New().String()
			}
			ok, err := r.insertTransactionIfAbsent(ctx, tx, t)
			if err != nil {
				return err
			}
			if ok {
				transactions++
			}
		}
		return bumpVersion(ctx, tx)
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to import ledger: %w", err)
	}

	r.log.Info().
		Int("investments", investments).
		Int("transactions", transactions).
		Msg("Ledger imported")
	return investments, transactions, nil
}

func (r *Repository) insertInvestment(ctx context.Context, tx *sql.Tx, inv domain.Investment) error {
	_, err := r.execInvestment(ctx, tx, "INSERT", inv)
	return err
}

func (r *Repository) insertInvestmentIfAbsent(ctx context.Context, tx *sql.Tx, inv domain.Investment) (bool, error) {
	return r.execInvestment(ctx, tx, "INSERT OR IGNORE", inv)
}

func (r *Repository) execInvestment(ctx context.Context, tx *sql.Tx, verb string, inv domain.Investment) (bool, error) {
	now := r.now().Unix()
	result, err := tx.ExecContext(ctx, verb+` INTO investments
		(id, property_id, property_name, location, total_invested, current_value,
		 annual_roi, purchase_date, tokens, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.PropertyID, inv.PropertyName, inv.Location, inv.TotalInvested, inv.CurrentValue,
		inv.AnnualROI, inv.PurchaseDate.Unix(), inv.Tokens, now, now)
	if err != nil {
		return false, fmt.Errorf("failed to insert investment %s: %w", inv.ID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) insertTransaction(ctx context.Context, tx *sql.Tx, t domain.Transaction) error {
	_, err := r.execTransaction(ctx, tx, "INSERT", t)
	return err
}

func (r *Repository) insertTransactionIfAbsent(ctx context.Context, tx *sql.Tx, t domain.Transaction) (bool, error) {
	return r.execTransaction(ctx, tx, "INSERT OR IGNORE", t)
}

func (r *Repository) execTransaction(ctx context.Context, tx *sql.Tx, verb string, t domain.Transaction) (bool, error) {
	result, err := tx.ExecContext(ctx, verb+` INTO transactions
		(id, property_id, type, amount, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, nullString(t.PropertyID), string(t.Type), t.Amount, t.Date.Unix(), r.now().Unix())
	if err != nil {
		return false, fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func bumpVersion(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "UPDATE ledger_version SET version = version + 1 WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to bump ledger version: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanInvestment(s scanner) (domain.Investment, error) {
	var inv domain.Investment
	var purchaseDate int64
	err := s.Scan(&inv.ID, &inv.PropertyID, &inv.PropertyName, &inv.Location, &inv.TotalInvested,
		&inv.CurrentValue, &inv.AnnualROI, &purchaseDate, &inv.Tokens)
	if err != nil {
		return domain.Investment{}, err
	}
	inv.PurchaseDate = time.Unix(purchaseDate, 0).UTC()
	return inv, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
