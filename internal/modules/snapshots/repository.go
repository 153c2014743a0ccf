package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultListLimit is used when List is called with a non-positive limit
const DefaultListLimit = 30

// Repository stores snapshots in history.db
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new snapshot repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "snapshots").Logger(),
	}
}

// Upsert stores s, replacing any snapshot already taken on the same date.
// A missing ID or CreatedAt is filled in.
func (r *Repository) Upsert(ctx context.Context, s *Snapshot) error {
	if s.Date == "" {
		return errors.New("snapshot date is required")
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO portfolio_snapshots
			(id, date, total_invested, current_value, total_return_pct, monthly_income,
			 health_score, total_properties, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			total_invested = excluded.total_invested,
			current_value = excluded.current_value,
			total_return_pct = excluded.total_return_pct,
			monthly_income = excluded.monthly_income,
			health_score = excluded.health_score,
			total_properties = excluded.total_properties,
			created_at = excluded.created_at
	`, s.ID, s.Date, s.TotalInvested, s.CurrentValue, s.TotalReturnPct, s.MonthlyIncome,
		s.HealthScore, s.TotalProperties, s.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot %s: %w", s.Date, err)
	}

	r.log.Debug().Str("date", s.Date).Float64("current_value", s.CurrentValue).Msg("Snapshot stored")
	return nil
}

// List returns up to limit snapshots, newest first
func (r *Repository) List(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, total_invested, current_value, total_return_pct, monthly_income,
		       health_score, total_properties, created_at
		FROM portfolio_snapshots
		ORDER BY date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	result := make([]Snapshot, 0)
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// GetByDate returns the snapshot for date, or nil if none was taken
func (r *Repository) GetByDate(ctx context.Context, date string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, total_invested, current_value, total_return_pct, monthly_income,
		       health_score, total_properties, created_at
		FROM portfolio_snapshots
		WHERE date = ?
	`, date)

	s, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var s Snapshot
	var createdAt int64
	err := row.Scan(&s.ID, &s.Date, &s.TotalInvested, &s.CurrentValue, &s.TotalReturnPct,
		&s.MonthlyIncome, &s.HealthScore, &s.TotalProperties, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}
	s.CreatedAt = time.Unix(createdAt, 0)
	return &s, nil
}
