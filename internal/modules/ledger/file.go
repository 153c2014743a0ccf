package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/domufi/analytics/internal/domain"
)

// FileProvider serves a ledger from a JSON document, re-reading it on every snapshot.
// The document has the shape {"investments": [...], "transactions": [...]}.
type FileProvider struct {
	path string
}

// NewFileProvider creates a provider for the JSON ledger at path
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Snapshot implements domain.LedgerProvider
func (p *FileProvider) Snapshot(ctx context.Context) (domain.Ledger, error) {
	return LoadFile(p.path)
}

// LoadFile reads and validates a JSON ledger
func LoadFile(path string) (domain.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("failed to open ledger file: %w", err)
	}
	defer f.Close()

	var ledger domain.Ledger
	if err := json.NewDecoder(f).Decode(&ledger); err != nil {
		return domain.Ledger{}, fmt.Errorf("failed to decode ledger file %s: %w", path, err)
	}

	for _, inv := range ledger.Investments {
		if err := ValidateInvestment(inv); err != nil {
			return domain.Ledger{}, fmt.Errorf("investment %s: %w", inv.ID, err)
		}
	}
	for _, tx := range ledger.Transactions {
		if err := ValidateTransaction(tx); err != nil {
			return domain.Ledger{}, fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
	}
	return ledger, nil
}
