package ledger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testingpkg "github.com/domufi/analytics/internal/testing"
)

func writeLedgerFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestFileProvider_RoundTrip(t *testing.T) {
	fixture := testingpkg.NewLedgerFixture()
	content, err := json.Marshal(fixture)
	require.NoError(t, err)

	provider := NewFileProvider(writeLedgerFile(t, content))
	ledger, err := provider.Snapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, ledger.Investments, len(fixture.Investments))
	require.Len(t, ledger.Transactions, len(fixture.Transactions))
	assert.Equal(t, "Riverside Lofts", ledger.Investments[0].PropertyName)
	assert.True(t, fixture.Investments[0].PurchaseDate.Equal(ledger.Investments[0].PurchaseDate))
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		validation bool
	}{
		{"malformed json", `{"investments": [`, false},
		{"invalid investment", `{"investments": [{"id": "x", "property_id": "p", "property_name": "n", "total_invested": -1, "purchase_date": "2025-01-01T00:00:00Z"}]}`, true},
		{"invalid transaction", `{"transactions": [{"id": "t", "type": "gift", "amount": 1, "date": "2025-01-01T00:00:00Z"}]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeLedgerFile(t, []byte(tt.content)))
			require.Error(t, err)
			if tt.validation {
				assert.ErrorIs(t, err, ErrInvalidRecord)
			}
		})
	}

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
