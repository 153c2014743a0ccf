// Package cache memoizes analytics results per ledger state.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/domufi/analytics/internal/domain"
)

// Fingerprint returns a stable digest of the ledger contents.
// Two snapshots with the same records in the same order share a fingerprint.
func Fingerprint(ledger domain.Ledger) (string, error) {
	encoded, err := msgpack.Marshal(&ledger)
	if err != nil {
		return "", fmt.Errorf("failed to encode ledger: %w", err)
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}
