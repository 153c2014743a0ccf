package ledger

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/domufi/analytics/internal/domain"
)

var (
	// ErrNotFound is returned when an investment does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidRecord wraps every validation failure
	ErrInvalidRecord = errors.New("invalid record")
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, fmt.Sprintf(format, args...))
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateInvestment checks an investment before it enters the ledger.
// The analytics engine relies on these checks and does not repeat them.
func ValidateInvestment(inv domain.Investment) error {
	switch {
	case strings.TrimSpace(inv.PropertyID) == "":
		return invalid("property_id is required")
	case strings.TrimSpace(inv.PropertyName) == "":
		return invalid("property_name is required")
	case !validAmount(inv.TotalInvested) || inv.TotalInvested <= 0:
		return invalid("total_invested must be positive")
	case !validAmount(inv.CurrentValue) || inv.CurrentValue < 0:
		return invalid("current_value must not be negative")
	case !validAmount(inv.AnnualROI):
		return invalid("annual_roi must be a number")
	case inv.Tokens < 0:
		return invalid("tokens must not be negative")
	case inv.PurchaseDate.IsZero():
		return invalid("purchase_date is required")
	}
	return nil
}

// ValidateTransaction checks a transaction before it is appended to the ledger
func ValidateTransaction(tx domain.Transaction) error {
	switch {
	case !tx.Type.Valid():
		return invalid("unknown transaction type %q", tx.Type)
	case !validAmount(tx.Amount):
		return invalid("amount must be a number")
	case tx.Date.IsZero():
		return invalid("date is required")
	case tx.Type != domain.TransactionDeposit && tx.Type != domain.TransactionWithdrawal && strings.TrimSpace(tx.PropertyID) == "":
		return invalid("%s transactions require a property_id", tx.Type)
	}
	return nil
}
