// Package domain provides core domain models and types.
package domain

import "time"

// TransactionType classifies a ledger event
type TransactionType string

const (
	TransactionPurchase   TransactionType = "purchase"
	TransactionDividend   TransactionType = "dividend"
	TransactionSale       TransactionType = "sale"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionDeposit    TransactionType = "deposit"
)

// Valid reports whether t is one of the known transaction types
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionPurchase, TransactionDividend, TransactionSale, TransactionWithdrawal, TransactionDeposit:
		return true
	}
	return false
}

// Investment is one user's stake in one property.
// AnnualROI is a percentage; zero means the ROI is unknown and consumers apply their default.
type Investment struct {
	PurchaseDate  time.Time `json:"purchase_date"`
	ID            string    `json:"id"`
	PropertyID    string    `json:"property_id"`
	PropertyName  string    `json:"property_name"`
	Location      string    `json:"location"` // "City, Region"
	TotalInvested float64   `json:"total_invested"`
	CurrentValue  float64   `json:"current_value"`
	AnnualROI     float64   `json:"annual_roi"`
	Tokens        int64     `json:"tokens"`
}

// ROIOr returns the investment's annual ROI, or fallback when it is absent.
func (i Investment) ROIOr(fallback float64) float64 {
	if i.AnnualROI == 0 {
		return fallback
	}
	return i.AnnualROI
}

// Transaction is an append-only ledger event.
// PropertyID is empty for account-level events such as deposits.
type Transaction struct {
	Date       time.Time       `json:"date"`
	ID         string          `json:"id"`
	PropertyID string          `json:"property_id,omitempty"`
	Type       TransactionType `json:"type"`
	Amount     float64         `json:"amount"`
}

// IsDividend reports whether the transaction counts towards income
func (t Transaction) IsDividend() bool {
	return t.Type == TransactionDividend
}

// Ledger is the read-only snapshot of one user's investments and transactions
type Ledger struct {
	Investments  []Investment  `json:"investments"`
	Transactions []Transaction `json:"transactions"`
}

// IsEmpty reports whether the ledger holds no investments
func (l Ledger) IsEmpty() bool {
	return len(l.Investments) == 0
}

// PortfolioSummary aggregates all investments. It is derived on every read and never stored.
type PortfolioSummary struct {
	TotalInvested   float64 `json:"total_invested"`
	CurrentValue    float64 `json:"current_value"`
	TotalReturn     float64 `json:"total_return"`
	TotalReturnPct  float64 `json:"total_return_pct"`
	TotalProperties int     `json:"total_properties"`
	TotalTokens     int64   `json:"total_tokens"`
}

// Goal is a user-configurable target.
// Target is the only persisted field; Current is recomputed from the ledger on every read.
type Goal struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Unit     string  `json:"unit"`
	Target   float64 `json:"target"`
	Current  float64 `json:"current"`
	Progress float64 `json:"progress"` // percent of target reached, capped at 100
	Custom   bool    `json:"custom"`   // true when Target came from the goal store
}

// Series is a chart-ready sequence. Labels and Data always have the same length.
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// Len returns the number of points in the series
func (s Series) Len() int {
	return len(s.Data)
}

// Last returns the final data point, or 0 for an empty series
func (s Series) Last() float64 {
	if len(s.Data) == 0 {
		return 0
	}
	return s.Data[len(s.Data)-1]
}
