package testing

import (
	"time"

	"github.com/domufi/analytics/internal/domain"
)

// FixtureNow is the reference clock used by fixtures
var FixtureNow = time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)

// NewInvestmentFixtures returns a small ledger spread over three regions
func NewInvestmentFixtures() []domain.Investment {
	return []domain.Investment{
		{
			ID:            "inv-austin",
			PropertyID:    "prop-austin",
			PropertyName:  "Riverside Lofts",
			Location:      "Austin, TX",
			TotalInvested: 1000,
			CurrentValue:  1100,
			AnnualROI:     12,
			PurchaseDate:  FixtureNow.AddDate(0, 0, -300),
			Tokens:        20,
		},
		{
			ID:            "inv-miami",
			PropertyID:    "prop-miami",
			PropertyName:  "Bayfront Suites",
			Location:      "Miami, FL",
			TotalInvested: 3000,
			CurrentValue:  2950,
			AnnualROI:     8,
			PurchaseDate:  FixtureNow.AddDate(0, 0, -120),
			Tokens:        60,
		},
		{
			ID:            "inv-lisbon",
			PropertyID:    "prop-lisbon",
			PropertyName:  "Alfama House",
			Location:      "Lisbon",
			TotalInvested: 500,
			CurrentValue:  520,
			PurchaseDate:  FixtureNow.AddDate(0, 0, -45),
			Tokens:        10,
		},
	}
}

// NewTransactionFixtures returns purchases for every fixture investment plus two dividends
func NewTransactionFixtures() []domain.Transaction {
	txs := make([]domain.Transaction, 0)
	for _, inv := range NewInvestmentFixtures() {
		txs = append(txs, domain.Transaction{
			ID:         "tx-buy-" + inv.ID,
			PropertyID: inv.PropertyID,
			Type:       domain.TransactionPurchase,
			Amount:     inv.TotalInvested,
			Date:       inv.PurchaseDate,
		})
	}

	return append(txs,
		domain.Transaction{
			ID:         "tx-div-1",
			PropertyID: "prop-austin",
			Type:       domain.TransactionDividend,
			Amount:     10,
			Date:       FixtureNow.AddDate(0, 0, -5),
		},
		domain.Transaction{
			ID:         "tx-div-2",
			PropertyID: "prop-miami",
			Type:       domain.TransactionDividend,
			Amount:     20,
			Date:       FixtureNow.AddDate(0, 0, -5),
		},
		domain.Transaction{
			ID:     "tx-deposit",
			Type:   domain.TransactionDeposit,
			Amount: 5000,
			Date:   FixtureNow.AddDate(-1, 0, 0),
		},
	)
}

// NewLedgerFixture combines the investment and transaction fixtures
func NewLedgerFixture() domain.Ledger {
	return domain.Ledger{
		Investments:  NewInvestmentFixtures(),
		Transactions: NewTransactionFixtures(),
	}
}
