package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domufi/analytics/internal/database"
	"github.com/domufi/analytics/internal/domain"
	testingpkg "github.com/domufi/analytics/internal/testing"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db := testingpkg.NewTestDB(t, database.NameLedger)
	return NewRepository(db.Conn(), zerolog.Nop())
}

func TestRepository_EmptySnapshot(t *testing.T) {
	repo := newTestRepository(t)

	ledger, err := repo.Snapshot(context.Background())
	require.NoError(t, err)

	assert.True(t, ledger.IsEmpty())
	assert.NotNil(t, ledger.Investments)
	assert.NotNil(t, ledger.Transactions)
}

func TestRepository_CreateInvestment(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	inv := testingpkg.NewInvestmentFixtures()[0]
	inv.ID = ""
	require.NoError(t, repo.CreateInvestment(ctx, &inv))
	assert.NotEmpty(t, inv.ID, "id is generated")

	got, err := repo.GetInvestment(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, inv.PropertyName, got.PropertyName)
	assert.Equal(t, inv.Location, got.Location)
	assert.Equal(t, inv.TotalInvested, got.TotalInvested)
	assert.Equal(t, inv.AnnualROI, got.AnnualROI)
	assert.Equal(t, inv.Tokens, got.Tokens)
	assert.True(t, inv.PurchaseDate.Equal(got.PurchaseDate))

	ledger, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, ledger.Transactions, 1)
	assert.Equal(t, domain.TransactionPurchase, ledger.Transactions[0].Type)
	assert.Equal(t, inv.TotalInvested, ledger.Transactions[0].Amount)
	assert.Equal(t, inv.PropertyID, ledger.Transactions[0].PropertyID)
}

func TestRepository_SnapshotIsConsistentUnderWrites(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	const writes = 25
	writeErr := make(chan error, 1)
	go func() {
		defer close(writeErr)
		for i := 0; i < writes; i++ {
			inv := testingpkg.NewInvestmentFixtures()[0]
			inv.ID = fmt.Sprintf("inv-%d", i)
			inv.PropertyID = fmt.Sprintf("prop-%d", i)
			if err := repo.CreateInvestment(ctx, &inv); err != nil {
				writeErr <- err
				return
			}
		}
	}()

	for done := false; !done; {
		select {
		case err := <-writeErr:
			require.NoError(t, err)
			done = true
		default:
		}

		ledger, err := repo.Snapshot(ctx)
		require.NoError(t, err)
		// Every investment is written together with its purchase transaction
		assert.Len(t, ledger.Transactions, len(ledger.Investments))
	}

	ledger, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, ledger.Investments, writes)
	assert.Len(t, ledger.Transactions, writes)
}

func TestRepository_CreateInvestmentRejectsInvalid(t *testing.T) {
	repo := newTestRepository(t)

	inv := testingpkg.NewInvestmentFixtures()[0]
	inv.TotalInvested = 0

	err := repo.CreateInvestment(context.Background(), &inv)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	version, err := repo.Version(context.Background())
	require.NoError(t, err)
	assert.Zero(t, version)
}

func TestRepository_DuplicateInvestmentIsRolledBack(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	inv := testingpkg.NewInvestmentFixtures()[0]
	require.NoError(t, repo.CreateInvestment(ctx, &inv))
	dup := inv
	assert.Error(t, repo.CreateInvestment(ctx, &dup))

	ledger, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, ledger.Investments, 1)
	assert.Len(t, ledger.Transactions, 1, "purchase of the failed insert is rolled back")
}

func TestRepository_CreateTransaction(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	deposit := domain.Transaction{Type: domain.TransactionDeposit, Amount: 500, Date: testingpkg.FixtureNow}
	dividend := domain.Transaction{
		ID:         "div-1",
		PropertyID: "prop-austin",
		Type:       domain.TransactionDividend,
		Amount:     12.5,
		Date:       testingpkg.FixtureNow.Add(time.Hour),
	}
	require.NoError(t, repo.CreateTransaction(ctx, &deposit))
	require.NoError(t, repo.CreateTransaction(ctx, &dividend))

	transactions, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, deposit.ID, transactions[0].ID)
	assert.Empty(t, transactions[0].PropertyID, "account-level events have no property")
	assert.Equal(t, "div-1", transactions[1].ID)
	assert.Equal(t, "prop-austin", transactions[1].PropertyID)
	assert.True(t, dividend.Date.Equal(transactions[1].Date))

	version, err := repo.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestRepository_UpdateCurrentValue(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	inv := testingpkg.NewInvestmentFixtures()[1]
	require.NoError(t, repo.CreateInvestment(ctx, &inv))

	require.NoError(t, repo.UpdateCurrentValue(ctx, inv.ID, 3333.33))
	got, err := repo.GetInvestment(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 3333.33, got.CurrentValue)

	err = repo.UpdateCurrentValue(ctx, "missing", 10)
	assert.True(t, errors.Is(err, ErrNotFound))

	err = repo.UpdateCurrentValue(ctx, inv.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRepository_GetInvestmentNotFound(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.GetInvestment(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_Import(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	fixture := testingpkg.NewLedgerFixture()

	investments, transactions, err := repo.Import(ctx, fixture)
	require.NoError(t, err)
	assert.Equal(t, len(fixture.Investments), investments)
	assert.Equal(t, len(fixture.Transactions), transactions)

	investments, transactions, err = repo.Import(ctx, fixture)
	require.NoError(t, err)
	assert.Zero(t, investments, "existing ids are skipped")
	assert.Zero(t, transactions)

	ledger, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, ledger.Investments, len(fixture.Investments))
	assert.Len(t, ledger.Transactions, len(fixture.Transactions))
	assert.Equal(t, "inv-austin", ledger.Investments[0].ID, "ordered by purchase date")
}

func TestRepository_ImportValidatesEverything(t *testing.T) {
	repo := newTestRepository(t)
	fixture := testingpkg.NewLedgerFixture()
	fixture.Transactions[0].Type = "gift"

	_, _, err := repo.Import(context.Background(), fixture)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	ledger, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, ledger.IsEmpty())
}
