package ledger

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/internal/events"
	testingpkg "github.com/domufi/analytics/internal/testing"
)

func newTestService(t *testing.T) (*Service, *[]*events.Event) {
	t.Helper()
	bus := events.NewBus(zerolog.Nop())
	var received []*events.Event
	for _, et := range events.LedgerEvents {
		bus.Subscribe(et, func(e *events.Event) { received = append(received, e) })
	}
	svc := NewService(newTestRepository(t), events.NewManager(bus, zerolog.Nop()), zerolog.Nop())
	return svc, &received
}

func TestService_EmitsOnWrites(t *testing.T) {
	svc, received := newTestService(t)
	ctx := context.Background()

	inv := testingpkg.NewInvestmentFixtures()[0]
	require.NoError(t, svc.AddInvestment(ctx, &inv))
	div := domain.Transaction{PropertyID: inv.PropertyID, Type: domain.TransactionDividend, Amount: 4, Date: testingpkg.FixtureNow}
	require.NoError(t, svc.RecordTransaction(ctx, &div))
	require.NoError(t, svc.UpdateValuation(ctx, inv.ID, 1234))

	require.Len(t, *received, 3)
	assert.Equal(t, events.InvestmentAdded, (*received)[0].Type)
	assert.Equal(t, events.TransactionRecorded, (*received)[1].Type)
	assert.Equal(t, events.ValuationUpdated, (*received)[2].Type)
	assert.Equal(t, &events.ValuationUpdatedData{InvestmentID: inv.ID, CurrentValue: 1234}, events.DecodeData((*received)[2]))

	version, err := svc.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)
}

func TestService_NoEventOnFailure(t *testing.T) {
	svc, received := newTestService(t)

	err := svc.UpdateValuation(context.Background(), "missing", 10)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, *received)
}

func TestService_Import(t *testing.T) {
	svc, received := newTestService(t)
	ctx := context.Background()

	investments, transactions, err := svc.Import(ctx, testingpkg.NewLedgerFixture())
	require.NoError(t, err)
	assert.Equal(t, 3, investments)
	assert.Equal(t, 6, transactions)

	require.Len(t, *received, 1)
	assert.Equal(t, events.LedgerImported, (*received)[0].Type)

	ledger, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, ledger.Investments, 3)
}

func TestService_WithoutEventManager(t *testing.T) {
	svc := NewService(newTestRepository(t), nil, zerolog.Nop())
	inv := testingpkg.NewInvestmentFixtures()[2]

	assert.NoError(t, svc.AddInvestment(context.Background(), &inv))
}
