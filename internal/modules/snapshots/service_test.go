package snapshots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domufi/analytics/internal/events"
	"github.com/domufi/analytics/internal/modules/analytics"
	testingpkg "github.com/domufi/analytics/internal/testing"
)

func newTestService(t *testing.T, provider *testingpkg.MockLedgerProvider) (*Service, *events.Bus) {
	t.Helper()
	opts := analytics.DefaultOptions()
	opts.Location = time.UTC
	engine := analytics.NewEngine(opts, zerolog.Nop()).WithClock(func() time.Time { return testingpkg.FixtureNow })
	source := analytics.NewService(provider, engine, nil, zerolog.Nop())

	bus := events.NewBus(zerolog.Nop())
	svc := NewService(newTestRepository(t), source, engine, events.NewManager(bus, zerolog.Nop()), zerolog.Nop())
	return svc, bus
}

func TestService_Take(t *testing.T) {
	provider := testingpkg.NewMockLedgerProvider(testingpkg.NewLedgerFixture())
	svc, bus := newTestService(t, provider)
	ctx := context.Background()

	var taken *events.Event
	bus.Subscribe(events.SnapshotTaken, func(e *events.Event) { taken = e })

	snap, err := svc.Take(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", snap.Date)
	assert.Equal(t, 4500.0, snap.TotalInvested)
	assert.Equal(t, 4570.0, snap.CurrentValue)
	assert.Equal(t, 3, snap.TotalProperties)
	require.NotNil(t, taken)
	assert.Equal(t, "snapshots", taken.Module)

	_, err = svc.Take(ctx)
	require.NoError(t, err)

	list, err := svc.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1, "one snapshot per day")
}

func TestService_TakeLedgerError(t *testing.T) {
	provider := testingpkg.NewMockLedgerProvider(testingpkg.NewLedgerFixture())
	provider.SetError(errors.New("ledger offline"))
	svc, _ := newTestService(t, provider)

	_, err := svc.Take(context.Background())
	assert.ErrorContains(t, err, "ledger offline")
}
