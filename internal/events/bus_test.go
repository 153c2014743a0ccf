package events

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_SubscribeAndEmit(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var received []*Event
	bus.Subscribe(InvestmentAdded, func(e *Event) { received = append(received, e) })
	bus.Subscribe(ValuationUpdated, func(e *Event) { t.Fatal("wrong subscriber called") })

	bus.Emit(InvestmentAdded, "ledger", map[string]interface{}{"investment_id": "inv-1"})

	require.Len(t, received, 1)
	assert.Equal(t, InvestmentAdded, received[0].Type)
	assert.Equal(t, "ledger", received[0].Module)
	assert.Equal(t, "inv-1", received[0].Data["investment_id"])
	assert.False(t, received[0].Timestamp.IsZero())
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	calls := 0
	id := bus.Subscribe(SnapshotTaken, func(*Event) { calls++ })
	other := bus.Subscribe(SnapshotTaken, func(*Event) {})
	assert.Equal(t, 2, bus.SubscriberCount(SnapshotTaken))

	bus.Unsubscribe(id)
	bus.Unsubscribe(id)
	bus.Emit(SnapshotTaken, "snapshots", nil)

	assert.Zero(t, calls)
	assert.Equal(t, 1, bus.SubscriberCount(SnapshotTaken))
	bus.Unsubscribe(other)
	assert.Zero(t, bus.SubscriberCount(SnapshotTaken))
}

func TestBus_PanickingHandlerIsIsolated(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	delivered := false
	bus.Subscribe(ErrorOccurred, func(*Event) { panic("boom") })
	bus.Subscribe(ErrorOccurred, func(*Event) { delivered = true })

	assert.NotPanics(t, func() { bus.Emit(ErrorOccurred, "test", nil) })
	assert.True(t, delivered)
}

func TestBus_ConcurrentUse(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var mu sync.Mutex
	count := 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := bus.Subscribe(LedgerImported, func(*Event) {
				mu.Lock()
				count++
				mu.Unlock()
			})
			bus.Emit(LedgerImported, "test", nil)
			bus.Unsubscribe(id)
		}()
	}
	wg.Wait()

	assert.Zero(t, bus.SubscriberCount(LedgerImported))
	assert.GreaterOrEqual(t, count, 20)
}

func TestManager_EmitTypedLogsAndPublishes(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	bus := NewBus(log)
	manager := NewManager(bus, log)

	var got EventData
	bus.Subscribe(GoalTargetChanged, func(e *Event) { got = DecodeData(e) })

	manager.EmitTyped("goals", &GoalTargetChangedData{GoalID: "monthly-income", Target: 2500})

	assert.Equal(t, &GoalTargetChangedData{GoalID: "monthly-income", Target: 2500}, got)
	assert.Contains(t, buf.String(), `"event_type":"GOAL_TARGET_CHANGED"`)
	assert.Contains(t, buf.String(), `"module":"goals"`)
	assert.Same(t, bus, manager.Bus())
}

func TestManager_EmitError(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	manager := NewManager(bus, zerolog.Nop())

	var got EventData
	bus.Subscribe(ErrorOccurred, func(e *Event) { got = DecodeData(e) })

	manager.EmitError("backup", errors.New("bucket missing"), map[string]interface{}{"bucket": "b"})

	require.IsType(t, &ErrorEventData{}, got)
	assert.Equal(t, "bucket missing", got.(*ErrorEventData).Error)
	assert.Equal(t, "b", got.(*ErrorEventData).Context["bucket"])
}

func TestDecodeData(t *testing.T) {
	tests := []struct {
		name     string
		event    *Event
		expected EventData
	}{
		{
			name:     "nil event",
			expected: nil,
		},
		{
			name: "investment added",
			event: &Event{Type: InvestmentAdded, Data: map[string]interface{}{
				"investment_id": "inv-1", "property_id": "p", "total_invested": 1000.0,
			}},
			expected: &InvestmentAddedData{InvestmentID: "inv-1", PropertyID: "p", TotalInvested: 1000},
		},
		{
			name:     "snapshot",
			event:    &Event{Type: SnapshotTaken, Data: map[string]interface{}{"date": "2026-10-16", "health_score": 72}},
			expected: &SnapshotTakenData{Date: "2026-10-16", HealthScore: 72},
		},
		{
			name:     "unknown type",
			event:    &Event{Type: "SOMETHING_ELSE", Data: map[string]interface{}{"x": 1}},
			expected: nil,
		},
		{
			name:     "malformed payload",
			event:    &Event{Type: ValuationUpdated, Data: map[string]interface{}{"current_value": "lots"}},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeData(tt.event)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}
