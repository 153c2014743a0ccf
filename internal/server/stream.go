package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/domufi/analytics/internal/events"
	"github.com/domufi/analytics/internal/modules/analytics"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamPingInterval = 30 * time.Second
)

// DashboardSource computes the dashboard pushed to stream clients
type DashboardSource interface {
	Dashboard(ctx context.Context, r analytics.Range) (analytics.Dashboard, error)
}

// StreamMessage is one frame sent to stream clients
type StreamMessage struct {
	Type      string               `json:"type"` // "dashboard" or "error"
	Trigger   string               `json:"trigger,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
	Data      *analytics.Dashboard `json:"data,omitempty"`
	Error     string               `json:"error,omitempty"`
}

// DashboardStream pushes a fresh dashboard over a websocket after every ledger change
type DashboardStream struct {
	bus    *events.Bus
	source DashboardSource
	log    zerolog.Logger
}

// NewDashboardStream creates a new dashboard stream handler
func NewDashboardStream(bus *events.Bus, source DashboardSource, log zerolog.Logger) *DashboardStream {
	return &DashboardStream{
		bus:    bus,
		source: source,
		log:    log.With().Str("component", "dashboard_stream").Logger(),
	}
}

// ServeHTTP handles GET /api/stream?range=
func (h *DashboardStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rng, err := analytics.ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	// The stream is write-only; CloseRead handles control frames and
	// cancels ctx when the client goes away.
	ctx := conn.CloseRead(r.Context())

	changes := make(chan events.EventType, 16)
	handler := func(e *events.Event) {
		select {
		case changes <- e.Type:
		default:
			// A refresh is already pending; it will include this change.
		}
	}

	ids := make([]events.SubscriptionID, 0, len(events.LedgerEvents))
	for _, eventType := range events.LedgerEvents {
		ids = append(ids, h.bus.Subscribe(eventType, handler))
	}
	defer func() {
		for _, id := range ids {
			h.bus.Unsubscribe(id)
		}
	}()

	h.log.Info().Str("range", string(rng)).Msg("Client connected to dashboard stream")

	if err := h.push(ctx, conn, rng, "connected"); err != nil {
		return
	}

	ping := time.NewTicker(streamPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("Client disconnected from dashboard stream")
			return

		case trigger := <-changes:
			if err := h.push(ctx, conn, rng, string(trigger)); err != nil {
				return
			}

		case <-ping.C:
			pingCtx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				h.log.Debug().Err(err).Msg("Stream ping failed")
				return
			}
		}
	}
}

// push computes the dashboard and writes it to conn. Only write failures are returned.
func (h *DashboardStream) push(ctx context.Context, conn *websocket.Conn, rng analytics.Range, trigger string) error {
	msg := StreamMessage{Type: "dashboard", Trigger: trigger, Timestamp: time.Now()}

	dash, err := h.source.Dashboard(ctx, rng)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute dashboard for stream")
		msg.Type = "error"
		msg.Error = "failed to compute dashboard"
	} else {
		msg.Data = &dash
	}

	writeCtx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	if err := wsjson.Write(writeCtx, conn, msg); err != nil {
		h.log.Debug().Err(err).Msg("Stream write failed")
		return err
	}
	return nil
}
