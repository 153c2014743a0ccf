package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domufi/analytics/internal/modules/snapshots"
)

type mockSnapshotService struct {
	list      []snapshots.Snapshot
	err       error
	lastLimit int
	taken     int
}

func (m *mockSnapshotService) Take(ctx context.Context) (*snapshots.Snapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.taken++
	return &snapshots.Snapshot{Date: "2026-10-16", CurrentValue: 4570}, nil
}

func (m *mockSnapshotService) List(ctx context.Context, limit int) ([]snapshots.Snapshot, error) {
	m.lastLimit = limit
	return m.list, m.err
}

func setupRouter(svc SnapshotService) *chi.Mux {
	router := chi.NewRouter()
	NewHandler(svc, zerolog.Nop()).RegisterRoutes(router)
	return router
}

func TestRegisterRoutes(t *testing.T) {
	router := chi.NewRouter()

	assert.NotPanics(t, func() {
		NewHandler(&mockSnapshotService{}, zerolog.Nop()).RegisterRoutes(router)
	}, "RegisterRoutes should not panic")
}

func TestHandleList_Limit(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		status    int
		wantLimit int
	}{
		{"default", "", http.StatusOK, snapshots.DefaultListLimit},
		{"explicit", "?limit=7", http.StatusOK, 7},
		{"capped", "?limit=5000", http.StatusOK, maxListLimit},
		{"zero", "?limit=0", http.StatusBadRequest, 0},
		{"not a number", "?limit=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockSnapshotService{list: []snapshots.Snapshot{{Date: "2026-10-15"}}}
			w := httptest.NewRecorder()
			setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/snapshots"+tt.query, nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.wantLimit, svc.lastLimit)
		})
	}
}

func TestHandleList_Response(t *testing.T) {
	svc := &mockSnapshotService{list: []snapshots.Snapshot{{Date: "2026-10-16"}, {Date: "2026-10-15"}}}
	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/snapshots", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data     []snapshots.Snapshot `json:"data"`
		Metadata struct {
			Count int `json:"count"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Metadata.Count)
}

func TestHandleTake(t *testing.T) {
	svc := &mockSnapshotService{}
	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/snapshots", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, svc.taken)

	svc.err = errors.New("history.db locked")
	w = httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/snapshots", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
