package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTTL bounds how long a result is reused. Engine output depends on the
// wall clock, so entries must expire even when the ledger is unchanged.
const DefaultTTL = time.Minute

// Stats reports memo usage
type Stats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Memo is an in-memory TTL cache of computed results
type Memo struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	hits    uint64
	misses  uint64
	log     zerolog.Logger
}

// NewMemo creates a memo whose entries live for ttl. A non-positive ttl uses DefaultTTL.
func NewMemo(ttl time.Duration, log zerolog.Logger) *Memo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memo{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
		log:     log.With().Str("component", "memo_cache").Logger(),
	}
}

// Key joins parts into a cache key
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// GetOrCompute returns the cached value for key, calling compute on a miss.
// Errors from compute are returned and not cached. The lock is not held while
// computing, so concurrent misses for one key may compute twice.
func (m *Memo) GetOrCompute(key string, compute func() (interface{}, error)) (interface{}, error) {
	m.mu.Lock()
	if e, ok := m.entries[key]; ok && m.now().Before(e.expiresAt) {
		m.hits++
		m.mu.Unlock()
		return e.value, nil
	}
	m.misses++
	m.mu.Unlock()

	value, err := compute()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.purgeExpired(now)
	m.entries[key] = entry{value: value, expiresAt: now.Add(m.ttl)}
	return value, nil
}

// Invalidate drops every entry
func (m *Memo) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.entries)
	m.entries = make(map[string]entry)
	if n > 0 {
		m.log.Debug().Int("entries", n).Msg("Memo invalidated")
	}
}

// Stats returns a copy of the usage counters
func (m *Memo) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{Entries: len(m.entries), Hits: m.hits, Misses: m.misses}
}

func (m *Memo) purgeExpired(now time.Time) {
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
		}
	}
}
