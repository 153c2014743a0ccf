package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testingpkg "github.com/domufi/analytics/internal/testing"
)

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(testingpkg.NewLedgerFixture())
	require.NoError(t, err)
	b, err := Fingerprint(testingpkg.NewLedgerFixture())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	changed := testingpkg.NewLedgerFixture()
	changed.Investments[0].CurrentValue = 1200
	c, err := Fingerprint(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestMemo_GetOrCompute(t *testing.T) {
	memo := NewMemo(time.Minute, zerolog.Nop())
	now := testingpkg.FixtureNow
	memo.now = func() time.Time { return now }

	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	v, err := memo.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = memo.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "second call is served from the memo")

	now = now.Add(time.Minute)
	v, err = memo.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "expired entries are recomputed")

	stats := memo.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestMemo_ErrorsAreNotCached(t *testing.T) {
	memo := NewMemo(0, zerolog.Nop())
	assert.Equal(t, DefaultTTL, memo.ttl)

	_, err := memo.GetOrCompute("k", func() (interface{}, error) { return nil, errors.New("boom") })
	assert.Error(t, err)
	assert.Equal(t, 0, memo.Stats().Entries)

	v, err := memo.GetOrCompute("k", func() (interface{}, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestMemo_Invalidate(t *testing.T) {
	memo := NewMemo(time.Hour, zerolog.Nop())
	for _, k := range []string{Key("a", "1M"), Key("b", "3M")} {
		_, err := memo.GetOrCompute(k, func() (interface{}, error) { return k, nil })
		require.NoError(t, err)
	}
	assert.Equal(t, 2, memo.Stats().Entries)

	memo.Invalidate()
	assert.Equal(t, 0, memo.Stats().Entries)
	assert.Equal(t, "a:1M", Key("a", "1M"))
}
