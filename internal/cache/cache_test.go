package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

func TestTTLCache_GetSet(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Unix(1000, 0)}
	c := New(time.Minute, clk)

	_, ok := c.Get("k")
	require.False(t, ok)

	c.Set("k", 42)
	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 42, v)
}

func TestTTLCache_Expiry(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Unix(1000, 0)}
	c := New(time.Minute, clk)

	c.Set("k", "v")

	clk.advance(59 * time.Second)
	_, ok := c.Get("k")
	require.True(t, ok)

	clk.advance(time.Second)
	_, ok = c.Get("k")
	require.False(t, ok)
	require.Zero(t, c.Len(), "expired entry should be evicted on read")
}

func TestTTLCache_Invalidate(t *testing.T) {
	t.Parallel()

	c := New(time.Minute, &fakeClock{now: time.Unix(1000, 0)})
	c.Set("k", "v")
	c.Invalidate("k")

	_, ok := c.Get("k")
	require.False(t, ok)
}

func TestTTLCache_Defaults(t *testing.T) {
	t.Parallel()

	c := New(0, nil)
	require.Equal(t, defaultTTL, c.ttl)
	require.NotNil(t, c.clock)
}

func TestKey_IncludesTableArgsAndUser(t *testing.T) {
	t.Parallel()

	k1 := Key("orders", []any{"id", 7}, "u1")
	k2 := Key("orders", []any{"id", 7}, "u2")
	k3 := Key("orders", []any{"id", 8}, "u1")
	require.NotEqual(t, k1, k2)
	require.NotEqual(t, k1, k3)

	require.Equal(t, Key("orders", nil, "anonymous"), Key("orders", nil, ""))
}
