package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiry(t *testing.T) {
	now := time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC)
	c := NewTTLCache()
	c.now = func() time.Time { return now }

	c.Set("rates", []byte("x"), time.Hour)

	v, ok := c.Get("rates")
	require.True(t, ok)
	require.Equal(t, []byte("x"), v)

	now = now.Add(59 * time.Minute)
	_, ok = c.Get("rates")
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("rates")
	require.False(t, ok)
}

func TestTTLCacheSweep(t *testing.T) {
	now := time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC)
	c := NewTTLCache()
	c.now = func() time.Time { return now }

	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Hour)

	now = now.Add(5 * time.Minute)
	require.Equal(t, 1, c.Sweep())

	_, ok := c.Get("b")
	require.True(t, ok)
}
