package cache

import (
	"testing"
	"time"

	"zeecrown-admin/pkg/cache"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCacheTypedGet(t *testing.T) {
	s := NewMemoryCache(time.Minute, time.Minute)
	s.Set(cache.KeyDashboardStats, 42, time.Minute)

	n, ok := cache.GetAs[int](s, cache.KeyDashboardStats)
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = cache.GetAs[string](s, cache.KeyDashboardStats)
	assert.False(t, ok, "wrong type is a miss")
}

func TestMemoryCacheExpiryAndDelete(t *testing.T) {
	s := NewMemoryCache(time.Minute, time.Minute)
	s.Set("a", 1, 10*time.Millisecond)
	s.Set("b", 2, time.Minute)
	s.Set("c", 3, time.Minute)

	assert.Eventually(t, func() bool {
		_, ok := s.Get("a")
		return !ok
	}, time.Second, 5*time.Millisecond)

	s.Delete("b", "c")
	_, ok := s.Get("b")
	assert.False(t, ok)
	_, ok = s.Get("c")
	assert.False(t, ok)
}
