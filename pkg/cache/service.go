package cache

import "time"

// Keys shared by the admin usecases.
const (
	KeyDashboardStats      = "admin:dashboard:stats"
	KeyActiveShippingRules = "admin:shipping:active"
)

// CacheService is the in-process cache used for read-mostly admin data.
type CacheService interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(keys ...string)
	Flush()
}

// GetAs fetches key and asserts its type. A value of the wrong type counts as a miss.
func GetAs[T any](s CacheService, key string) (T, bool) {
	var zero T
	v, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
