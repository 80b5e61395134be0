package utils

import (
	"strconv"
	"strings"
)

// ParseInt parses a string to int with a fallback default value
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultVal
	}
	return val
}

// ParsePage reads page and limit query values. Page is 1-based; limit is clamped to [1, maxLimit].
func ParsePage(pageStr, limitStr string, defaultLimit, maxLimit int) (page, limit, offset int) {
	page = ParseInt(pageStr, 1)
	if page < 1 {
		page = 1
	}
	limit = ParseInt(limitStr, defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, (page - 1) * limit
}
