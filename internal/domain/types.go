package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// TransactionManager runs fn inside a single Data Store transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ObjectStore is the blob storage collaborator (S3-compatible bucket service).
type ObjectStore interface {
	// Upload stores data under key and returns the stored path. Without upsert an existing key is an error.
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string, upsert bool) (string, error)
	PublicURL(bucket, path string) string
	Remove(ctx context.Context, bucket string, paths []string) error
	// PathFromURL recovers the object path from a public URL previously returned by PublicURL.
	PathFromURL(bucket, url string) (string, bool)
}

// Pagination
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Page: page, Limit: limit, TotalItems: total, TotalPages: pages}
}
