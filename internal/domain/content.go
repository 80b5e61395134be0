package domain

import (
	"context"
	"time"
)

// Banner is a promotional image shown on the storefront, ordered by SortOrder.
type Banner struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	SortOrder int       `json:"sortOrder"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type BannerRepository interface {
	List(ctx context.Context) ([]Banner, error)
	GetByID(ctx context.Context, id string) (*Banner, error)
	Create(ctx context.Context, banner *Banner) error
	Update(ctx context.Context, banner *Banner) error
	Delete(ctx context.Context, id string) error
}
