package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	MRP         *decimal.Decimal `json:"mrp"`
	Category    string           `json:"category"`
	ImageURL    string           `json:"imageUrl"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type ProductFilter struct {
	Query    string
	Category string
	Limit    int
	Offset   int
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
