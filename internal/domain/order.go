package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OrderFilter struct {
	Status string
	UserID string
	Limit  int
	Offset int
}

type Order struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	CustomerName string          `json:"customerName"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Status       string          `json:"status"`
	Items        []OrderItem     `json:"items"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type OrderItem struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"orderId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"` // Price at time of purchase
}

type OrderRepository interface {
	List(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// Revenue sums total_price over orders that are not cancelled.
	Revenue(ctx context.Context) (decimal.Decimal, error)
}
