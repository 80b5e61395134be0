package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ShippingRule charges Charge on orders whose subtotal is at least MinOrderValue.
// The active rule with MinOrderValue = 0 is the standard fallback.
type ShippingRule struct {
	ID            string          `json:"id"`
	MinOrderValue decimal.Decimal `json:"minOrderValue"`
	Charge        decimal.Decimal `json:"charge"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type ShippingRuleRepository interface {
	GetAll(ctx context.Context) ([]ShippingRule, error)
	GetActive(ctx context.Context) ([]ShippingRule, error)
	Create(ctx context.Context, rule *ShippingRule) error
	Update(ctx context.Context, rule *ShippingRule) error
}
