package pricing

import (
	"zeecrown-admin/internal/domain"

	"github.com/shopspring/decimal"
)

// MinorUnits is the currency precision used for totals.
const MinorUnits = 2

type LineItem struct {
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingCharge decimal.Decimal `json:"shippingCharge"`
	Total          decimal.Decimal `json:"total"`
	// ShippingFailOpen mirrors Resolution.FailOpen.
	ShippingFailOpen bool `json:"shippingFailOpen"`
}

// Subtotal sums quantity × unit price after validating every item.
func Subtotal(items []LineItem) (decimal.Decimal, error) {
	sum := decimal.Zero
	for i, item := range items {
		if item.Quantity <= 0 {
			return decimal.Zero, &InvalidLineItemError{Index: i, Reason: "quantity must be a positive integer"}
		}
		if item.UnitPrice.IsNegative() {
			return decimal.Zero, &InvalidLineItemError{Index: i, Reason: "unit price must not be negative"}
		}
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum, nil
}

// ComputeTotal prices items and adds the shipping charge resolved from rules.
// Thresholds are compared against the exact subtotal; the reported amounts are
// rounded half-up to MinorUnits.
func ComputeTotal(items []LineItem, rules []domain.ShippingRule) (Totals, error) {
	subtotal, err := Subtotal(items)
	if err != nil {
		return Totals{}, err
	}

	res, err := Resolve(subtotal, rules)
	if err != nil {
		return Totals{}, err
	}

	return Totals{
		Subtotal:         roundMoney(subtotal),
		ShippingCharge:   roundMoney(res.Charge),
		Total:            roundMoney(subtotal.Add(res.Charge)),
		ShippingFailOpen: res.FailOpen,
	}, nil
}

// roundMoney rounds half away from zero, which is half-up for the non-negative amounts priced here.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MinorUnits)
}
