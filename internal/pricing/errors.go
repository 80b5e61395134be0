package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrNegativeSubtotal = errors.New("subtotal must not be negative")

// InvalidRuleSetError means no active rule applies to the subtotal and there is no
// zero-threshold fallback. It is a configuration defect, not a checkout failure.
type InvalidRuleSetError struct {
	Subtotal       decimal.Decimal
	LowestMinValue decimal.Decimal
}

func (e *InvalidRuleSetError) Error() string {
	return fmt.Sprintf("no shipping rule applies to subtotal %s (lowest threshold %s, no zero-threshold fallback)",
		e.Subtotal.StringFixed(2), e.LowestMinValue.StringFixed(2))
}

// InvalidLineItemError reports the first line item that cannot be priced.
type InvalidLineItemError struct {
	Index  int
	Reason string
}

func (e *InvalidLineItemError) Error() string {
	return fmt.Sprintf("invalid line item %d: %s", e.Index, e.Reason)
}

// RuleSetValidationError lists every problem found in a shipping rule batch.
type RuleSetValidationError struct {
	Problems []string
}

func (e *RuleSetValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid shipping rules: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid shipping rules: %s (and %d more)", e.Problems[0], len(e.Problems)-1)
}
