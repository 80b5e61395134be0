// Package pricing resolves shipping charges and order totals. Every function is pure:
// callers fetch rules from the Data Store and pass them in.
package pricing

import (
	"fmt"
	"sort"

	"zeecrown-admin/internal/domain"

	"github.com/shopspring/decimal"
)

// Resolution is the outcome of selecting a shipping rule for a subtotal.
type Resolution struct {
	Charge decimal.Decimal
	// Rule is the selected rule; nil when FailOpen is set.
	Rule *domain.ShippingRule
	// FailOpen is set when no rule is configured at all and the charge defaulted to zero.
	FailOpen bool
}

// ResolveCharge returns the shipping charge for subtotal under rules.
func ResolveCharge(subtotal decimal.Decimal, rules []domain.ShippingRule) (decimal.Decimal, error) {
	res, err := Resolve(subtotal, rules)
	if err != nil {
		return decimal.Zero, err
	}
	return res.Charge, nil
}

// Resolve selects the active rule with the highest MinOrderValue not above subtotal.
// Inactive rules are never selected. With no active rules the charge is zero and
// FailOpen is reported so the caller can log the missing configuration.
func Resolve(subtotal decimal.Decimal, rules []domain.ShippingRule) (Resolution, error) {
	if subtotal.IsNegative() {
		return Resolution{}, ErrNegativeSubtotal
	}

	active := activeSorted(rules)
	if len(active) == 0 {
		return Resolution{Charge: decimal.Zero, FailOpen: true}, nil
	}

	var selected *domain.ShippingRule
	for i := range active {
		if active[i].MinOrderValue.GreaterThan(subtotal) {
			break
		}
		selected = &active[i]
	}

	if selected == nil {
		return Resolution{}, &InvalidRuleSetError{
			Subtotal:       subtotal,
			LowestMinValue: active[0].MinOrderValue,
		}
	}

	return Resolution{Charge: selected.Charge, Rule: selected}, nil
}

// activeSorted copies the active rules and stable-sorts them by threshold, so that on
// equal thresholds the rule appearing later in the input is walked last and wins.
func activeSorted(rules []domain.ShippingRule) []domain.ShippingRule {
	active := make([]domain.ShippingRule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].MinOrderValue.LessThan(active[j].MinOrderValue)
	})
	return active
}

// ValidateRuleSet checks a full shipping rule batch before it is written.
func ValidateRuleSet(rules []domain.ShippingRule) error {
	var problems []string
	seen := make(map[string]int)
	hasActive, hasFallback := false, false

	for i, r := range rules {
		n := i + 1
		if r.MinOrderValue.IsNegative() {
			problems = append(problems, fmt.Sprintf("rule %d: minimum order value must not be negative", n))
		}
		if r.Charge.IsNegative() {
			problems = append(problems, fmt.Sprintf("rule %d: charge must not be negative", n))
		}
		if !r.IsActive {
			continue
		}
		hasActive = true
		if r.MinOrderValue.IsZero() {
			hasFallback = true
		}
		key := r.MinOrderValue.String()
		if prev, dup := seen[key]; dup {
			problems = append(problems, fmt.Sprintf("rule %d: threshold %s already used by rule %d", n, r.MinOrderValue.StringFixed(2), prev))
		} else {
			seen[key] = n
		}
	}

	if hasActive && !hasFallback {
		problems = append(problems, "an active rule with minimum order value 0 is required")
	}

	if len(problems) > 0 {
		return &RuleSetValidationError{Problems: problems}
	}
	return nil
}
