package main

import (
	"errors"
	"fmt"
	"os"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/internal/pricing"
	"zeecrown-admin/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// quoteFile is the YAML input of `zeectl quote`. Amounts are strings so they
// stay exact.
//
//	rules:
//	  - minOrderValue: "0"
//	    charge: "40"
//	    isActive: true
//	items:
//	  - quantity: 2
//	    unitPrice: "150.00"
type quoteFile struct {
	Rules []struct {
		ID            string `yaml:"id"`
		MinOrderValue string `yaml:"minOrderValue"`
		Charge        string `yaml:"charge"`
		IsActive      *bool  `yaml:"isActive"`
	} `yaml:"rules"`
	Items []struct {
		Quantity  int    `yaml:"quantity"`
		UnitPrice string `yaml:"unitPrice"`
	} `yaml:"items"`
}

type quoteOutput struct {
	Subtotal         string   `yaml:"subtotal"`
	ShippingCharge   string   `yaml:"shippingCharge"`
	Total            string   `yaml:"total"`
	ShippingFailOpen bool     `yaml:"shippingFailOpen,omitempty"`
	RuleProblems     []string `yaml:"ruleProblems,omitempty"`
}

func newQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote <file.yaml>",
		Short: "Price line items against a shipping rule set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd, args[0])
		},
	}
}

func runQuote(cmd *cobra.Command, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var in quoteFile
	if err := yaml.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	rules, items, err := in.convert()
	if err != nil {
		return err
	}

	out := quoteOutput{}
	if err := pricing.ValidateRuleSet(rules); err != nil {
		var rsErr *pricing.RuleSetValidationError
		if errors.As(err, &rsErr) {
			out.RuleProblems = rsErr.Problems
		}
		logger.Get().Warn().Err(err).Msg("Rule set would be rejected by the admin API")
	}

	totals, err := pricing.ComputeTotal(items, rules)
	if err != nil {
		return err
	}
	out.Subtotal = totals.Subtotal.StringFixed(pricing.MinorUnits)
	out.ShippingCharge = totals.ShippingCharge.StringFixed(pricing.MinorUnits)
	out.Total = totals.Total.StringFixed(pricing.MinorUnits)
	out.ShippingFailOpen = totals.ShippingFailOpen

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

func (f quoteFile) convert() ([]domain.ShippingRule, []pricing.LineItem, error) {
	rules := make([]domain.ShippingRule, 0, len(f.Rules))
	for i, r := range f.Rules {
		minValue, err := decimal.NewFromString(r.MinOrderValue)
		if err != nil {
			return nil, nil, fmt.Errorf("rule %d: minOrderValue: %w", i+1, err)
		}
		charge, err := decimal.NewFromString(r.Charge)
		if err != nil {
			return nil, nil, fmt.Errorf("rule %d: charge: %w", i+1, err)
		}
		active := r.IsActive == nil || *r.IsActive
		rules = append(rules, domain.ShippingRule{ID: r.ID, MinOrderValue: minValue, Charge: charge, IsActive: active})
	}

	items := make([]pricing.LineItem, 0, len(f.Items))
	for i, it := range f.Items {
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil {
			return nil, nil, fmt.Errorf("item %d: unitPrice: %w", i+1, err)
		}
		items = append(items, pricing.LineItem{Quantity: it.Quantity, UnitPrice: price})
	}
	return rules, items, nil
}
