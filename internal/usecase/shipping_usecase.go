package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/internal/pricing"
	"zeecrown-admin/pkg/cache"
	"zeecrown-admin/pkg/logger"

	"github.com/shopspring/decimal"
)

// RuleUpdate is one entry of a shipping rule batch. An empty ID inserts a new rule.
type RuleUpdate struct {
	ID            string          `json:"id"`
	MinOrderValue decimal.Decimal `json:"minOrderValue"`
	Charge        decimal.Decimal `json:"charge"`
	IsActive      bool            `json:"isActive"`
}

type ShippingUsecase struct {
	repo     domain.ShippingRuleRepository
	tx       domain.TransactionManager
	cache    cache.CacheService
	cacheTTL time.Duration
}

func NewShippingUsecase(repo domain.ShippingRuleRepository, tx domain.TransactionManager, cache cache.CacheService, cacheTTL time.Duration) *ShippingUsecase {
	return &ShippingUsecase{repo: repo, tx: tx, cache: cache, cacheTTL: cacheTTL}
}

func (uc *ShippingUsecase) ListRules(ctx context.Context) ([]domain.ShippingRule, error) {
	return uc.repo.GetAll(ctx)
}

// ActiveRules returns the active rules, served from cache when possible.
func (uc *ShippingUsecase) ActiveRules(ctx context.Context) ([]domain.ShippingRule, error) {
	if rules, ok := cache.GetAs[[]domain.ShippingRule](uc.cache, cache.KeyActiveShippingRules); ok {
		return rules, nil
	}
	rules, err := uc.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(cache.KeyActiveShippingRules, rules, uc.cacheTTL)
	return rules, nil
}

// UpdateRules applies a batch atomically. The batch is merged over the stored
// rules and the merged set is validated before anything is written.
func (uc *ShippingUsecase) UpdateRules(ctx context.Context, updates []RuleUpdate) ([]domain.ShippingRule, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no shipping rules submitted", domain.ErrValidation)
	}

	err := uc.tx.Do(ctx, func(txCtx context.Context) error {
		existing, err := uc.repo.GetAll(txCtx)
		if err != nil {
			return err
		}

		merged, toUpdate, toCreate, err := mergeRuleBatch(existing, updates)
		if err != nil {
			return err
		}
		if err := pricing.ValidateRuleSet(merged); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}

		for i := range toUpdate {
			if err := uc.repo.Update(txCtx, &toUpdate[i]); err != nil {
				return fmt.Errorf("update shipping rule %s: %w", toUpdate[i].ID, err)
			}
		}
		for i := range toCreate {
			if err := uc.repo.Create(txCtx, &toCreate[i]); err != nil {
				return fmt.Errorf("create shipping rule: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Delete(cache.KeyActiveShippingRules)
	logger.WithContext(ctx).Info().Int("rules", len(updates)).Msg("Shipping rules updated")
	return uc.repo.GetAll(ctx)
}

// mergeRuleBatch overlays the batch on the stored rules. The merged set lists the
// submitted rules first, in batch order, followed by stored rules the batch left
// out, so "rule N" in any validation message is the Nth submitted rule.
func mergeRuleBatch(existing []domain.ShippingRule, updates []RuleUpdate) (merged, toUpdate, toCreate []domain.ShippingRule, err error) {
	stored := make(map[string]bool, len(existing))
	for _, r := range existing {
		stored[r.ID] = true
	}

	merged = make([]domain.ShippingRule, 0, len(existing)+len(updates))
	seen := make(map[string]bool, len(updates))
	for i, u := range updates {
		n := i + 1
		rule := domain.ShippingRule{
			ID:            u.ID,
			MinOrderValue: u.MinOrderValue,
			Charge:        u.Charge,
			IsActive:      u.IsActive,
		}
		switch {
		case u.ID == "":
			toCreate = append(toCreate, rule)
		case !stored[u.ID]:
			return nil, nil, nil, fmt.Errorf("%w: rule %d: unknown shipping rule id %q", domain.ErrValidation, n, u.ID)
		case seen[u.ID]:
			return nil, nil, nil, fmt.Errorf("%w: rule %d: shipping rule id %q submitted twice", domain.ErrValidation, n, u.ID)
		default:
			seen[u.ID] = true
			toUpdate = append(toUpdate, rule)
		}
		merged = append(merged, rule)
	}

	for _, r := range existing {
		if !seen[r.ID] {
			merged = append(merged, r)
		}
	}
	return merged, toUpdate, toCreate, nil
}

// QuoteShipping resolves the charge for subtotal against the active rules.
// A broken rule set is logged and charged as zero.
func (uc *ShippingUsecase) QuoteShipping(ctx context.Context, subtotal decimal.Decimal) (pricing.Resolution, error) {
	if subtotal.IsNegative() {
		return pricing.Resolution{}, fmt.Errorf("%w: %w", domain.ErrValidation, pricing.ErrNegativeSubtotal)
	}
	rules, err := uc.ActiveRules(ctx)
	if err != nil {
		return pricing.Resolution{}, err
	}

	res, err := pricing.Resolve(subtotal, rules)
	var ruleErr *pricing.InvalidRuleSetError
	switch {
	case errors.As(err, &ruleErr):
		logger.WithContext(ctx).Error().Err(err).Msg("Shipping rule set has no zero-threshold fallback; charging 0")
		return pricing.Resolution{Charge: decimal.Zero, FailOpen: true}, nil
	case err != nil:
		return pricing.Resolution{}, err
	}
	if res.FailOpen {
		logger.WithContext(ctx).Warn().Msg("No active shipping rules configured; charging 0")
	}
	return res, nil
}
