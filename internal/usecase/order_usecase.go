package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/internal/pricing"
	"zeecrown-admin/pkg/cache"
	"zeecrown-admin/pkg/logger"
)

type OrderUsecase struct {
	repo     domain.OrderRepository
	shipping *ShippingUsecase
	cache    cache.CacheService
}

func NewOrderUsecase(repo domain.OrderRepository, shipping *ShippingUsecase, cache cache.CacheService) *OrderUsecase {
	return &OrderUsecase{repo: repo, shipping: shipping, cache: cache}
}

func (uc *OrderUsecase) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	if filter.Status != "" && !domain.IsValidOrderStatus(filter.Status) {
		return nil, 0, fmt.Errorf("%w: unknown order status %q", domain.ErrValidation, filter.Status)
	}
	return uc.repo.List(ctx, filter)
}

func (uc *OrderUsecase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *OrderUsecase) UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: status must be one of %s", domain.ErrValidation, strings.Join(domain.OrderStatuses, ", "))
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	uc.cache.Delete(cache.KeyDashboardStats)
	logger.WithContext(ctx).Info().Str("order_id", id).Str("status", status).Msg("Order status updated")
	return uc.repo.GetByID(ctx, id)
}

// DeleteOrder removes an order and, through the foreign key, its items.
func (uc *OrderUsecase) DeleteOrder(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.Delete(cache.KeyDashboardStats)
	return nil
}

// Quote prices line items with the current active shipping rules.
func (uc *OrderUsecase) Quote(ctx context.Context, items []pricing.LineItem) (pricing.Totals, error) {
	if len(items) == 0 {
		return pricing.Totals{}, fmt.Errorf("%w: at least one line item is required", domain.ErrValidation)
	}
	rules, err := uc.shipping.ActiveRules(ctx)
	if err != nil {
		return pricing.Totals{}, err
	}

	totals, err := pricing.ComputeTotal(items, rules)
	var (
		itemErr *pricing.InvalidLineItemError
		ruleErr *pricing.InvalidRuleSetError
	)
	switch {
	case errors.As(err, &itemErr):
		return pricing.Totals{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	case errors.As(err, &ruleErr):
		logger.WithContext(ctx).Error().Err(err).Msg("Shipping rule set has no zero-threshold fallback; charging 0")
		return pricing.ComputeTotal(items, nil)
	case err != nil:
		return pricing.Totals{}, err
	}
	if totals.ShippingFailOpen {
		logger.WithContext(ctx).Warn().Msg("No active shipping rules configured; charging 0")
	}
	return totals, nil
}

// OrderTotals recomputes a stored order's totals from its items and the
// current rules, alongside the persisted total_price.
func (uc *OrderUsecase) OrderTotals(ctx context.Context, id string) (*domain.Order, pricing.Totals, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pricing.Totals{}, err
	}
	if len(order.Items) == 0 {
		return order, pricing.Totals{}, fmt.Errorf("%w: order %s has no items", domain.ErrValidation, id)
	}

	items := make([]pricing.LineItem, len(order.Items))
	for i, it := range order.Items {
		items[i] = pricing.LineItem{Quantity: it.Quantity, UnitPrice: it.Price}
	}
	totals, err := uc.Quote(ctx, items)
	if err != nil {
		return nil, pricing.Totals{}, err
	}
	return order, totals, nil
}
