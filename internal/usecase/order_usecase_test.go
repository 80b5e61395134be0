package usecase

import (
	"context"
	"testing"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/internal/pricing"
	"zeecrown-admin/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(orders ...domain.Order) (*OrderUsecase, *fakeOrders, *memCache) {
	repo := &fakeOrders{items: orders}
	shipping, _ := newShipping(seededRules())
	c := newMemCache()
	return NewOrderUsecase(repo, shipping, c), repo, c
}

func TestQuoteAddsShipping(t *testing.T) {
	uc, _, _ := newOrderFixture()

	totals, err := uc.Quote(context.Background(), []pricing.LineItem{{Quantity: 2, UnitPrice: d("150.00")}})
	require.NoError(t, err)
	assert.Equal(t, "300.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "40.00", totals.ShippingCharge.StringFixed(2))
	assert.Equal(t, "340.00", totals.Total.StringFixed(2))

	totals, err = uc.Quote(context.Background(), []pricing.LineItem{{Quantity: 1, UnitPrice: d("500")}})
	require.NoError(t, err)
	assert.True(t, totals.ShippingCharge.IsZero())
	assert.Equal(t, "500.00", totals.Total.StringFixed(2))
}

func TestQuoteRejectsBadItems(t *testing.T) {
	uc, _, _ := newOrderFixture()

	_, err := uc.Quote(context.Background(), []pricing.LineItem{{Quantity: 0, UnitPrice: d("10")}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Quote(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestQuoteWithBrokenRulesChargesZero(t *testing.T) {
	repo := &fakeOrders{}
	shipping, _ := newShipping(&fakeShippingRules{rules: []domain.ShippingRule{
		{ID: "x", MinOrderValue: d("1000"), Charge: d("50"), IsActive: true},
	}})
	uc := NewOrderUsecase(repo, shipping, newMemCache())

	totals, err := uc.Quote(context.Background(), []pricing.LineItem{{Quantity: 1, UnitPrice: d("20")}})
	require.NoError(t, err)
	assert.True(t, totals.ShippingCharge.IsZero())
	assert.True(t, totals.ShippingFailOpen)
	assert.Equal(t, "20.00", totals.Total.StringFixed(2))
}

func TestUpdateOrderStatus(t *testing.T) {
	uc, _, c := newOrderFixture(domain.Order{ID: "o1", Status: domain.OrderStatusPending, TotalPrice: d("100")})
	c.Set(cache.KeyDashboardStats, &domain.DashboardStats{}, 0)

	o, err := uc.UpdateOrderStatus(context.Background(), "o1", domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, o.Status)
	_, cached := c.Get(cache.KeyDashboardStats)
	assert.False(t, cached)

	_, err = uc.UpdateOrderStatus(context.Background(), "o1", "lost")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.UpdateOrderStatus(context.Background(), "missing", domain.OrderStatusPaid)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrdersValidatesStatus(t *testing.T) {
	uc, _, _ := newOrderFixture(
		domain.Order{ID: "o1", Status: domain.OrderStatusPaid},
		domain.Order{ID: "o2", Status: domain.OrderStatusCancelled},
	)

	orders, total, err := uc.ListOrders(context.Background(), domain.OrderFilter{Status: domain.OrderStatusPaid})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "o1", orders[0].ID)

	_, _, err = uc.ListOrders(context.Background(), domain.OrderFilter{Status: "refunded"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOrderTotalsRecomputesFromItems(t *testing.T) {
	uc, _, _ := newOrderFixture(domain.Order{
		ID:         "o1",
		TotalPrice: d("340"),
		Items: []domain.OrderItem{
			{ProductID: "p1", Quantity: 2, Price: d("150")},
		},
	})

	order, totals, err := uc.OrderTotals(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.True(t, totals.Total.Equal(order.TotalPrice))
}

func TestDeleteOrder(t *testing.T) {
	uc, repo, _ := newOrderFixture(domain.Order{ID: "o1"})

	require.NoError(t, uc.DeleteOrder(context.Background(), "o1"))
	assert.Empty(t, repo.items)
	assert.ErrorIs(t, uc.DeleteOrder(context.Background(), "o1"), domain.ErrNotFound)
}
