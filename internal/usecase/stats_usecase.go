package usecase

import (
	"context"
	"time"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/pkg/cache"

	"golang.org/x/sync/errgroup"
)

const recentOrdersLimit = 5

type StatsUsecase struct {
	products  domain.ProductRepository
	orders    domain.OrderRepository
	customers domain.CustomerRepository
	cache     cache.CacheService
	ttl       time.Duration
}

func NewStatsUsecase(products domain.ProductRepository, orders domain.OrderRepository, customers domain.CustomerRepository, cache cache.CacheService, ttl time.Duration) *StatsUsecase {
	return &StatsUsecase{
		products:  products,
		orders:    orders,
		customers: customers,
		cache:     cache,
		ttl:       ttl,
	}
}

// GetDashboard runs the overview queries in parallel and caches the result briefly.
func (uc *StatsUsecase) GetDashboard(ctx context.Context) (*domain.DashboardStats, error) {
	if stats, ok := cache.GetAs[*domain.DashboardStats](uc.cache, cache.KeyDashboardStats); ok {
		return stats, nil
	}

	var stats domain.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalRevenue, err = uc.orders.Revenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.OrderCount, err = uc.orders.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ProductCount, err = uc.products.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.CustomerCount, err = uc.customers.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentOrders, _, err = uc.orders.List(gctx, domain.OrderFilter{Limit: recentOrdersLimit})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	uc.cache.Set(cache.KeyDashboardStats, &stats, uc.ttl)
	return &stats, nil
}
