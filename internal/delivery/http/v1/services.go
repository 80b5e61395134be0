package v1

import (
	"context"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/internal/pricing"
	"zeecrown-admin/internal/usecase"

	"github.com/shopspring/decimal"
)

// The handlers depend on these narrow views of the usecases.

type productService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, in usecase.ProductInput, image *usecase.ImageUpload) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in usecase.ProductInput, image *usecase.ImageUpload) (*domain.Product, string, error)
	DeleteProduct(ctx context.Context, id string) (string, error)
}

type orderService interface {
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	Quote(ctx context.Context, items []pricing.LineItem) (pricing.Totals, error)
	OrderTotals(ctx context.Context, id string) (*domain.Order, pricing.Totals, error)
}

type customerService interface {
	ListCustomers(ctx context.Context, limit, offset int) ([]domain.Profile, int64, error)
	GetCustomer(ctx context.Context, id string) (*usecase.CustomerDetail, error)
	UpdateCustomer(ctx context.Context, id, fullName, phone string) (*domain.Profile, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type shippingService interface {
	ListRules(ctx context.Context) ([]domain.ShippingRule, error)
	UpdateRules(ctx context.Context, updates []usecase.RuleUpdate) ([]domain.ShippingRule, error)
	QuoteShipping(ctx context.Context, subtotal decimal.Decimal) (pricing.Resolution, error)
}

type statsService interface {
	GetDashboard(ctx context.Context) (*domain.DashboardStats, error)
}

type mediaService interface {
	Ingest(ctx context.Context, bucket string, img usecase.ImageUpload) (*usecase.StoredImage, error)
}

var (
	_ productService  = (*usecase.CatalogUsecase)(nil)
	_ orderService    = (*usecase.OrderUsecase)(nil)
	_ customerService = (*usecase.CustomerUsecase)(nil)
	_ shippingService = (*usecase.ShippingUsecase)(nil)
	_ statsService    = (*usecase.StatsUsecase)(nil)
	_ mediaService    = (*usecase.MediaUsecase)(nil)
)
