package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/pkg/cache"
	"zeecrown-admin/pkg/logger"
)

// CustomerDetail is a profile with its addresses and order history.
type CustomerDetail struct {
	Profile   domain.Profile   `json:"profile"`
	Addresses []domain.Address `json:"addresses"`
	Orders    []domain.Order   `json:"orders"`
}

type CustomerUsecase struct {
	repo   domain.CustomerRepository
	orders domain.OrderRepository
	cache  cache.CacheService
}

func NewCustomerUsecase(repo domain.CustomerRepository, orders domain.OrderRepository, cache cache.CacheService) *CustomerUsecase {
	return &CustomerUsecase{repo: repo, orders: orders, cache: cache}
}

func (uc *CustomerUsecase) ListCustomers(ctx context.Context, limit, offset int) ([]domain.Profile, int64, error) {
	return uc.repo.List(ctx, limit, offset)
}

func (uc *CustomerUsecase) GetCustomer(ctx context.Context, id string) (*CustomerDetail, error) {
	profile, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	addresses, err := uc.repo.GetAddresses(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, _, err := uc.orders.List(ctx, domain.OrderFilter{UserID: id})
	if err != nil {
		return nil, err
	}
	return &CustomerDetail{Profile: *profile, Addresses: addresses, Orders: orders}, nil
}

func (uc *CustomerUsecase) UpdateCustomer(ctx context.Context, id, fullName, phone string) (*domain.Profile, error) {
	fullName = strings.TrimSpace(fullName)
	phone = strings.TrimSpace(phone)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", domain.ErrValidation)
	}
	return uc.repo.UpdateProfile(ctx, id, fullName, phone)
}

// DeleteCustomer removes the auth account, which cascades to the profile.
// When the auth account cannot be removed the profile is deleted directly.
func (uc *CustomerUsecase) DeleteCustomer(ctx context.Context, id string) error {
	authErr := uc.repo.DeleteAuthUser(ctx, id)
	if authErr == nil {
		uc.cache.Delete(cache.KeyDashboardStats)
		return nil
	}

	log := logger.WithContext(ctx)
	log.Warn().Err(authErr).Str("customer_id", id).Msg("Auth user delete failed, falling back to profile delete")

	if err := uc.repo.DeleteProfile(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) && errors.Is(authErr, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete customer %s: %w", id, errors.Join(authErr, err))
	}
	uc.cache.Delete(cache.KeyDashboardStats)
	return nil
}
