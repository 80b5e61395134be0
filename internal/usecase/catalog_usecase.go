package usecase

import (
	"context"
	"fmt"
	"strings"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/pkg/cache"
	"zeecrown-admin/pkg/logger"

	"github.com/shopspring/decimal"
)

// ProductInput carries the editable product fields.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	MRP         *decimal.Decimal
	Category    string
}

func (in ProductInput) validate() error {
	var problems []string
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name is required")
	}
	if in.Price.IsNegative() {
		problems = append(problems, "price must not be negative")
	}
	if in.MRP != nil && in.MRP.IsNegative() {
		problems = append(problems, "mrp must not be negative")
	}
	if !domain.IsValidCategory(in.Category) {
		problems = append(problems, fmt.Sprintf("category must be one of %s", strings.Join(domain.ProductCategories, ", ")))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

type CatalogUsecase struct {
	repo   domain.ProductRepository
	media  *MediaUsecase
	cache  cache.CacheService
	bucket string
}

func NewCatalogUsecase(repo domain.ProductRepository, media *MediaUsecase, cache cache.CacheService, bucket string) *CatalogUsecase {
	return &CatalogUsecase{
		repo:   repo,
		media:  media,
		cache:  cache,
		bucket: bucket,
	}
}

func (uc *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	if filter.Category != "" && !domain.IsValidCategory(filter.Category) {
		return nil, 0, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, filter.Category)
	}
	return uc.repo.List(ctx, filter)
}

func (uc *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return uc.repo.GetByID(ctx, id)
}

// CreateProduct stores the optional image first, then inserts the row.
// If the insert fails the fresh blob is removed again.
func (uc *CatalogUsecase) CreateProduct(ctx context.Context, in ProductInput, image *ImageUpload) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		MRP:         in.MRP,
		Category:    in.Category,
	}

	if image != nil {
		stored, err := uc.media.Ingest(ctx, uc.bucket, *image)
		if err != nil {
			return nil, err
		}
		product.ImageURL = stored.URL
	}

	if err := uc.repo.Create(ctx, product); err != nil {
		uc.discard(ctx, product.ImageURL)
		return nil, fmt.Errorf("create product: %w", err)
	}

	uc.invalidateStatsCache()
	return product, nil
}

// UpdateProduct applies in and, when image is given, swaps the product image:
// upload new, update the row, then delete the old blob. A failed delete is
// returned as a warning; the swap stands.
func (uc *CatalogUsecase) UpdateProduct(ctx context.Context, id string, in ProductInput, image *ImageUpload) (*domain.Product, string, error) {
	if err := in.validate(); err != nil {
		return nil, "", err
	}

	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	oldURL := product.ImageURL

	product.Name = strings.TrimSpace(in.Name)
	product.Description = in.Description
	product.Price = in.Price
	product.MRP = in.MRP
	product.Category = in.Category

	if image != nil {
		stored, err := uc.media.Ingest(ctx, uc.bucket, *image)
		if err != nil {
			return nil, "", err
		}
		product.ImageURL = stored.URL
	}

	if err := uc.repo.Update(ctx, product); err != nil {
		if image != nil {
			uc.discard(ctx, product.ImageURL)
		}
		return nil, "", fmt.Errorf("update product: %w", err)
	}

	var warning string
	if image != nil && oldURL != "" && oldURL != product.ImageURL {
		warning = uc.removeOld(ctx, oldURL, "product", id)
	}
	return product, warning, nil
}

// DeleteProduct removes the row, then the image blob on a best-effort basis.
func (uc *CatalogUsecase) DeleteProduct(ctx context.Context, id string) (string, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	uc.invalidateStatsCache()
	return uc.removeOld(ctx, product.ImageURL, "product", id), nil
}

func (uc *CatalogUsecase) removeOld(ctx context.Context, url, kind, id string) string {
	if url == "" {
		return ""
	}
	if err := uc.media.RemoveByURL(ctx, uc.bucket, url); err != nil {
		logger.WithContext(ctx).Warn().Err(err).
			Str(kind+"_id", id).
			Str("url", url).
			Msg("Old image could not be deleted; blob left orphaned")
		return fmt.Sprintf("old image could not be deleted: %v", err)
	}
	return ""
}

func (uc *CatalogUsecase) discard(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := uc.media.RemoveByURL(ctx, uc.bucket, url); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("url", url).Msg("Failed to clean up uploaded image")
	}
}

func (uc *CatalogUsecase) invalidateStatsCache() {
	uc.cache.Delete(cache.KeyDashboardStats)
}
