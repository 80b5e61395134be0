package usecase

import (
	"context"
	"fmt"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/pkg/logger"
)

// BannerPatch holds the banner fields that may change after creation.
type BannerPatch struct {
	SortOrder *int
	IsActive  *bool
}

type BannerUsecase interface {
	ListBanners(ctx context.Context) ([]domain.Banner, error)
	CreateBanner(ctx context.Context, sortOrder int, isActive bool, image ImageUpload) (*domain.Banner, error)
	UpdateBanner(ctx context.Context, id string, patch BannerPatch) (*domain.Banner, error)
	// DeleteBanner returns a warning when the image blob could not be removed.
	DeleteBanner(ctx context.Context, id string) (string, error)
}

type bannerUsecase struct {
	repo   domain.BannerRepository
	media  *MediaUsecase
	bucket string
}

func NewBannerUsecase(repo domain.BannerRepository, media *MediaUsecase, bucket string) BannerUsecase {
	return &bannerUsecase{repo: repo, media: media, bucket: bucket}
}

func (u *bannerUsecase) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	return u.repo.List(ctx)
}

func (u *bannerUsecase) CreateBanner(ctx context.Context, sortOrder int, isActive bool, image ImageUpload) (*domain.Banner, error) {
	if len(image.Data) == 0 {
		return nil, fmt.Errorf("%w: banner image is required", domain.ErrValidation)
	}

	stored, err := u.media.Ingest(ctx, u.bucket, image)
	if err != nil {
		return nil, err
	}

	banner := &domain.Banner{ImageURL: stored.URL, SortOrder: sortOrder, IsActive: isActive}
	if err := u.repo.Create(ctx, banner); err != nil {
		if rmErr := u.media.RemoveByURL(ctx, u.bucket, stored.URL); rmErr != nil {
			logger.WithContext(ctx).Warn().Err(rmErr).Str("url", stored.URL).Msg("Failed to clean up banner image")
		}
		return nil, fmt.Errorf("create banner: %w", err)
	}
	return banner, nil
}

func (u *bannerUsecase) UpdateBanner(ctx context.Context, id string, patch BannerPatch) (*domain.Banner, error) {
	banner, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.SortOrder != nil {
		banner.SortOrder = *patch.SortOrder
	}
	if patch.IsActive != nil {
		banner.IsActive = *patch.IsActive
	}
	if err := u.repo.Update(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (u *bannerUsecase) DeleteBanner(ctx context.Context, id string) (string, error) {
	banner, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	if err := u.media.RemoveByURL(ctx, u.bucket, banner.ImageURL); err != nil {
		logger.WithContext(ctx).Warn().Err(err).
			Str("banner_id", id).
			Str("url", banner.ImageURL).
			Msg("Banner image could not be deleted; blob left orphaned")
		return fmt.Sprintf("banner image could not be deleted: %v", err), nil
	}
	return "", nil
}
