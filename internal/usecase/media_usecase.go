package usecase

import (
	"context"
	"fmt"
	"time"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/pkg/logger"
	"zeecrown-admin/pkg/media"

	"golang.org/x/sync/semaphore"
)

// ImageUpload is a raw image received from the dashboard.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StoredImage is the result of a successful ingest.
type StoredImage struct {
	Bucket     string `json:"bucket"`
	Path       string `json:"path"`
	URL        string `json:"url"`
	SizeBytes  int64  `json:"sizeBytes"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Format     string `json:"format"`
	OverBudget bool   `json:"overBudget"`
}

// MediaUsecase compresses images and stores them in the object store.
type MediaUsecase struct {
	store       domain.ObjectStore
	constraints media.Constraints
	sem         *semaphore.Weighted
	now         func() time.Time
}

func NewMediaUsecase(store domain.ObjectStore, constraints media.Constraints, workers int64) *MediaUsecase {
	if workers < 1 {
		workers = 1
	}
	return &MediaUsecase{
		store:       store,
		constraints: constraints,
		sem:         semaphore.NewWeighted(workers),
		now:         time.Now,
	}
}

const keyNamespace = "public"

// Ingest compresses img and uploads it under a fresh key in bucket.
func (uc *MediaUsecase) Ingest(ctx context.Context, bucket string, img ImageUpload) (*StoredImage, error) {
	if !media.IsAllowedUpload(img.ContentType, img.Filename) {
		return nil, fmt.Errorf("%w: file type %q not allowed", domain.ErrValidation, img.ContentType)
	}

	if err := uc.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	out, err := media.Compress(img.Data, uc.constraints)
	uc.sem.Release(1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	log := logger.WithContext(ctx)
	if out.OverBudget {
		log.Warn().
			Str("filename", img.Filename).
			Int64("size_bytes", out.SizeBytes).
			Int64("max_bytes", uc.constraints.MaxBytes).
			Msg("Compressed image exceeds size budget")
	}

	key := media.BuildKey(keyNamespace, img.Filename, out.Format, uc.now())
	path, err := uc.store.Upload(ctx, bucket, key, out.Bytes, out.ContentType, false)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	log.Info().
		Str("bucket", bucket).
		Str("path", path).
		Int("original_bytes", len(img.Data)).
		Int64("stored_bytes", out.SizeBytes).
		Int("quality", out.Quality).
		Msg("Image stored")

	return &StoredImage{
		Bucket:     bucket,
		Path:       path,
		URL:        uc.store.PublicURL(bucket, path),
		SizeBytes:  out.SizeBytes,
		Width:      out.Width,
		Height:     out.Height,
		Format:     string(out.Format),
		OverBudget: out.OverBudget,
	}, nil
}

// RemoveByURL deletes the blob behind a public URL. URLs that do not point
// into bucket are left alone.
func (uc *MediaUsecase) RemoveByURL(ctx context.Context, bucket, url string) error {
	if url == "" {
		return nil
	}
	path, ok := uc.store.PathFromURL(bucket, url)
	if !ok {
		logger.WithContext(ctx).Debug().Str("url", url).Msg("Skipping removal of foreign image URL")
		return nil
	}
	return uc.store.Remove(ctx, bucket, []string{path})
}
