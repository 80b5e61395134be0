package postgres

import (
	"context"
	"fmt"

	"zeecrown-admin/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type bannerRepository struct {
	db *pgxpool.Pool
}

func NewBannerRepository(db *pgxpool.Pool) domain.BannerRepository {
	return &bannerRepository{db: db}
}

const bannerColumns = `id::text, image_url, sort_order, is_active, created_at`

func scanBanner(row pgx.Row) (*domain.Banner, error) {
	var b domain.Banner
	if err := row.Scan(&b.ID, &b.ImageURL, &b.SortOrder, &b.IsActive, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bannerRepository) List(ctx context.Context) ([]domain.Banner, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `SELECT `+bannerColumns+` FROM banners ORDER BY sort_order ASC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	banners := []domain.Banner{}
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		banners = append(banners, *b)
	}
	return banners, rows.Err()
}

func (r *bannerRepository) GetByID(ctx context.Context, id string) (*domain.Banner, error) {
	b, err := scanBanner(conn(ctx, r.db).QueryRow(ctx, `SELECT `+bannerColumns+` FROM banners WHERE id::text = $1`, id))
	if err != nil {
		return nil, notFound(err, "banner", id)
	}
	return b, nil
}

func (r *bannerRepository) Create(ctx context.Context, banner *domain.Banner) error {
	if banner.ID == "" {
		banner.ID = uuid.NewString()
	}
	return conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO banners (id, image_url, sort_order, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		banner.ID, banner.ImageURL, banner.SortOrder, banner.IsActive,
	).Scan(&banner.CreatedAt)
}

func (r *bannerRepository) Update(ctx context.Context, banner *domain.Banner) error {
	tag, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE banners SET image_url = $2, sort_order = $3, is_active = $4 WHERE id::text = $1`,
		banner.ID, banner.ImageURL, banner.SortOrder, banner.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("banner %s: %w", banner.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM banners WHERE id::text = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("banner %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
