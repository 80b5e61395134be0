package postgres

import (
	"context"
	"fmt"
	"strings"

	"zeecrown-admin/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) domain.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id::text, name, description, price, mrp, category, image_url, created_at`

const productFilterClause = `
	WHERE ($1 = '' OR name ILIKE $1 ESCAPE '\' OR description ILIKE $1 ESCAPE '\')
	  AND ($2 = '' OR category = $2)`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p           domain.Product
		description *string
		imageURL    *string
		price, mrp  pgtype.Numeric
	)
	if err := row.Scan(&p.ID, &p.Name, &description, &price, &mrp, &p.Category, &imageURL, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Description = ptrString(description)
	p.ImageURL = ptrString(imageURL)

	var err error
	if p.Price, err = numericToDecimal(price); err != nil {
		return nil, fmt.Errorf("product %s price: %w", p.ID, err)
	}
	if p.MRP, err = numericToDecimalPtr(mrp); err != nil {
		return nil, fmt.Errorf("product %s mrp: %w", p.ID, err)
	}
	return &p, nil
}

// likePattern turns a free-text query into a contains pattern with LIKE metacharacters escaped.
func likePattern(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return ""
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	q := conn(ctx, r.db)
	pattern := likePattern(filter.Query)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+productFilterClause, pattern, filter.Category).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx, `SELECT `+productColumns+` FROM products`+productFilterClause+`
		ORDER BY created_at DESC
		LIMIT NULLIF($3::int, 0) OFFSET $4`,
		pattern, filter.Category, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := conn(ctx, r.db).QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id::text = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, notFound(err, "product", id)
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	return conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO products (id, name, description, price, mrp, category, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		product.ID, product.Name, strPtr(product.Description),
		decimalToNumeric(product.Price), decimalPtrToNumeric(product.MRP),
		product.Category, strPtr(product.ImageURL),
	).Scan(&product.CreatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, mrp = $5, category = $6, image_url = $7
		WHERE id::text = $1`,
		product.ID, product.Name, strPtr(product.Description),
		decimalToNumeric(product.Price), decimalPtrToNumeric(product.MRP),
		product.Category, strPtr(product.ImageURL),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", product.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM products WHERE id::text = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}
