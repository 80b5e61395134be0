package postgres

import (
	"context"
	"fmt"

	"zeecrown-admin/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type customerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) domain.CustomerRepository {
	return &customerRepository{db: db}
}

// Email lives on auth.users; the service role can read it.
const profileSelect = `
	SELECT p.id::text, COALESCE(p.full_name, ''), COALESCE(p.phone_number, ''), COALESCE(u.email, ''), p.created_at
	FROM profiles p
	LEFT JOIN auth.users u ON u.id = p.id`

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	if err := row.Scan(&p.ID, &p.FullName, &p.PhoneNumber, &p.Email, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *customerRepository) List(ctx context.Context, limit, offset int) ([]domain.Profile, int64, error) {
	q := conn(ctx, r.db)

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx, profileSelect+`
		ORDER BY p.created_at DESC
		LIMIT NULLIF($1::int, 0) OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, total, rows.Err()
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	p, err := scanProfile(conn(ctx, r.db).QueryRow(ctx, profileSelect+` WHERE p.id::text = $1`, id))
	if err != nil {
		return nil, notFound(err, "customer", id)
	}
	return p, nil
}

func (r *customerRepository) GetAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT id::text, user_id::text, COALESCE(street_address, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(postal_code, '')
		FROM addresses
		WHERE user_id::text = $1
		ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.StreetAddress, &a.City, &a.State, &a.PostalCode); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *customerRepository) UpdateProfile(ctx context.Context, id, fullName, phone string) (*domain.Profile, error) {
	tag, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE profiles SET full_name = $2, phone_number = $3 WHERE id::text = $1`,
		id, strPtr(fullName), strPtr(phone))
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *customerRepository) DeleteAuthUser(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM auth.users WHERE id::text = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("auth user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *customerRepository) DeleteProfile(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM profiles WHERE id::text = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n)
	return n, err
}
