package postgres

import (
	"context"
	"fmt"

	"zeecrown-admin/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type shippingRuleRepository struct {
	db *pgxpool.Pool
}

func NewShippingRuleRepository(db *pgxpool.Pool) domain.ShippingRuleRepository {
	return &shippingRuleRepository{db: db}
}

const shippingRuleColumns = `id::text, min_order_value, charge, is_active, created_at, updated_at`

func (r *shippingRuleRepository) query(ctx context.Context, sql string) ([]domain.ShippingRule, error) {
	rows, err := conn(ctx, r.db).Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []domain.ShippingRule{}
	for rows.Next() {
		var (
			rule             domain.ShippingRule
			minValue, charge pgtype.Numeric
		)
		if err := rows.Scan(&rule.ID, &minValue, &charge, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, err
		}
		if rule.MinOrderValue, err = numericToDecimal(minValue); err != nil {
			return nil, fmt.Errorf("shipping rule %s min_order_value: %w", rule.ID, err)
		}
		if rule.Charge, err = numericToDecimal(charge); err != nil {
			return nil, fmt.Errorf("shipping rule %s charge: %w", rule.ID, err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *shippingRuleRepository) GetAll(ctx context.Context) ([]domain.ShippingRule, error) {
	return r.query(ctx, `SELECT `+shippingRuleColumns+` FROM shipping_rules ORDER BY min_order_value ASC, created_at ASC`)
}

func (r *shippingRuleRepository) GetActive(ctx context.Context) ([]domain.ShippingRule, error) {
	return r.query(ctx, `SELECT `+shippingRuleColumns+` FROM shipping_rules WHERE is_active ORDER BY min_order_value ASC, created_at ASC`)
}

func (r *shippingRuleRepository) Create(ctx context.Context, rule *domain.ShippingRule) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	return conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO shipping_rules (id, min_order_value, charge, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		rule.ID, decimalToNumeric(rule.MinOrderValue), decimalToNumeric(rule.Charge), rule.IsActive,
	).Scan(&rule.CreatedAt, &rule.UpdatedAt)
}

func (r *shippingRuleRepository) Update(ctx context.Context, rule *domain.ShippingRule) error {
	err := conn(ctx, r.db).QueryRow(ctx, `
		UPDATE shipping_rules
		SET min_order_value = $2, charge = $3, is_active = $4, updated_at = now()
		WHERE id::text = $1
		RETURNING created_at, updated_at`,
		rule.ID, decimalToNumeric(rule.MinOrderValue), decimalToNumeric(rule.Charge), rule.IsActive,
	).Scan(&rule.CreatedAt, &rule.UpdatedAt)
	return notFound(err, "shipping rule", rule.ID)
}
