package postgres

import (
	"context"
	"fmt"

	"zeecrown-admin/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type orderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) domain.OrderRepository {
	return &orderRepository{db: db}
}

const orderSelect = `
	SELECT o.id::text, COALESCE(o.user_id::text, ''), COALESCE(p.full_name, ''), o.total_price, o.status, o.created_at
	FROM orders o
	LEFT JOIN profiles p ON p.id = o.user_id`

const orderFilterClause = `
	WHERE ($1 = '' OR o.status = $1)
	  AND ($2 = '' OR o.user_id::text = $2)`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o     domain.Order
		total pgtype.Numeric
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.CustomerName, &total, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if o.TotalPrice, err = numericToDecimal(total); err != nil {
		return nil, fmt.Errorf("order %s total: %w", o.ID, err)
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	q := conn(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM orders o`+orderFilterClause, filter.Status, filter.UserID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx, orderSelect+orderFilterClause+`
		ORDER BY o.created_at DESC
		LIMIT NULLIF($3::int, 0) OFFSET $4`,
		filter.Status, filter.UserID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	ids := []string{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(orders) == 0 {
		return orders, total, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, total, nil
}

// itemsFor loads line items for several orders in one round trip, keyed by order id.
func (r *orderRepository) itemsFor(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT oi.id::text, oi.order_id::text, COALESCE(oi.product_id::text, ''), COALESCE(pr.name, ''), oi.quantity, oi.price
		FROM order_items oi
		LEFT JOIN products pr ON pr.id = oi.product_id
		WHERE oi.order_id::text = ANY($1::text[])
		ORDER BY oi.order_id, oi.id`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			it    domain.OrderItem
			price pgtype.Numeric
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &price); err != nil {
			return nil, err
		}
		if it.Price, err = numericToDecimal(price); err != nil {
			return nil, fmt.Errorf("order item %s price: %w", it.ID, err)
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(conn(ctx, r.db).QueryRow(ctx, orderSelect+` WHERE o.id::text = $1`, id))
	if err != nil {
		return nil, notFound(err, "order", id)
	}
	items, err := r.itemsFor(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	return o, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `UPDATE orders SET status = $2 WHERE id::text = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the order; order_items cascade.
func (r *orderRepository) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM orders WHERE id::text = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

func (r *orderRepository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var sum pgtype.Numeric
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE status <> $1`,
		domain.OrderStatusCancelled,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return numericToDecimal(sum)
}
