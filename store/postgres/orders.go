package postgres

import (
	"context"
	"fmt"

	"food-order/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type OrderStore struct {
	pool *pgxpool.Pool
}

func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

func (s *OrderStore) Append(ctx context.Context, order models.Order) error {
	const query = `INSERT INTO orders (identifier, summary, total) VALUES ($1, $2, $3::text::numeric)`

	_, err := s.pool.Exec(ctx, query, order.Identifier, order.Summary, order.Total.StringFixed(2))
	if err != nil {
		return fmt.Errorf("insert order for %s: %w", order.Identifier, err)
	}
	return nil
}

// ListFor never returns store.ErrNoHistory: the orders table always exists
// once migrations have run.
func (s *OrderStore) ListFor(ctx context.Context, identifier string) ([]models.Order, error) {
	const query = `SELECT summary, total::text FROM orders WHERE identifier = $1 ORDER BY id`

	rows, err := s.pool.Query(ctx, query, identifier)
	if err != nil {
		return nil, fmt.Errorf("query orders for %s: %w", identifier, err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var summary, total string
		if err := rows.Scan(&summary, &total); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("parse order total %q: %w", total, err)
		}
		orders = append(orders, models.Order{Identifier: identifier, Summary: summary, Total: d})
	}
	return orders, rows.Err()
}
