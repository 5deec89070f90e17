package repository

import (
	"context"

	"github.com/unclebandit/patoche-etl/internal/model"
)

type OrderRepositoryInterface interface {
	Exists(ctx context.Context, o *model.Order) (bool, error)
	Create(ctx context.Context, o *model.Order) error
}

type OrderRepository struct {
	DB DBTX
}

// Exists checks for an order with the same customer, date and amount
func (r *OrderRepository) Exists(ctx context.Context, o *model.Order) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
        SELECT COUNT(*)
        FROM orders
        WHERE customer_id = $1 AND order_date = $2 AND amount = $3`,
		o.CustomerID, o.OrderDate, o.Amount,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (order_date, amount, customer_id)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	return r.DB.QueryRowContext(ctx, query, o.OrderDate, o.Amount, o.CustomerID).Scan(&o.ID)
}

// Count returns the number of stored orders
func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

var _ OrderRepositoryInterface = (*OrderRepository)(nil)
