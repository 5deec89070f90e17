package repository

import (
	"context"

	"github.com/unclebandit/patoche-etl/internal/model"
)

// CustomerRepositoryInterface defines methods used by the ingestors
type CustomerRepositoryInterface interface {
	Exists(ctx context.Context, c *model.Customer) (bool, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, c *model.Customer) error
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB DBTX
}

// Exists reports whether a row matches all seven data fields of c exactly.
// This is the dedup key; it is stricter than the unique email column.
func (r *CustomerRepository) Exists(ctx context.Context, c *model.Customer) (bool, error) {
	query := `
        SELECT COUNT(*)
        FROM customers
        WHERE last_name = $1
          AND first_name = $2
          AND email = $3
          AND phone = $4
          AND birth_date = $5
          AND address = $6
          AND marketing_consent = $7
    `
	var count int
	err := r.DB.QueryRowContext(ctx, query,
		c.LastName, c.FirstName, c.Email, c.Phone, c.BirthDate, c.Address, c.MarketingConsent,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByID reports whether a customer with this surrogate ID exists
func (r *CustomerRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers WHERE id = $1`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts c and sets c.ID to the store-assigned ID
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	query := `
        INSERT INTO customers (last_name, first_name, email, phone, birth_date, address, marketing_consent)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	return r.DB.QueryRowContext(ctx, query,
		c.LastName, c.FirstName, c.Email, c.Phone, c.BirthDate, c.Address, c.MarketingConsent,
	).Scan(&c.ID)
}

// Count returns the number of stored customers
func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	return n, err
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
