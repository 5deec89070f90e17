package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// recordSavepoint scopes the statements of a single record. A failed
// statement on PostgreSQL poisons the whole transaction unless it is rolled
// back to a savepoint, after which Commit still keeps the earlier records.
const recordSavepoint = "rec"

// UnitOfWork groups the writes of one source file under one transaction.
type UnitOfWork interface {
	Customers() CustomerRepositoryInterface
	Orders() OrderRepositoryInterface
	// InSavepoint runs fn inside a savepoint and undoes its writes when fn fails.
	InSavepoint(ctx context.Context, fn func() error) error
	Commit() error
	Rollback() error
}

// Store hands out units of work. The ingestors depend on this, not on *sql.DB.
type Store interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// SQLStore is the database/sql implementation of Store
type SQLStore struct {
	DB *sql.DB
}

func (s *SQLStore) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlUnit{
		tx:        tx,
		customers: &CustomerRepository{DB: tx},
		orders:    &OrderRepository{DB: tx},
	}, nil
}

type sqlUnit struct {
	tx        *sql.Tx
	customers *CustomerRepository
	orders    *OrderRepository
}

func (u *sqlUnit) Customers() CustomerRepositoryInterface { return u.customers }
func (u *sqlUnit) Orders() OrderRepositoryInterface       { return u.orders }
func (u *sqlUnit) Commit() error                          { return u.tx.Commit() }
func (u *sqlUnit) Rollback() error                        { return u.tx.Rollback() }

func (u *sqlUnit) InSavepoint(ctx context.Context, fn func() error) error {
	if _, err := u.tx.ExecContext(ctx, "SAVEPOINT "+recordSavepoint); err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}

	if err := fn(); err != nil {
		if _, rbErr := u.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+recordSavepoint); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback to savepoint: %w", rbErr))
		}
		return err
	}

	if _, err := u.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+recordSavepoint); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

var _ Store = (*SQLStore)(nil)
