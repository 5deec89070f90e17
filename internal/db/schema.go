package db

import (
	"context"
	"database/sql"

	appErrors "github.com/unclebandit/patoche-etl/internal/errors"
)

// EnsureSchema creates the customers and orders tables when they are absent.
// Running it against an initialized store changes nothing.
func EnsureSchema(ctx context.Context, conn *sql.DB, dialect Dialect) error {
	steps := []struct {
		table string
		ddl   string
	}{
		{"customers", dialect.Customers},
		{"orders", dialect.Orders},
	}

	for _, step := range steps {
		if _, err := conn.ExecContext(ctx, step.ddl); err != nil {
			return appErrors.NewSchemaError(step.table, err)
		}
	}
	return nil
}

// SchemaManager binds EnsureSchema to one connection and dialect.
type SchemaManager struct {
	DB      *sql.DB
	Dialect Dialect
}

func (m *SchemaManager) EnsureSchema(ctx context.Context) error {
	return EnsureSchema(ctx, m.DB, m.Dialect)
}
