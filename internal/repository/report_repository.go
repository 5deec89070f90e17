package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/unclebandit/patoche-etl/internal/model"
)

// ReportRepository runs read-only report queries and renders each cell as text.
type ReportRepository struct {
	DB DBTX
}

// Table executes query and returns its columns and rows. NULL cells render as
// "NULL" and floating point cells through model.FormatAmount.
func (r *ReportRepository) Table(ctx context.Context, query string, args ...any) (*model.ReportTable, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	table := &model.ReportTable{Columns: cols, Rows: [][]string{}}
	for rows.Next() {
		cells := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make([]string, len(cols))
		for i, c := range cells {
			row[i] = cellText(c)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, rows.Err()
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case float64:
		return model.FormatAmount(x)
	case float32:
		return model.FormatAmount(float64(x))
	case []byte:
		return string(x)
	case string:
		return x
	}
	return fmt.Sprint(v)
}

// Sum executes a single-value aggregate; the result is invalid when no rows matched.
func (r *ReportRepository) Sum(ctx context.Context, query string, args ...any) (sql.NullFloat64, error) {
	var total sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}
