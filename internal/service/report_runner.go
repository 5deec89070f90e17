package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/patoche-etl/internal/errors"
	"github.com/unclebandit/patoche-etl/internal/model"
	"github.com/unclebandit/patoche-etl/internal/report"
)

// ReportQuerier is the read side the report runner needs.
type ReportQuerier interface {
	Table(ctx context.Context, query string, args ...any) (*model.ReportTable, error)
	Sum(ctx context.Context, query string, args ...any) (sql.NullFloat64, error)
}

// ReportExporter receives every report table in addition to the console.
type ReportExporter interface {
	Add(n int, title string, table *model.ReportTable)
	Save() error
}

// ReportParams are the fixed inputs of the five reports.
type ReportParams struct {
	CustomerID      int
	AmountThreshold float64
	CutoffDate      string
}

const (
	consentingCustomersSQL = `
        SELECT id, last_name, first_name, email
        FROM customers
        WHERE marketing_consent = 1
    `
	customerOrdersSQL = `
        SELECT id, order_date, amount
        FROM orders
        WHERE customer_id = $1
    `
	customerTotalSQL = `
        SELECT SUM(amount)
        FROM orders
        WHERE customer_id = $1
    `
	customersOverAmountSQL = `
        SELECT DISTINCT c.id, c.last_name, c.first_name, c.email
        FROM customers c
        JOIN orders o ON c.id = o.customer_id
        WHERE o.amount > $1
    `
	customersAfterDateSQL = `
        SELECT DISTINCT c.id, c.last_name, c.first_name, c.email
        FROM customers c
        JOIN orders o ON c.id = o.customer_id
        WHERE o.order_date > $1
    `
)

type reportDef struct {
	title string
	query string
	args  []any
	empty string
	total bool
}

// ReportRunner prints the five fixed reports. It never writes to the store.
type ReportRunner struct {
	Repo     ReportQuerier
	Out      io.Writer
	Params   ReportParams
	Logger   *zap.Logger
	Exporter ReportExporter
}

func (r *ReportRunner) reports() []reportDef {
	p := r.Params
	amount := strconv.FormatFloat(p.AmountThreshold, 'f', -1, 64)
	return []reportDef{
		{
			title: "Customers who consented to marketing",
			query: consentingCustomersSQL,
			empty: "No customer has consented to marketing communications.",
		},
		{
			title: fmt.Sprintf("Orders of customer %d", p.CustomerID),
			query: customerOrdersSQL,
			args:  []any{p.CustomerID},
			empty: fmt.Sprintf("No orders found for customer with ID %d.", p.CustomerID),
		},
		{
			title: fmt.Sprintf("Total order amount of customer %d", p.CustomerID),
			query: customerTotalSQL,
			args:  []any{p.CustomerID},
			empty: fmt.Sprintf("No orders found for customer with ID %d, total is 0.", p.CustomerID),
			total: true,
		},
		{
			title: "Customers with orders over " + amount,
			query: customersOverAmountSQL,
			args:  []any{p.AmountThreshold},
			empty: fmt.Sprintf("No customer has placed an order over %s.", amount),
		},
		{
			title: "Customers with orders after " + p.CutoffDate,
			query: customersAfterDateSQL,
			args:  []any{p.CutoffDate},
			empty: fmt.Sprintf("No customer has placed an order after %s.", p.CutoffDate),
		},
	}
}

// Run executes the reports in order. The first query error stops the
// remaining reports and is returned as a *appErrors.ReportError.
func (r *ReportRunner) Run(ctx context.Context) error {
	for i, def := range r.reports() {
		n := i + 1
		if err := report.PrintSection(r.Out, n, def.title, def.query); err != nil {
			return err
		}

		table, err := r.query(ctx, def)
		if err != nil {
			r.Logger.Error("failed to run report", zap.Int("report", n), zap.String("title", def.title), zap.Error(err))
			return appErrors.NewReportError(def.title, err)
		}

		if table.Empty() {
			if _, err := fmt.Fprintln(r.Out, def.empty); err != nil {
				return err
			}
		} else if def.total {
			if _, err := fmt.Fprintf(r.Out, "Total order amount of customer ID %d: %s euros\n", r.Params.CustomerID, table.Rows[0][1]); err != nil {
				return err
			}
		} else if err := report.PrintTable(r.Out, table); err != nil {
			return err
		}

		if r.Exporter != nil {
			r.Exporter.Add(n, def.title, table)
		}
	}

	if r.Exporter != nil {
		if err := r.Exporter.Save(); err != nil {
			r.Logger.Warn("failed to export reports", zap.Error(err))
		}
	}
	return nil
}

func (r *ReportRunner) query(ctx context.Context, def reportDef) (*model.ReportTable, error) {
	if !def.total {
		return r.Repo.Table(ctx, def.query, def.args...)
	}

	sum, err := r.Repo.Sum(ctx, def.query, def.args...)
	if err != nil {
		return nil, err
	}
	table := &model.ReportTable{Columns: []string{"customer_id", "total_amount"}, Rows: [][]string{}}
	if sum.Valid {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(r.Params.CustomerID),
			model.FormatAmount(sum.Float64),
		})
	}
	return table, nil
}
