// Package report renders report result sets for the operator.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/unclebandit/patoche-etl/internal/model"
)

// dividerWidth is the divider length contributed by each column.
const dividerWidth = 20

// PrintTable writes headers, a divider and one pipe-separated line per row.
func PrintTable(w io.Writer, table *model.ReportTable) error {
	var b strings.Builder
	b.WriteString(strings.Join(table.Columns, " | "))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len(table.Columns)*dividerWidth))
	b.WriteByte('\n')
	for _, row := range table.Rows {
		b.WriteString(strings.Join(row, " | "))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// PrintSection writes the heading and SQL text that precede every report.
func PrintSection(w io.Writer, n int, title, query string) error {
	_, err := fmt.Fprintf(w, "\n--- Report %d: %s ---\nSQL:\n%s\n\n", n, title, query)
	return err
}
