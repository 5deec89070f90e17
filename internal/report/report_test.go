package report_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/unclebandit/patoche-etl/internal/model"
	"github.com/unclebandit/patoche-etl/internal/report"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	table := &model.ReportTable{
		Columns: []string{"id", "last_name"},
		Rows:    [][]string{{"1", "Doe"}, {"2", "Roe"}},
	}

	require.NoError(t, report.PrintTable(&buf, table))

	want := "id | last_name\n" + strings.Repeat("-", 40) + "\n1 | Doe\n2 | Roe\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintSection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.PrintSection(&buf, 2, "Orders", "SELECT 1"))
	assert.Equal(t, "\n--- Report 2: Orders ---\nSQL:\nSELECT 1\n\n", buf.String())
}

func TestXLSXExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.xlsx")
	exp := report.NewXLSXExporter(path)
	exp.Add(1, "Customers who consented to marketing", &model.ReportTable{
		Columns: []string{"id", "email"},
		Rows:    [][]string{{"1", "jane@x.com"}},
	})
	exp.Add(2, "Orders", &model.ReportTable{Columns: []string{"id"}, Rows: [][]string{}})

	require.NoError(t, exp.Save())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 2)
	assert.Equal(t, "1 Customers who consented to ma", sheets[0])
	assert.Equal(t, "2 Orders", sheets[1])

	rows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"id", "email"}, {"1", "jane@x.com"}}, rows)
}

func TestXLSXExporterTruncatesOnRuneBoundary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accents.xlsx")
	exp := report.NewXLSXExporter(path)
	title := strings.Repeat("a", 28) + "ééé"
	exp.Add(1, title, &model.ReportTable{Columns: []string{"id"}, Rows: [][]string{{"1"}}})

	require.NoError(t, exp.Save())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.Equal(t, "1 "+strings.Repeat("a", 28)+"é", sheets[0])
	assert.True(t, utf8.ValidString(sheets[0]))
}

func TestXLSXExporterWithoutTablesWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.xlsx")
	require.NoError(t, report.NewXLSXExporter(path).Save())
	_, err := excelize.OpenFile(path)
	assert.Error(t, err)
}
