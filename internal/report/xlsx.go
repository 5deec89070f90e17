package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/unclebandit/patoche-etl/internal/model"
)

// maxSheetName is Excel's limit on sheet name length, in characters.
const maxSheetName = 31

// XLSXExporter collects report tables and writes them as one workbook,
// one sheet per report.
type XLSXExporter struct {
	Path   string
	sheets []sheet
}

type sheet struct {
	name  string
	table *model.ReportTable
}

func NewXLSXExporter(path string) *XLSXExporter {
	return &XLSXExporter{Path: path}
}

// Add queues table under a sheet derived from the report number and title.
func (e *XLSXExporter) Add(n int, title string, table *model.ReportTable) {
	name := fmt.Sprintf("%d %s", n, title)
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	e.sheets = append(e.sheets, sheet{name: name, table: table})
}

// Save writes the workbook. Nothing is written when no table was added.
func (e *XLSXExporter) Save() error {
	if len(e.sheets) == 0 {
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range e.sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("create sheet %q: %w", s.name, err)
		}

		if err := writeRow(f, s.name, 1, s.table.Columns); err != nil {
			return err
		}
		for r, row := range s.table.Rows {
			if err := writeRow(f, s.name, r+2, row); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(e.Path); err != nil {
		return fmt.Errorf("save workbook %s: %w", e.Path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheetName string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("write row %d of %q: %w", row, sheetName, err)
	}
	return nil
}
