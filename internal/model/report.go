// internal/model/report.go
package model

import (
    "math"
    "strconv"
    "strings"
)

// ReportTable is the result set of one report query, already rendered to text.
type ReportTable struct {
    Columns []string
    Rows    [][]string
}

func (t *ReportTable) Empty() bool {
    return t == nil || len(t.Rows) == 0
}

// FormatAmount renders a floating point value in its shortest exact form,
// keeping one decimal on whole numbers: 150 -> "150.0", 99.5 -> "99.5".
func FormatAmount(v float64) string {
    s := strconv.FormatFloat(v, 'f', -1, 64)
    if math.IsInf(v, 0) || math.IsNaN(v) || strings.Contains(s, ".") {
        return s
    }
    return s + ".0"
}
