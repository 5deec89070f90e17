package model_test

import (
    "math"
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/unclebandit/patoche-etl/internal/model"
)

func TestFormatAmount(t *testing.T) {
    tests := []struct {
        in   float64
        want string
    }{
        {150, "150.0"},
        {150.5, "150.5"},
        {0, "0.0"},
        {-20, "-20.0"},
        {40.25 + 9.75, "50.0"},
        {0.1 + 0.2, "0.30000000000000004"},
        {math.Inf(1), "+Inf"},
    }

    for _, tt := range tests {
        assert.Equal(t, tt.want, model.FormatAmount(tt.in))
    }
}

func TestReportTableEmpty(t *testing.T) {
    var nilTable *model.ReportTable
    assert.True(t, nilTable.Empty())
    assert.True(t, (&model.ReportTable{Columns: []string{"id"}}).Empty())
    assert.False(t, (&model.ReportTable{Rows: [][]string{{"1"}}}).Empty())
}
