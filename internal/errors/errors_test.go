package appErrors_test

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/unclebandit/patoche-etl/internal/errors"
)

func TestIsFatal(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"store open", appErrors.NewStoreError("sqlite3", cause), true},
		{"schema", appErrors.NewSchemaError("customers", cause), true},
		{"wrapped schema", fmt.Errorf("setup: %w", appErrors.NewSchemaError("orders", cause)), true},
		{"missing source", appErrors.ErrSourceNotFound, false},
		{"malformed record", appErrors.NewMalformedRecord(3, "consent", "yes", cause), false},
		{"report", appErrors.NewReportError("totals", cause), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fatal, appErrors.IsFatal(tt.err))
		})
	}
}

func TestMalformedRecordUnwraps(t *testing.T) {
	_, cause := strconv.Atoi("x")
	err := appErrors.NewMalformedRecord(4, "amount", "x", cause)

	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
	assert.Contains(t, err.Error(), `line 4: malformed amount "x"`)
}
