// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound is returned when an input file does not exist.
// The stage reading it is skipped; the run continues.
var ErrSourceNotFound = errors.New("source file not found")

// StoreError means the store could not be opened. Fatal to the process.
type StoreError struct {
	Driver string
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to open %s store: %v", e.Driver, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func NewStoreError(driver string, err error) error {
	return &StoreError{Driver: driver, Err: err}
}

// SchemaError means a table could not be created. Fatal to the process.
type SchemaError struct {
	Table string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("failed to create table %s: %v", e.Table, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func NewSchemaError(table string, err error) error {
	return &SchemaError{Table: table, Err: err}
}

// MalformedRecordError is a type coercion failure on one input record.
// It abandons the remaining records of the file.
type MalformedRecordError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("line %d: malformed %s %q", e.Line, e.Field, e.Value)
	}
	return fmt.Sprintf("line %d: malformed %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

func NewMalformedRecord(line int, field, value string, err error) error {
	return &MalformedRecordError{Line: line, Field: field, Value: value, Err: err}
}

// ReportError wraps the query failure that stopped the report stage.
type ReportError struct {
	Report string
	Err    error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report %q failed: %v", e.Report, e.Err)
}

func (e *ReportError) Unwrap() error { return e.Err }

func NewReportError(report string, err error) error {
	return &ReportError{Report: report, Err: err}
}

// IsFatal reports whether err must stop the whole run.
func IsFatal(err error) bool {
	var storeErr *StoreError
	var schemaErr *SchemaError
	return errors.As(err, &storeErr) || errors.As(err, &schemaErr)
}
