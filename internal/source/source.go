// Package source supplies candidate records to the ingestors, one
// []string per delimited line.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	appErrors "github.com/unclebandit/patoche-etl/internal/errors"
)

// Source is one input file's worth of records, header included.
type Source interface {
	Name() string
	Open() (Reader, error)
}

// Reader yields records until io.EOF.
type Reader interface {
	Read() ([]string, error)
	Close() error
}

// CSVFile reads comma-separated UTF-8 records from Path.
type CSVFile struct {
	Path string
}

func (f *CSVFile) Name() string { return f.Path }

// Open returns appErrors.ErrSourceNotFound when the file does not exist.
func (f *CSVFile) Open() (Reader, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", f.Path, appErrors.ErrSourceNotFound)
		}
		return nil, err
	}

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return &csvReader{file: file, r: r}, nil
}

type csvReader struct {
	file *os.File
	r    *csv.Reader
}

func (c *csvReader) Read() ([]string, error) { return c.r.Read() }
func (c *csvReader) Close() error            { return c.file.Close() }

// Memory serves records held in memory. A nil Records means the source is absent.
type Memory struct {
	Label   string
	Records [][]string
}

func (m *Memory) Name() string { return m.Label }

func (m *Memory) Open() (Reader, error) {
	if m.Records == nil {
		return nil, fmt.Errorf("%s: %w", m.Label, appErrors.ErrSourceNotFound)
	}
	return &memoryReader{records: m.Records}, nil
}

type memoryReader struct {
	records [][]string
	pos     int
}

func (m *memoryReader) Read() ([]string, error) {
	if m.pos >= len(m.records) {
		return nil, io.EOF
	}
	rec := m.records[m.pos]
	m.pos++
	return rec, nil
}

func (m *memoryReader) Close() error { return nil }
