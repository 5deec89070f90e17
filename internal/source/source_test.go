package source_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/patoche-etl/internal/errors"
	"github.com/unclebandit/patoche-etl/internal/source"
)

func readAll(t *testing.T, src source.Source) [][]string {
	t.Helper()
	r, err := src.Open()
	require.NoError(t, err)
	defer r.Close()

	var out [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, rec)
	}
}

func TestCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.csv")
	content := "id,nom,prenom\n1,Doe,\"Jane, Jr\"\n2,Roe\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got := readAll(t, &source.CSVFile{Path: path})
	assert.Equal(t, [][]string{
		{"id", "nom", "prenom"},
		{"1", "Doe", "Jane, Jr"},
		{"2", "Roe"},
	}, got)
}

func TestCSVFileMissing(t *testing.T) {
	src := &source.CSVFile{Path: filepath.Join(t.TempDir(), "nope.csv")}
	_, err := src.Open()
	assert.ErrorIs(t, err, appErrors.ErrSourceNotFound)
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestMemory(t *testing.T) {
	recs := [][]string{{"h"}, {"a"}, {"b"}}
	assert.Equal(t, recs, readAll(t, &source.Memory{Label: "mem", Records: recs}))

	_, err := (&source.Memory{Label: "absent"}).Open()
	assert.ErrorIs(t, err, appErrors.ErrSourceNotFound)
}
