package ioutils

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOf(t *testing.T) {
	assert.Equal(t, CSV, FormatOf("a/b.csv"))
	assert.Equal(t, CSV, FormatOf("b.CSV.gz"))
	assert.Equal(t, JSONL, FormatOf("b.ndjson"))
	assert.Equal(t, JSON, FormatOf("b.json.gz"))
	assert.Equal(t, Parquet, FormatOf("b.parquet"))
	assert.Equal(t, Format(""), FormatOf("b.xlsx"))
}

func TestGzipRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv.gz")
	w, err := CreateMaybeCompressed(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "a,b\n1,2\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := OpenMaybeCompressed(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(b))
}

func TestPlainRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	w, err := CreateMaybeCompressed(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "x\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := OpenMaybeCompressed(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(b))
}
