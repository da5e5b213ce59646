package leading

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	rows := Rank(Invert(testBlocks()))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	want := "SYMBOL,datasets_count,datasets\n" +
		"B,2,GSE1;GSE2\n" +
		"A,1,GSE1\n" +
		"C,1,GSE2\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteFiles(t *testing.T) {
	outdir := filepath.Join(t.TempDir(), "intersections")
	rows := Rank(Invert(testBlocks()))

	fullPath, maxPath, err := WriteFiles(outdir, "DOXSET_RINN_intersections", rows)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outdir, "DOXSET_RINN_intersections_full.csv"), fullPath)
	assert.Equal(t, filepath.Join(outdir, "DOXSET_RINN_intersections_max_only.csv"), maxPath)

	full, err := os.ReadFile(fullPath)
	require.NoError(t, err)
	assert.Equal(t, 4, bytes.Count(full, []byte("\n"))) // header + 3 rows

	maxOnly, err := os.ReadFile(maxPath)
	require.NoError(t, err)
	assert.Equal(t, "SYMBOL,datasets_count,datasets\nB,2,GSE1;GSE2\n", string(maxOnly))
}

func TestWriteFiles_Idempotent(t *testing.T) {
	outdir := t.TempDir()
	rows := Rank(Invert(testBlocks()))

	fullPath, _, err := WriteFiles(outdir, "report", rows)
	require.NoError(t, err)
	first, err := os.ReadFile(fullPath)
	require.NoError(t, err)

	_, _, err = WriteFiles(outdir, "report", rows)
	require.NoError(t, err)
	second, err := os.ReadFile(fullPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
