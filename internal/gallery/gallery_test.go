package gallery

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlots(t *testing.T, dir, dataset string, withRinn bool) {
	t.Helper()
	names := []string{
		dataset + "_Upregulated_UP_GENES_enplot.svg",
		dataset + "_Downregulated_DOWN_GENES_enplot.svg",
		dataset + "_DOXSET_1_DOX_GENES_enplot.svg",
	}
	if withRinn {
		names = append(names, dataset+"_DOXSET_RINN_DOX_UP+DOWN_GENES_enplot.svg")
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<svg/>"), 0644))
	}
}

func TestDataURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.svg")
	require.NoError(t, os.WriteFile(path, []byte("<svg/>"), 0644))

	uri, err := DataURI(path)
	require.NoError(t, err)

	want := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte("<svg/>"))
	assert.Equal(t, want, uri)
}

func TestDataURI_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0644))

	uri, err := DataURI(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writePlots(t, dir, "GSE1", true)
	writePlots(t, dir, "GSE2", false)

	m, err := Discover(dir, nil)
	require.NoError(t, err)

	require.Len(t, m.Entries, 2)
	assert.Equal(t, []string{"GSE1", "GSE2"}, m.Datasets())

	assert.NotEmpty(t, m.Entries[0].DoxRinn)
	assert.Empty(t, m.Entries[1].DoxRinn)
}

func TestDiscover_SkipsIncompleteDatasets(t *testing.T) {
	dir := t.TempDir()
	writePlots(t, dir, "GSE1", false)
	// GSE2 only has the upregulated plot.
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "GSE2_Upregulated_UP_GENES_enplot.svg"), []byte("<svg/>"), 0644))

	m, err := Discover(dir, nil)
	require.NoError(t, err)

	require.Len(t, m.Entries, 1)
	assert.Equal(t, "GSE1", m.Entries[0].Dataset)
}

func TestDiscover_DiffOfClasses(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"GSE9_Upregulated_Diff_of_Classes_UP_GENES_enplot.svg",
		"GSE9_Downregulated_Diff_of_Classes_DOWN_GENES_enplot.svg",
		"GSE9_DOXSET_1_DOX_GENES_enplot.svg",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<svg/>"), 0644))
	}

	m, err := Discover(dir, nil)
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)
	assert.True(t, m.Entries[0].DiffOfClasses)
}

func TestDiscover_EmptyDir(t *testing.T) {
	_, err := Discover(t.TempDir(), nil)
	require.Error(t, err)
}

func TestWriteStatic(t *testing.T) {
	dir := t.TempDir()
	writePlots(t, dir, "GSE1", true)

	m, err := Discover(dir, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteStatic(&buf, m, "", "", time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)))
	html := buf.String()

	assert.Contains(t, html, "GSEA Enrichment Plots Gallery")
	assert.Contains(t, html, "GSE1")
	assert.Contains(t, html, "DOXSET_RINN (Curated)")
	assert.Contains(t, html, "Generated October 7, 2025")
	// Data URIs must survive template escaping. In attribute context the
	// "+" of the media type is emitted as &#43;, which browsers decode.
	assert.Contains(t, html, `src="data:image/svg&#43;xml;base64,`)
	assert.NotContains(t, html, "ZgotmplZ")
}

func TestWriteInteractive(t *testing.T) {
	dir := t.TempDir()
	writePlots(t, dir, "GSE1", false)
	writePlots(t, dir, "GSE2", false)

	m, err := Discover(dir, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteInteractive(&buf, m, "", time.Now()))
	html := buf.String()

	assert.Contains(t, html, `id="gse_GSE1"`)
	assert.Contains(t, html, `id="gse_GSE2"`)
	assert.Contains(t, html, "const datasetImages =")
	assert.Contains(t, html, `"dox_rinn":""`)
	// Script context: the JSON map keeps the media type's "+" intact.
	assert.Contains(t, html, "data:image/svg+xml;base64,")
	assert.NotContains(t, html, "&#43;xml")
}
