package svgedit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		filename string
		want     PlotName
		ok       bool
	}{
		{
			filename: "GSE17580_Downregulated_DOWN_GENES_enplot.svg.gz",
			want:     PlotName{Accession: "GSE17580", Regulation: "Downregulated", GeneSet: "DOWN_GENES"},
			ok:       true,
		},
		{
			filename: "GSE100132_DOXSET_RINN_DOX_UP+DOWN_GENES_enplot.svg.gz",
			want:     PlotName{Accession: "GSE100132", Regulation: "DOXSET_RINN", GeneSet: "DOX_UP+DOWN_GENES"},
			ok:       true,
		},
		{
			filename: "GSE9_Upregulated_Diff_of_Classes_UP_GENES_enplot.svg.gz",
			want:     PlotName{Accession: "GSE9", Regulation: "Upregulated_Diff_of_Classes", GeneSet: "UP_GENES"},
			ok:       true,
		},
		{filename: "not_a_plot.svg.gz", ok: false},
		{filename: "GSE1_Upregulated_UP_GENES_enplot.svg", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseName(tt.filename)
		assert.Equal(t, tt.ok, ok, tt.filename)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.filename)
		}
	}
}

func TestFolderPattern(t *testing.T) {
	tests := []struct {
		regulation string
		want       string
	}{
		{"DOXSET_RINN", "GSE1_DOXSET_RINN.Gsea.*"},
		{"DOXSET_1", "GSE1_DOXSET_1.Gsea.*"},
		{"Upregulated", "GSE1_Upregulated.Gsea.*"},
		{"Upregulated_Diff_of_Classes", "GSE1_Upregulated_Diff_of_Classes.Gsea.*"},
		{"Downregulated", "GSE1_Downregulated.Gsea.*"},
		{"Downregulated_Diff_of_Classes", "GSE1_Downregulated_Diff_of_Classes.Gsea.*"},
	}

	for _, tt := range tests {
		got, ok := FolderPattern("GSE1", tt.regulation)
		require.True(t, ok, tt.regulation)
		assert.Equal(t, tt.want, got, tt.regulation)
	}

	_, ok := FolderPattern("GSE1", "Mystery")
	assert.False(t, ok)
}

func TestLocateHTML(t *testing.T) {
	base := t.TempDir()
	runDir := filepath.Join(base, "GSE1_Upregulated.Gsea.1759")
	require.NoError(t, os.MkdirAll(runDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "UP_GENES.html"), []byte("<html/>"), 0644))

	name := PlotName{Accession: "GSE1", Regulation: "Upregulated", GeneSet: "UP_GENES"}
	path, err := LocateHTML(base, name)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(runDir, "UP_GENES.html"), path)

	_, err = LocateHTML(base, PlotName{Accession: "GSE2", Regulation: "Upregulated", GeneSet: "UP_GENES"})
	require.Error(t, err)
}
