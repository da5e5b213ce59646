package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const annotatedSVG = `<svg xmlns="http://www.w3.org/2000/svg">
<text x="63" y="20">GSE100132 - DOX_UP+DOWN_GENES Enrichment</text>
<g><text x="350" y="50">NES: -1.823</text>
<text x="350" y="68">NOM p-val: 0.002</text>
<text x="350" y="86">FDR q-val: 0.041</text></g>
</svg>`

const reportHTML = `<table>
<tr><td>Normalized Enrichment Score (NES)</td><td>-1.823</td></tr>
<tr><td>Nominal p-value</td><td>0.002</td></tr>
<tr><td>FDR q-value</td><td>0.041</td></tr>
</table>`

func TestFromSVG(t *testing.T) {
	m, ok := FromSVG(annotatedSVG)
	require.True(t, ok)

	assert.InDelta(t, -1.823, m.NES, 1e-9)
	assert.InDelta(t, 0.041, m.FDR, 1e-9)
	assert.InDelta(t, 0.002, m.PValue, 1e-9)
}

func TestFromSVG_MissingStat(t *testing.T) {
	_, ok := FromSVG(`<svg><text>NES: 1.2</text><text>FDR q-val: 0.1</text></svg>`)
	assert.False(t, ok)
}

func TestFromHTML(t *testing.T) {
	v := FromHTML(reportHTML)

	assert.Equal(t, "-1.823", v.NES)
	assert.Equal(t, "0.002", v.PValue)
	assert.Equal(t, "0.041", v.FDR)
}

func TestFromHTML_MissingCellsAreNA(t *testing.T) {
	v := FromHTML(`<table><tr><td>FDR q-value</td><td>0.3</td></tr></table>`)

	assert.Equal(t, "N/A", v.NES)
	assert.Equal(t, "N/A", v.PValue)
	assert.Equal(t, "0.3", v.FDR)
}

func TestParseEnplotName(t *testing.T) {
	tests := []struct {
		name    string
		dataset string
		geneSet string
		ok      bool
	}{
		{"GSE17580_Downregulated_DOWN_GENES_enplot.svg", "GSE17580", "Downregulated_DOWN_GENES", true},
		{"GSE100132_DOXSET_RINN_DOX_UP+DOWN_GENES_enplot.svg", "GSE100132", "DOXSET_RINN_DOX_UP+DOWN_GENES", true},
		{"GSE1_X_enplot.svg", "GSE1", "X", true},
		{"noseparator.svg", "", "", false},
	}

	for _, tt := range tests {
		dataset, geneSet, ok := ParseEnplotName(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.dataset, dataset, tt.name)
		assert.Equal(t, tt.geneSet, geneSet, tt.name)
	}
}
