// Package stats extracts GSEA statistics from report artifacts and evaluates
// them against significance cutoffs.
package stats

import (
	"regexp"
	"strconv"
	"strings"
)

// Measurements are the three numeric statistics of one enrichment analysis.
type Measurements struct {
	NES    float64
	FDR    float64
	PValue float64
}

// Values are the statistics as printed in a GSEA HTML report. Missing cells
// are reported as "N/A" so they can be rendered verbatim on plots.
type Values struct {
	NES    string
	PValue string
	FDR    string
}

var (
	svgNESRe  = regexp.MustCompile(`NES:\s*([-+]?\d*\.?\d+)`)
	svgFDRRe  = regexp.MustCompile(`FDR q-val:\s*([-+]?\d*\.?\d+)`)
	svgPValRe = regexp.MustCompile(`NOM p-val:\s*([-+]?\d*\.?\d+)`)

	htmlNESRe  = regexp.MustCompile(`Normalized Enrichment Score \(NES\)</td><td>([\d.-]+)</td>`)
	htmlPValRe = regexp.MustCompile(`Nominal p-value</td><td>([\d.-]+)</td>`)
	htmlFDRRe  = regexp.MustCompile(`FDR q-value</td><td>([\d.-]+)</td>`)
)

// FromSVG extracts the statistics from an annotated enrichment plot SVG.
// The second return is false when any of the three values is absent.
func FromSVG(content string) (Measurements, bool) {
	nes, okNES := matchFloat(svgNESRe, content)
	fdr, okFDR := matchFloat(svgFDRRe, content)
	pval, okPVal := matchFloat(svgPValRe, content)
	if !okNES || !okFDR || !okPVal {
		return Measurements{}, false
	}
	return Measurements{NES: nes, FDR: fdr, PValue: pval}, true
}

// FromHTML extracts the printed statistics from a GSEA HTML report page.
func FromHTML(content string) Values {
	return Values{
		NES:    matchString(htmlNESRe, content),
		PValue: matchString(htmlPValRe, content),
		FDR:    matchString(htmlFDRRe, content),
	}
}

func matchFloat(re *regexp.Regexp, content string) (float64, bool) {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func matchString(re *regexp.Regexp, content string) string {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return "N/A"
	}
	return m[1]
}

// ParseEnplotName splits an annotated plot filename like
// "GSE100132_DOXSET_RINN_DOX_UP+DOWN_GENES_enplot.svg" into its dataset
// accession and gene set name.
func ParseEnplotName(name string) (dataset, geneSet string, ok bool) {
	stem := strings.TrimSuffix(name, ".svg")
	stem = strings.TrimSuffix(stem, "_enplot")
	parts := strings.Split(stem, "_")
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], strings.Join(parts[1:], "_"), true
}
