package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// Result is one analyzed enrichment: statistics plus cutoff evaluation.
type Result struct {
	Dataset  string
	GeneSet  string
	Filename string
	Measurements
	Significance Significance
}

// Analyzer extracts and evaluates statistics from a directory of annotated
// enrichment plot SVGs.
type Analyzer struct {
	Cutoffs Cutoffs
	logger  *zap.Logger
}

// NewAnalyzer creates an analyzer with the given cutoffs.
func NewAnalyzer(c Cutoffs) *Analyzer {
	return &Analyzer{Cutoffs: c, logger: zap.NewNop()}
}

// SetLogger sets the logger for per-file warnings.
func (a *Analyzer) SetLogger(l *zap.Logger) {
	a.logger = l
}

// AnalyzeDir scans dir for *.svg files in sorted order, extracting and
// evaluating the embedded statistics. Files with unparseable names or
// missing statistics are skipped with a warning.
func (a *Analyzer) AnalyzeDir(dir string) ([]Result, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.svg"))
	if err != nil {
		return nil, fmt.Errorf("glob svg files: %w", err)
	}
	sort.Strings(matches)

	results := make([]Result, 0, len(matches))
	for _, path := range matches {
		name := filepath.Base(path)

		dataset, geneSet, ok := ParseEnplotName(name)
		if !ok {
			a.logger.Warn("skipping file with unexpected name", zap.String("file", name))
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			a.logger.Warn("could not read plot", zap.String("file", name), zap.Error(err))
			continue
		}

		m, ok := FromSVG(string(content))
		if !ok {
			a.logger.Warn("statistics not found in plot", zap.String("file", name))
			continue
		}

		results = append(results, Result{
			Dataset:      dataset,
			GeneSet:      geneSet,
			Filename:     name,
			Measurements: m,
			Significance: Evaluate(m, a.Cutoffs),
		})
	}
	return results, nil
}

// resultColumns is the CSV header of the analysis report.
var resultColumns = []string{
	"GSE", "Gene_Set", "NES", "FDR_q_val", "Nominal_p_val",
	"NES_Significant", "FDR_Significant", "PVal_Significant",
	"Overall_Significant", "Filename",
}

// WriteResultsCSV writes the analysis results as CSV.
func WriteResultsCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		record := []string{
			r.Dataset,
			r.GeneSet,
			formatFloat(r.NES),
			formatFloat(r.FDR),
			formatFloat(r.PValue),
			strconv.FormatBool(r.Significance.NES),
			strconv.FormatBool(r.Significance.FDR),
			strconv.FormatBool(r.Significance.PValue),
			strconv.FormatBool(r.Significance.Overall),
			r.Filename,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", r.Filename, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// GeneSetSummary aggregates the results of one gene set across datasets.
type GeneSetSummary struct {
	GeneSet     string
	Total       int
	Significant int
	MeanNES     float64
	MeanFDR     float64
}

// SummarizeByGeneSet groups results per gene set, sorted by name.
func SummarizeByGeneSet(results []Result) []GeneSetSummary {
	groups := map[string][]Result{}
	for _, r := range results {
		groups[r.GeneSet] = append(groups[r.GeneSet], r)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]GeneSetSummary, 0, len(names))
	for _, name := range names {
		rs := groups[name]
		nes := make([]float64, len(rs))
		fdr := make([]float64, len(rs))
		significant := 0
		for i, r := range rs {
			nes[i] = r.NES
			fdr[i] = r.FDR
			if r.Significance.Overall {
				significant++
			}
		}
		summaries = append(summaries, GeneSetSummary{
			GeneSet:     name,
			Total:       len(rs),
			Significant: significant,
			MeanNES:     stat.Mean(nes, nil),
			MeanFDR:     stat.Mean(fdr, nil),
		})
	}
	return summaries
}

// DistinctDatasets returns the number of distinct dataset accessions.
func DistinctDatasets(results []Result) int {
	seen := map[string]struct{}{}
	for _, r := range results {
		seen[r.Dataset] = struct{}{}
	}
	return len(seen)
}
