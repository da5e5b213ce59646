package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gseakit/gseakit/internal/stats"
	"github.com/gseakit/gseakit/internal/store"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		svgDir    string
		output    string
		storePath string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Extract and evaluate statistics from annotated enrichment plots",
		Long: `Read the NES, FDR q-value and nominal p-value embedded in each annotated
enrichment plot SVG, evaluate them against the significance cutoffs and write
a CSV report. Overall significance is gated on the FDR cutoff; --strict
additionally requires the p-value cutoff.

Cutoffs can be overridden in the config file under cutoffs.nes, cutoffs.fdr
and cutoffs.pvalue.`,
		Example: `  gseakit analyze
  gseakit analyze --svg-dir annotated_enplots --output gsea_analysis_results.csv
  gseakit analyze --store results.duckdb --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			cutoffs := cutoffsFromConfig()
			cutoffs.Strict = strict

			analyzer := stats.NewAnalyzer(cutoffs)
			analyzer.SetLogger(logger)

			results, err := analyzer.AnalyzeDir(svgDir)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				return fmt.Errorf("no valid enrichment plots found in %s", svgDir)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create report: %w", err)
			}
			if err := stats.WriteResultsCSV(f, results); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			logSummary(logger, results, cutoffs)
			logger.Info("wrote analysis report", zap.String("path", output))

			if storePath != "" {
				if err := persistResults(storePath, results, logger); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&svgDir, "svg-dir", "annotated_enplots",
		"Directory of annotated enrichment plot SVGs")
	cmd.Flags().StringVar(&output, "output", "gsea_analysis_results.csv",
		"CSV report path")
	cmd.Flags().StringVar(&storePath, "store", "",
		"Also persist results to this DuckDB database")
	cmd.Flags().BoolVar(&strict, "strict", false,
		"Require both FDR and p-value cutoffs for overall significance")

	return cmd
}

// cutoffsFromConfig merges config overrides onto the default cutoffs.
func cutoffsFromConfig() stats.Cutoffs {
	cutoffs := stats.DefaultCutoffs()
	if viper.IsSet("cutoffs.nes") {
		cutoffs.NES = viper.GetFloat64("cutoffs.nes")
	}
	if viper.IsSet("cutoffs.fdr") {
		cutoffs.FDR = viper.GetFloat64("cutoffs.fdr")
	}
	if viper.IsSet("cutoffs.pvalue") {
		cutoffs.PValue = viper.GetFloat64("cutoffs.pvalue")
	}
	return cutoffs
}

func logSummary(logger *zap.Logger, results []stats.Result, cutoffs stats.Cutoffs) {
	nesSig, fdrSig, pvalSig, overall := 0, 0, 0, 0
	for _, r := range results {
		if r.Significance.NES {
			nesSig++
		}
		if r.Significance.FDR {
			fdrSig++
		}
		if r.Significance.PValue {
			pvalSig++
		}
		if r.Significance.Overall {
			overall++
		}
	}

	logger.Info("analyzed enrichment results",
		zap.Int("analyses", len(results)),
		zap.Int("datasets", stats.DistinctDatasets(results)),
		zap.Float64("nes_cutoff", cutoffs.NES),
		zap.Float64("fdr_cutoff", cutoffs.FDR),
		zap.Float64("pvalue_cutoff", cutoffs.PValue))
	logger.Info("significance summary",
		zap.Int("nes_significant", nesSig),
		zap.Int("fdr_significant", fdrSig),
		zap.Int("pvalue_significant", pvalSig),
		zap.Int("overall_significant", overall))

	for _, s := range stats.SummarizeByGeneSet(results) {
		logger.Info("gene set summary",
			zap.String("gene_set", s.GeneSet),
			zap.Int("significant", s.Significant),
			zap.Int("total", s.Total),
			zap.Float64("mean_nes", s.MeanNES),
			zap.Float64("mean_fdr", s.MeanFDR))
	}
}

func persistResults(path string, results []stats.Result, logger *zap.Logger) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.WriteResults(results); err != nil {
		return err
	}

	n, err := s.Count()
	if err != nil {
		return err
	}
	logger.Info("persisted results", zap.String("store", path), zap.Int("rows", n))
	return nil
}
