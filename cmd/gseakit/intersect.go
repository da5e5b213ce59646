package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gseakit/gseakit/internal/leading"
)

func newIntersectCmd() *cobra.Command {
	var (
		input         string
		outdir        string
		datasetPrefix string
		headerMarker  string
		symbolColumn  string
		flagColumn    string
	)

	cmd := &cobra.Command{
		Use:   "intersect",
		Short: "Rank leading-edge genes by how many datasets flag them",
		Long: `Parse a concatenated GSEA results file, collect the genes flagged as core
enrichment per dataset block, and write two ranked CSV reports: the full list
and the subset sharing the maximum dataset count.`,
		Example: `  gseakit intersect
  gseakit intersect --input concatenated_gsea_results/DOXSET_RINN.tsv --outdir intersections`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			parser, err := leading.NewParser(input, leading.Options{
				DatasetPrefix: datasetPrefix,
				HeaderMarker:  headerMarker,
				SymbolColumn:  symbolColumn,
				FlagColumn:    flagColumn,
			})
			if err != nil {
				return err
			}
			defer parser.Close()

			blocks, err := parser.Blocks()
			if err != nil {
				return err
			}
			if len(blocks) == 0 {
				return fmt.Errorf("no leading-edge genes found in %s", input)
			}

			rows := leading.Rank(leading.Invert(blocks))
			fullPath, maxPath, err := leading.WriteFiles(outdir, reportBase(input), rows)
			if err != nil {
				return err
			}

			logger.Info("wrote intersection reports",
				zap.Int("datasets", len(blocks)),
				zap.Int("genes", len(rows)),
				zap.Int("max_count", rows[0].Count),
				zap.String("full", fullPath),
				zap.String("max_only", maxPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "concatenated_gsea_results/DOXSET_RINN.tsv",
		"Concatenated GSEA results file ('-' for stdin)")
	cmd.Flags().StringVar(&outdir, "outdir", "concatenated_gsea_results/DOXSET_RINN_intersections",
		"Directory for the CSV reports")
	cmd.Flags().StringVar(&datasetPrefix, "dataset-prefix", leading.DefaultDatasetPrefix,
		"Prefix identifying dataset boundary lines")
	cmd.Flags().StringVar(&headerMarker, "header-marker", leading.DefaultHeaderMarker,
		"First column name of each per-block header line")
	cmd.Flags().StringVar(&symbolColumn, "symbol-column", leading.DefaultSymbolColumn,
		"Name of the gene symbol column")
	cmd.Flags().StringVar(&flagColumn, "flag-column", leading.DefaultFlagColumn,
		"Name of the core enrichment flag column")

	return cmd
}

// reportBase derives the report file stem from the input file name,
// e.g. "DOXSET_RINN.tsv" -> "DOXSET_RINN_intersections".
func reportBase(input string) string {
	stem := filepath.Base(input)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	if stem == "" || stem == "-" {
		stem = "leading_edge"
	}
	return stem + "_intersections"
}
