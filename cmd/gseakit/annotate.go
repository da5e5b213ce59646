package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gseakit/gseakit/internal/svgedit"
)

func newAnnotateCmd() *cobra.Command {
	var (
		baseDir  string
		inputDir string
		outdir   string
	)

	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Annotate enrichment plot SVGs with their statistics",
		Long: `Decompress each *_enplot.svg.gz file, look up the matching GSEA HTML
report for its NES, nominal p-value and FDR q-value, rewrite the plot title
to name the dataset and gene set, and write the annotated SVG. Files that
cannot be matched or parsed are skipped with a warning.`,
		Example: `  gseakit annotate --base-dir ./gsea_runs --input-dir enplot_svgs --outdir annotated_enplots`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			annotator := svgedit.NewAnnotator(baseDir, inputDir, outdir)
			annotator.SetLogger(logger)

			files, err := annotator.Files()
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no *.svg.gz plots found in %s", inputDir)
			}

			bar := progressbar.Default(int64(len(files)), "annotating")
			succeeded, failed, err := annotator.Run(func() { bar.Add(1) })
			if err != nil {
				return err
			}

			logger.Info("annotation complete",
				zap.Int("succeeded", succeeded),
				zap.Int("failed", failed),
				zap.String("outdir", outdir))
			if succeeded == 0 {
				return fmt.Errorf("no plots could be annotated")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseDir, "base-dir", ".",
		"Directory containing the GSEA run folders with HTML reports")
	cmd.Flags().StringVar(&inputDir, "input-dir", "ensplot_svgs_uncompressed",
		"Directory of compressed enrichment plots (*.svg.gz)")
	cmd.Flags().StringVar(&outdir, "outdir", "annotated_enplots",
		"Directory for the annotated SVGs")

	return cmd
}
