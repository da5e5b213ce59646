package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"github.com/gseakit/gseakit/internal/leading"
	"github.com/gseakit/gseakit/internal/upset"
)

func newUpsetCmd() *cobra.Command {
	var (
		input     string
		outdir    string
		minDegree int
		formats   []string
	)

	cmd := &cobra.Command{
		Use:   "upset",
		Short: "Plot leading-edge gene intersections across datasets",
		Long: `Tabulate which dataset combinations share leading-edge genes and render
the intersection sizes as an UpSet-style bar chart. With --min-degree 0 the
full unfiltered chart is written as a single SVG.`,
		Example: `  gseakit upset
  gseakit upset --min-degree 0
  gseakit upset --input DOXSET_RINN.tsv --outdir upset --min-degree 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			parser, err := leading.NewParser(input, leading.Options{})
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

			matrix := upset.FromContents(blocks).Filter(minDegree)
			if len(matrix.Combos) == 0 {
				return fmt.Errorf("no intersections with degree >= %d", minDegree)
			}

			if err := os.MkdirAll(outdir, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			opts := upset.RenderOptions{}
			if minDegree == 0 {
				// The full chart needs a bigger canvas.
				opts.Width, opts.Height = 24*vg.Inch, 8*vg.Inch
				formats = []string{"svg"}
			}

			stem := upsetBase(input, minDegree)
			for _, format := range formats {
				outPath := filepath.Join(outdir, stem+"."+format)
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				if err := upset.Render(matrix, f, format, opts); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				logger.Info("wrote upset chart", zap.String("path", outPath))
			}

			logger.Info("intersections plotted",
				zap.Int("datasets", len(matrix.Categories)),
				zap.Int("combinations", len(matrix.Combos)),
				zap.Int("genes", matrix.TotalGenes()))
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "concatenated_gsea_results/DOXSET_RINN.tsv",
		"Concatenated GSEA results file")
	cmd.Flags().StringVar(&outdir, "outdir", "concatenated_gsea_results/DOXSET_RINN_upset",
		"Directory for the chart files")
	cmd.Flags().IntVar(&minDegree, "min-degree", 5,
		"Minimum intersection degree to display (0 = full, SVG only)")
	cmd.Flags().StringSliceVar(&formats, "format", []string{"png", "svg"},
		"Output formats: svg, png")

	return cmd
}

func upsetBase(input string, minDegree int) string {
	stem := filepath.Base(input)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	if stem == "" || stem == "-" {
		stem = "leading_edge"
	}
	if minDegree == 0 {
		return stem + "_upset_full"
	}
	return fmt.Sprintf("%s_upset_minDegree%d", stem, minDegree)
}
