package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gseakit/gseakit/internal/concat"
)

func newConcatCmd() *cobra.Command {
	var (
		baseDir      string
		outdir       string
		mappingsFile string
	)

	cmd := &cobra.Command{
		Use:   "concat",
		Short: "Concatenate per-dataset GSEA tables into combined block files",
		Long: `Collect the gene tables from GSEA run folders matching each mapping's
folder pattern and concatenate them into one multi-block file per mapping,
with a dataset accession line opening each block. Custom mappings can be
supplied as a YAML list with output, folder_pattern and file_name keys.`,
		Example: `  gseakit concat --base-dir ./gsea_runs
  gseakit concat --base-dir ./gsea_runs --mappings mappings.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			mappings := concat.DefaultMappings()
			if mappingsFile != "" {
				loaded, err := loadMappings(mappingsFile)
				if err != nil {
					return err
				}
				mappings = loaded
			}

			c := concat.New(baseDir, outdir)
			c.SetLogger(logger)

			results, err := c.Run(mappings)
			if err != nil {
				return err
			}

			total := 0
			for _, r := range results {
				total += r.Files
			}
			if total == 0 {
				return fmt.Errorf("no GSEA tables found under %s", baseDir)
			}

			logger.Info("concatenation complete",
				zap.Int("outputs", len(results)),
				zap.Int("files", total),
				zap.String("outdir", outdir))
			return nil
		},
	}

	cmd.Flags().StringVar(&baseDir, "base-dir", ".",
		"Directory containing the GSEA run folders")
	cmd.Flags().StringVar(&outdir, "outdir", "concatenated_gsea_results",
		"Directory for the concatenated files")
	cmd.Flags().StringVar(&mappingsFile, "mappings", "",
		"YAML file overriding the default output mappings")

	return cmd
}

func loadMappings(path string) ([]concat.Mapping, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mappings file: %w", err)
	}

	var mappings []concat.Mapping
	if err := yaml.Unmarshal(content, &mappings); err != nil {
		return nil, fmt.Errorf("parse mappings file: %w", err)
	}
	if len(mappings) == 0 {
		return nil, fmt.Errorf("mappings file %s defines no mappings", path)
	}
	for i, m := range mappings {
		if m.Output == "" || m.FolderPattern == "" || m.FileName == "" {
			return nil, fmt.Errorf("mapping %d: output, folder_pattern and file_name are all required", i)
		}
	}
	return mappings, nil
}
