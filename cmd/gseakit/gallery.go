package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gseakit/gseakit/internal/gallery"
)

func newGalleryCmd() *cobra.Command {
	var (
		svgDir   string
		outdir   string
		mode     string
		title    string
		subtitle string
	)

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Build self-contained HTML galleries of enrichment plots",
		Long: `Group the annotated enrichment plots by dataset and build portable HTML
galleries with every image embedded as a base64 data URI. The static gallery
shows all datasets at once; the interactive one adds a dataset selector.`,
		Example: `  gseakit gallery
  gseakit gallery --mode interactive
  gseakit gallery --svg-dir annotated_enplots --outdir docs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			if mode != "static" && mode != "interactive" && mode != "both" {
				return fmt.Errorf("unknown mode %q (want static, interactive or both)", mode)
			}

			manifest, err := gallery.Discover(svgDir, logger)
			if err != nil {
				return err
			}
			logger.Info("discovered datasets",
				zap.Int("datasets", len(manifest.Entries)),
				zap.Strings("accessions", manifest.Datasets()))

			if err := os.MkdirAll(outdir, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			now := time.Now()

			if mode == "static" || mode == "both" {
				path := filepath.Join(outdir, "enrichment_plots_gallery.html")
				if err := writeGallery(path, func(f *os.File) error {
					return gallery.WriteStatic(f, manifest, title, subtitle, now)
				}); err != nil {
					return err
				}
				logger.Info("wrote static gallery", zap.String("path", path))
			}

			if mode == "interactive" || mode == "both" {
				path := filepath.Join(outdir, "enrichment_plots_gallery_interactive.html")
				if err := writeGallery(path, func(f *os.File) error {
					return gallery.WriteInteractive(f, manifest, title, now)
				}); err != nil {
					return err
				}
				logger.Info("wrote interactive gallery", zap.String("path", path))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&svgDir, "svg-dir", "annotated_enplots",
		"Directory of annotated enrichment plot SVGs")
	cmd.Flags().StringVar(&outdir, "outdir", ".",
		"Directory for the gallery HTML files")
	cmd.Flags().StringVar(&mode, "mode", "both",
		"Which galleries to build: static, interactive or both")
	cmd.Flags().StringVar(&title, "title", "", "Gallery title override")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Gallery subtitle override (static only)")

	return cmd
}

func writeGallery(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}
