package svgedit

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gseakit/gseakit/internal/stats"
)

// Annotator processes a directory of compressed enrichment plots,
// writing annotated uncompressed SVGs to the output directory.
type Annotator struct {
	// BaseDir holds the GSEA run folders with the HTML reports.
	BaseDir string
	// InputDir holds the *_enplot.svg.gz files.
	InputDir string
	// OutputDir receives the annotated *.svg files.
	OutputDir string

	logger *zap.Logger
}

// NewAnnotator creates an annotator over the given directories.
func NewAnnotator(baseDir, inputDir, outputDir string) *Annotator {
	return &Annotator{
		BaseDir:   baseDir,
		InputDir:  inputDir,
		OutputDir: outputDir,
		logger:    zap.NewNop(),
	}
}

// SetLogger sets the logger for per-file progress and warnings.
func (a *Annotator) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Files returns the compressed plot files in sorted order.
func (a *Annotator) Files() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(a.InputDir, "*.svg.gz"))
	if err != nil {
		return nil, fmt.Errorf("glob plot files: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Run processes every compressed plot. Per-file failures are logged and
// counted, never fatal.
func (a *Annotator) Run(progress func()) (succeeded, failed int, err error) {
	files, err := a.Files()
	if err != nil {
		return 0, 0, err
	}
	if err := os.MkdirAll(a.OutputDir, 0755); err != nil {
		return 0, 0, fmt.Errorf("create output directory: %w", err)
	}

	for _, path := range files {
		if procErr := a.ProcessFile(path); procErr != nil {
			a.logger.Warn("could not annotate plot",
				zap.String("file", filepath.Base(path)),
				zap.Error(procErr))
			failed++
		} else {
			succeeded++
		}
		if progress != nil {
			progress()
		}
	}
	return succeeded, failed, nil
}

// ProcessFile annotates a single compressed plot file.
func (a *Annotator) ProcessFile(path string) error {
	filename := filepath.Base(path)

	name, ok := ParseName(filename)
	if !ok {
		return fmt.Errorf("unrecognized plot filename")
	}

	htmlPath, err := LocateHTML(a.BaseDir, name)
	if err != nil {
		return err
	}

	htmlContent, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}
	vals := stats.FromHTML(string(htmlContent))

	svg, err := readGzip(path)
	if err != nil {
		return err
	}

	annotated, err := Rewrite(svg, name.Accession, name.GeneSet, vals)
	if err != nil {
		return err
	}

	outName := strings.TrimSuffix(filename, ".gz")
	outPath := filepath.Join(a.OutputDir, outName)
	if err := os.WriteFile(outPath, annotated, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outName, err)
	}

	a.logger.Debug("annotated plot",
		zap.String("file", outName),
		zap.String("nes", vals.NES),
		zap.String("fdr", vals.FDR))
	return nil
}

func readGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plot: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompress plot: %w", err)
	}
	defer zr.Close()

	content, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("read plot: %w", err)
	}
	return content, nil
}
