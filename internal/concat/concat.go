// Package concat assembles per-dataset GSEA result tables into the
// concatenated multi-block files the rest of the toolkit consumes.
package concat

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Mapping describes one concatenated output: which GSEA run folders feed it
// and which file inside each folder is appended.
type Mapping struct {
	Output        string `yaml:"output"`
	FolderPattern string `yaml:"folder_pattern"`
	FileName      string `yaml:"file_name"`
}

// DefaultMappings returns the standard four concatenations of the GSEA
// export layout.
func DefaultMappings() []Mapping {
	return []Mapping{
		{Output: "DOXSET_RINN.tsv", FolderPattern: "*_DOXSET_RINN.Gsea.*", FileName: "DOX_UP+DOWN_GENES.tsv"},
		{Output: "Public_DOXSET.tsv", FolderPattern: "*_DOXSET_1.Gsea.*", FileName: "DOX_GENES.tsv"},
		{Output: "Upregulated_DOXSET.tsv", FolderPattern: "*_Upregulated.Gsea.*", FileName: "UP_GENES.tsv"},
		{Output: "Downregulated_DOXSET.tsv", FolderPattern: "*_Downregulated.Gsea.*", FileName: "DOWN_GENES.tsv"},
	}
}

// Result summarizes one mapping run.
type Result struct {
	Output  string
	Folders int
	Files   int
}

// Concatenator runs mappings against a base directory of GSEA run folders.
type Concatenator struct {
	BaseDir string
	OutDir  string
	logger  *zap.Logger
}

// New creates a Concatenator writing outputs into outDir.
func New(baseDir, outDir string) *Concatenator {
	return &Concatenator{BaseDir: baseDir, OutDir: outDir, logger: zap.NewNop()}
}

// SetLogger sets the logger for progress and warning messages.
func (c *Concatenator) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Run executes all mappings. A mapping matching no folders is a logged
// warning, not an error.
func (c *Concatenator) Run(mappings []Mapping) ([]Result, error) {
	if err := os.MkdirAll(c.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	results := make([]Result, 0, len(mappings))
	for _, m := range mappings {
		res, err := c.runMapping(m)
		if err != nil {
			return results, fmt.Errorf("mapping %s: %w", m.Output, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (c *Concatenator) runMapping(m Mapping) (Result, error) {
	folders, err := doublestar.FilepathGlob(filepath.Join(c.BaseDir, m.FolderPattern))
	if err != nil {
		return Result{}, fmt.Errorf("glob %s: %w", m.FolderPattern, err)
	}
	sort.Strings(folders)

	c.logger.Info("processing mapping",
		zap.String("output", m.Output),
		zap.Int("folders", len(folders)))

	if len(folders) == 0 {
		c.logger.Warn("no folders matched", zap.String("pattern", m.FolderPattern))
		return Result{Output: m.Output}, nil
	}

	outPath := filepath.Join(c.OutDir, m.Output)
	out, err := os.Create(outPath)
	if err != nil {
		return Result{}, fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	res := Result{Output: m.Output, Folders: len(folders)}
	for _, folder := range folders {
		srcPath := filepath.Join(folder, m.FileName)
		if _, err := os.Stat(srcPath); err != nil {
			c.logger.Warn("file not found in folder",
				zap.String("folder", filepath.Base(folder)),
				zap.String("file", m.FileName))
			continue
		}

		if err := c.appendBlock(out, folder, srcPath, res.Files > 0); err != nil {
			return res, err
		}
		res.Files++
	}

	c.logger.Info("concatenated",
		zap.String("output", m.Output),
		zap.Int("files", res.Files))
	return res, nil
}

// appendBlock writes one dataset block: the accession line derived from the
// folder name, then the table content, newline-terminated. Blocks after the
// first are preceded by a blank separator line.
func (c *Concatenator) appendBlock(out *os.File, folder, srcPath string, separator bool) error {
	accession := Accession(filepath.Base(folder))

	if separator {
		if _, err := io.WriteString(out, "\n"); err != nil {
			return fmt.Errorf("write separator: %w", err)
		}
	}
	if _, err := fmt.Fprintf(out, "%s\n", accession); err != nil {
		return fmt.Errorf("write accession: %w", err)
	}

	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", srcPath, err)
	}
	if _, err := out.Write(content); err != nil {
		return fmt.Errorf("append %s: %w", srcPath, err)
	}
	if len(content) > 0 && content[len(content)-1] != '\n' {
		if _, err := io.WriteString(out, "\n"); err != nil {
			return fmt.Errorf("terminate block: %w", err)
		}
	}
	return nil
}

// Accession extracts the dataset accession from a GSEA run folder name,
// e.g. "GSE100132_DOXSET_RINN.Gsea.1759" -> "GSE100132".
func Accession(folderName string) string {
	if i := strings.Index(folderName, "_"); i >= 0 {
		return folderName[:i]
	}
	return folderName
}
