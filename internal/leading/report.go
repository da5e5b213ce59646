package leading

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Header is the column header of both report files.
var Header = []string{"SYMBOL", "datasets_count", "datasets"}

// WriteCSV writes ranked rows as CSV with the standard header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.Symbol, strconv.Itoa(r.Count), strings.Join(r.Datasets, ";")}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", r.Symbol, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFiles writes the full ranked report and the max-only subset into
// outdir, using baseName as the file name stem. It returns both paths.
func WriteFiles(outdir, baseName string, rows []Row) (string, string, error) {
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return "", "", fmt.Errorf("create output directory: %w", err)
	}

	fullPath := filepath.Join(outdir, baseName+"_full.csv")
	if err := writeFile(fullPath, rows); err != nil {
		return "", "", err
	}

	maxPath := filepath.Join(outdir, baseName+"_max_only.csv")
	if err := writeFile(maxPath, MaxOnly(rows)); err != nil {
		return "", "", err
	}

	return fullPath, maxPath, nil
}

func writeFile(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
