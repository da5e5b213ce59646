package svgedit

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// enplotGzRe parses compressed plot filenames like
// "GSE100132_DOXSET_RINN_DOX_UP+DOWN_GENES_enplot.svg.gz" into accession,
// regulation type and gene set.
var enplotGzRe = regexp.MustCompile(`^(GSE\d+)_(.+?)_(DOWN_GENES|UP_GENES|DOX_GENES|DOX_UP\+DOWN_GENES)_enplot\.svg\.gz$`)

// PlotName identifies one compressed enrichment plot file.
type PlotName struct {
	Accession  string
	Regulation string
	GeneSet    string
}

// ParseName splits a compressed plot filename into its parts.
func ParseName(filename string) (PlotName, bool) {
	m := enplotGzRe.FindStringSubmatch(filename)
	if m == nil {
		return PlotName{}, false
	}
	return PlotName{Accession: m[1], Regulation: m[2], GeneSet: m[3]}, true
}

// FolderPattern maps a regulation type to the GSEA run folder glob holding
// the matching HTML report.
func FolderPattern(accession, regulation string) (string, bool) {
	switch {
	case strings.Contains(regulation, "DOXSET_RINN"):
		return accession + "_DOXSET_RINN.Gsea.*", true
	case strings.Contains(regulation, "DOXSET"):
		return accession + "_DOXSET_1.Gsea.*", true
	case strings.Contains(regulation, "Upregulated"):
		if strings.Contains(regulation, "Diff_of_Classes") {
			return accession + "_Upregulated_Diff_of_Classes.Gsea.*", true
		}
		return accession + "_Upregulated.Gsea.*", true
	case strings.Contains(regulation, "Downregulated"):
		if strings.Contains(regulation, "Diff_of_Classes") {
			return accession + "_Downregulated_Diff_of_Classes.Gsea.*", true
		}
		return accession + "_Downregulated.Gsea.*", true
	}
	return "", false
}

// LocateHTML finds the HTML report for a plot under baseDir.
func LocateHTML(baseDir string, name PlotName) (string, error) {
	pattern, ok := FolderPattern(name.Accession, name.Regulation)
	if !ok {
		return "", fmt.Errorf("unknown regulation type %q", name.Regulation)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(baseDir, pattern))
	if err != nil {
		return "", fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no run folder matches %s", pattern)
	}
	sort.Strings(matches)

	htmlPath := filepath.Join(matches[0], name.GeneSet+".html")
	if _, err := os.Stat(htmlPath); err != nil {
		return "", fmt.Errorf("report %s: %w", htmlPath, err)
	}
	return htmlPath, nil
}
