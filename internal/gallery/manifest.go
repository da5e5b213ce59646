// Package gallery builds self-contained HTML galleries of annotated
// enrichment plots, with every image embedded as a base64 data URI.
package gallery

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Entry is one dataset's set of enrichment plots, as data URIs. The fields
// are template.URL so html/template does not strip the data: scheme.
// DoxRinn may be empty; the curated gene set was not run on every dataset.
type Entry struct {
	Dataset       string
	DiffOfClasses bool
	Up            template.URL
	Down          template.URL
	Dox           template.URL
	DoxRinn       template.URL
}

// Manifest is the set of datasets discovered in a plot directory.
type Manifest struct {
	Entries []Entry
}

// Datasets returns the dataset accessions in order.
func (m *Manifest) Datasets() []string {
	names := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		names[i] = e.Dataset
	}
	return names
}

// Discover scans dir for annotated plot SVGs, groups them by dataset and
// embeds each plot. Datasets missing any of the three required plots are
// skipped with a warning; a missing curated (DOXSET_RINN) plot is noted only.
func Discover(dir string, logger *zap.Logger) (*Manifest, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.svg"))
	if err != nil {
		return nil, fmt.Errorf("glob plot directory: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no svg plots found in %s", dir)
	}

	seen := map[string]struct{}{}
	diff := map[string]bool{}
	var datasets []string
	for _, f := range files {
		name := filepath.Base(f)
		ds := name
		if i := strings.Index(name, "_"); i >= 0 {
			ds = name[:i]
		}
		if _, ok := seen[ds]; !ok {
			seen[ds] = struct{}{}
			datasets = append(datasets, ds)
		}
		if strings.Contains(name, "Diff_of_Classes") {
			diff[ds] = true
		}
	}
	sort.Strings(datasets)

	m := &Manifest{}
	for _, ds := range datasets {
		entry, err := buildEntry(dir, ds, diff[ds], logger)
		if err != nil {
			logger.Warn("skipping dataset", zap.String("dataset", ds), zap.Error(err))
			continue
		}
		m.Entries = append(m.Entries, entry)
	}

	if len(m.Entries) == 0 {
		return nil, fmt.Errorf("no complete datasets found in %s", dir)
	}
	return m, nil
}

func buildEntry(dir, dataset string, diffOfClasses bool, logger *zap.Logger) (Entry, error) {
	upName := dataset + "_Upregulated_UP_GENES_enplot.svg"
	downName := dataset + "_Downregulated_DOWN_GENES_enplot.svg"
	if diffOfClasses {
		upName = dataset + "_Upregulated_Diff_of_Classes_UP_GENES_enplot.svg"
		downName = dataset + "_Downregulated_Diff_of_Classes_DOWN_GENES_enplot.svg"
	}

	entry := Entry{Dataset: dataset, DiffOfClasses: diffOfClasses}

	up, err := DataURI(filepath.Join(dir, upName))
	if err != nil {
		return Entry{}, err
	}
	down, err := DataURI(filepath.Join(dir, downName))
	if err != nil {
		return Entry{}, err
	}
	dox, err := DataURI(filepath.Join(dir, dataset+"_DOXSET_1_DOX_GENES_enplot.svg"))
	if err != nil {
		return Entry{}, err
	}
	entry.Up = template.URL(up)
	entry.Down = template.URL(down)
	entry.Dox = template.URL(dox)

	rinn, err := DataURI(filepath.Join(dir, dataset+"_DOXSET_RINN_DOX_UP+DOWN_GENES_enplot.svg"))
	if err != nil {
		logger.Info("no curated gene set plot", zap.String("dataset", dataset))
	} else {
		entry.DoxRinn = template.URL(rinn)
	}
	return entry, nil
}

// DataURI reads a file and returns it as a base64 data URI. The media type
// is derived from the file extension (svg or png).
func DataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	mediaType := "image/svg+xml"
	if strings.EqualFold(filepath.Ext(path), ".png") {
		mediaType = "image/png"
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
