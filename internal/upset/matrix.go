// Package upset tabulates exclusive dataset-intersection sizes of
// leading-edge genes and renders them as an UpSet-style bar chart.
package upset

import (
	"sort"
	"strings"

	"github.com/gseakit/gseakit/internal/leading"
)

// Combo is one exclusive intersection: the genes flagged in exactly this
// combination of datasets and no others.
type Combo struct {
	Datasets []string
	Degree   int
	Count    int
}

// Label returns a compact display label for the combination.
func (c Combo) Label() string {
	return strings.Join(c.Datasets, " & ")
}

// Matrix holds the intersection table derived from a BlockSet.
type Matrix struct {
	// Categories are the datasets ordered by descending gene-set size.
	Categories []string
	// Combos are ordered by descending degree, then descending count,
	// then ascending label, for deterministic output.
	Combos []Combo
}

// FromContents builds the intersection matrix from per-dataset gene sets.
func FromContents(blocks leading.BlockSet) *Matrix {
	categories := make([]string, 0, len(blocks))
	for ds := range blocks {
		categories = append(categories, ds)
	}
	sort.Slice(categories, func(i, j int) bool {
		if len(blocks[categories[i]]) != len(blocks[categories[j]]) {
			return len(blocks[categories[i]]) > len(blocks[categories[j]])
		}
		return categories[i] < categories[j]
	})

	counts := map[string]int{}
	members := map[string][]string{}
	for _, datasets := range leading.Invert(blocks) {
		list := make([]string, 0, len(datasets))
		for ds := range datasets {
			list = append(list, ds)
		}
		sort.Strings(list)
		key := strings.Join(list, "\x1f")
		counts[key]++
		if _, ok := members[key]; !ok {
			members[key] = list
		}
	}

	combos := make([]Combo, 0, len(counts))
	for key, n := range counts {
		list := members[key]
		combos = append(combos, Combo{Datasets: list, Degree: len(list), Count: n})
	}
	sort.Slice(combos, func(i, j int) bool {
		if combos[i].Degree != combos[j].Degree {
			return combos[i].Degree > combos[j].Degree
		}
		if combos[i].Count != combos[j].Count {
			return combos[i].Count > combos[j].Count
		}
		return combos[i].Label() < combos[j].Label()
	})

	return &Matrix{Categories: categories, Combos: combos}
}

// Filter returns a copy of the matrix keeping only combinations with
// degree >= minDegree. A minDegree of 0 or 1 keeps everything.
func (m *Matrix) Filter(minDegree int) *Matrix {
	if minDegree <= 1 {
		return m
	}
	kept := make([]Combo, 0, len(m.Combos))
	for _, c := range m.Combos {
		if c.Degree >= minDegree {
			kept = append(kept, c)
		}
	}
	return &Matrix{Categories: m.Categories, Combos: kept}
}

// TotalGenes returns the number of distinct genes across all combinations.
func (m *Matrix) TotalGenes() int {
	total := 0
	for _, c := range m.Combos {
		total += c.Count
	}
	return total
}
