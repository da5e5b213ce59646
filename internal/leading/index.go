package leading

import "sort"

// GeneIndex maps a gene symbol to the set of dataset accessions in which it
// was flagged as leading-edge.
type GeneIndex map[string]map[string]struct{}

// Row is one ranked report entry.
type Row struct {
	Symbol   string
	Count    int
	Datasets []string
}

// Invert turns the per-dataset gene sets into a per-gene dataset index.
func Invert(blocks BlockSet) GeneIndex {
	index := GeneIndex{}
	for ds, genes := range blocks {
		for g := range genes {
			if _, ok := index[g]; !ok {
				index[g] = make(map[string]struct{})
			}
			index[g][ds] = struct{}{}
		}
	}
	return index
}

// Rank produces report rows sorted by descending dataset count, tie-broken by
// ascending gene symbol. The dataset list of each row is sorted ascending.
func Rank(index GeneIndex) []Row {
	rows := make([]Row, 0, len(index))
	for symbol, datasets := range index {
		list := make([]string, 0, len(datasets))
		for ds := range datasets {
			list = append(list, ds)
		}
		sort.Strings(list)
		rows = append(rows, Row{Symbol: symbol, Count: len(list), Datasets: list})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Symbol < rows[j].Symbol
	})
	return rows
}

// MaxOnly returns the prefix of ranked rows sharing the maximum count.
func MaxOnly(rows []Row) []Row {
	if len(rows) == 0 {
		return nil
	}
	maxCount := rows[0].Count
	out := make([]Row, 0, 1)
	for _, r := range rows {
		if r.Count != maxCount {
			break
		}
		out = append(out, r)
	}
	return out
}
