package upset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gseakit/gseakit/internal/leading"
)

func testBlocks() leading.BlockSet {
	return leading.BlockSet{
		"GSE1": {"A": {}, "B": {}, "C": {}},
		"GSE2": {"B": {}, "C": {}},
		"GSE3": {"C": {}, "D": {}},
	}
}

func TestFromContents(t *testing.T) {
	m := FromContents(testBlocks())

	// Categories by descending cardinality, ties by name.
	assert.Equal(t, []string{"GSE1", "GSE2", "GSE3"}, m.Categories)

	// A -> {GSE1}, B -> {GSE1,GSE2}, C -> {GSE1,GSE2,GSE3}, D -> {GSE3}
	require.Len(t, m.Combos, 4)
	assert.Equal(t, Combo{Datasets: []string{"GSE1", "GSE2", "GSE3"}, Degree: 3, Count: 1}, m.Combos[0])
	assert.Equal(t, Combo{Datasets: []string{"GSE1", "GSE2"}, Degree: 2, Count: 1}, m.Combos[1])
	assert.Equal(t, 1, m.Combos[2].Degree)
	assert.Equal(t, 1, m.Combos[3].Degree)

	assert.Equal(t, 4, m.TotalGenes())
}

func TestFromContents_ComboOrderIsDeterministic(t *testing.T) {
	blocks := leading.BlockSet{
		"GSE1": {"A": {}, "B": {}},
		"GSE2": {"C": {}},
	}

	m := FromContents(blocks)
	require.Len(t, m.Combos, 2)
	// Equal degree: higher count first.
	assert.Equal(t, 2, m.Combos[0].Count)
	assert.Equal(t, "GSE1", m.Combos[0].Label())
	assert.Equal(t, "GSE2", m.Combos[1].Label())
}

func TestFilter(t *testing.T) {
	m := FromContents(testBlocks())

	filtered := m.Filter(2)
	require.Len(t, filtered.Combos, 2)
	for _, c := range filtered.Combos {
		assert.GreaterOrEqual(t, c.Degree, 2)
	}

	// minDegree <= 1 keeps everything.
	assert.Equal(t, m, m.Filter(0))
}

func TestComboLabel(t *testing.T) {
	c := Combo{Datasets: []string{"GSE1", "GSE2"}}
	assert.Equal(t, "GSE1 & GSE2", c.Label())
}

func TestRender_SVG(t *testing.T) {
	m := FromContents(testBlocks())

	var buf bytes.Buffer
	err := Render(m, &buf, "svg", RenderOptions{})
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "<svg"))
}

func TestRender_EmptyMatrix(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&Matrix{}, &buf, "svg", RenderOptions{})
	require.Error(t, err)
}
