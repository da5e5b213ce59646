package leading

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `GSE1
NAME	SYMBOL	RANK IN GENE LIST	CORE ENRICHMENT
row_0	A	1	Yes
row_1	B	2	yes
row_2	D	3	No

GSE2
NAME	SYMBOL	RANK IN GENE LIST	CORE ENRICHMENT
row_0	B	1	YES
row_1	C	2	Yes
`

func TestParser_Blocks(t *testing.T) {
	p := NewParserFromReader(strings.NewReader(sampleTable), Options{})

	blocks, err := p.Blocks()
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Equal(t, map[string]struct{}{"A": {}, "B": {}}, blocks["GSE1"])
	assert.Equal(t, map[string]struct{}{"B": {}, "C": {}}, blocks["GSE2"])
}

func TestParser_SkipsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		"GSE1",
		"NAME\tSYMBOL\tRANK IN GENE LIST\tCORE ENRICHMENT",
		"row_0\tA",              // too short, skipped
		"row_1\tB\t2\tYes",      // kept
		"row_2\t\t3\tYes",       // empty symbol, skipped
		"row_3\tC\t4\tYes\t\t",  // trailing tabs trimmed, kept
	}, "\n")

	p := NewParserFromReader(strings.NewReader(input), Options{})
	blocks, err := p.Blocks()
	require.NoError(t, err)

	assert.Equal(t, map[string]struct{}{"B": {}, "C": {}}, blocks["GSE1"])
}

func TestParser_IgnoresRowsBeforeHeader(t *testing.T) {
	input := strings.Join([]string{
		"row_0\tA\t1\tYes", // before any block, ignored
		"GSE1",
		"row_0\tB\t1\tYes", // before header, ignored
		"NAME\tSYMBOL\tRANK IN GENE LIST\tCORE ENRICHMENT",
		"row_1\tC\t2\tYes",
	}, "\n")

	p := NewParserFromReader(strings.NewReader(input), Options{})
	blocks, err := p.Blocks()
	require.NoError(t, err)

	assert.Equal(t, map[string]struct{}{"C": {}}, blocks["GSE1"])
}

func TestParser_DropsEmptyBlocks(t *testing.T) {
	input := strings.Join([]string{
		"GSE1",
		"NAME\tSYMBOL\tRANK IN GENE LIST\tCORE ENRICHMENT",
		"row_0\tA\t1\tNo",
		"GSE2",
		"NAME\tSYMBOL\tRANK IN GENE LIST\tCORE ENRICHMENT",
		"row_0\tB\t1\tYes",
	}, "\n")

	p := NewParserFromReader(strings.NewReader(input), Options{})
	blocks, err := p.Blocks()
	require.NoError(t, err)

	require.Len(t, blocks, 1)
	assert.Contains(t, blocks, "GSE2")
}

func TestParser_MissingColumnIsFatal(t *testing.T) {
	input := strings.Join([]string{
		"GSE1",
		"NAME\tSYMBOL\tRANK IN GENE LIST", // no flag column
		"row_0\tA\t1",
	}, "\n")

	p := NewParserFromReader(strings.NewReader(input), Options{})
	_, err := p.Blocks()
	require.Error(t, err)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, DefaultFlagColumn, missing.Column)
	assert.Contains(t, err.Error(), "CORE ENRICHMENT")
}

func TestParser_CustomOptions(t *testing.T) {
	input := strings.Join([]string{
		"DS1",
		"ID\tGENE\tFLAGGED",
		"row_0\tA\tYes",
	}, "\n")

	p := NewParserFromReader(strings.NewReader(input), Options{
		DatasetPrefix: "DS",
		HeaderMarker:  "ID",
		SymbolColumn:  "GENE",
		FlagColumn:    "FLAGGED",
	})
	blocks, err := p.Blocks()
	require.NoError(t, err)

	assert.Equal(t, map[string]struct{}{"A": {}}, blocks["DS1"])
}

func TestNewParser_GzipInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.tsv.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(sampleTable))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	p, err := NewParser(path, Options{})
	require.NoError(t, err)
	defer p.Close()

	blocks, err := p.Blocks()
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}

func TestNewParser_MissingFile(t *testing.T) {
	_, err := NewParser(filepath.Join(t.TempDir(), "nope.tsv"), Options{})
	require.Error(t, err)
}
