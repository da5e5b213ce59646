// Package leading parses concatenated GSEA leading-edge tables and ranks
// genes by how many datasets flag them as core enrichment.
package leading

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Default parse options matching the GSEA report export format.
const (
	DefaultDatasetPrefix = "GSE"
	DefaultHeaderMarker  = "NAME"
	DefaultSymbolColumn  = "SYMBOL"
	DefaultFlagColumn    = "CORE ENRICHMENT"
)

// Options controls how the concatenated table is interpreted.
type Options struct {
	// DatasetPrefix identifies block-boundary lines: a line with no tab
	// whose trimmed content starts with this prefix opens a new block.
	DatasetPrefix string
	// HeaderMarker is the first column name of each per-block header line.
	HeaderMarker string
	// SymbolColumn is the required gene symbol column name.
	SymbolColumn string
	// FlagColumn is the required boolean-like column name; rows whose value
	// equals "yes" (case-insensitive) contribute their symbol to the block.
	FlagColumn string
}

func (o Options) withDefaults() Options {
	if o.DatasetPrefix == "" {
		o.DatasetPrefix = DefaultDatasetPrefix
	}
	if o.HeaderMarker == "" {
		o.HeaderMarker = DefaultHeaderMarker
	}
	if o.SymbolColumn == "" {
		o.SymbolColumn = DefaultSymbolColumn
	}
	if o.FlagColumn == "" {
		o.FlagColumn = DefaultFlagColumn
	}
	return o
}

// Columns holds the header-resolved indices of the required columns.
type Columns struct {
	Symbol int
	Flag   int
}

// BlockSet maps a dataset accession to its set of leading-edge gene symbols.
type BlockSet map[string]map[string]struct{}

// Parser reads dataset blocks from a concatenated GSEA results file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	opts       Options
}

// NewParser creates a parser for the given file.
// Supports both plain and gzipped input.
func NewParser(path string, opts Options) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin, opts), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results file: %w", err)
	}

	p := &Parser{file: file, opts: opts.withDefaults()}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read results file: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek results file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader, opts Options) *Parser {
	return &Parser{
		reader: bufio.NewReader(r),
		opts:   opts.withDefaults(),
	}
}

// Blocks consumes the whole input and returns the dataset blocks.
// Blocks with no flagged genes are dropped. A header missing one of the
// required columns aborts the parse with a MissingColumnError.
func (p *Parser) Blocks() (BlockSet, error) {
	blocks := BlockSet{}
	var current string
	var cols *Columns

	for {
		line, readErr := p.reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, &ParseError{Line: p.lineNumber + 1, Message: readErr.Error()}
		}
		done := readErr == io.EOF
		if done && line == "" {
			break
		}
		p.lineNumber++
		line = strings.TrimRight(line, "\r\n")

		if err := p.scanLine(line, blocks, &current, &cols); err != nil {
			return nil, err
		}

		if done {
			break
		}
	}

	for ds, genes := range blocks {
		if len(genes) == 0 {
			delete(blocks, ds)
		}
	}
	return blocks, nil
}

// scanLine classifies a single line and updates the parse state.
func (p *Parser) scanLine(line string, blocks BlockSet, current *string, cols **Columns) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	// Dataset boundary: bare accession token, no field separator.
	if !strings.Contains(line, "\t") && strings.HasPrefix(trimmed, p.opts.DatasetPrefix) {
		*current = trimmed
		if _, ok := blocks[trimmed]; !ok {
			blocks[trimmed] = make(map[string]struct{})
		}
		*cols = nil
		return nil
	}

	// Per-block header line.
	if *cols == nil && strings.HasPrefix(line, p.opts.HeaderMarker+"\t") {
		c, err := p.resolveColumns(line)
		if err != nil {
			return err
		}
		*cols = c
		return nil
	}

	// Data rows before any block or header are ignored.
	if *current == "" || *cols == nil {
		return nil
	}

	parts := strings.Split(line, "\t")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	need := (*cols).Symbol
	if (*cols).Flag > need {
		need = (*cols).Flag
	}
	if len(parts) < need+1 {
		// Malformed short row, skip.
		return nil
	}

	if strings.EqualFold(strings.TrimSpace(parts[(*cols).Flag]), "yes") {
		if symbol := strings.TrimSpace(parts[(*cols).Symbol]); symbol != "" {
			blocks[*current][symbol] = struct{}{}
		}
	}
	return nil
}

// resolveColumns locates the symbol and flag columns by name in a header line.
// Empty header cells are dropped before indexing, matching the export format
// where trailing tabs pad the header.
func (p *Parser) resolveColumns(headerLine string) (*Columns, error) {
	var names []string
	for _, c := range strings.Split(headerLine, "\t") {
		if c = strings.TrimSpace(c); c != "" {
			names = append(names, c)
		}
	}

	cols := &Columns{Symbol: -1, Flag: -1}
	for i, name := range names {
		switch name {
		case p.opts.SymbolColumn:
			if cols.Symbol == -1 {
				cols.Symbol = i
			}
		case p.opts.FlagColumn:
			if cols.Flag == -1 {
				cols.Flag = i
			}
		}
	}

	if cols.Symbol == -1 {
		return nil, &MissingColumnError{Line: p.lineNumber, Column: p.opts.SymbolColumn, Header: names}
	}
	if cols.Flag == -1 {
		return nil, &MissingColumnError{Line: p.lineNumber, Column: p.opts.FlagColumn, Header: names}
	}
	return cols, nil
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError reports an unreadable line with its position.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// MissingColumnError reports a header line without a required column.
type MissingColumnError struct {
	Line   int
	Column string
	Header []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("line %d: required column %q not found in header: %s",
		e.Line, e.Column, strings.Join(e.Header, ", "))
}
