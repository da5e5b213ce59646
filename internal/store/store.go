// Package store caches analyzed enrichment results in DuckDB so that
// significance queries across runs do not require re-parsing the plot files.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/gseakit/gseakit/internal/stats"
)

// Store manages a DuckDB connection for caching enrichment results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS enrichment_results (
		dataset VARCHAR,
		gene_set VARCHAR,
		nes DOUBLE,
		fdr_q_value DOUBLE,
		nominal_p_value DOUBLE,
		nes_significant BOOLEAN,
		fdr_significant BOOLEAN,
		pval_significant BOOLEAN,
		overall_significant BOOLEAN,
		filename VARCHAR,
		PRIMARY KEY (dataset, gene_set)
	)`)
	return err
}

// WriteResults batch-inserts analyzed enrichments using the Appender API.
// Duplicate (dataset, gene_set) entries are deduplicated before writing.
func (s *Store) WriteResults(results []stats.Result) error {
	if len(results) == 0 {
		return nil
	}

	type key struct{ dataset, geneSet string }
	seen := make(map[key]bool, len(results))
	deduped := make([]stats.Result, 0, len(results))
	for _, r := range results {
		k := key{r.Dataset, r.GeneSet}
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, r)
		}
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "enrichment_results")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range deduped {
		if err := appender.AppendRow(
			r.Dataset, r.GeneSet,
			r.NES, r.FDR, r.PValue,
			r.Significance.NES, r.Significance.FDR, r.Significance.PValue,
			r.Significance.Overall, r.Filename,
		); err != nil {
			return fmt.Errorf("append enrichment result: %w", err)
		}
	}

	return appender.Flush()
}

// Clear removes all cached enrichment results.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM enrichment_results")
	return err
}

// Count returns the number of stored enrichment results.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM enrichment_results").Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}

// SignificantCount returns how many stored results meet the overall cutoff.
func (s *Store) SignificantCount() (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM enrichment_results WHERE overall_significant").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count significant results: %w", err)
	}
	return n, nil
}

// LookupDataset returns all stored results for one dataset accession,
// ordered by gene set name.
func (s *Store) LookupDataset(dataset string) ([]stats.Result, error) {
	rows, err := s.db.Query(`SELECT
		dataset, gene_set, nes, fdr_q_value, nominal_p_value,
		nes_significant, fdr_significant, pval_significant,
		overall_significant, filename
		FROM enrichment_results
		WHERE dataset = ?
		ORDER BY gene_set`, dataset)
	if err != nil {
		return nil, fmt.Errorf("query dataset: %w", err)
	}
	defer rows.Close()

	var results []stats.Result
	for rows.Next() {
		var r stats.Result
		if err := rows.Scan(
			&r.Dataset, &r.GeneSet, &r.NES, &r.FDR, &r.PValue,
			&r.Significance.NES, &r.Significance.FDR, &r.Significance.PValue,
			&r.Significance.Overall, &r.Filename,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}
