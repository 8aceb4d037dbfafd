package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/khuatbaonguyen123/linq/internal/row"
)

// Dataset is a fully loaded record source.
type Dataset struct {
	// Name identifies the source in logs and trace output: the file path,
	// optionally suffixed with the table name for SQLite sources.
	Name string

	// Columns are the column names in display order. Queries that project
	// replace this order; queries that do not inherit it.
	Columns []string

	// Records are the rows in source order.
	Records []row.Record
}

// Open loads the dataset at path. The format is inferred from the file
// extension. table selects the table for SQLite sources and must be empty
// for the flat-file formats; an empty table is allowed when the database
// contains exactly one.
func Open(ctx context.Context, path, table string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, loadErr(path, "", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	sqlite := ext == ".db" || ext == ".sqlite" || ext == ".sqlite3"
	if table != "" && !sqlite {
		return nil, loadErr(path, "", fmt.Errorf("table %q given, but tables apply only to SQLite sources", table))
	}

	switch ext {
	case ".json":
		return openJSON(path)
	case ".yaml", ".yml":
		return openYAML(path)
	case ".csv":
		return openCSV(path)
	default:
		if sqlite {
			return openSQLite(ctx, path, table)
		}
		return nil, loadErr(path, "", fmt.Errorf("unsupported extension %q (want .json, .yaml, .yml, .csv, .db, or .sqlite)", ext))
	}
}

// FromRecords builds a dataset from rows already in memory, such as the
// inline rows of a query file.
func FromRecords(name string, records []row.Record) *Dataset {
	return &Dataset{
		Name:    name,
		Columns: unionColumns(records),
		Records: records,
	}
}

// unionColumns returns the sorted union of every record's column names,
// the display order for formats whose decoding loses key order.
func unionColumns(records []row.Record) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, rec := range records {
		for k := range rec {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				cols = append(cols, k)
			}
		}
	}
	slices.Sort(cols)
	return cols
}

// convertRecords turns decoded generic maps into records, rejecting any
// non-scalar cell with the record index and column in the error.
func convertRecords(raw []map[string]any) ([]row.Record, error) {
	records := make([]row.Record, len(raw))
	for i, m := range raw {
		rec := make(row.Record, len(m))
		for k, v := range m {
			cell, err := row.FromAny(v)
			if err != nil {
				return nil, fmt.Errorf("record %d, column %q: %w", i, k, err)
			}
			rec[k] = cell
		}
		records[i] = rec
	}
	return records, nil
}
