package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/khuatbaonguyen123/linq/internal/row"
)

// openSQLite loads one table from a SQLite database. The connection is
// read-only: datasets are inputs, never outputs.
func openSQLite(ctx context.Context, path, table string) (*Dataset, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, loadErr(path, "sqlite", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, loadErr(path, "sqlite", fmt.Errorf("failed to connect to database: %w", err))
	}

	// SQLite supports one writer at a time; a single connection also keeps
	// the pragma session settings in force for every query.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		return nil, loadErr(path, "sqlite", err)
	}

	if table == "" {
		table, err = soleTable(ctx, db)
	} else {
		err = checkTable(ctx, db, table)
	}
	if err != nil {
		return nil, loadErr(path, "sqlite", err)
	}

	records, cols, err := readTable(ctx, db, table)
	if err != nil {
		return nil, loadErr(path, "sqlite", err)
	}

	return &Dataset{
		Name:    path + ":" + table,
		Columns: cols,
		Records: records,
	}, nil
}

// applyPragmas sets required SQLite configuration for read-only loading.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA query_only = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// userTables lists the non-internal tables in declaration order.
func userTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// soleTable resolves the table when none was named: allowed only when the
// database holds exactly one.
func soleTable(ctx context.Context, db *sql.DB) (string, error) {
	names, err := userTables(ctx, db)
	if err != nil {
		return "", err
	}
	switch len(names) {
	case 0:
		return "", fmt.Errorf("database contains no tables")
	case 1:
		return names[0], nil
	default:
		return "", fmt.Errorf("database contains %d tables (%s); name one with source.table",
			len(names), strings.Join(names, ", "))
	}
}

func checkTable(ctx context.Context, db *sql.DB, table string) error {
	names, err := userTables(ctx, db)
	if err != nil {
		return err
	}
	for _, name := range names {
		if name == table {
			return nil
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("table %q not found: database contains no tables", table)
	}
	return fmt.Errorf("table %q not found (have: %s)", table, strings.Join(names, ", "))
}

func readTable(ctx context.Context, db *sql.DB, table string) ([]row.Record, []string, error) {
	// Identifiers cannot be bound as parameters; the name was checked
	// against sqlite_master above and is quoted here. Reads are ordered by
	// rowid so repeated loads see records in the same order; WITHOUT ROWID
	// tables fall back to storage order.
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table)+" ORDER BY rowid")
	if err != nil {
		rows, err = db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read table %q: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var records []row.Record
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("read table %q: %w", table, err)
		}

		rec := make(row.Record, len(cols))
		for i, col := range cols {
			cell, err := row.FromAny(cells[i])
			if err != nil {
				return nil, nil, fmt.Errorf("record %d, column %q: %w", len(records), col, err)
			}
			rec[col] = cell
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("read table %q: %w", table, err)
	}
	return records, cols, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
