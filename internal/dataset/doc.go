// Package dataset loads record sources into memory for query execution.
//
// A source is a single file; the format is inferred from its extension:
//
//	.json          array of flat objects
//	.yaml, .yml    sequence of flat mappings
//	.csv           header row plus data rows, cells type-inferred
//	.db, .sqlite   SQLite database, one table per load
//
// Loading is input-only: datasets are never written back, and the whole
// source is materialized before any query step runs. Every cell passes
// through row.FromAny, so nested structures are rejected uniformly across
// formats.
//
// A loaded Dataset carries ordered column names alongside its records.
// Formats without an inherent column order (JSON, YAML) get the sorted
// union of all keys; CSV and SQLite keep their declared order.
package dataset
