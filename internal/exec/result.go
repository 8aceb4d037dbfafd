package exec

import (
	"github.com/khuatbaonguyen123/linq/internal/row"
)

// ResultKind discriminates the shape of a query result.
type ResultKind string

const (
	// ResultRows is an ordered sequence of records (the default).
	ResultRows ResultKind = "rows"
	// ResultGroups is the output of a groupBy with no aggregate reduction.
	ResultGroups ResultKind = "groups"
	// ResultRow is a single record (first/last reductions).
	ResultRow ResultKind = "row"
	// ResultValue is a single scalar (count, sum, min, max, avg, any,
	// all, contains).
	ResultValue ResultKind = "value"
)

// Group is one bucket of a grouped result. Key holds the first-seen cell
// value for the group; Rows preserve source order.
type Group struct {
	Key  row.Value    `json:"key"`
	Rows []row.Record `json:"rows"`
}

// StepTrace records the effect of one pipeline stage. Counts are row
// counts, except after groupBy where they count groups.
type StepTrace struct {
	Step    string `json:"step"`
	RowsIn  int    `json:"rows_in"`
	RowsOut int    `json:"rows_out"`
}

// Result is a fully materialized query outcome. Exactly one of Rows,
// Groups, Row, or Value is populated, according to Kind.
type Result struct {
	Kind    ResultKind   `json:"kind"`
	Columns []string     `json:"columns,omitempty"`
	Rows    []row.Record `json:"rows,omitempty"`
	Groups  []Group      `json:"groups,omitempty"`
	Row     row.Record   `json:"row,omitempty"`
	Value   row.Value    `json:"value,omitempty"`
	Trace   []StepTrace  `json:"trace,omitempty"`
}
