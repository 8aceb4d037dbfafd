package queryplan

import (
	"github.com/khuatbaonguyen123/linq/internal/row"
)

// Plan is a compiled query: a record source, an ordered operator pipeline,
// and an optional terminal reduction.
type Plan struct {
	Source Source
	Steps  []Step
	Reduce *Reduce // nil means the surviving rows are the result
}

// Source names where the records come from. Exactly one of File or Inline
// is set.
type Source struct {
	// File is the path to a dataset file. The format is inferred from the
	// extension: .json, .yaml/.yml, .csv, or .db/.sqlite.
	File string

	// Table selects a table when File is a SQLite database. Empty
	// otherwise.
	Table string

	// Inline carries rows embedded directly in the query file, used by
	// small self-contained queries and tests.
	Inline []row.Record

	// Schema is the path to a JSON Schema document the loaded records
	// must satisfy. Empty means no validation.
	Schema string
}

// Step is one pipeline stage.
//
// This is a sealed interface - only types in this package implement it.
// The executor type-switches over the concrete step types; each maps to
// exactly one sequence operator.
type Step interface {
	planStep() // marker method, seals the interface to this package
}

// WhereStep keeps the rows matching Filter, preserving their order.
type WhereStep struct {
	Filter Filter
}

func (WhereStep) planStep() {}

// SelectStep projects each row down to the named columns, in the given
// column order. Columns absent from a row project as null.
type SelectStep struct {
	Columns []string
}

func (SelectStep) planStep() {}

// OrderByStep stably sorts the rows by one column.
type OrderByStep struct {
	Field string

	// Desc reverses the primary order. Ties keep their original relative
	// order either way.
	Desc bool

	// Collate is a BCP 47 language tag ("da", "de-DE") requesting
	// locale-aware collation for string cells. Empty means the byte-wise
	// order of row.Compare.
	Collate string
}

func (OrderByStep) planStep() {}

// DistinctStep drops rows whose every column equals an earlier row's,
// keeping first occurrences in order.
type DistinctStep struct{}

func (DistinctStep) planStep() {}

// GroupByStep buckets rows by one column and emits one summary row per
// distinct value, in first-seen order. It must be the final step; the
// plan's Reduce then aggregates within each group instead of across the
// whole sequence.
type GroupByStep struct {
	Field string
}

func (GroupByStep) planStep() {}

// TakeStep keeps the first N rows.
type TakeStep struct {
	N int
}

func (TakeStep) planStep() {}

// SkipStep drops the first N rows.
type SkipStep struct {
	N int
}

func (SkipStep) planStep() {}

// ReverseStep reverses the row order.
type ReverseStep struct{}

func (ReverseStep) planStep() {}

// Filter is a predicate over one row.
//
// This is a sealed interface - only types in this package implement it.
//
// Filter types:
//   - CompareFilter: column <op> literal
//   - AndFilter / OrFilter / NotFilter: boolean combinators
//   - ExprFilter: a CEL expression evaluated against the whole row
type Filter interface {
	filterNode() // marker method, seals the interface to this package
}

// CompareOp is the comparison operator of a CompareFilter.
type CompareOp string

const (
	OpEq CompareOp = "eq"
	OpNe CompareOp = "ne"
	OpLt CompareOp = "lt"
	OpLe CompareOp = "le"
	OpGt CompareOp = "gt"
	OpGe CompareOp = "ge"
)

// Valid reports whether op is one of the six comparison operators.
func (op CompareOp) Valid() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	default:
		return false
	}
}

// CompareFilter compares one column against a literal with row.Compare's
// total order.
type CompareFilter struct {
	Field string
	Op    CompareOp
	Value row.Value
}

func (CompareFilter) filterNode() {}

// AndFilter is true when every sub-filter is true. An empty conjunction is
// vacuously true.
type AndFilter struct {
	Filters []Filter
}

func (AndFilter) filterNode() {}

// OrFilter is true when at least one sub-filter is true. An empty
// disjunction is false.
type OrFilter struct {
	Filters []Filter
}

func (OrFilter) filterNode() {}

// NotFilter negates its sub-filter.
type NotFilter struct {
	Filter Filter
}

func (NotFilter) filterNode() {}

// ExprFilter evaluates a CEL expression against the row. Columns are in
// scope as fields of the `row` map variable; the expression must produce a
// boolean.
//
// Example:
//
//	row.age >= 21 && row.city != "Oslo"
type ExprFilter struct {
	Expr string
}

func (ExprFilter) filterNode() {}

// ReduceKind names a terminal reduction.
type ReduceKind string

const (
	// ReduceRows returns the surviving rows themselves. This is the
	// default when a query file names no reduce.
	ReduceRows ReduceKind = "rows"

	// ReduceCount returns the number of surviving rows.
	ReduceCount ReduceKind = "count"

	// ReduceFirst and ReduceLast return a single row. Both fail on an
	// empty sequence.
	ReduceFirst ReduceKind = "first"
	ReduceLast  ReduceKind = "last"

	// ReduceSum, ReduceMin, ReduceMax, and ReduceAvg aggregate one numeric
	// column. Sum of an empty sequence is 0; the other three fail on
	// empty input.
	ReduceSum ReduceKind = "sum"
	ReduceMin ReduceKind = "min"
	ReduceMax ReduceKind = "max"
	ReduceAvg ReduceKind = "avg"

	// ReduceAny is true when any surviving row matches Where (or when any
	// row survives at all, if Where is nil). ReduceAll is true when every
	// surviving row matches Where; it is vacuously true on empty input.
	ReduceAny ReduceKind = "any"
	ReduceAll ReduceKind = "all"

	// ReduceContains is true when some surviving row's Field equals
	// Value.
	ReduceContains ReduceKind = "contains"
)

// Valid reports whether k names a known reduction.
func (k ReduceKind) Valid() bool {
	switch k {
	case ReduceRows, ReduceCount, ReduceFirst, ReduceLast,
		ReduceSum, ReduceMin, ReduceMax, ReduceAvg,
		ReduceAny, ReduceAll, ReduceContains:
		return true
	default:
		return false
	}
}

// Reduce is the terminal reduction of a plan.
type Reduce struct {
	Kind ReduceKind

	// Field names the aggregated column for sum, min, max, avg, and
	// contains. Empty for the other kinds.
	Field string

	// Value is the literal sought by contains.
	Value row.Value

	// Where scopes any and all: any asks whether some surviving row
	// matches it, all asks whether every surviving row does. Required for
	// all, optional for any.
	Where Filter
}
