// Package exec runs compiled query plans over loaded datasets.
//
// The executor is a thin orchestration layer: every pipeline stage is
// carried out by the public linq package (Where, Select, OrderByComparer,
// DistinctBy, GroupBy, Take, Skip, Reverse), with plan filters lowered to
// ordinary Go predicates over row.Record. The executor owns only what the
// library cannot know about: CEL expression filters, locale-aware string
// collation, and the mapping from reductions over dynamic cells to the
// library's empty-sequence contract.
//
// EXECUTION FLOW:
//
// 1. Validate the plan (invalid plans never start running)
// 2. Apply pipeline steps in order, recording rows-in/rows-out per step
// 3. groupBy, when present, is the final step and switches to group mode
// 4. Apply the terminal reduction (default: rows)
//
// Everything is eager and single-threaded. The trace carries no wall-clock
// data, so identical inputs produce identical traces.
//
// EXPRESSION FILTERS:
//
// A filter of the form {expr: "row.age >= 21"} is compiled once per run
// with CEL and evaluated per record. The record is exposed as the map
// variable `row`; cells convert to CEL null/bool/int/double/string.
// Referencing a column absent from a record is an evaluation error, not
// false — use has(row.col) to probe. Expressions must produce a boolean.
//
// AGGREGATE CELLS:
//
// sum, min, max, and avg skip null cells. A sequence whose cells are all
// null counts as empty, so min, max, and avg over it fail the same way
// they fail over no rows at all. sum of nothing is 0. A non-null,
// non-numeric cell under sum or avg is a type error.
package exec
