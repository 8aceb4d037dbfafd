// Package queryplan defines the intermediate representation for compiled
// query files.
//
// A Plan is the abstraction boundary between the CUE query-file frontend
// and the executor: the frontend compiles a document into a Plan, the
// executor walks the Plan and applies the corresponding sequence operators.
// Neither side depends on the other.
//
//	[CUE query file] → [Plan] → [executor]
//
// ARCHITECTURE:
//
// A Plan has three parts, mirroring the shape of a query file:
//   - Source: where the records come from (a dataset file or inline rows).
//   - Steps: the ordered pipeline of sequence operators (where, select,
//     orderBy, distinct, groupBy, take, skip, reverse).
//   - Reduce: an optional terminal that collapses the surviving rows into
//     a scalar (count, first, last, sum, min, max, avg, any, all,
//     contains). Absent means the rows themselves are the result.
//
// SEALED INTERFACES:
//
// Step and Filter are sealed interfaces using the marker method pattern:
// only types in this package implement them. Backends can type-switch
// exhaustively and the set of plan nodes cannot grow outside this package.
//
// NULL SEMANTICS:
//
// Filters compare cells with row.Compare's total order, in which null
// sorts below every other value. A comparison against null is therefore an
// ordinary true-or-false outcome, not SQL's three-valued logic; absent
// columns read as null and behave the same way.
package queryplan
