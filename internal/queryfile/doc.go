// Package queryfile loads and compiles CUE query documents into plans.
//
// A query file declares a single `query` struct:
//
//	query: {
//		source: {file: "people.json"}
//		pipeline: [
//			{where: {field: "age", op: "ge", value: 21}},
//			{orderBy: {field: "name", desc: true}},
//			{select: ["name", "age"]},
//		]
//		reduce: {kind: "count"}
//	}
//
// Sources may instead embed rows inline (`source: {rows: [...]}`), name a
// SQLite table (`source: {table: "people"}`), or attach a JSON Schema
// (`source: {schema: "people.schema.json"}`). Filters compose with `and`,
// `or`, `not`, and CEL `expr` alongside the field comparison form; several
// nodes accept shorthand, such as `{orderBy: "name"}` and `reduce:
// "count"`.
//
// Because the document is CUE, files can use definitions, interpolation,
// and imports; a directory argument loads a whole CUE package. Compilation
// uses the CUE Go API directly, never the CLI, and reports source
// positions on every error.
package queryfile
