// Package row defines the dynamic cell values and flat records that query
// plans execute against.
//
// This package contains value types only. All other internal packages
// import row; row imports nothing internal. This keeps it the foundational
// layer with no circular dependencies.
//
// Key design constraints:
//   - Cells are scalars: null, bool, int64, float64, or string. Nested
//     arrays and objects are rejected at the dataset boundary.
//   - Ordering follows SQLite storage-class affinity: null < bool <
//     numeric < string, with integers and floats compared on one number
//     line.
//   - Canonical encodings NFC-normalize strings so records that differ
//     only in Unicode normalization form deduplicate and group together.
package row
