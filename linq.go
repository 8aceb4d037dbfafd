// Package linq provides eager, strongly typed query operators over in-memory
// sequences: filtering, projection, ordering, grouping, aggregation, and
// existence checks in the style of LINQ-to-Objects.
//
// The central type is [Query], a thin wrapper around an ordered slice.
// Construct one with [From], then apply operators. Every operator consumes
// its entire input and returns a fully materialized result (a new Query, a
// scalar, or a [Grouping]); there is no deferred evaluation, and no operator
// ever mutates the sequence it was given. Operators that reorder elements
// sort a copy.
//
// # Method and function split
//
// Go methods cannot introduce new type parameters, so the operator set is
// split along that line:
//
//   - Operators that keep the element type and need no extra constraint are
//     methods on Query: Where, First, Count, Any, All, Take, Skip, and so on.
//   - Operators that project to a new type or constrain the element/key type
//     are package-level functions taking the query as their first argument:
//     [Select], [OrderBy], [Distinct], [GroupBy], [Sum], [Average], and so on.
//
// # Empty sequences
//
// Operators that cannot produce a value from an empty sequence (First, Last,
// Min, Max, Average) return an [InvalidOperationError]. The rest have a
// defined empty-input result instead: Sum is 0, Count is 0, Any is false,
// All is true (vacuously), Where/Select/Distinct/GroupBy are empty. That
// asymmetry is deliberate and matches the behavior callers of LINQ-style
// APIs expect.
//
// # Concurrency
//
// A Query holds no hidden state and no operator writes to shared state, so a
// single wrapper may be queried from multiple goroutines concurrently as long
// as the caller does not mutate the underlying slice or the closures passed
// to operators.
package linq

import "slices"

// Query wraps an ordered, finite sequence of elements and exposes eager
// query operators over it. The zero value is an empty query.
//
// A Query is immutable: no operator modifies the wrapped sequence, and
// operators applied twice with the same arguments return identical results.
type Query[T any] struct {
	items []T
}

// From wraps items in a Query without copying it. A nil or empty slice
// yields an empty query.
//
// The query holds the slice by reference: callers that mutate the slice
// afterwards will observe those mutations through the query. Operators
// themselves never write to it.
func From[T any](items []T) Query[T] {
	return Query[T]{items: items}
}

// Where returns the elements for which pred is true, preserving their
// original relative order. An empty input yields an empty query.
func (q Query[T]) Where(pred func(T) bool) Query[T] {
	out := make([]T, 0, len(q.items))
	for _, v := range q.items {
		if pred(v) {
			out = append(out, v)
		}
	}
	return Query[T]{items: out}
}

// First returns the first element of the sequence.
// It fails with an [InvalidOperationError] when the sequence is empty.
func (q Query[T]) First() (T, error) {
	if len(q.items) == 0 {
		var zero T
		return zero, errEmpty("First")
	}
	return q.items[0], nil
}

// FirstOrDefault returns the first element, or def when the sequence is
// empty. It never fails.
func (q Query[T]) FirstOrDefault(def T) T {
	if len(q.items) == 0 {
		return def
	}
	return q.items[0]
}

// Last returns the last element of the sequence.
// It fails with an [InvalidOperationError] when the sequence is empty.
func (q Query[T]) Last() (T, error) {
	if len(q.items) == 0 {
		var zero T
		return zero, errEmpty("Last")
	}
	return q.items[len(q.items)-1], nil
}

// LastOrDefault returns the last element, or def when the sequence is
// empty. It never fails.
func (q Query[T]) LastOrDefault(def T) T {
	if len(q.items) == 0 {
		return def
	}
	return q.items[len(q.items)-1]
}

// Count returns the number of elements in the sequence: 0 when empty.
func (q Query[T]) Count() int {
	return len(q.items)
}

// Any reports whether at least one element satisfies pred.
// It is false for an empty sequence.
func (q Query[T]) Any(pred func(T) bool) bool {
	for _, v := range q.items {
		if pred(v) {
			return true
		}
	}
	return false
}

// All reports whether every element satisfies pred.
// It is vacuously true for an empty sequence.
func (q Query[T]) All(pred func(T) bool) bool {
	for _, v := range q.items {
		if !pred(v) {
			return false
		}
	}
	return true
}

// Take returns the first n elements. It returns every element when n
// exceeds the sequence length and an empty query when n <= 0.
func (q Query[T]) Take(n int) Query[T] {
	if n <= 0 {
		return Query[T]{}
	}
	if n > len(q.items) {
		n = len(q.items)
	}
	return Query[T]{items: slices.Clone(q.items[:n])}
}

// Skip returns the elements after the first n. It returns every element
// when n <= 0 and an empty query when n meets or exceeds the sequence
// length.
func (q Query[T]) Skip(n int) Query[T] {
	if n <= 0 {
		return Query[T]{items: slices.Clone(q.items)}
	}
	if n >= len(q.items) {
		return Query[T]{}
	}
	return Query[T]{items: slices.Clone(q.items[n:])}
}

// Reverse returns the elements in reverse order. The wrapped sequence is
// not modified.
func (q Query[T]) Reverse() Query[T] {
	out := slices.Clone(q.items)
	slices.Reverse(out)
	return Query[T]{items: out}
}

// ToSlice returns a fresh copy of the wrapped sequence. Mutating the
// returned slice does not affect the query. The result is never nil,
// even for an empty query.
func (q Query[T]) ToSlice() []T {
	out := make([]T, len(q.items))
	copy(out, q.items)
	return out
}
