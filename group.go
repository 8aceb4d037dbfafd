package linq

import (
	"iter"
	"slices"
)

// Grouping is the result of [GroupBy]: elements bucketed by key, with two
// ordering guarantees. Keys appear in the order they were first encountered
// in the source, and elements within a group keep their original relative
// order. A Grouping is a finished result, not a query; it cannot be queried
// further without re-wrapping a group with [From].
type Grouping[K comparable, T any] struct {
	keys   []K
	groups map[K][]T
}

// GroupBy buckets the elements by the key sel extracts. Every input element
// lands in exactly one group, so the group sizes sum to the input length.
// An empty input yields a Grouping with no keys.
func GroupBy[T any, K comparable](q Query[T], sel func(T) K) *Grouping[K, T] {
	g := &Grouping[K, T]{groups: make(map[K][]T)}
	for _, v := range q.items {
		k := sel(v)
		if _, ok := g.groups[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.groups[k] = append(g.groups[k], v)
	}
	return g
}

// Keys returns the group keys in first-encountered order. The slice is a
// fresh copy; callers may reorder it freely.
func (g *Grouping[K, T]) Keys() []K {
	return slices.Clone(g.keys)
}

// Get returns the group for k and whether the key exists. The returned
// slice is shared with the Grouping and must be treated as read-only.
func (g *Grouping[K, T]) Get(k K) ([]T, bool) {
	vs, ok := g.groups[k]
	return vs, ok
}

// Values returns the group for k, or nil when the key does not exist. The
// returned slice is shared with the Grouping and must be treated as
// read-only.
func (g *Grouping[K, T]) Values(k K) []T {
	return g.groups[k]
}

// Len returns the number of distinct keys.
func (g *Grouping[K, T]) Len() int {
	return len(g.keys)
}

// All iterates the groups in first-encountered key order, yielding each key
// and its elements. Yielded slices are shared with the Grouping and must be
// treated as read-only.
func (g *Grouping[K, T]) All() iter.Seq2[K, []T] {
	return func(yield func(K, []T) bool) {
		for _, k := range g.keys {
			if !yield(k, g.groups[k]) {
				return
			}
		}
	}
}

// Distinct returns the unique elements by value equality, keeping the first
// occurrence of each and discarding later duplicates. Order follows the
// first occurrences.
func Distinct[T comparable](q Query[T]) Query[T] {
	return DistinctBy(q, func(v T) T { return v })
}

// DistinctBy returns the elements whose derived key has not been seen
// before, keeping the first element per key in first-occurrence order.
func DistinctBy[T any, K comparable](q Query[T], sel func(T) K) Query[T] {
	seen := make(map[K]struct{}, len(q.items))
	out := make([]T, 0, len(q.items))
	for _, v := range q.items {
		k := sel(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return Query[T]{items: out}
}

// Contains reports whether v occurs in the sequence by value equality.
// It is false for an empty sequence.
func Contains[T comparable](q Query[T], v T) bool {
	return slices.Contains(q.items, v)
}
