package linq

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// Number constrains the numeric types [Sum] and [Average] accept: every
// integer and floating-point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Sum adds the values sel extracts from each element. An empty sequence
// sums to zero; Sum never fails.
//
// Integer overflow wraps per Go semantics and is the caller's concern.
func Sum[T any, N Number](q Query[T], sel func(T) N) N {
	var total N
	for _, v := range q.items {
		total += sel(v)
	}
	return total
}

// Min returns the smallest key sel extracts from the sequence.
// It fails with an [InvalidOperationError] when the sequence is empty.
//
// For floating-point keys the result follows Go's < operator, so NaN
// ordering is unspecified.
func Min[T any, K cmp.Ordered](q Query[T], sel func(T) K) (K, error) {
	if len(q.items) == 0 {
		var zero K
		return zero, errEmpty("Min")
	}
	best := sel(q.items[0])
	for _, v := range q.items[1:] {
		if k := sel(v); k < best {
			best = k
		}
	}
	return best, nil
}

// Max returns the largest key sel extracts from the sequence.
// It fails with an [InvalidOperationError] when the sequence is empty.
func Max[T any, K cmp.Ordered](q Query[T], sel func(T) K) (K, error) {
	if len(q.items) == 0 {
		var zero K
		return zero, errEmpty("Max")
	}
	best := sel(q.items[0])
	for _, v := range q.items[1:] {
		if k := sel(v); k > best {
			best = k
		}
	}
	return best, nil
}

// Average returns the arithmetic mean of the values sel extracts, always as
// a float64 regardless of the source numeric type.
// It fails with an [InvalidOperationError] when the sequence is empty:
// unlike [Sum], a mean of nothing has no defined value.
func Average[T any, N Number](q Query[T], sel func(T) N) (float64, error) {
	if len(q.items) == 0 {
		return 0, errEmpty("Average")
	}
	var total float64
	for _, v := range q.items {
		total += float64(sel(v))
	}
	return total / float64(len(q.items)), nil
}
