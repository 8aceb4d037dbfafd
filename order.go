package linq

import (
	"cmp"
	"slices"
)

// OrderBy returns the elements sorted ascending by the key sel extracts.
// The sort is stable: elements with equal keys keep their original relative
// order. The input query is left untouched.
//
// sel is called exactly once per element; keys are cached for the duration
// of the sort.
func OrderBy[T any, K cmp.Ordered](q Query[T], sel func(T) K) Query[T] {
	return sortByKey(q, sel, false)
}

// OrderByDescending returns the elements sorted descending by the key sel
// extracts. Like [OrderBy] it is stable and leaves the input untouched.
func OrderByDescending[T any, K cmp.Ordered](q Query[T], sel func(T) K) Query[T] {
	return sortByKey(q, sel, true)
}

// OrderByComparer returns the elements sorted ascending per compare, which
// must return a negative value when a sorts before b, zero when they are
// equivalent, and a positive value otherwise. The sort is stable.
//
// Use OrderByComparer when the ordering cannot be expressed as an ordered
// key, for example locale-aware string collation.
func OrderByComparer[T any](q Query[T], compare func(a, b T) int) Query[T] {
	out := slices.Clone(q.items)
	slices.SortStableFunc(out, compare)
	return Query[T]{items: out}
}

type keyed[T any, K cmp.Ordered] struct {
	key K
	val T
}

func sortByKey[T any, K cmp.Ordered](q Query[T], sel func(T) K, desc bool) Query[T] {
	decorated := make([]keyed[T, K], len(q.items))
	for i, v := range q.items {
		decorated[i] = keyed[T, K]{key: sel(v), val: v}
	}
	if desc {
		slices.SortStableFunc(decorated, func(a, b keyed[T, K]) int {
			return cmp.Compare(b.key, a.key)
		})
	} else {
		slices.SortStableFunc(decorated, func(a, b keyed[T, K]) int {
			return cmp.Compare(a.key, b.key)
		})
	}
	out := make([]T, len(decorated))
	for i, d := range decorated {
		out[i] = d.val
	}
	return Query[T]{items: out}
}
