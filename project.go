package linq

// Select projects every element through sel and returns the results in the
// same order. The output length always equals the input length; an empty
// input yields an empty query.
//
// Select is a package-level function rather than a method because the result
// element type R is independent of the input element type.
func Select[T, R any](q Query[T], sel func(T) R) Query[R] {
	out := make([]R, len(q.items))
	for i, v := range q.items {
		out[i] = sel(v)
	}
	return Query[R]{items: out}
}

// Aggregate folds the sequence left to right: it starts from seed and
// applies fn to the running accumulator and each element in order. An empty
// sequence returns seed unchanged.
func Aggregate[T, A any](q Query[T], seed A, fn func(A, T) A) A {
	acc := seed
	for _, v := range q.items {
		acc = fn(acc, v)
	}
	return acc
}
