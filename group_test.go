package linq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBy_KeysInFirstSeenOrder(t *testing.T) {
	g := GroupBy(From(people), func(p person) int { return p.age })

	// 30 is seen first (ada), then 20 (bo), then 25 (dee).
	assert.Equal(t, []int{30, 20, 25}, g.Keys())
}

func TestGroupBy_GroupsKeepSourceOrder(t *testing.T) {
	g := GroupBy(From(people), func(p person) int { return p.age })

	thirties, ok := g.Get(30)
	require.True(t, ok)
	require.Len(t, thirties, 2)
	assert.Equal(t, "ada", thirties[0].name)
	assert.Equal(t, "cy", thirties[1].name)

	twenties, ok := g.Get(20)
	require.True(t, ok)
	require.Len(t, twenties, 1)
	assert.Equal(t, "bo", twenties[0].name)
}

func TestGroupBy_SizesSumToInputLength(t *testing.T) {
	g := GroupBy(From(people), func(p person) int { return p.age })

	total := 0
	for _, k := range g.Keys() {
		total += len(g.Values(k))
	}
	assert.Equal(t, len(people), total)
}

func TestGroupBy_EmptyInput(t *testing.T) {
	g := GroupBy(From([]person{}), func(p person) int { return p.age })

	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.Keys())
}

func TestGrouping_GetMissingKey(t *testing.T) {
	g := GroupBy(From(people), func(p person) int { return p.age })

	vs, ok := g.Get(99)
	assert.False(t, ok)
	assert.Nil(t, vs)
	assert.Nil(t, g.Values(99))
}

func TestGrouping_All_IteratesInKeyOrder(t *testing.T) {
	g := GroupBy(From([]int{5, 3, 5, 1, 3, 5}), func(n int) int { return n })

	var keys []int
	var sizes []int
	for k, vs := range g.All() {
		keys = append(keys, k)
		sizes = append(sizes, len(vs))
	}

	assert.Equal(t, []int{5, 3, 1}, keys)
	assert.Equal(t, []int{3, 2, 1}, sizes)
}

func TestGrouping_All_EarlyBreak(t *testing.T) {
	g := GroupBy(From([]int{1, 2, 3}), func(n int) int { return n })

	var seen []int
	for k := range g.All() {
		seen = append(seen, k)
		if len(seen) == 2 {
			break
		}
	}

	assert.Equal(t, []int{1, 2}, seen)
}

func TestGrouping_KeysReturnsCopy(t *testing.T) {
	g := GroupBy(From(people), func(p person) int { return p.age })

	keys := g.Keys()
	keys[0] = -1

	assert.Equal(t, []int{30, 20, 25}, g.Keys())
}

func TestDistinct_RemovesDuplicatesKeepingFirstOccurrence(t *testing.T) {
	got := Distinct(From([]int{1, 2, 2, 3, 3, 3}))

	assert.Equal(t, []int{1, 2, 3}, got.ToSlice())
}

func TestDistinct_FirstOccurrenceOrder(t *testing.T) {
	got := Distinct(From([]string{"b", "a", "b", "c", "a"}))

	assert.Equal(t, []string{"b", "a", "c"}, got.ToSlice())
}

func TestDistinct_Empty(t *testing.T) {
	assert.Empty(t, Distinct(From([]int{})).ToSlice())
}

func TestDistinct_NoDuplicates(t *testing.T) {
	got := Distinct(From([]int{3, 1, 2}))
	assert.Equal(t, []int{3, 1, 2}, got.ToSlice())
}

func TestDistinctBy_KeepsFirstElementPerKey(t *testing.T) {
	got := DistinctBy(From(people), func(p person) int { return p.age })

	names := Select(got, func(p person) string { return p.name }).ToSlice()
	// cy duplicates ada's age and is dropped.
	assert.Equal(t, []string{"ada", "bo", "dee"}, names)
}

func TestContains(t *testing.T) {
	q := From([]string{"a", "b", "c"})

	assert.True(t, Contains(q, "b"))
	assert.False(t, Contains(q, "z"))
	assert.False(t, Contains(From([]string{}), "a"))
}
