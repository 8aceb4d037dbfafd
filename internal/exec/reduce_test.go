package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khuatbaonguyen123/linq"
	"github.com/khuatbaonguyen123/linq/internal/queryplan"
	"github.com/khuatbaonguyen123/linq/internal/row"
)

func TestReduce_Count(t *testing.T) {
	res, err := runInline(t, peopleRecords(), nil, &queryplan.Reduce{Kind: queryplan.ReduceCount})
	require.NoError(t, err)

	assert.Equal(t, ResultValue, res.Kind)
	assert.Equal(t, row.Int(4), res.Value)
}

func TestReduce_FirstLastReturnRows(t *testing.T) {
	res, err := runInline(t, peopleRecords(), nil, &queryplan.Reduce{Kind: queryplan.ReduceFirst})
	require.NoError(t, err)
	assert.Equal(t, ResultRow, res.Kind)
	assert.Equal(t, row.String("ada"), res.Row["name"])
	assert.Equal(t, []string{"age", "city", "name", "score"}, res.Columns)

	res, err = runInline(t, peopleRecords(), nil, &queryplan.Reduce{Kind: queryplan.ReduceLast})
	require.NoError(t, err)
	assert.Equal(t, row.String("dee"), res.Row["name"])
}

func TestReduce_SumIntStaysIntegral(t *testing.T) {
	res, err := runInline(t, peopleRecords(), nil, &queryplan.Reduce{Kind: queryplan.ReduceSum, Field: "age"})
	require.NoError(t, err)

	assert.Equal(t, row.Int(105), res.Value)
}

func TestReduce_SumMixedBecomesFloat(t *testing.T) {
	records := []row.Record{
		{"n": row.Int(1)},
		{"n": row.Float(2.5)},
	}
	res, err := runInline(t, records, nil, &queryplan.Reduce{Kind: queryplan.ReduceSum, Field: "n"})
	require.NoError(t, err)

	assert.Equal(t, row.Float(3.5), res.Value)
}

func TestReduce_SumSkipsNulls(t *testing.T) {
	records := []row.Record{
		{"n": row.Int(1)},
		{"n": row.Null{}},
		{"other": row.Int(9)},
		{"n": row.Int(2)},
	}
	res, err := runInline(t, records, nil, &queryplan.Reduce{Kind: queryplan.ReduceSum, Field: "n"})
	require.NoError(t, err)

	assert.Equal(t, row.Int(3), res.Value)
}

func TestReduce_SumNonNumericFails(t *testing.T) {
	_, err := runInline(t, peopleRecords(), nil, &queryplan.Reduce{Kind: queryplan.ReduceSum, Field: "name"})
	require.Error(t, err)
	assert.True(t, IsCellTypeError(err))
	assert.Contains(t, err.Error(), `"name"`)
}

func TestReduce_MinMax(t *testing.T) {
	res, err := runInline(t, peopleRecords(), nil, &queryplan.Reduce{Kind: queryplan.ReduceMin, Field: "age"})
	require.NoError(t, err)
	assert.Equal(t, row.Int(20), res.Value)

	res, err = runInline(t, peopleRecords(), nil, &queryplan.Reduce{Kind: queryplan.ReduceMax, Field: "name"})
	require.NoError(t, err)
	assert.Equal(t, row.String("dee"), res.Value)
}

func TestReduce_MinFirstSeenWinsTies(t *testing.T) {
	records := []row.Record{
		{"n": row.Float(2.0)},
		{"n": row.Int(2)},
	}
	res, err := runInline(t, records, nil, &queryplan.Reduce{Kind: queryplan.ReduceMin, Field: "n"})
	require.NoError(t, err)

	assert.Equal(t, row.Float(2.0), res.Value)
}

func TestReduce_Avg(t *testing.T) {
	res, err := runInline(t, peopleRecords(), nil, &queryplan.Reduce{Kind: queryplan.ReduceAvg, Field: "age"})
	require.NoError(t, err)

	assert.Equal(t, row.Float(26.25), res.Value)
}

func TestReduce_EmptyInputContract(t *testing.T) {
	// A filter nothing matches empties the pipeline before the reduce.
	noMatch := queryplan.WhereStep{
		Filter: queryplan.CompareFilter{Field: "age", Op: queryplan.OpGt, Value: row.Int(100)},
	}
	steps := []queryplan.Step{noMatch}

	// count, sum, any, and all have defined empty results.
	res, err := runInline(t, peopleRecords(), steps, &queryplan.Reduce{Kind: queryplan.ReduceCount})
	require.NoError(t, err)
	assert.Equal(t, row.Int(0), res.Value)

	res, err = runInline(t, peopleRecords(), steps, &queryplan.Reduce{Kind: queryplan.ReduceSum, Field: "age"})
	require.NoError(t, err)
	assert.Equal(t, row.Int(0), res.Value)

	res, err = runInline(t, peopleRecords(), steps, &queryplan.Reduce{Kind: queryplan.ReduceAny})
	require.NoError(t, err)
	assert.Equal(t, row.Bool(false), res.Value)

	all := &queryplan.Reduce{
		Kind:  queryplan.ReduceAll,
		Where: queryplan.CompareFilter{Field: "age", Op: queryplan.OpGt, Value: row.Int(0)},
	}
	res, err = runInline(t, peopleRecords(), steps, all)
	require.NoError(t, err)
	assert.Equal(t, row.Bool(true), res.Value, "all over nothing is vacuously true")

	// first, last, min, max, and avg fail on empty input.
	for _, red := range []*queryplan.Reduce{
		{Kind: queryplan.ReduceFirst},
		{Kind: queryplan.ReduceLast},
		{Kind: queryplan.ReduceMin, Field: "age"},
		{Kind: queryplan.ReduceMax, Field: "age"},
		{Kind: queryplan.ReduceAvg, Field: "age"},
	} {
		_, err := runInline(t, peopleRecords(), steps, red)
		require.Error(t, err, "reduce %s", red.Kind)
		assert.True(t, linq.IsInvalidOperation(err), "reduce %s", red.Kind)
	}
}

func TestReduce_AllNullColumnCountsAsEmpty(t *testing.T) {
	records := []row.Record{
		{"n": row.Null{}},
		{"n": row.Null{}},
	}

	res, err := runInline(t, records, nil, &queryplan.Reduce{Kind: queryplan.ReduceSum, Field: "n"})
	require.NoError(t, err)
	assert.Equal(t, row.Int(0), res.Value)

	_, err = runInline(t, records, nil, &queryplan.Reduce{Kind: queryplan.ReduceAvg, Field: "n"})
	require.Error(t, err)
	assert.True(t, linq.IsInvalidOperation(err))
}

func TestReduce_AnyAllWithWhere(t *testing.T) {
	anyOver65 := &queryplan.Reduce{
		Kind:  queryplan.ReduceAny,
		Where: queryplan.CompareFilter{Field: "age", Op: queryplan.OpGt, Value: row.Int(65)},
	}
	res, err := runInline(t, peopleRecords(), nil, anyOver65)
	require.NoError(t, err)
	assert.Equal(t, row.Bool(false), res.Value)

	allAdults := &queryplan.Reduce{
		Kind:  queryplan.ReduceAll,
		Where: queryplan.CompareFilter{Field: "age", Op: queryplan.OpGe, Value: row.Int(18)},
	}
	res, err = runInline(t, peopleRecords(), nil, allAdults)
	require.NoError(t, err)
	assert.Equal(t, row.Bool(true), res.Value)
}

func TestReduce_AnyWithoutWhereMeansNonEmpty(t *testing.T) {
	res, err := runInline(t, peopleRecords(), nil, &queryplan.Reduce{Kind: queryplan.ReduceAny})
	require.NoError(t, err)
	assert.Equal(t, row.Bool(true), res.Value)
}

func TestReduce_Contains(t *testing.T) {
	found := &queryplan.Reduce{Kind: queryplan.ReduceContains, Field: "name", Value: row.String("cy")}
	res, err := runInline(t, peopleRecords(), nil, found)
	require.NoError(t, err)
	assert.Equal(t, row.Bool(true), res.Value)

	missing := &queryplan.Reduce{Kind: queryplan.ReduceContains, Field: "name", Value: row.String("zed")}
	res, err = runInline(t, peopleRecords(), nil, missing)
	require.NoError(t, err)
	assert.Equal(t, row.Bool(false), res.Value)

	// Equal numbers match across int and float cells.
	crossKind := &queryplan.Reduce{Kind: queryplan.ReduceContains, Field: "age", Value: row.Float(30.0)}
	res, err = runInline(t, peopleRecords(), nil, crossKind)
	require.NoError(t, err)
	assert.Equal(t, row.Bool(true), res.Value)
}

func TestReduce_GroupAggregates(t *testing.T) {
	res, err := runInline(t, peopleRecords(), []queryplan.Step{
		queryplan.GroupByStep{Field: "city"},
	}, &queryplan.Reduce{Kind: queryplan.ReduceSum, Field: "age"})
	require.NoError(t, err)

	assert.Equal(t, []string{"city", "sum"}, res.Columns)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, row.Record{"city": row.String("Oslo"), "sum": row.Int(60)}, res.Rows[0])
	assert.Equal(t, row.Record{"city": row.String("Bergen"), "sum": row.Int(45)}, res.Rows[1])

	res, err = runInline(t, peopleRecords(), []queryplan.Step{
		queryplan.GroupByStep{Field: "city"},
	}, &queryplan.Reduce{Kind: queryplan.ReduceMax, Field: "score"})
	require.NoError(t, err)

	assert.Equal(t, row.Record{"city": row.String("Oslo"), "max": row.Float(9.5)}, res.Rows[0])
	assert.Equal(t, row.Record{"city": row.String("Bergen"), "max": row.Float(7.0)}, res.Rows[1])
}

func TestReduce_GroupAvg(t *testing.T) {
	res, err := runInline(t, peopleRecords(), []queryplan.Step{
		queryplan.GroupByStep{Field: "city"},
	}, &queryplan.Reduce{Kind: queryplan.ReduceAvg, Field: "age"})
	require.NoError(t, err)

	assert.Equal(t, row.Record{"city": row.String("Oslo"), "avg": row.Float(30)}, res.Rows[0])
	assert.Equal(t, row.Record{"city": row.String("Bergen"), "avg": row.Float(22.5)}, res.Rows[1])
}
