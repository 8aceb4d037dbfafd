package queryfile

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khuatbaonguyen123/linq/internal/queryplan"
	"github.com/khuatbaonguyen123/linq/internal/row"
)

func compileString(t *testing.T, doc string) (*queryplan.Plan, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(doc)
	require.NoError(t, v.Err())
	return Compile(v.LookupPath(cue.ParsePath("query")))
}

func TestCompileFullPipeline(t *testing.T) {
	plan, err := compileString(t, `
		query: {
			source: {file: "people.json", schema: "people.schema.json"}
			pipeline: [
				{where: {field: "age", op: "ge", value: 21}},
				{orderBy: {field: "name", desc: true}},
				{select: ["name", "age"]},
				{take: 10},
			]
			reduce: {kind: "count"}
		}
	`)
	require.NoError(t, err)

	assert.Equal(t, "people.json", plan.Source.File)
	assert.Equal(t, "people.schema.json", plan.Source.Schema)
	require.Len(t, plan.Steps, 4)

	where, ok := plan.Steps[0].(queryplan.WhereStep)
	require.True(t, ok)
	cmp, ok := where.Filter.(queryplan.CompareFilter)
	require.True(t, ok)
	assert.Equal(t, "age", cmp.Field)
	assert.Equal(t, queryplan.OpGe, cmp.Op)
	assert.Equal(t, row.Int(21), cmp.Value)

	order, ok := plan.Steps[1].(queryplan.OrderByStep)
	require.True(t, ok)
	assert.Equal(t, "name", order.Field)
	assert.True(t, order.Desc)

	sel, ok := plan.Steps[2].(queryplan.SelectStep)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "age"}, sel.Columns)

	take, ok := plan.Steps[3].(queryplan.TakeStep)
	require.True(t, ok)
	assert.Equal(t, 10, take.N)

	require.NotNil(t, plan.Reduce)
	assert.Equal(t, queryplan.ReduceCount, plan.Reduce.Kind)
}

func TestCompileInlineRows(t *testing.T) {
	plan, err := compileString(t, `
		query: source: rows: [
			{name: "ada", age: 30, score: 9.5, active: true, note: null},
			{name: "bo", age: 20},
		]
	`)
	require.NoError(t, err)

	require.Len(t, plan.Source.Inline, 2)
	rec := plan.Source.Inline[0]
	assert.Equal(t, row.String("ada"), rec["name"])
	assert.Equal(t, row.Int(30), rec["age"])
	assert.Equal(t, row.Float(9.5), rec["score"])
	assert.Equal(t, row.Bool(true), rec["active"])
	assert.Equal(t, row.Null{}, rec["note"])
	assert.Len(t, plan.Source.Inline[1], 2)
}

func TestCompileEmptyRowsKeepsInlineNonNil(t *testing.T) {
	plan, err := compileString(t, `query: source: rows: []`)
	require.NoError(t, err)
	require.NotNil(t, plan.Source.Inline)
	assert.Len(t, plan.Source.Inline, 0)
}

func TestCompileSourceRequired(t *testing.T) {
	_, err := compileString(t, `query: pipeline: [{take: 3}]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source")
	assert.Contains(t, err.Error(), "required")

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeBadSource, ce.Code())
}

func TestCompileStepShorthands(t *testing.T) {
	plan, err := compileString(t, `
		query: {
			source: {file: "people.json"}
			pipeline: [
				{orderBy: "name"},
				{distinct: true},
				{groupBy: "city"},
			]
			reduce: "count"
		}
	`)
	require.NoError(t, err)

	require.Len(t, plan.Steps, 3)
	order, ok := plan.Steps[0].(queryplan.OrderByStep)
	require.True(t, ok)
	assert.Equal(t, "name", order.Field)
	assert.False(t, order.Desc)

	_, ok = plan.Steps[1].(queryplan.DistinctStep)
	assert.True(t, ok)

	group, ok := plan.Steps[2].(queryplan.GroupByStep)
	require.True(t, ok)
	assert.Equal(t, "city", group.Field)

	require.NotNil(t, plan.Reduce)
	assert.Equal(t, queryplan.ReduceCount, plan.Reduce.Kind)
}

func TestCompileOrderByCollate(t *testing.T) {
	plan, err := compileString(t, `
		query: {
			source: {file: "people.json"}
			pipeline: [{orderBy: {field: "name", collate: "da-DK"}}]
		}
	`)
	require.NoError(t, err)

	order, ok := plan.Steps[0].(queryplan.OrderByStep)
	require.True(t, ok)
	assert.Equal(t, "da-DK", order.Collate)
}

func TestCompileStepExactlyOneOperator(t *testing.T) {
	_, err := compileString(t, `
		query: {
			source: {file: "people.json"}
			pipeline: [{take: 1, skip: 2}]
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one operator")
	assert.Contains(t, err.Error(), "pipeline[0]")
}

func TestCompileUnknownOperator(t *testing.T) {
	_, err := compileString(t, `
		query: {
			source: {file: "people.json"}
			pipeline: [{limit: 3}]
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operator")
	assert.Contains(t, err.Error(), "limit")

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeBadPipeline, ce.Code())
}

func TestCompileFilterCombinators(t *testing.T) {
	plan, err := compileString(t, `
		query: {
			source: {file: "people.json"}
			pipeline: [
				{where: {and: [
					{field: "age", op: "ge", value: 21},
					{not: {field: "city", value: "Oslo"}},
					{or: [
						{field: "active", value: true},
						{expr: "row.score > 8.0"},
					]},
				]}},
			]
		}
	`)
	require.NoError(t, err)

	where, ok := plan.Steps[0].(queryplan.WhereStep)
	require.True(t, ok)
	and, ok := where.Filter.(queryplan.AndFilter)
	require.True(t, ok)
	require.Len(t, and.Filters, 3)

	not, ok := and.Filters[1].(queryplan.NotFilter)
	require.True(t, ok)
	inner, ok := not.Filter.(queryplan.CompareFilter)
	require.True(t, ok)
	assert.Equal(t, queryplan.OpEq, inner.Op, "op defaults to eq")
	assert.Equal(t, row.String("Oslo"), inner.Value)

	or, ok := and.Filters[2].(queryplan.OrFilter)
	require.True(t, ok)
	require.Len(t, or.Filters, 2)
	expr, ok := or.Filters[1].(queryplan.ExprFilter)
	require.True(t, ok)
	assert.Equal(t, "row.score > 8.0", expr.Expr)
}

func TestCompileFilterBadOp(t *testing.T) {
	_, err := compileString(t, `
		query: {
			source: {file: "people.json"}
			pipeline: [{where: {field: "name", op: "like", value: "a%"}}]
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "like")
	assert.Contains(t, err.Error(), "pipeline[0].where.op")
}

func TestCompileFilterMissingValue(t *testing.T) {
	_, err := compileString(t, `
		query: {
			source: {file: "people.json"}
			pipeline: [{where: {field: "name"}}]
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value is required")
}

func TestCompileReduceStruct(t *testing.T) {
	plan, err := compileString(t, `
		query: {
			source: {file: "people.json"}
			reduce: {
				kind: "any"
				where: {field: "age", op: "gt", value: 65}
			}
		}
	`)
	require.NoError(t, err)

	require.NotNil(t, plan.Reduce)
	assert.Equal(t, queryplan.ReduceAny, plan.Reduce.Kind)
	cmp, ok := plan.Reduce.Where.(queryplan.CompareFilter)
	require.True(t, ok)
	assert.Equal(t, queryplan.OpGt, cmp.Op)
}

func TestCompileReduceContains(t *testing.T) {
	plan, err := compileString(t, `
		query: {
			source: {file: "people.json"}
			reduce: {kind: "contains", field: "name", value: "ada"}
		}
	`)
	require.NoError(t, err)

	require.NotNil(t, plan.Reduce)
	assert.Equal(t, queryplan.ReduceContains, plan.Reduce.Kind)
	assert.Equal(t, "name", plan.Reduce.Field)
	assert.Equal(t, row.String("ada"), plan.Reduce.Value)
}

func TestCompileDistinctFalseRejected(t *testing.T) {
	_, err := compileString(t, `
		query: {
			source: {file: "people.json"}
			pipeline: [{distinct: false}]
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be true")
}

func TestCompileRejectsNonScalarCell(t *testing.T) {
	_, err := compileString(t, `
		query: source: rows: [{tags: ["a", "b"]}]
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concrete scalars")
	assert.Contains(t, err.Error(), "source.rows[0].tags")
}
