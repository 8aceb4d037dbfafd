package exec

import (
	"fmt"

	"github.com/khuatbaonguyen123/linq"
	"github.com/khuatbaonguyen123/linq/internal/queryplan"
	"github.com/khuatbaonguyen123/linq/internal/row"
)

// reduceRows applies a terminal reduction over an ungrouped pipeline.
func (e *Executor) reduceRows(q linq.Query[row.Record], red *queryplan.Reduce, columns []string) (*Result, error) {
	kind := queryplan.ReduceRows
	if red != nil {
		kind = red.Kind
	}

	switch kind {
	case queryplan.ReduceRows:
		return &Result{Kind: ResultRows, Columns: columns, Rows: q.ToSlice()}, nil

	case queryplan.ReduceCount:
		return valueResult(row.Int(int64(q.Count()))), nil

	case queryplan.ReduceFirst:
		rec, err := q.First()
		if err != nil {
			return nil, err
		}
		return &Result{Kind: ResultRow, Columns: columns, Row: rec}, nil

	case queryplan.ReduceLast:
		rec, err := q.Last()
		if err != nil {
			return nil, err
		}
		return &Result{Kind: ResultRow, Columns: columns, Row: rec}, nil

	case queryplan.ReduceSum:
		v, err := sumField(q, red.Field)
		if err != nil {
			return nil, err
		}
		return valueResult(v), nil

	case queryplan.ReduceMin, queryplan.ReduceMax:
		v, err := extremeField(q, red.Field, kind)
		if err != nil {
			return nil, err
		}
		return valueResult(v), nil

	case queryplan.ReduceAvg:
		v, err := avgField(q, red.Field)
		if err != nil {
			return nil, err
		}
		return valueResult(v), nil

	case queryplan.ReduceAny:
		if red.Where == nil {
			return valueResult(row.Bool(q.Count() > 0)), nil
		}
		ok, err := e.quantify(q, red.Where, false)
		if err != nil {
			return nil, err
		}
		return valueResult(row.Bool(ok)), nil

	case queryplan.ReduceAll:
		ok, err := e.quantify(q, red.Where, true)
		if err != nil {
			return nil, err
		}
		return valueResult(row.Bool(ok)), nil

	case queryplan.ReduceContains:
		field, want := red.Field, red.Value
		found := q.Any(func(r row.Record) bool {
			return row.Equal(r.Field(field), want)
		})
		return valueResult(row.Bool(found)), nil

	default:
		return nil, fmt.Errorf("unknown reduce kind %q", kind)
	}
}

func valueResult(v row.Value) *Result {
	return &Result{Kind: ResultValue, Value: v}
}

// quantify runs any (universal=false) or all (universal=true) with the
// given filter as predicate.
func (e *Executor) quantify(q linq.Query[row.Record], f queryplan.Filter, universal bool) (bool, error) {
	match, err := e.buildFilter(f)
	if err != nil {
		return false, err
	}

	var evalErr error
	pred := func(r row.Record) bool {
		if evalErr != nil {
			// The value only serves to stop the scan early once an
			// evaluation error is pending.
			return !universal
		}
		ok, err := match(r)
		if err != nil {
			evalErr = err
			return !universal
		}
		return ok
	}

	var out bool
	if universal {
		out = q.All(pred)
	} else {
		out = q.Any(pred)
	}
	if evalErr != nil {
		return false, evalErr
	}
	return out, nil
}

// sumField adds the numeric cells of a column. Null cells are skipped;
// the sum of no cells is 0. Integer-only input stays integral, any float
// makes the total a float.
func sumField(q linq.Query[row.Record], field string) (row.Value, error) {
	sum := row.Value(row.Int(0))
	for _, r := range q.ToSlice() {
		v := r.Field(field)
		if v.Kind() == row.KindNull {
			continue
		}
		next, ok := addValues(sum, v)
		if !ok {
			return nil, &CellTypeError{Reduce: "sum", Field: field, Kind: v.Kind()}
		}
		sum = next
	}
	return sum, nil
}

// extremeField finds the smallest (min) or largest (max) non-null cell
// under the total cell order. First-seen wins ties, which matters when an
// integer and an equal float meet.
func extremeField(q linq.Query[row.Record], field string, kind queryplan.ReduceKind) (row.Value, error) {
	var best row.Value
	for _, r := range q.ToSlice() {
		v := r.Field(field)
		if v.Kind() == row.KindNull {
			continue
		}
		if best == nil {
			best = v
			continue
		}
		c := row.Compare(v, best)
		if (kind == queryplan.ReduceMin && c < 0) || (kind == queryplan.ReduceMax && c > 0) {
			best = v
		}
	}
	if best == nil {
		return nil, &linq.InvalidOperationError{Op: string(kind)}
	}
	return best, nil
}

// avgField averages the numeric cells of a column as a float. All-null
// input counts as empty.
func avgField(q linq.Query[row.Record], field string) (row.Value, error) {
	var sum float64
	n := 0
	for _, r := range q.ToSlice() {
		v := r.Field(field)
		if v.Kind() == row.KindNull {
			continue
		}
		f, ok := asFloat(v)
		if !ok {
			return nil, &CellTypeError{Reduce: "avg", Field: field, Kind: v.Kind()}
		}
		sum += f
		n++
	}
	if n == 0 {
		return nil, &linq.InvalidOperationError{Op: "avg"}
	}
	return row.Float(sum / float64(n)), nil
}

func asFloat(v row.Value) (float64, bool) {
	switch x := v.(type) {
	case row.Int:
		return float64(x), true
	case row.Float:
		return float64(x), true
	}
	return 0, false
}

func addValues(acc, v row.Value) (row.Value, bool) {
	ai, accInt := acc.(row.Int)
	vi, vInt := v.(row.Int)
	if accInt && vInt {
		return ai + vi, true
	}
	af, ok := asFloat(acc)
	if !ok {
		return nil, false
	}
	vf, ok := asFloat(v)
	if !ok {
		return nil, false
	}
	return row.Float(af + vf), true
}

// groupedRows is the materialized output of a groupBy step: parallel
// slices of first-seen representative keys and their rows.
type groupedRows struct {
	field string
	keys  []row.Value
	rows  [][]row.Record
}

func (g *groupedRows) Len() int {
	return len(g.keys)
}

// groupRecords buckets rows by the canonical encoding of one column, so
// an integer 2 and a float 2.0 land in the same group.
func groupRecords(q linq.Query[row.Record], field string) *groupedRows {
	g := linq.GroupBy(q, func(r row.Record) string {
		return row.CanonicalValue(r.Field(field))
	})
	out := &groupedRows{field: field}
	for _, ck := range g.Keys() {
		rows := g.Values(ck)
		out.keys = append(out.keys, rows[0].Field(field))
		out.rows = append(out.rows, rows)
	}
	return out
}

// reduceGroups applies a terminal reduction per group. Without an
// aggregate reduction the groups themselves are the result; with one,
// each group collapses to a summary row of the grouped column and the
// aggregate.
func (e *Executor) reduceGroups(g *groupedRows, red *queryplan.Reduce, columns []string) (*Result, error) {
	kind := queryplan.ReduceRows
	if red != nil {
		kind = red.Kind
	}

	if kind == queryplan.ReduceRows {
		groups := make([]Group, g.Len())
		for i := range g.keys {
			groups[i] = Group{Key: g.keys[i], Rows: g.rows[i]}
		}
		return &Result{Kind: ResultGroups, Columns: columns, Groups: groups}, nil
	}

	aggCol := string(kind)
	out := make([]row.Record, g.Len())
	for i := range g.keys {
		gq := linq.From(g.rows[i])
		var v row.Value
		var err error
		switch kind {
		case queryplan.ReduceCount:
			v = row.Int(int64(gq.Count()))
		case queryplan.ReduceSum:
			v, err = sumField(gq, red.Field)
		case queryplan.ReduceMin, queryplan.ReduceMax:
			v, err = extremeField(gq, red.Field, kind)
		case queryplan.ReduceAvg:
			v, err = avgField(gq, red.Field)
		default:
			err = fmt.Errorf("reduce %s cannot follow groupBy", kind)
		}
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", row.CanonicalValue(g.keys[i]), err)
		}
		out[i] = row.Record{g.field: g.keys[i], aggCol: v}
	}
	return &Result{Kind: ResultRows, Columns: []string{g.field, aggCol}, Rows: out}, nil
}
