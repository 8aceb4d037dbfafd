package queryfile

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/khuatbaonguyen123/linq/internal/queryplan"
	"github.com/khuatbaonguyen123/linq/internal/row"
)

// Compile parses a CUE value holding a query struct into a plan.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the query struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`query: {source: {file: "x.json"}}`)
//	plan, err := Compile(v.LookupPath(cue.ParsePath("query")))
func Compile(v cue.Value) (*queryplan.Plan, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError("query", err)
	}

	plan := &queryplan.Plan{}

	srcVal := v.LookupPath(cue.ParsePath("source"))
	if !srcVal.Exists() {
		return nil, &CompileError{
			Field:   "source",
			Message: "source is required",
			Pos:     v.Pos(),
		}
	}
	src, err := parseSource(srcVal)
	if err != nil {
		return nil, err
	}
	plan.Source = src

	pipeVal := v.LookupPath(cue.ParsePath("pipeline"))
	if pipeVal.Exists() {
		steps, err := parsePipeline(pipeVal)
		if err != nil {
			return nil, err
		}
		plan.Steps = steps
	}

	redVal := v.LookupPath(cue.ParsePath("reduce"))
	if redVal.Exists() {
		red, err := parseReduce(redVal)
		if err != nil {
			return nil, err
		}
		plan.Reduce = red
	}

	return plan, nil
}

// parseSource reads the source struct: a file path or inline rows, plus
// the optional table and schema.
func parseSource(v cue.Value) (queryplan.Source, error) {
	var src queryplan.Source

	for _, name := range []string{"file", "table", "schema"} {
		fv := v.LookupPath(cue.ParsePath(name))
		if !fv.Exists() {
			continue
		}
		s, err := fv.String()
		if err != nil {
			return src, formatCUEError("source."+name, err)
		}
		switch name {
		case "file":
			src.File = s
		case "table":
			src.Table = s
		case "schema":
			src.Schema = s
		}
	}

	rowsVal := v.LookupPath(cue.ParsePath("rows"))
	if rowsVal.Exists() {
		iter, err := rowsVal.List()
		if err != nil {
			return src, formatCUEError("source.rows", err)
		}
		src.Inline = []row.Record{}
		for i := 0; iter.Next(); i++ {
			rec, err := parseRecord(iter.Value(), fmt.Sprintf("source.rows[%d]", i))
			if err != nil {
				return src, err
			}
			src.Inline = append(src.Inline, rec)
		}
	}

	return src, nil
}

// parseRecord reads one inline row: a struct of scalar cells.
func parseRecord(v cue.Value, path string) (row.Record, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(path, err)
	}
	rec := row.Record{}
	for iter.Next() {
		cell, err := extractLiteral(iter.Value(), fmt.Sprintf("%s.%s", path, iter.Label()))
		if err != nil {
			return nil, err
		}
		rec[iter.Label()] = cell
	}
	return rec, nil
}

// extractLiteral converts a concrete CUE scalar into a cell value.
func extractLiteral(v cue.Value, path string) (row.Value, error) {
	switch v.Kind() {
	case cue.NullKind:
		return row.Null{}, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(path, err)
		}
		return row.Bool(b), nil
	case cue.IntKind:
		i, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(path, err)
		}
		return row.Int(i), nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return nil, formatCUEError(path, err)
		}
		return row.Float(f), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(path, err)
		}
		return row.String(s), nil
	default:
		return nil, &CompileError{
			Field:   path,
			Message: fmt.Sprintf("unsupported literal kind %v (cells must be concrete scalars)", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

func parsePipeline(v cue.Value) ([]queryplan.Step, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError("pipeline", err)
	}
	var steps []queryplan.Step
	for i := 0; iter.Next(); i++ {
		step, err := parseStep(iter.Value(), fmt.Sprintf("pipeline[%d]", i))
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// parseStep reads one pipeline entry: a struct naming exactly one
// operator.
func parseStep(v cue.Value, path string) (queryplan.Step, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(path, err)
	}

	var label string
	var opVal cue.Value
	n := 0
	for iter.Next() {
		label = iter.Label()
		opVal = iter.Value()
		n++
	}
	if n != 1 {
		return nil, &CompileError{
			Field:   path,
			Message: fmt.Sprintf("each pipeline step names exactly one operator, found %d", n),
			Pos:     v.Pos(),
		}
	}

	opPath := path + "." + label
	switch label {
	case "where":
		f, err := parseFilter(opVal, opPath)
		if err != nil {
			return nil, err
		}
		return queryplan.WhereStep{Filter: f}, nil

	case "select":
		cols, err := parseStringList(opVal, opPath)
		if err != nil {
			return nil, err
		}
		return queryplan.SelectStep{Columns: cols}, nil

	case "orderBy":
		return parseOrderBy(opVal, opPath)

	case "distinct":
		if err := requireTrue(opVal, opPath); err != nil {
			return nil, err
		}
		return queryplan.DistinctStep{}, nil

	case "groupBy":
		// String shorthand: {groupBy: "city"}.
		if field, err := opVal.String(); err == nil {
			return queryplan.GroupByStep{Field: field}, nil
		}
		field, err := lookupString(opVal, "field", opPath)
		if err != nil {
			return nil, err
		}
		return queryplan.GroupByStep{Field: field}, nil

	case "take":
		n, err := parseCount(opVal, opPath)
		if err != nil {
			return nil, err
		}
		return queryplan.TakeStep{N: n}, nil

	case "skip":
		n, err := parseCount(opVal, opPath)
		if err != nil {
			return nil, err
		}
		return queryplan.SkipStep{N: n}, nil

	case "reverse":
		if err := requireTrue(opVal, opPath); err != nil {
			return nil, err
		}
		return queryplan.ReverseStep{}, nil

	default:
		return nil, &CompileError{
			Field:   path,
			Message: fmt.Sprintf("unknown operator %q (want where, select, orderBy, distinct, groupBy, take, skip, or reverse)", label),
			Pos:     v.Pos(),
		}
	}
}

// parseOrderBy accepts the string shorthand {orderBy: "name"} or the full
// struct form with field, desc, and collate.
func parseOrderBy(v cue.Value, path string) (queryplan.Step, error) {
	if field, err := v.String(); err == nil {
		return queryplan.OrderByStep{Field: field}, nil
	}

	step := queryplan.OrderByStep{}
	field, err := lookupString(v, "field", path)
	if err != nil {
		return nil, err
	}
	step.Field = field

	if dv := v.LookupPath(cue.ParsePath("desc")); dv.Exists() {
		desc, err := dv.Bool()
		if err != nil {
			return nil, formatCUEError(path+".desc", err)
		}
		step.Desc = desc
	}
	if cv := v.LookupPath(cue.ParsePath("collate")); cv.Exists() {
		collate, err := cv.String()
		if err != nil {
			return nil, formatCUEError(path+".collate", err)
		}
		step.Collate = collate
	}
	return step, nil
}

// parseFilter reads a filter struct: one of the combinators and/or/not, a
// CEL expr, or the field comparison form. The comparison's op defaults to
// eq.
func parseFilter(v cue.Value, path string) (queryplan.Filter, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(path, err)
	}

	if av := v.LookupPath(cue.ParsePath("and")); av.Exists() {
		subs, err := parseFilterList(av, path+".and")
		if err != nil {
			return nil, err
		}
		return queryplan.AndFilter{Filters: subs}, nil
	}
	if ov := v.LookupPath(cue.ParsePath("or")); ov.Exists() {
		subs, err := parseFilterList(ov, path+".or")
		if err != nil {
			return nil, err
		}
		return queryplan.OrFilter{Filters: subs}, nil
	}
	if nv := v.LookupPath(cue.ParsePath("not")); nv.Exists() {
		sub, err := parseFilter(nv, path+".not")
		if err != nil {
			return nil, err
		}
		return queryplan.NotFilter{Filter: sub}, nil
	}
	if ev := v.LookupPath(cue.ParsePath("expr")); ev.Exists() {
		expr, err := ev.String()
		if err != nil {
			return nil, formatCUEError(path+".expr", err)
		}
		return queryplan.ExprFilter{Expr: expr}, nil
	}

	// Comparison form: field, optional op, value.
	field, err := lookupString(v, "field", path)
	if err != nil {
		return nil, err
	}

	op := queryplan.OpEq
	if ov := v.LookupPath(cue.ParsePath("op")); ov.Exists() {
		s, err := ov.String()
		if err != nil {
			return nil, formatCUEError(path+".op", err)
		}
		op = queryplan.CompareOp(s)
		if !op.Valid() {
			return nil, &CompileError{
				Field:   path + ".op",
				Message: fmt.Sprintf("unknown comparison operator %q (want eq, ne, lt, le, gt, or ge)", s),
				Pos:     ov.Pos(),
			}
		}
	}

	valVal := v.LookupPath(cue.ParsePath("value"))
	if !valVal.Exists() {
		return nil, &CompileError{
			Field:   path,
			Message: "comparison value is required",
			Pos:     v.Pos(),
		}
	}
	lit, err := extractLiteral(valVal, path+".value")
	if err != nil {
		return nil, err
	}

	return queryplan.CompareFilter{Field: field, Op: op, Value: lit}, nil
}

func parseFilterList(v cue.Value, path string) ([]queryplan.Filter, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(path, err)
	}
	var subs []queryplan.Filter
	for i := 0; iter.Next(); i++ {
		sub, err := parseFilter(iter.Value(), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// parseReduce accepts the string shorthand (reduce: "count") or the full
// struct form with kind, field, value, and where.
func parseReduce(v cue.Value) (*queryplan.Reduce, error) {
	if s, err := v.String(); err == nil {
		return &queryplan.Reduce{Kind: queryplan.ReduceKind(s)}, nil
	}

	red := &queryplan.Reduce{}
	kind, err := lookupString(v, "kind", "reduce")
	if err != nil {
		return nil, err
	}
	red.Kind = queryplan.ReduceKind(kind)

	if fv := v.LookupPath(cue.ParsePath("field")); fv.Exists() {
		field, err := fv.String()
		if err != nil {
			return nil, formatCUEError("reduce.field", err)
		}
		red.Field = field
	}
	if vv := v.LookupPath(cue.ParsePath("value")); vv.Exists() {
		lit, err := extractLiteral(vv, "reduce.value")
		if err != nil {
			return nil, err
		}
		red.Value = lit
	}
	if wv := v.LookupPath(cue.ParsePath("where")); wv.Exists() {
		f, err := parseFilter(wv, "reduce.where")
		if err != nil {
			return nil, err
		}
		red.Where = f
	}

	return red, nil
}

func parseStringList(v cue.Value, path string) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(path, err)
	}
	var out []string
	for i := 0; iter.Next(); i++ {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(fmt.Sprintf("%s[%d]", path, i), err)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseCount(v cue.Value, path string) (int, error) {
	n, err := v.Int64()
	if err != nil {
		return 0, formatCUEError(path, err)
	}
	return int(n), nil
}

func lookupString(v cue.Value, name, path string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return "", &CompileError{
			Field:   path,
			Message: name + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(path+"."+name, err)
	}
	return s, nil
}

// requireTrue enforces the flag form of distinct and reverse: the step is
// either present as `true` or omitted entirely.
func requireTrue(v cue.Value, path string) error {
	b, err := v.Bool()
	if err != nil {
		return formatCUEError(path, err)
	}
	if !b {
		return &CompileError{
			Field:   path,
			Message: "must be true (omit the step instead of setting it to false)",
			Pos:     v.Pos(),
		}
	}
	return nil
}
