package exec

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/khuatbaonguyen123/linq/internal/queryplan"
	"github.com/khuatbaonguyen123/linq/internal/row"
)

// buildFilter lowers a plan filter into a predicate over records.
// Comparison filters use the total cell order, so null cells compare
// below everything rather than poisoning the result.
func (e *Executor) buildFilter(f queryplan.Filter) (func(row.Record) (bool, error), error) {
	switch f := f.(type) {
	case queryplan.CompareFilter:
		field, op, want := f.Field, f.Op, f.Value
		return func(r row.Record) (bool, error) {
			return opHolds(op, row.Compare(r.Field(field), want)), nil
		}, nil

	case queryplan.AndFilter:
		subs, err := e.buildFilters(f.Filters)
		if err != nil {
			return nil, err
		}
		// Empty conjunction is vacuously true.
		return func(r row.Record) (bool, error) {
			for _, sub := range subs {
				ok, err := sub(r)
				if err != nil || !ok {
					return false, err
				}
			}
			return true, nil
		}, nil

	case queryplan.OrFilter:
		subs, err := e.buildFilters(f.Filters)
		if err != nil {
			return nil, err
		}
		// Empty disjunction is false.
		return func(r row.Record) (bool, error) {
			for _, sub := range subs {
				ok, err := sub(r)
				if err != nil || ok {
					return ok, err
				}
			}
			return false, nil
		}, nil

	case queryplan.NotFilter:
		sub, err := e.buildFilter(f.Filter)
		if err != nil {
			return nil, err
		}
		return func(r row.Record) (bool, error) {
			ok, err := sub(r)
			if err != nil {
				return false, err
			}
			return !ok, nil
		}, nil

	case queryplan.ExprFilter:
		prg, err := e.compileExpr(f.Expr)
		if err != nil {
			return nil, err
		}
		expr := f.Expr
		return func(r row.Record) (bool, error) {
			return evalExpr(prg, expr, r)
		}, nil

	default:
		return nil, fmt.Errorf("unknown filter type %T", f)
	}
}

func (e *Executor) buildFilters(fs []queryplan.Filter) ([]func(row.Record) (bool, error), error) {
	subs := make([]func(row.Record) (bool, error), len(fs))
	for i, f := range fs {
		sub, err := e.buildFilter(f)
		if err != nil {
			return nil, err
		}
		subs[i] = sub
	}
	return subs, nil
}

func opHolds(op queryplan.CompareOp, c int) bool {
	switch op {
	case queryplan.OpEq:
		return c == 0
	case queryplan.OpNe:
		return c != 0
	case queryplan.OpLt:
		return c < 0
	case queryplan.OpLe:
		return c <= 0
	case queryplan.OpGt:
		return c > 0
	case queryplan.OpGe:
		return c >= 0
	default:
		return false
	}
}

// compileExpr compiles a CEL expression, consulting the per-executor
// program cache first.
func (e *Executor) compileExpr(expr string) (cel.Program, error) {
	if val, ok := e.progs.Load(expr); ok {
		return val.(cel.Program), nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, &ExprError{Expr: expr, Err: issues.Err()}
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, &ExprError{Expr: expr, Err: err}
	}
	e.progs.Store(expr, prg)
	return prg, nil
}

func evalExpr(prg cel.Program, expr string, r row.Record) (bool, error) {
	out, _, err := prg.Eval(map[string]any{"row": celRow(r)})
	if err != nil {
		return false, &ExprError{Expr: expr, Err: err}
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, &ExprError{Expr: expr, Err: fmt.Errorf("must produce a boolean, got %T", out.Value())}
	}
	return b, nil
}

// celRow converts a record to the map exposed as the CEL `row` variable.
func celRow(r row.Record) map[string]any {
	m := make(map[string]any, len(r))
	for name, v := range r {
		m[name] = row.ToAny(v)
	}
	return m
}
