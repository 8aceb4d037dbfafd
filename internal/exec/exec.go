package exec

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/khuatbaonguyen123/linq"
	"github.com/khuatbaonguyen123/linq/internal/dataset"
	"github.com/khuatbaonguyen123/linq/internal/queryplan"
	"github.com/khuatbaonguyen123/linq/internal/row"
)

// Executor runs validated plans. It is safe for concurrent use; the CEL
// environment is immutable after construction and compiled programs are
// cached per expression.
type Executor struct {
	env    *cel.Env
	progs  sync.Map // map[string]cel.Program
	logger *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger for per-step debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// New creates an Executor with a CEL environment exposing each record as
// the map variable `row`.
func New(opts ...Option) (*Executor, error) {
	env, err := cel.NewEnv(
		cel.Declarations(
			decls.NewVar("row", decls.NewMapType(decls.String, decls.Dyn)),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build expression environment: %w", err)
	}

	e := &Executor{
		env:    env,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run executes a plan over a loaded dataset. The dataset is never
// mutated; every result is freshly allocated. The returned trace lists
// one entry per pipeline step plus one for an explicit reduction.
func (e *Executor) Run(ctx context.Context, plan *queryplan.Plan, ds *dataset.Dataset) (*Result, error) {
	if vr := queryplan.Validate(plan); !vr.Valid {
		return nil, &PlanError{Issues: vr.Issues}
	}

	e.logger.Debug("run query", "dataset", ds.Name, "rows", len(ds.Records), "steps", len(plan.Steps))

	q := linq.From(ds.Records)
	columns := slices.Clone(ds.Columns)
	trace := make([]StepTrace, 0, len(plan.Steps)+1)

	var grouped *groupedRows
	for _, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("query cancelled: %w", err)
		}

		in := q.Count()
		label := queryplan.DescribeStep(step)

		switch s := step.(type) {
		case queryplan.WhereStep:
			var err error
			q, err = e.applyWhere(q, s)
			if err != nil {
				return nil, err
			}

		case queryplan.SelectStep:
			cols := slices.Clone(s.Columns)
			q = linq.Select(q, func(r row.Record) row.Record {
				out := make(row.Record, len(cols))
				for _, c := range cols {
					out[c] = r.Field(c)
				}
				return out
			})
			columns = cols

		case queryplan.OrderByStep:
			compare, err := e.buildComparer(s)
			if err != nil {
				return nil, err
			}
			q = linq.OrderByComparer(q, compare)

		case queryplan.DistinctStep:
			q = linq.DistinctBy(q, row.Record.CanonicalKey)

		case queryplan.GroupByStep:
			// Validation guarantees groupBy is the final step.
			grouped = groupRecords(q, s.Field)

		case queryplan.TakeStep:
			q = q.Take(s.N)

		case queryplan.SkipStep:
			q = q.Skip(s.N)

		case queryplan.ReverseStep:
			q = q.Reverse()

		default:
			return nil, fmt.Errorf("unknown step type %T", step)
		}

		out := q.Count()
		if grouped != nil {
			out = grouped.Len()
		}
		trace = append(trace, StepTrace{Step: label, RowsIn: in, RowsOut: out})
		e.logger.Debug("pipeline step", "step", label, "rows_in", in, "rows_out", out)
	}

	reduceIn := q.Count()
	if grouped != nil {
		reduceIn = grouped.Len()
	}

	var result *Result
	var err error
	if grouped != nil {
		result, err = e.reduceGroups(grouped, plan.Reduce, columns)
	} else {
		result, err = e.reduceRows(q, plan.Reduce, columns)
	}
	if err != nil {
		return nil, err
	}

	if plan.Reduce != nil {
		trace = append(trace, StepTrace{
			Step:    "reduce " + queryplan.DescribeReduce(plan.Reduce),
			RowsIn:  reduceIn,
			RowsOut: resultSize(result),
		})
	}
	result.Trace = trace
	return result, nil
}

// applyWhere filters the query, deferring expression evaluation errors
// until the scan finishes. Predicates in the public library cannot fail,
// so the first error is captured and the remaining rows are dropped.
func (e *Executor) applyWhere(q linq.Query[row.Record], s queryplan.WhereStep) (linq.Query[row.Record], error) {
	match, err := e.buildFilter(s.Filter)
	if err != nil {
		return q, err
	}

	var evalErr error
	out := q.Where(func(r row.Record) bool {
		if evalErr != nil {
			return false
		}
		ok, err := match(r)
		if err != nil {
			evalErr = err
			return false
		}
		return ok
	})
	if evalErr != nil {
		return q, evalErr
	}
	return out, nil
}

// buildComparer builds the record comparator for an orderBy step. A
// collation tag switches string-vs-string comparisons to the locale's
// collator; cells of any other kind keep the total cell order.
func (e *Executor) buildComparer(s queryplan.OrderByStep) (func(a, b row.Record) int, error) {
	var col *collate.Collator
	if s.Collate != "" {
		tag, err := language.Parse(s.Collate)
		if err != nil {
			return nil, fmt.Errorf("orderBy collate %q: %w", s.Collate, err)
		}
		col = collate.New(tag)
	}

	field, desc := s.Field, s.Desc
	return func(a, b row.Record) int {
		c := compareCells(col, a.Field(field), b.Field(field))
		if desc {
			return -c
		}
		return c
	}, nil
}

func compareCells(col *collate.Collator, a, b row.Value) int {
	if col != nil {
		as, aok := a.(row.String)
		bs, bok := b.(row.String)
		if aok && bok {
			return col.CompareString(string(as), string(bs))
		}
	}
	return row.Compare(a, b)
}

func resultSize(r *Result) int {
	switch r.Kind {
	case ResultRows:
		return len(r.Rows)
	case ResultGroups:
		return len(r.Groups)
	default:
		return 1
	}
}
