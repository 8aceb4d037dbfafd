package queryplan

import (
	"fmt"

	"golang.org/x/text/language"
)

// Issue is one problem found in a plan. Path locates the offending node in
// query-file coordinates, such as "pipeline[2].orderBy".
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// ValidationResult reports whether a plan is executable.
//
// Validation is structural: it catches plans no executor could run, such
// as a comparison with an unknown operator or an aggregate without a
// column. It does not open the source or compile CEL expressions; those
// fail at execution setup.
type ValidationResult struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Validate checks a plan against the structural rules the executor
// assumes. It is a pure function with no side effects.
func Validate(p *Plan) ValidationResult {
	v := &validator{}
	if p == nil {
		v.add("plan", "plan is nil")
	} else {
		v.validateSource(p.Source)
		v.validateSteps(p.Steps)
		v.validateReduce(p.Reduce, hasGroupBy(p.Steps))
	}
	return ValidationResult{
		Valid:  len(v.issues) == 0,
		Issues: v.issues,
	}
}

// validator accumulates issues during traversal.
type validator struct {
	issues []Issue
}

func (v *validator) add(path, format string, args ...any) {
	v.issues = append(v.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) validateSource(s Source) {
	if s.File == "" && s.Inline == nil {
		v.add("source", "either file or rows is required")
		return
	}
	if s.File != "" && s.Inline != nil {
		v.add("source", "file and rows are mutually exclusive")
	}
	if s.Table != "" && s.File == "" {
		v.add("source.table", "table requires a database file")
	}
}

func (v *validator) validateSteps(steps []Step) {
	for i, s := range steps {
		path := fmt.Sprintf("pipeline[%d]", i)
		switch step := s.(type) {
		case WhereStep:
			if step.Filter == nil {
				v.add(path+".where", "filter is required")
			} else {
				v.validateFilter(step.Filter, path+".where")
			}
		case SelectStep:
			v.validateSelect(step, path+".select")
		case OrderByStep:
			v.validateOrderBy(step, path+".orderBy")
		case DistinctStep:
			// no parameters
		case GroupByStep:
			if step.Field == "" {
				v.add(path+".groupBy", "field is required")
			}
			if i != len(steps)-1 {
				v.add(path+".groupBy", "groupBy must be the final pipeline step")
			}
		case TakeStep:
			if step.N < 0 {
				v.add(path+".take", "count must not be negative, got %d", step.N)
			}
		case SkipStep:
			if step.N < 0 {
				v.add(path+".skip", "count must not be negative, got %d", step.N)
			}
		case ReverseStep:
			// no parameters
		default:
			v.add(path, "unknown step type %T", s)
		}
	}
}

func (v *validator) validateSelect(step SelectStep, path string) {
	if len(step.Columns) == 0 {
		v.add(path, "at least one column is required")
		return
	}
	seen := make(map[string]struct{}, len(step.Columns))
	for _, c := range step.Columns {
		if c == "" {
			v.add(path, "column names must not be empty")
			continue
		}
		if _, dup := seen[c]; dup {
			v.add(path, "duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
}

func (v *validator) validateOrderBy(step OrderByStep, path string) {
	if step.Field == "" {
		v.add(path, "field is required")
	}
	if step.Collate != "" {
		if _, err := language.Parse(step.Collate); err != nil {
			v.add(path+".collate", "invalid language tag %q", step.Collate)
		}
	}
}

func (v *validator) validateFilter(f Filter, path string) {
	switch filt := f.(type) {
	case CompareFilter:
		if filt.Field == "" {
			v.add(path, "field is required")
		}
		if !filt.Op.Valid() {
			v.add(path, "unknown comparison operator %q", string(filt.Op))
		}
		if filt.Value == nil {
			v.add(path, "comparison value is required")
		}
	case AndFilter:
		for i, sub := range filt.Filters {
			v.validateFilter(sub, fmt.Sprintf("%s.and[%d]", path, i))
		}
	case OrFilter:
		for i, sub := range filt.Filters {
			v.validateFilter(sub, fmt.Sprintf("%s.or[%d]", path, i))
		}
	case NotFilter:
		if filt.Filter == nil {
			v.add(path+".not", "filter is required")
		} else {
			v.validateFilter(filt.Filter, path+".not")
		}
	case ExprFilter:
		if filt.Expr == "" {
			v.add(path+".expr", "expression must not be empty")
		}
	case nil:
		v.add(path, "filter is nil")
	default:
		v.add(path, "unknown filter type %T", f)
	}
}

func (v *validator) validateReduce(r *Reduce, grouped bool) {
	if r == nil {
		return
	}
	if !r.Kind.Valid() {
		v.add("reduce", "unknown reduce kind %q", string(r.Kind))
		return
	}

	switch r.Kind {
	case ReduceSum, ReduceMin, ReduceMax, ReduceAvg:
		if r.Field == "" {
			v.add("reduce", "%s requires a field", r.Kind)
		}
	case ReduceContains:
		if r.Field == "" {
			v.add("reduce", "contains requires a field")
		}
		if r.Value == nil {
			v.add("reduce", "contains requires a value")
		}
	case ReduceAll:
		if r.Where == nil {
			v.add("reduce", "all requires a where filter")
		}
	}
	if r.Where != nil {
		if r.Kind != ReduceAny && r.Kind != ReduceAll {
			v.add("reduce.where", "where applies only to any and all")
		} else {
			v.validateFilter(r.Where, "reduce.where")
		}
	}
	if r.Field != "" {
		switch r.Kind {
		case ReduceSum, ReduceMin, ReduceMax, ReduceAvg, ReduceContains:
		default:
			v.add("reduce.field", "field applies only to sum, min, max, avg, and contains")
		}
	}

	if grouped {
		switch r.Kind {
		case ReduceRows, ReduceCount, ReduceSum, ReduceMin, ReduceMax, ReduceAvg:
		default:
			v.add("reduce", "%s cannot follow groupBy", r.Kind)
		}
	}
}

func hasGroupBy(steps []Step) bool {
	for _, s := range steps {
		if _, ok := s.(GroupByStep); ok {
			return true
		}
	}
	return false
}
