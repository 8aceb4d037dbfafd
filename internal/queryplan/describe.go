package queryplan

import (
	"fmt"
	"strings"

	"github.com/khuatbaonguyen123/linq/internal/row"
)

// DescribeSource renders a source in one line for traces and explain
// output.
func DescribeSource(s Source) string {
	if s.File == "" {
		return fmt.Sprintf("inline rows (%d)", len(s.Inline))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "file %q", s.File)
	if s.Table != "" {
		fmt.Fprintf(&b, " table %q", s.Table)
	}
	if s.Schema != "" {
		fmt.Fprintf(&b, " schema %q", s.Schema)
	}
	return b.String()
}

// DescribeStep renders one pipeline step in one line.
func DescribeStep(s Step) string {
	switch s := s.(type) {
	case WhereStep:
		return "where " + DescribeFilter(s.Filter)
	case SelectStep:
		return "select " + strings.Join(s.Columns, ", ")
	case OrderByStep:
		out := "orderBy " + s.Field
		if s.Desc {
			out += " desc"
		}
		if s.Collate != "" {
			out += " collate " + s.Collate
		}
		return out
	case DistinctStep:
		return "distinct"
	case GroupByStep:
		return "groupBy " + s.Field
	case TakeStep:
		return fmt.Sprintf("take %d", s.N)
	case SkipStep:
		return fmt.Sprintf("skip %d", s.N)
	case ReverseStep:
		return "reverse"
	default:
		return fmt.Sprintf("%T", s)
	}
}

// DescribeFilter renders a filter tree in one line. Combinators get
// parentheses so nesting reads unambiguously.
func DescribeFilter(f Filter) string {
	switch f := f.(type) {
	case CompareFilter:
		return fmt.Sprintf("%s %s %s", f.Field, f.Op, row.CanonicalValue(f.Value))
	case AndFilter:
		return "(" + joinFilters(f.Filters, " and ") + ")"
	case OrFilter:
		return "(" + joinFilters(f.Filters, " or ") + ")"
	case NotFilter:
		return "not " + DescribeFilter(f.Filter)
	case ExprFilter:
		return fmt.Sprintf("expr(%s)", f.Expr)
	case nil:
		return "<none>"
	default:
		return fmt.Sprintf("%T", f)
	}
}

func joinFilters(fs []Filter, sep string) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = DescribeFilter(f)
	}
	return strings.Join(parts, sep)
}

// DescribeReduce renders a reduction in one line.
func DescribeReduce(r *Reduce) string {
	if r == nil {
		return string(ReduceRows)
	}
	var b strings.Builder
	b.WriteString(string(r.Kind))
	if r.Field != "" {
		b.WriteString(" " + r.Field)
	}
	if r.Value != nil {
		b.WriteString(" " + row.CanonicalValue(r.Value))
	}
	if r.Where != nil {
		b.WriteString(" where " + DescribeFilter(r.Where))
	}
	return b.String()
}
