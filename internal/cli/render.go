package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/khuatbaonguyen123/linq/internal/exec"
	"github.com/khuatbaonguyen123/linq/internal/row"
)

// renderResult writes a query result as human-readable text. JSON output
// goes through the OutputFormatter envelope instead.
func renderResult(w io.Writer, res *exec.Result) {
	switch res.Kind {
	case exec.ResultRows:
		renderTable(w, res.Columns, res.Rows)
		fmt.Fprintf(w, "(%d rows)\n", len(res.Rows))

	case exec.ResultGroups:
		for _, g := range res.Groups {
			fmt.Fprintf(w, "group %s (%d rows)\n", row.Format(g.Key), len(g.Rows))
			renderTable(w, res.Columns, g.Rows)
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "(%d groups)\n", len(res.Groups))

	case exec.ResultRow:
		renderTable(w, res.Columns, []row.Record{res.Row})
		fmt.Fprintln(w, "(1 row)")

	case exec.ResultValue:
		fmt.Fprintln(w, row.Format(res.Value))
	}

	if len(res.Trace) > 0 {
		renderTrace(w, res.Trace)
	}
}

func renderTable(w io.Writer, columns []string, rows []row.Record) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, r := range rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = row.Format(r.Field(c))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

func renderTrace(w io.Writer, trace []exec.StepTrace) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "trace:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, st := range trace {
		fmt.Fprintf(tw, "  %s\t%d -> %d\n", st.Step, st.RowsIn, st.RowsOut)
	}
	tw.Flush()
}
