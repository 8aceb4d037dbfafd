package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khuatbaonguyen123/linq/internal/queryplan"
)

// ExplainResult describes a compiled plan without running it.
type ExplainResult struct {
	Document string   `json:"document"`
	Source   string   `json:"source"`
	Steps    []string `json:"steps"`
	Reduce   string   `json:"reduce"`
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <query.cue>",
		Short: "Show the plan a query document compiles to",
		Long: `Compile and validate a query document, then print its plan
without touching the dataset.

Each pipeline step is listed in execution order, followed by the
terminal reduction (or "rows" when the document has none).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runExplain(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	plan, err := loadDocument(formatter, path)
	if err != nil {
		return err
	}

	if vr := queryplan.Validate(plan); !vr.Valid {
		return outputPlanIssues(formatter, vr.Issues)
	}

	result := &ExplainResult{
		Document: path,
		Source:   queryplan.DescribeSource(plan.Source),
		Steps:    make([]string, 0, len(plan.Steps)),
		Reduce:   queryplan.DescribeReduce(plan.Reduce),
	}
	for _, step := range plan.Steps {
		result.Steps = append(result.Steps, queryplan.DescribeStep(step))
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "query %s\n\n", path)
	fmt.Fprintf(formatter.Writer, "  source: %s\n", result.Source)
	for i, step := range result.Steps {
		fmt.Fprintf(formatter.Writer, "  %2d. %s\n", i+1, step)
	}
	fmt.Fprintf(formatter.Writer, "  reduce: %s\n", result.Reduce)

	return nil
}
