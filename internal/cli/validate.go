package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khuatbaonguyen123/linq/internal/queryplan"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <query.cue>",
		Short: "Validate a query document without running it",
		Long: `Compile a query document and check its plan against the
structural rules: a single source, a well-formed pipeline with groupBy
only in final position, and a reduction the pipeline's shape allows.

The dataset is never opened. Faster than run for development feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
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
	formatter.VerboseLog("Compiled %s: %d pipeline step(s)", path, len(plan.Steps))

	if vr := queryplan.Validate(plan); !vr.Valid {
		return outputPlanIssues(formatter, vr.Issues)
	}

	if formatter.Format == "json" {
		return formatter.Success(queryplan.ValidationResult{Valid: true})
	}

	fmt.Fprintln(formatter.Writer, "✓ Query valid")
	return nil
}
