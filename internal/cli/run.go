package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/khuatbaonguyen123/linq/internal/dataset"
	"github.com/khuatbaonguyen123/linq/internal/exec"
	"github.com/khuatbaonguyen123/linq/internal/queryplan"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Trace bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions, gen RunIDGenerator) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <query.cue>",
		Short: "Execute a query document",
		Long: `Execute a CUE query document against its dataset.

The document names its own source: a JSON, YAML, CSV, or SQLite file, or
inline rows. Relative source and schema paths resolve against the
document's directory.

Example:
  linq run queries/adults.cue
  linq run queries/adults.cue --format json --trace`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd, gen)
		},
	}

	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "include the per-step trace in the output")

	return cmd
}

func runQuery(opts *RunOptions, path string, cmd *cobra.Command, gen RunIDGenerator) error {
	configureLogging(opts.Verbose)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
		RunID:     gen.Generate(),
	}

	plan, err := loadDocument(formatter, path)
	if err != nil {
		return err
	}
	formatter.VerboseLog("Compiled %s: %d pipeline step(s)", path, len(plan.Steps))

	if vr := queryplan.Validate(plan); !vr.Valid {
		return outputPlanIssues(formatter, vr.Issues)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ds, err := openDataset(ctx, plan, path, formatter)
	if err != nil {
		return err
	}

	executor, err := exec.New(exec.WithLogger(slog.Default()))
	if err != nil {
		_ = formatter.Error(ErrCodeExec, err.Error(), nil)
		return WrapExitError(ExitCommandError, "initialize executor", err)
	}

	res, err := executor.Run(ctx, plan, ds)
	if err != nil {
		_ = formatter.Error(ErrCodeExec, err.Error(), nil)
		return WrapExitError(ExitFailure, "query failed", err)
	}

	if !opts.Trace {
		res.Trace = nil
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	renderResult(formatter.Writer, res)
	return nil
}

// openDataset resolves the plan's source to a loaded dataset. Inline
// rows skip the filesystem entirely.
func openDataset(ctx context.Context, plan *queryplan.Plan, queryPath string, formatter *OutputFormatter) (*dataset.Dataset, error) {
	src := plan.Source
	if src.Inline != nil {
		return dataset.FromRecords("inline", src.Inline), nil
	}

	dataPath := resolvePath(queryPath, src.File)
	ds, err := dataset.Open(ctx, dataPath, src.Table)
	if err != nil {
		_ = formatter.Error(ErrCodeDataset, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "load dataset", err)
	}
	formatter.VerboseLog("Loaded %s: %d record(s)", ds.Name, len(ds.Records))

	if src.Schema != "" {
		schemaPath := resolvePath(queryPath, src.Schema)
		if err := ds.Validate(schemaPath); err != nil {
			var se *dataset.SchemaError
			if errors.As(err, &se) {
				_ = formatter.Error(ErrCodeSchema, fmt.Sprintf("dataset failed schema validation with %d violation(s)", len(se.Violations)), se.Violations)
				return nil, WrapExitError(ExitFailure, "dataset failed schema validation", err)
			}
			_ = formatter.Error(ErrCodeSchema, err.Error(), nil)
			return nil, WrapExitError(ExitCommandError, "read schema", err)
		}
		formatter.VerboseLog("Schema OK: %s", src.Schema)
	}

	return ds, nil
}
