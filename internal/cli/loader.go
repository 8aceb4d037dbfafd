package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/khuatbaonguyen123/linq/internal/queryfile"
	"github.com/khuatbaonguyen123/linq/internal/queryplan"
)

// configureLogging sets the default slog logger for the process.
// Verbose mode lowers the level to Debug so the executor's per-step
// logs reach stderr.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

// loadDocument compiles the query document at path into a plan,
// formatting any failure for the user. Documents that cannot be read
// or parsed are command errors; documents that parse but do not
// describe a query are ordinary failures.
func loadDocument(formatter *OutputFormatter, path string) (*queryplan.Plan, error) {
	plan, err := queryfile.Load(path)
	if err == nil {
		return plan, nil
	}

	var le *queryfile.LoadError
	if errors.As(err, &le) {
		_ = formatter.Error(le.Code, le.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "load query document", err)
	}

	var ce *queryfile.CompileError
	if errors.As(err, &ce) {
		_ = formatter.Error(ce.Code(), ce.Error(), nil)
		return nil, WrapExitError(ExitFailure, "compile query document", err)
	}

	_ = formatter.Error(queryfile.ErrCodeGeneric, err.Error(), nil)
	return nil, WrapExitError(ExitCommandError, "load query document", err)
}

// outputPlanIssues reports a failed plan validation and returns the
// exit error for it.
func outputPlanIssues(formatter *OutputFormatter, issues []queryplan.Issue) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   queryplan.ValidationResult{Valid: false, Issues: issues},
			Error: &CLIError{
				Code:    ErrCodePlan,
				Message: fmt.Sprintf("plan validation failed with %d issue(s)", len(issues)),
			},
			TraceID: formatter.RunID,
		}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return WrapExitError(ExitCommandError, "encode validation issues", err)
		}
	} else {
		fmt.Fprintf(formatter.Writer, "✗ Plan validation failed with %d issue(s)\n\n", len(issues))
		for _, issue := range issues {
			fmt.Fprintf(formatter.Writer, "  %s\n", issue.String())
		}
	}

	return NewExitError(ExitFailure, fmt.Sprintf("plan validation failed with %d issue(s)", len(issues)))
}

// resolvePath resolves a source-relative path against the query
// document's directory. Absolute paths pass through untouched.
func resolvePath(queryPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(queryPath), p)
}
