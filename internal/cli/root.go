package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the linq CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(UUIDv7Generator{})
}

// newRootCommand wires the command tree with an explicit run-ID
// generator. Tests pass a FixedGenerator for reproducible output.
func newRootCommand(gen RunIDGenerator) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "linq",
		Short: "Run declarative queries over local datasets",
		Long: `linq evaluates CUE query documents against local datasets
(JSON, YAML, CSV, or SQLite) and prints the result as a table or JSON.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts, gen))
	cmd.AddCommand(NewExplainCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
