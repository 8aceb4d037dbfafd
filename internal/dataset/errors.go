package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// LoadError reports a source that could not be read or decoded.
type LoadError struct {
	// Path is the source file.
	Path string

	// Format is the inferred source format ("json", "yaml", "csv",
	// "sqlite"), or empty when the extension itself was unrecognized.
	Format string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("load %s dataset %s: %v", e.Format, e.Path, e.Err)
	}
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError returns true if the error is a dataset load failure.
// Uses errors.As to handle wrapped errors.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// SchemaError reports records that failed JSON Schema validation.
type SchemaError struct {
	// SchemaPath is the schema document the records were checked against.
	SchemaPath string

	// Violations lists the individual failures, each prefixed with the
	// zero-based record index.
	Violations []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset violates schema %s: %s",
		e.SchemaPath, strings.Join(e.Violations, "; "))
}

// IsSchemaError returns true if the error is a schema validation failure.
// Uses errors.As to handle wrapped errors.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

func loadErr(path, format string, err error) *LoadError {
	return &LoadError{Path: path, Format: format, Err: err}
}
