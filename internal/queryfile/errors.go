package queryfile

import (
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error code constants, stable across CLI output formats.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // Path not found
	ErrCodeLoadFailed  = "E003" // CUE load failed
	ErrCodeBuildFailed = "E004" // CUE build failed
	ErrCodeNoQuery     = "E005" // No query declaration found

	// Compile errors by document section
	ErrCodeBadSource   = "E101" // Invalid source
	ErrCodeBadPipeline = "E102" // Invalid pipeline step
	ErrCodeBadReduce   = "E103" // Invalid reduce
	ErrCodeBadLiteral  = "E104" // Invalid literal value
)

// LoadError reports a query document that could not be read or built.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CompileError reports a well-formed CUE document that does not describe a
// valid query. Field locates the problem in document coordinates, such as
// "pipeline[2].orderBy".
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Code maps the error's document section to a stable error code.
func (e *CompileError) Code() string {
	switch {
	case strings.HasPrefix(e.Field, "source"):
		return ErrCodeBadSource
	case strings.HasPrefix(e.Field, "pipeline"):
		return ErrCodeBadPipeline
	case strings.HasPrefix(e.Field, "reduce"):
		return ErrCodeBadReduce
	case e.Field == "value":
		return ErrCodeBadLiteral
	default:
		return ErrCodeGeneric
	}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(field string, err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors; report the first with its
	// position.
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &CompileError{Field: field, Message: err.Error()}
	}

	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	ce := &CompileError{Field: field, Message: firstErr.Error()}
	if len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
