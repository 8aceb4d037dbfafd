package exec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/khuatbaonguyen123/linq/internal/queryplan"
	"github.com/khuatbaonguyen123/linq/internal/row"
)

// PlanError reports a plan that failed validation before execution began.
type PlanError struct {
	Issues []queryplan.Issue
}

func (e *PlanError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("invalid plan: %s", strings.Join(msgs, "; "))
}

// ExprError reports a CEL expression that failed to compile or evaluate.
type ExprError struct {
	Expr string
	Err  error
}

func (e *ExprError) Error() string {
	return fmt.Sprintf("expression %q: %v", e.Expr, e.Err)
}

func (e *ExprError) Unwrap() error {
	return e.Err
}

// CellTypeError reports a reduction applied to a cell of the wrong kind,
// such as summing a string column.
type CellTypeError struct {
	Reduce string
	Field  string
	Kind   row.Kind
}

func (e *CellTypeError) Error() string {
	return fmt.Sprintf("reduce %s: field %q holds %s, want a number", e.Reduce, e.Field, e.Kind)
}

// IsPlanError reports whether err is a plan validation failure.
func IsPlanError(err error) bool {
	var pe *PlanError
	return errors.As(err, &pe)
}

// IsExprError reports whether err is an expression failure.
func IsExprError(err error) bool {
	var ee *ExprError
	return errors.As(err, &ee)
}

// IsCellTypeError reports whether err is a cell type mismatch.
func IsCellTypeError(err error) bool {
	var ce *CellTypeError
	return errors.As(err, &ce)
}
