package syntax

import (
	"fmt"
	"strings"

	"github.com/risor-io/superstrict/ast"
	"github.com/risor-io/superstrict/errors"
	"github.com/risor-io/superstrict/internal/token"
)

// ValidationError describes a node that a Validator reports.
type ValidationError struct {
	Code     errors.ErrorCode // error code, if any
	Message  string           // description of the violation
	Hint     string           // optional suggestion
	Node     ast.Node         // the offending node
	Position token.Position   // source location
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	pos := e.Position
	if pos.File != "" {
		return fmt.Sprintf("%s at %s:%d:%d", e.Message, pos.File, pos.LineNumber(), pos.ColumnNumber())
	}
	return fmt.Sprintf("%s at line %d, column %d", e.Message, pos.LineNumber(), pos.ColumnNumber())
}

// ToFormatted converts the error to a FormattedError. The source is used to
// show the offending line and may be empty.
func (e *ValidationError) ToFormatted(source string) *errors.FormattedError {
	fe := &errors.FormattedError{
		Code:     e.Code,
		Kind:     e.Code.Category(),
		Message:  e.Message,
		Filename: e.Position.File,
		Line:     e.Position.LineNumber(),
		Column:   e.Position.ColumnNumber(),
		Hint:     e.Hint,
	}
	if fe.Kind == "unknown" {
		fe.Kind = "validation"
	}
	if e.Node != nil {
		if end := e.Node.End(); end.Line == e.Position.Line && end.Column > e.Position.Column {
			fe.EndColumn = end.ColumnNumber() - 1
		}
	}
	lines := strings.Split(source, "\n")
	if n := e.Position.LineNumber(); n >= 1 && n <= len(lines) {
		fe.SourceLines = []errors.SourceLineEntry{{Number: n, Text: lines[n-1], IsMain: true}}
	}
	return fe
}

// ValidationErrors wraps multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// NewValidationErrors creates a ValidationErrors from a slice of errors.
func NewValidationErrors(errs []ValidationError) *ValidationErrors {
	return &ValidationErrors{Errors: errs}
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return e.Errors[0].Error()
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
		for _, err := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", err.Error())
		}
		return b.String()
	}
}

// Unwrap returns the individual errors for errors.Is/As compatibility.
func (e *ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i := range e.Errors {
		errs[i] = &e.Errors[i]
	}
	return errs
}

// Validator inspects an AST and returns validation errors.
// Validators should not modify the AST.
type Validator interface {
	// Validate checks the AST and returns any validation errors.
	// Multiple errors may be returned to show all violations at once.
	Validate(program *ast.Program) []ValidationError
}

// ValidatorFunc is an adapter to use a function as a Validator.
type ValidatorFunc func(*ast.Program) []ValidationError

// Validate implements the Validator interface.
func (f ValidatorFunc) Validate(p *ast.Program) []ValidationError {
	return f(p)
}
