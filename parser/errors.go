package parser

import (
	"fmt"

	"github.com/risor-io/superstrict/errors"
	"github.com/risor-io/superstrict/internal/token"
)

// ErrorOpts describes where and why parsing failed. Cause, when set, takes
// precedence over Message.
type ErrorOpts struct {
	Kind    string // "parse error", "syntax error" or "context error"
	Code    errors.ErrorCode
	Message string
	Cause   error
	File    string
	Start   token.Position
	End     token.Position
	Line    string // text of the line holding Start
}

// ParserError is a single failure reported by the parser.
type ParserError interface {
	errors.FormattableError
	Kind() string
	Code() errors.ErrorCode
	File() string
	StartPosition() token.Position
}

// BaseParserError is the ParserError produced for grammar violations and
// cancellation.
type BaseParserError struct {
	opts ErrorOpts
}

func newParseError(opts ErrorOpts) *BaseParserError {
	return &BaseParserError{opts: opts}
}

func (e *BaseParserError) message() string {
	if e.opts.Cause != nil {
		return e.opts.Cause.Error()
	}
	return e.opts.Message
}

func (e *BaseParserError) Error() string {
	if e.opts.Kind == "" {
		return e.message()
	}
	return e.opts.Kind + ": " + e.message()
}

func (e *BaseParserError) Unwrap() error                 { return e.opts.Cause }
func (e *BaseParserError) Kind() string                  { return e.opts.Kind }
func (e *BaseParserError) Code() errors.ErrorCode        { return e.opts.Code }
func (e *BaseParserError) File() string                  { return e.opts.File }
func (e *BaseParserError) StartPosition() token.Position { return e.opts.Start }

// ToFormatted renders the error with its source line.
func (e *BaseParserError) ToFormatted() *errors.FormattedError {
	start, end := e.opts.Start, e.opts.End
	formatted := &errors.FormattedError{
		Code:     e.opts.Code,
		Kind:     e.opts.Kind,
		Message:  e.message(),
		Filename: e.opts.File,
		Line:     start.LineNumber(),
		Column:   start.ColumnNumber(),
		SourceLines: []errors.SourceLineEntry{
			{Number: start.LineNumber(), Text: e.opts.Line, IsMain: true},
		},
	}
	if end.Line == start.Line && end.Column > start.Column {
		formatted.EndColumn = end.ColumnNumber() - 1
	}
	return formatted
}

// SyntaxError wraps a lexer failure: input that could not be tokenized.
type SyntaxError struct {
	*BaseParserError
}

func newSyntaxError(opts ErrorOpts) *SyntaxError {
	opts.Kind = "syntax error"
	return &SyntaxError{BaseParserError: newParseError(opts)}
}

func tokenTypeDescription(t token.Type) string {
	switch t {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return "identifier"
	default:
		return string(t)
	}
}

func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of file"
	case token.STRING:
		return "string"
	default:
		if t.Literal == "" {
			return string(t.Type)
		}
		return t.Literal
	}
}

// Errors is the error returned by Parse. It holds every failure collected
// before parsing stopped, in source order.
type Errors struct {
	errs []ParserError
}

// NewErrors returns nil when errs is empty.
func NewErrors(errs []ParserError) *Errors {
	if len(errs) == 0 {
		return nil
	}
	return &Errors{errs: errs}
}

func (e *Errors) Error() string {
	if len(e.errs) == 1 {
		return e.errs[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e.errs[0].Error(), len(e.errs)-1)
}

// First returns the earliest failure.
func (e *Errors) First() ParserError {
	return e.errs[0]
}

// ToFormattedMultiple renders every failure.
func (e *Errors) ToFormattedMultiple() []*errors.FormattedError {
	formatted := make([]*errors.FormattedError, len(e.errs))
	for i, err := range e.errs {
		formatted[i] = err.ToFormatted()
	}
	return formatted
}

func (e *Errors) Unwrap() []error {
	result := make([]error, len(e.errs))
	for i, err := range e.errs {
		result[i] = err
	}
	return result
}
