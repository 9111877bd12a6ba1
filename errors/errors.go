// Package errors defines the error presentation shared by the parser, the
// audit and the command line tool.
package errors

import "fmt"

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename string
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Source   string // The line of source code
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// FormattableError is an interface for errors that can be rendered by a
// Formatter, with source context and optional colors.
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}

// MultiFormattableError is implemented by errors that wrap several
// formattable errors, such as the parser's error list.
type MultiFormattableError interface {
	Error() string
	ToFormattedMultiple() []*FormattedError
}

// Render formats err for display. Errors that carry source context are
// rendered with it; any other error is rendered as a plain message.
func Render(f *Formatter, err error) string {
	switch e := err.(type) {
	case MultiFormattableError:
		return f.FormatMultiple(e.ToFormattedMultiple())
	case FormattableError:
		return f.Format(e.ToFormatted())
	default:
		return f.Format(&FormattedError{Message: err.Error()})
	}
}
