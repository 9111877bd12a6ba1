package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Parse errors
//   - E2xxx: Rewrite sites reported by the audit
type ErrorCode string

const (
	// Parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Unterminated string literal
	E1003 ErrorCode = "E1003" // Invalid syntax
	E1004 ErrorCode = "E1004" // Missing expression
	E1005 ErrorCode = "E1005" // Invalid assignment target
	E1006 ErrorCode = "E1006" // Expected identifier
	E1007 ErrorCode = "E1007" // Unclosed delimiter
	E1008 ErrorCode = "E1008" // Invalid number literal
	E1009 ErrorCode = "E1009" // Maximum nesting depth exceeded
	E1010 ErrorCode = "E1010" // Invalid escape sequence

	// Rewrite sites (E2xxx)
	E2001 ErrorCode = "E2001" // Unchecked attribute access
	E2002 ErrorCode = "E2002" // Unchecked index access
	E2003 ErrorCode = "E2003" // Unchecked unary coercion
	E2004 ErrorCode = "E2004" // Unchecked increment or decrement
	E2005 ErrorCode = "E2005" // Unchecked binary coercion
	E2006 ErrorCode = "E2006" // Unchecked membership test
	E2007 ErrorCode = "E2007" // Unknown directive
)

var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "unterminated string literal",
	E1003: "invalid syntax",
	E1004: "missing expression",
	E1005: "invalid assignment target",
	E1006: "expected identifier",
	E1007: "unclosed delimiter",
	E1008: "invalid number literal",
	E1009: "maximum nesting depth exceeded",
	E1010: "invalid escape sequence",

	E2001: "unchecked attribute access",
	E2002: "unchecked index access",
	E2003: "unchecked unary coercion",
	E2004: "unchecked increment or decrement",
	E2005: "unchecked binary coercion",
	E2006: "unchecked membership test",
	E2007: "unknown directive",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "parse"
	case '2':
		return "audit"
	default:
		return "unknown"
	}
}
