// Package token defines language keywords and tokens used when lexing source code.
package token

import "fmt"

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the file
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes.
// Used for computing End positions from a start position.
// Note: This assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.LineNumber(), p.ColumnNumber())
	}
	return fmt.Sprintf("%d:%d", p.LineNumber(), p.ColumnNumber())
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position

	// NewlineBefore is set when at least one line break separates this
	// token from the previous one. The parser uses it to end statements.
	NewlineBefore bool
}

// Token types
const (
	AND             Type = "&&"
	ASSIGN          Type = "="
	ASTERISK        Type = "*"
	ASTERISK_EQUALS Type = "*="
	BANG            Type = "!"
	BITAND          Type = "&"
	BITOR           Type = "|"
	BREAK           Type = "BREAK"
	CARET           Type = "^"
	COLON           Type = ":"
	COMMA           Type = ","
	CONST           Type = "CONST"
	CONTINUE        Type = "CONTINUE"
	ELSE            Type = "ELSE"
	EOF             Type = "EOF"
	EQ              Type = "=="
	FALSE           Type = "FALSE"
	FLOAT           Type = "FLOAT"
	FOR             Type = "FOR"
	FUNCTION        Type = "FUNCTION"
	GT              Type = ">"
	GT_EQUALS       Type = ">="
	GT_GT           Type = ">>"
	GT_GT_GT        Type = ">>>"
	IDENT           Type = "IDENT"
	IF              Type = "IF"
	ILLEGAL         Type = "ILLEGAL"
	IN              Type = "IN"
	INT             Type = "INT"
	LBRACE          Type = "{"
	LBRACKET        Type = "["
	LET             Type = "LET"
	LPAREN          Type = "("
	LT              Type = "<"
	LT_EQUALS       Type = "<="
	LT_LT           Type = "<<"
	MINUS           Type = "-"
	MINUS_EQUALS    Type = "-="
	MINUS_MINUS     Type = "--"
	MOD             Type = "%"
	MOD_EQUALS      Type = "%="
	NOT_EQ          Type = "!="
	NULL            Type = "NULL"
	OR              Type = "||"
	PERIOD          Type = "."
	PLUS            Type = "+"
	PLUS_EQUALS     Type = "+="
	PLUS_PLUS       Type = "++"
	QUESTION        Type = "?"
	RBRACE          Type = "}"
	RBRACKET        Type = "]"
	RETURN          Type = "RETURN"
	RPAREN          Type = ")"
	SEMICOLON       Type = ";"
	SLASH           Type = "/"
	SLASH_EQUALS    Type = "/="
	STRICT_EQ       Type = "==="
	STRICT_NOT_EQ   Type = "!=="
	STRING          Type = "STRING"
	THROW           Type = "THROW"
	TILDE           Type = "~"
	TRUE            Type = "TRUE"
	TYPEOF          Type = "TYPEOF"
	VAR             Type = "VAR"
	WHILE           Type = "WHILE"
)

// Reserved keywords
var keywords = map[string]Type{
	"break":    BREAK,
	"const":    CONST,
	"continue": CONTINUE,
	"else":     ELSE,
	"false":    FALSE,
	"for":      FOR,
	"function": FUNCTION,
	"if":       IF,
	"in":       IN,
	"let":      LET,
	"null":     NULL,
	"return":   RETURN,
	"throw":    THROW,
	"true":     TRUE,
	"typeof":   TYPEOF,
	"var":      VAR,
	"while":    WHILE,
}

// LookupIdentifier used to determinate whether identifier is keyword nor not
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}
