// Package lexer turns source text into a stream of tokens for the parser.
package lexer

import (
	"fmt"
	"strings"

	"github.com/risor-io/superstrict/internal/token"
)

// Lexer holds our object-state.
type Lexer struct {
	// The current character position
	position int

	// The next character position
	nextPosition int

	// The current character
	ch byte

	// The input string
	input string

	// Line number of the current character (0-indexed)
	line int

	// Byte offset at which the current line begins
	lineStart int

	// Set when a line break was skipped since the last token
	sawNewline bool

	// Name of the file being lexed, used in positions
	file string
}

// New creates a Lexer instance for the given input.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	l.skipShebang()
	return l
}

// SetFilename sets the name of the file being lexed.
func (l *Lexer) SetFilename(file string) {
	l.file = file
}

// Filename returns the name of the file being lexed.
func (l *Lexer) Filename() string {
	return l.file
}

// Next reads and returns the next token from the input. Whitespace and
// comments are skipped, but a skipped line break is reported through
// Token.NewlineBefore.
func (l *Lexer) Next() (token.Token, error) {
	l.sawNewline = false
	if err := l.skipWhitespaceAndComments(); err != nil {
		return l.newToken(token.ILLEGAL, "", l.currentPosition()), err
	}
	start := l.currentPosition()
	switch l.ch {
	case 0:
		return l.newToken(token.EOF, "", start), nil
	case '"', '\'':
		return l.readString(start)
	case '(':
		return l.single(token.LPAREN, start)
	case ')':
		return l.single(token.RPAREN, start)
	case '{':
		return l.single(token.LBRACE, start)
	case '}':
		return l.single(token.RBRACE, start)
	case '[':
		return l.single(token.LBRACKET, start)
	case ']':
		return l.single(token.RBRACKET, start)
	case ',':
		return l.single(token.COMMA, start)
	case ';':
		return l.single(token.SEMICOLON, start)
	case ':':
		return l.single(token.COLON, start)
	case '?':
		return l.single(token.QUESTION, start)
	case '~':
		return l.single(token.TILDE, start)
	case '^':
		return l.single(token.CARET, start)
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber(start)
		}
		return l.single(token.PERIOD, start)
	case '+':
		return l.operator(start, token.PLUS, map[string]token.Type{
			"++": token.PLUS_PLUS,
			"+=": token.PLUS_EQUALS,
		})
	case '-':
		return l.operator(start, token.MINUS, map[string]token.Type{
			"--": token.MINUS_MINUS,
			"-=": token.MINUS_EQUALS,
		})
	case '*':
		return l.operator(start, token.ASTERISK, map[string]token.Type{
			"*=": token.ASTERISK_EQUALS,
		})
	case '/':
		return l.operator(start, token.SLASH, map[string]token.Type{
			"/=": token.SLASH_EQUALS,
		})
	case '%':
		return l.operator(start, token.MOD, map[string]token.Type{
			"%=": token.MOD_EQUALS,
		})
	case '=':
		return l.operator(start, token.ASSIGN, map[string]token.Type{
			"==":  token.EQ,
			"===": token.STRICT_EQ,
		})
	case '!':
		return l.operator(start, token.BANG, map[string]token.Type{
			"!=":  token.NOT_EQ,
			"!==": token.STRICT_NOT_EQ,
		})
	case '<':
		return l.operator(start, token.LT, map[string]token.Type{
			"<=": token.LT_EQUALS,
			"<<": token.LT_LT,
		})
	case '>':
		return l.operator(start, token.GT, map[string]token.Type{
			">=":  token.GT_EQUALS,
			">>":  token.GT_GT,
			">>>": token.GT_GT_GT,
		})
	case '&':
		return l.operator(start, token.BITAND, map[string]token.Type{
			"&&": token.AND,
		})
	case '|':
		return l.operator(start, token.BITOR, map[string]token.Type{
			"||": token.OR,
		})
	}
	if isDigit(l.ch) {
		return l.readNumber(start)
	}
	if isIdentStart(l.ch) {
		ident := l.readIdentifier()
		return l.newToken(token.LookupIdentifier(ident), ident, start), nil
	}
	ch := l.ch
	l.readChar()
	return l.newToken(token.ILLEGAL, string(ch), start),
		fmt.Errorf("unexpected character: %q", ch)
}

// GetLineText returns the full text of the line containing the given token.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start > len(l.input) {
		return ""
	}
	end := strings.IndexByte(l.input[start:], '\n')
	if end < 0 {
		return l.input[start:]
	}
	return l.input[start : start+end]
}

func (l *Lexer) readChar() {
	if l.nextPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.nextPosition]
	}
	l.position = l.nextPosition
	l.nextPosition++
}

func (l *Lexer) peekChar() byte {
	if l.nextPosition >= len(l.input) {
		return 0
	}
	return l.input[l.nextPosition]
}

// advance consumes the current character, keeping line bookkeeping current.
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.lineStart = l.nextPosition
		l.sawNewline = true
	}
	l.readChar()
}

func (l *Lexer) currentPosition() token.Position {
	return token.Position{
		Char:      l.position,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.position - l.lineStart,
		File:      l.file,
	}
}

func (l *Lexer) newToken(t token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          t,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   l.currentPosition(),
		NewlineBefore: l.sawNewline,
	}
}

func (l *Lexer) single(t token.Type, start token.Position) (token.Token, error) {
	lit := string(l.ch)
	l.readChar()
	return l.newToken(t, lit, start), nil
}

// operator consumes the longest operator in longer that matches the input,
// falling back to the single character type.
func (l *Lexer) operator(start token.Position, single token.Type, longer map[string]token.Type) (token.Token, error) {
	best := ""
	for lit := range longer {
		if len(lit) > len(best) && strings.HasPrefix(l.input[l.position:], lit) {
			best = lit
		}
	}
	if best == "" {
		return l.single(single, start)
	}
	for range best {
		l.readChar()
	}
	return l.newToken(longer[best], best, start), nil
}

func (l *Lexer) skipShebang() {
	if l.ch != '#' || l.peekChar() != '!' {
		return
	}
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') {
				if l.ch == 0 {
					return fmt.Errorf("unterminated block comment")
				}
				l.advance()
			}
			l.readChar()
			l.readChar()
		default:
			return nil
		}
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	begin := l.position
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) {
			l.readChar()
		}
		if isIdentStart(l.ch) {
			l.readChar()
			return l.newToken(token.ILLEGAL, l.input[begin:l.position], start),
				fmt.Errorf("invalid hex literal: %s", l.input[begin:l.position])
		}
		return l.newToken(token.INT, l.input[begin:l.position], start), nil
	}
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) || l.ch == '.' && begin == l.position {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			isFloat = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	if isIdentStart(l.ch) {
		l.readChar()
		return l.newToken(token.ILLEGAL, l.input[begin:l.position], start),
			fmt.Errorf("invalid decimal literal: %s", l.input[begin:l.position])
	}
	if isFloat {
		return l.newToken(token.FLOAT, l.input[begin:l.position], start), nil
	}
	return l.newToken(token.INT, l.input[begin:l.position], start), nil
}

// readString reads a quoted string. The token literal is the unquoted,
// unescaped value.
func (l *Lexer) readString(start token.Position) (token.Token, error) {
	quote := l.ch
	l.readChar()
	var out strings.Builder
	for l.ch != quote {
		switch l.ch {
		case 0, '\n':
			return l.newToken(token.ILLEGAL, out.String(), start),
				fmt.Errorf("unterminated string literal")
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case 'r':
				out.WriteByte('\r')
			case '0':
				out.WriteByte(0)
			case 'x':
				hi, lo := l.peekChar(), byte(0)
				if isHexDigit(hi) {
					l.readChar()
					lo = l.peekChar()
				}
				if !isHexDigit(hi) || !isHexDigit(lo) {
					return l.newToken(token.ILLEGAL, out.String(), start),
						fmt.Errorf("invalid hex escape sequence")
				}
				l.readChar()
				out.WriteRune(rune(hexValue(hi)<<4 | hexValue(lo)))
			case '\\', '"', '\'':
				out.WriteByte(l.ch)
			case 0:
				return l.newToken(token.ILLEGAL, out.String(), start),
					fmt.Errorf("unterminated string literal")
			default:
				return l.newToken(token.ILLEGAL, out.String(), start),
					fmt.Errorf("invalid escape sequence: \\%c", l.ch)
			}
		default:
			out.WriteByte(l.ch)
		}
		l.readChar()
	}
	l.readChar() // closing quote
	return l.newToken(token.STRING, out.String(), start), nil
}

func isIdentStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$' || ch >= 0x80
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func hexValue(ch byte) byte {
	switch {
	case ch >= 'a':
		return ch - 'a' + 10
	case ch >= 'A':
		return ch - 'A' + 10
	}
	return ch - '0'
}
