package lexer

import (
	"testing"

	"github.com/risor-io/superstrict/internal/token"
	"github.com/stretchr/testify/require"
)

type expectedToken struct {
	expectedType    token.Type
	expectedLiteral string
}

func checkTokens(t *testing.T, input string, tests []expectedToken) {
	t.Helper()
	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNull(t *testing.T) {
	checkTokens(t, "a = null;", []expectedToken{
		{token.IDENT, "a"},
		{token.ASSIGN, "="},
		{token.NULL, "null"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	})
}

func TestNextToken1(t *testing.T) {
	checkTokens(t, "%=+(){},;?|| &&++--*=..&", []expectedToken{
		{token.MOD_EQUALS, "%="},
		{token.PLUS, "+"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.COMMA, ","},
		{token.SEMICOLON, ";"},
		{token.QUESTION, "?"},
		{token.OR, "||"},
		{token.AND, "&&"},
		{token.PLUS_PLUS, "++"},
		{token.MINUS_MINUS, "--"},
		{token.ASTERISK_EQUALS, "*="},
		{token.PERIOD, "."},
		{token.PERIOD, "."},
		{token.BITAND, "&"},
		{token.EOF, ""},
	})
}

func TestShiftAndEqualityOperators(t *testing.T) {
	checkTokens(t, "a >>> b >> c << d >= e <= f === g !== h == i != j ~k ^ l", []expectedToken{
		{token.IDENT, "a"},
		{token.GT_GT_GT, ">>>"},
		{token.IDENT, "b"},
		{token.GT_GT, ">>"},
		{token.IDENT, "c"},
		{token.LT_LT, "<<"},
		{token.IDENT, "d"},
		{token.GT_EQUALS, ">="},
		{token.IDENT, "e"},
		{token.LT_EQUALS, "<="},
		{token.IDENT, "f"},
		{token.STRICT_EQ, "==="},
		{token.IDENT, "g"},
		{token.STRICT_NOT_EQ, "!=="},
		{token.IDENT, "h"},
		{token.EQ, "=="},
		{token.IDENT, "i"},
		{token.NOT_EQ, "!="},
		{token.IDENT, "j"},
		{token.TILDE, "~"},
		{token.IDENT, "k"},
		{token.CARET, "^"},
		{token.IDENT, "l"},
		{token.EOF, ""},
	})
}

func TestKeywords(t *testing.T) {
	checkTokens(t, "var let const function if else while for in typeof return throw break continue true false", []expectedToken{
		{token.VAR, "var"},
		{token.LET, "let"},
		{token.CONST, "const"},
		{token.FUNCTION, "function"},
		{token.IF, "if"},
		{token.ELSE, "else"},
		{token.WHILE, "while"},
		{token.FOR, "for"},
		{token.IN, "in"},
		{token.TYPEOF, "typeof"},
		{token.RETURN, "return"},
		{token.THROW, "throw"},
		{token.BREAK, "break"},
		{token.CONTINUE, "continue"},
		{token.TRUE, "true"},
		{token.FALSE, "false"},
		{token.EOF, ""},
	})
}

func TestString(t *testing.T) {
	checkTokens(t, `"use superstrict" 'single' "esc\"aped\n"`, []expectedToken{
		{token.STRING, "use superstrict"},
		{token.STRING, "single"},
		{token.STRING, "esc\"aped\n"},
		{token.EOF, ""},
	})
}

func TestHexEscape(t *testing.T) {
	checkTokens(t, `"\x001" "\x41\x7a" "\xe9"`, []expectedToken{
		{token.STRING, "\x001"},
		{token.STRING, "Az"},
		{token.STRING, "\u00e9"},
		{token.EOF, ""},
	})

	for _, input := range []string{`"\x4"`, `"\xg0"`, `"\x"`} {
		_, err := New(input).Next()
		require.Error(t, err, input)
		require.Equal(t, "invalid hex escape sequence", err.Error())
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	tok, err := l.Next()
	require.Error(t, err)
	require.Equal(t, token.ILLEGAL, tok.Type)
	require.Equal(t, "unterminated string literal", err.Error())
}

func TestComments(t *testing.T) {
	input := `a /* block
comment */ b // line comment
c`
	l := New(input)

	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, "a", tok.Literal)
	require.False(t, tok.NewlineBefore)

	tok, err = l.Next()
	require.NoError(t, err)
	require.Equal(t, "b", tok.Literal)
	require.True(t, tok.NewlineBefore)
	require.Equal(t, 1, tok.StartPosition.Line)

	tok, err = l.Next()
	require.NoError(t, err)
	require.Equal(t, "c", tok.Literal)
	require.True(t, tok.NewlineBefore)
	require.Equal(t, 2, tok.StartPosition.Line)
	require.Equal(t, 0, tok.StartPosition.Column)
}

func TestNumbers(t *testing.T) {
	checkTokens(t, "10 0x10 0xFE 1.5 .5 2e10 3E-2 7;", []expectedToken{
		{token.INT, "10"},
		{token.INT, "0x10"},
		{token.INT, "0xFE"},
		{token.FLOAT, "1.5"},
		{token.FLOAT, ".5"},
		{token.FLOAT, "2e10"},
		{token.FLOAT, "3E-2"},
		{token.INT, "7"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	})
}

func TestInvalidNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12ab", "invalid decimal literal: 12a"},
		{"0x1aZ", "invalid hex literal: 0x1aZ"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		_, err := l.Next()
		require.Error(t, err)
		require.Equal(t, tt.expected, err.Error())
	}
}

func TestMemberAfterInteger(t *testing.T) {
	checkTokens(t, "1.x", []expectedToken{
		{token.INT, "1"},
		{token.PERIOD, "."},
		{token.IDENT, "x"},
		{token.EOF, ""},
	})
}

// Test that the shebang-line is handled specially.
func TestShebang(t *testing.T) {
	l := New("#!/usr/bin/env node\n10;")
	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.INT, tok.Type)
	require.True(t, tok.NewlineBefore)
	require.Equal(t, 1, tok.StartPosition.Line)
}

func TestGetLineText(t *testing.T) {
	l := New("let a = 1\nlet b = a.c")
	l.SetFilename("main.js")
	var last token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Type == token.EOF {
			break
		}
		last = tok
	}
	require.Equal(t, "c", last.Literal)
	require.Equal(t, "let b = a.c", l.GetLineText(last))
	require.Equal(t, "main.js", last.StartPosition.File)
	require.Equal(t, "main.js", l.Filename())
}

func TestIllegalCharacter(t *testing.T) {
	l := New("@")
	tok, err := l.Next()
	require.Error(t, err)
	require.Equal(t, token.ILLEGAL, tok.Type)
}
