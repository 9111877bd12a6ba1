package parser

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/risor-io/superstrict/ast"
	"github.com/risor-io/superstrict/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := Parse(context.Background(), input)
	require.NoError(t, err, "input: %s", input)
	return program
}

func parseErr(t *testing.T, input string) *Errors {
	t.Helper()
	_, err := Parse(context.Background(), input)
	require.Error(t, err, "input: %s", input)
	var errs *Errors
	require.True(t, stderrors.As(err, &errs), "got %T", err)
	return errs
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a + b * c", "(a + (b * c));"},
		{"a * b + c", "((a * b) + c);"},
		{"a - b - c", "((a - b) - c);"},
		{"-a * b", "((-a) * b);"},
		{"!a && b || c", "(((!a) && b) || c);"},
		{"a = b = c", "a = (b = c);"},
		{"x += 1", "x += 1;"},
		{"a ? b : c ? d : e", "(a ? b : (c ? d : e));"},
		{"k in o && p", "((k in o) && p);"},
		{"a << 1 + 2", "(a << (1 + 2));"},
		{"a & b | c ^ d", "((a & b) | (c ^ d));"},
		{"a >>> 2 >= b", "((a >>> 2) >= b);"},
		{"a == b != c", "((a == b) != c);"},
		{"a === b !== c", "((a === b) !== c);"},
		{"a.b.c(d)[e]", "a.b.c(d)[e];"},
		{`typeof x === "y"`, `((typeof x) === "y");`},
		{"-x++", "(-(x++));"},
		{"++a.b", "(++a.b);"},
		{"x++ + 1", "((x++) + 1);"},
		{"~a % 3", "((~a) % 3);"},
		{"f(a, b,)", "f(a, b);"},
		{"(a + b) * c", "((a + b) * c);"},
		{"o[k] = v", "o[k] = v;"},
		{"a.b.c = 1", "a.b.c = 1;"},
		{"x = y ? 1 : 2", "x = (y ? 1 : 2);"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parse(t, tt.input).String())
		})
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"42", "42;"},
		{"0x2a", "0x2a;"},
		{"1.5e3", "1.5e3;"},
		{"true", "true;"},
		{"null", "null;"},
		{`x = 'it\'s'`, `x = "it's";`},
		{`x = "a\tb"`, `x = "a\tb";`},
		{"x = [1, [2, 3],]", "x = [1, [2, 3]];"},
		{"x = []", "x = [];"},
		{`x = {a: 1, "b": 2, if: 3}`, `x = {a: 1, "b": 2, if: 3};`},
		{"x = {}", "x = {};"},
		{"({a: 1})", "({a: 1});"},
		{"f(function (x) { return x })", "f(function(x) {\n\treturn x;\n});"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parse(t, tt.input).String())
		})
	}

	program := parse(t, "0x10; 2.5; false")
	require.Len(t, program.Stmts, 3)
	assert.Equal(t, int64(16), program.Stmts[0].(*ast.Int).Value)
	assert.Equal(t, 2.5, program.Stmts[1].(*ast.Float).Value)
	assert.False(t, program.Stmts[2].(*ast.Bool).Value)
}

func TestStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"var x = 1; let y; const z = [1, 2]", "var x = 1;\nlet y;\nconst z = [1, 2];"},
		{"function add(a, b) { return a + b }", "function add(a, b) {\n\treturn (a + b);\n}"},
		{
			"if (a) { b } else if (c) d; else { e }",
			"if (a) {\n\tb;\n} else if (c) {\n\td;\n} else {\n\te;\n}",
		},
		{"while (i < 10) i++", "while ((i < 10)) {\n\t(i++);\n}"},
		{"for (var i = 0; i < n; i++) {}", "for (var i = 0; (i < n); (i++)) {}"},
		{"for (i = 0; i < n; i += 2) {}", "for (i = 0; (i < n); i += 2) {}"},
		{"for (;;) { break }", "for (; ; ) {\n\tbreak;\n}"},
		{"for (const k in obj) { continue }", "for (const k in obj) {\n\tcontinue;\n}"},
		{"for (k in obj) break", "for (k in obj) {\n\tbreak;\n}"},
		{"throw err", "throw err;"},
		{"{ a; b }", "{\n\ta;\n\tb;\n}"},
		{";;x;;", "x;"},
		{"function f() {}\nf()", "function f() {}\nf();"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parse(t, tt.input).String())
		})
	}
}

func TestDirectivePrologue(t *testing.T) {
	program := parse(t, "'use superstrict'\n\"use strict\";\nx")
	require.Len(t, program.Directives, 2)
	assert.Equal(t, "use superstrict", program.Directives[0].Value)
	assert.Equal(t, "use strict", program.Directives[1].Value)
	require.Len(t, program.Stmts, 1)
	assert.Equal(t, "\"use superstrict\";\n\"use strict\";\nx;", program.String())

	// Only the leading string statements form the prologue.
	program = parse(t, "x\n'use superstrict'")
	assert.Empty(t, program.Directives)
	assert.Len(t, program.Stmts, 2)

	program = parse(t, "('use superstrict')")
	assert.Empty(t, program.Directives)

	program = parse(t, "'use superstrict' + 1")
	assert.Empty(t, program.Directives)

	program = parse(t, "function f() { 'use superstrict' }")
	assert.Empty(t, program.Directives)
}

func TestNewlines(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x = a +\n  b", "x = (a + b);"},
		{"x = a\n+b", "x = a;\n(+b);"},
		{"a\n++b", "a;\n(++b);"},
		{"f(a,\n  b)", "f(a, b);"},
		{"x = [\n  1,\n  2,\n]", "x = [1, 2];"},
		{"x = {\n  a: 1,\n  b: 2\n}", "x = {a: 1, b: 2};"},
		{"x = (a\n  + b)", "x = (a + b);"},
		{"function f() {\n  return\n  x\n}", "function f() {\n\treturn;\n\tx;\n}"},
		{"f(function () {\n  a\n  b\n})", "f(function() {\n\ta;\n\tb;\n});"},
		{"if (a) {\n} else {\n}", "if (a) {} else {}"},
		{"if (a) {}\nelse {}", "if (a) {} else {}"},
		{"a.\n  b", "a.b;"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parse(t, tt.input).String())
		})
	}
}

func TestPositions(t *testing.T) {
	program := parse(t, "var x = 1\n  y.z")
	require.Len(t, program.Stmts, 2)
	attr := program.Stmts[1].(*ast.GetAttr)
	assert.Equal(t, 1, attr.Pos().Line)
	assert.Equal(t, 2, attr.Pos().Column)
	assert.Equal(t, 4, attr.Attr.Pos().Column)
	assert.Equal(t, 5, attr.End().Column)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		code    errors.ErrorCode
		message string
	}{
		{"1 = 2", errors.E1005, "parse error: invalid assignment target"},
		{"f() = 2", errors.E1005, "parse error: invalid assignment target"},
		{"f(a", errors.E1007, "parse error: unexpected end of file while parsing call arguments (expected ))"},
		{"var = 1", errors.E1006, "parse error: unexpected = while parsing var statement (expected identifier)"},
		{"a b", errors.E1001, `parse error: unexpected token "b" following statement`},
		{"1++", errors.E1005, "parse error: invalid operand for ++ (expected identifier, attribute or index)"},
		{"const c", errors.E1004, "parse error: missing initializer in const declaration"},
		{"x = )", errors.E1003, `parse error: invalid syntax (unexpected ")")`},
		{"x = ", errors.E1004, "parse error: unexpected end of file"},
		{"{ a", errors.E1007, "parse error: unterminated block (expected })"},
		{"function f(a, a) {}", errors.E1003, `parse error: duplicate parameter "a"`},
		{`x = "abc`, errors.E1002, "syntax error: unterminated string literal"},
		{"x = 1e", errors.E1008, "syntax error: invalid decimal literal: 1e"},
		{"x = @", errors.E1003, "syntax error: unexpected character: '@'"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			errs := parseErr(t, tt.input)
			first := errs.First()
			require.NotNil(t, first)
			assert.Equal(t, tt.code, first.Code())
			assert.Equal(t, tt.message, first.Error())
		})
	}
}

func TestSyntaxErrorIsUnwrappable(t *testing.T) {
	_, err := Parse(context.Background(), `x = "abc`)
	var syntaxErr *SyntaxError
	require.True(t, stderrors.As(err, &syntaxErr))
	assert.Equal(t, "syntax error", syntaxErr.Kind())
	assert.NotNil(t, stderrors.Unwrap(syntaxErr))
}

func TestMultipleErrors(t *testing.T) {
	errs := parseErr(t, "a b\nvar = 1\nc")
	assert.Equal(t, `parse error: unexpected token "b" following statement (and 1 more errors)`, errs.Error())
	assert.Len(t, errs.Unwrap(), 2)
	assert.Len(t, errs.ToFormattedMultiple(), 2)
}

func TestPartialProgram(t *testing.T) {
	program, err := Parse(context.Background(), "a\nb c\nd")
	require.Error(t, err)
	require.NotNil(t, program)
	assert.Equal(t, "a;\nd;", program.String())
}

func TestFormattedError(t *testing.T) {
	errs := parseErr(t, "a b")
	expected := "parse error[E1001]: unexpected token \"b\" following statement\n" +
		"  --> 1:3\n" +
		"   |\n" +
		" 1 | a b\n" +
		"   |   ^\n"
	assert.Equal(t, expected, errors.NewFormatter(false).Format(errs.First().ToFormatted()))
}

func TestWithFilename(t *testing.T) {
	_, err := Parse(context.Background(), "\nx = )", WithFilename("test.js"))
	var errs *Errors
	require.True(t, stderrors.As(err, &errs))
	first := errs.First()
	assert.Equal(t, "test.js", first.File())
	assert.Equal(t, "test.js", first.StartPosition().File)
	formatted := first.ToFormatted()
	assert.Equal(t, "test.js", formatted.Filename)
	assert.Equal(t, 2, formatted.Line)
	assert.Equal(t, 5, formatted.Column)
	assert.Equal(t, "x = )", formatted.SourceLines[0].Text)
}

func TestMaxDepth(t *testing.T) {
	_, err := Parse(context.Background(), "((((((((1))))))))", WithMaxDepth(5))
	var errs *Errors
	require.True(t, stderrors.As(err, &errs))
	assert.Equal(t, errors.E1009, errs.First().Code())

	_, err = Parse(context.Background(), "{{{{{{{{}}}}}}}}", WithMaxDepth(5))
	require.True(t, stderrors.As(err, &errs))
	assert.Equal(t, errors.E1009, errs.First().Code())

	_, err = Parse(context.Background(), "((1))", WithMaxDepth(5))
	require.NoError(t, err)
}

func TestContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, "x = 1")
	require.ErrorIs(t, err, context.Canceled)
}

func TestEmptyProgram(t *testing.T) {
	program := parse(t, "")
	assert.Empty(t, program.Stmts)
	assert.Empty(t, program.Directives)
	program = parse(t, "// just a comment\n/* and another */")
	assert.Empty(t, program.Stmts)
}

func TestPrintedProgramReparses(t *testing.T) {
	inputs := []string{
		"var o = {a: [1, 2], b: function (x) { return -x }}",
		"for (var i = 0; i < 3; i++) { if (i in seen) continue; total += o[i].v }",
		"x = a ? b : c ? d : e\ny = typeof x === 'string'",
		"while (a && !b) { a = a.next }",
		"({}).x = 1",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := parse(t, input).String()
			second := parse(t, first).String()
			assert.Equal(t, first, second)
		})
	}
}
