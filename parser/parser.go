// Package parser is used to generate the abstract syntax tree (AST) for a program.
//
// A parser is created by calling New() with a lexer as input. The parser should
// then be used only once, by calling parser.Parse() to produce the AST.
//
// Statements end at a semicolon, a closing brace, the end of input, or a line
// break. A line break inside parentheses or brackets does not end anything,
// and a trailing operator continues the expression onto the next line:
//
//	x = a +
//	    b      // one statement
//	x = a
//	+b         // two statements
//
// Postfix "++" and "--" must be on the same line as their operand.
package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/risor-io/superstrict/ast"
	"github.com/risor-io/superstrict/errors"
	"github.com/risor-io/superstrict/internal/lexer"
	"github.com/risor-io/superstrict/internal/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parse the provided input as source code and return the AST. This is
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	return New(lexer.New(input), options...).Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in positions and errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// MaxErrors is the maximum number of errors to collect before stopping.
const MaxErrors = 10

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// prevToken holds the previous token, which we already processed.
	prevToken token.Token

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// parsing errors collected during parsing
	errors []ParserError

	// stmtErrorCount tracks error count at start of current statement.
	// Used by inner methods to detect if an error was added during this statement.
	stmtErrorCount int

	// prefixParseFns holds a map of parsing methods for
	// prefix-based syntax.
	prefixParseFns map[token.Type]prefixParseFn

	// infixParseFns holds a map of parsing methods for
	// infix-based syntax.
	infixParseFns map[token.Type]infixParseFn

	// The filename of the input
	filename string

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int

	// Number of open parentheses and brackets around the current
	// expression. Line breaks do not end expressions while it is positive.
	nesting int
}

// New returns a Parser for the program provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{
		l:              l,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
		maxDepth:       DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	// Set the filename before the first tokens are read, so that lexer
	// errors in them have proper location context.
	if p.filename != "" {
		l.SetFilename(p.filename)
	}

	// Prime the token pump
	p.nextToken() // makes curToken=<empty>, peekToken=token[0]
	p.nextToken() // makes curToken=token[0], peekToken=token[1]

	// Register prefix-functions
	p.registerPrefix(token.BANG, p.parsePrefixExpr)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.FLOAT, p.parseFloat)
	p.registerPrefix(token.FUNCTION, p.parseFunc)
	p.registerPrefix(token.IDENT, p.parseIdent)
	p.registerPrefix(token.ILLEGAL, p.illegalToken)
	p.registerPrefix(token.INT, p.parseInt)
	p.registerPrefix(token.LBRACE, p.parseMap)
	p.registerPrefix(token.LBRACKET, p.parseList)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.MINUS, p.parsePrefixExpr)
	p.registerPrefix(token.MINUS_MINUS, p.parsePrefixUpdate)
	p.registerPrefix(token.NULL, p.parseNull)
	p.registerPrefix(token.PLUS, p.parsePrefixExpr)
	p.registerPrefix(token.PLUS_PLUS, p.parsePrefixUpdate)
	p.registerPrefix(token.STRING, p.parseString)
	p.registerPrefix(token.TILDE, p.parsePrefixExpr)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.TYPEOF, p.parsePrefixExpr)

	// Register infix functions
	p.registerInfix(token.AND, p.parseInfixExpr)
	p.registerInfix(token.ASSIGN, p.parseAssign)
	p.registerInfix(token.ASTERISK, p.parseInfixExpr)
	p.registerInfix(token.ASTERISK_EQUALS, p.parseAssign)
	p.registerInfix(token.BITAND, p.parseInfixExpr)
	p.registerInfix(token.BITOR, p.parseInfixExpr)
	p.registerInfix(token.CARET, p.parseInfixExpr)
	p.registerInfix(token.EQ, p.parseInfixExpr)
	p.registerInfix(token.GT, p.parseInfixExpr)
	p.registerInfix(token.GT_EQUALS, p.parseInfixExpr)
	p.registerInfix(token.GT_GT, p.parseInfixExpr)
	p.registerInfix(token.GT_GT_GT, p.parseInfixExpr)
	p.registerInfix(token.IN, p.parseIn)
	p.registerInfix(token.LBRACKET, p.parseIndex)
	p.registerInfix(token.LPAREN, p.parseCall)
	p.registerInfix(token.LT, p.parseInfixExpr)
	p.registerInfix(token.LT_EQUALS, p.parseInfixExpr)
	p.registerInfix(token.LT_LT, p.parseInfixExpr)
	p.registerInfix(token.MINUS, p.parseInfixExpr)
	p.registerInfix(token.MINUS_EQUALS, p.parseAssign)
	p.registerInfix(token.MINUS_MINUS, p.parsePostfix)
	p.registerInfix(token.MOD, p.parseInfixExpr)
	p.registerInfix(token.MOD_EQUALS, p.parseAssign)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpr)
	p.registerInfix(token.OR, p.parseInfixExpr)
	p.registerInfix(token.PERIOD, p.parseGetAttr)
	p.registerInfix(token.PLUS, p.parseInfixExpr)
	p.registerInfix(token.PLUS_EQUALS, p.parseAssign)
	p.registerInfix(token.PLUS_PLUS, p.parsePostfix)
	p.registerInfix(token.QUESTION, p.parseTernary)
	p.registerInfix(token.SLASH, p.parseInfixExpr)
	p.registerInfix(token.SLASH_EQUALS, p.parseAssign)
	p.registerInfix(token.STRICT_EQ, p.parseInfixExpr)
	p.registerInfix(token.STRICT_NOT_EQ, p.parseInfixExpr)

	return p
}

// advanceToken moves to the next token from the lexer without error checking.
// Used internally by synchronize() during error recovery.
func (p *Parser) advanceToken() {
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	p.peekToken, _ = p.l.Next()
}

// nextToken moves to the next token from the lexer, updating all of
// prevToken, curToken, and peekToken.
func (p *Parser) nextToken() error {
	var err error
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	p.peekToken, err = p.l.Next()
	if err == nil {
		return nil // success
	}
	// The lexer encountered an error. We consider all lexer errors
	// "syntax errors" and parsing will now be considered broken.
	p.addError(newSyntaxError(ErrorOpts{
		Code:  lexErrorCode(err),
		Cause: err,
		File:  p.l.Filename(),
		Start: p.peekToken.StartPosition,
		End:   p.peekToken.EndPosition,
		Line:  p.l.GetLineText(p.peekToken),
	}))
	return err
}

// Parse the program that is provided via the lexer.
// Returns the AST and any errors encountered. If there are errors, the AST
// may be partial (containing only successfully parsed statements).
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	p.ctx = ctx
	// It's possible for errors to already exist because we read tokens from
	// the lexer in the constructor.
	if p.hasErrors() {
		return nil, NewErrors(p.errors)
	}
	program := &ast.Program{}
	prologue := true
	for p.curToken.Type != token.EOF {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if p.tooManyErrors() {
			break
		}
		// Track error count for this statement so inner methods can detect new errors
		p.stmtErrorCount = len(p.errors)
		first := p.curToken
		stmt := p.parseStatementStrict()
		switch {
		case stmt != nil:
			if d := directive(first, stmt); prologue && d != nil {
				program.Directives = append(program.Directives, d)
			} else {
				prologue = false
				program.Stmts = append(program.Stmts, stmt)
			}
		case p.hadNewError():
			p.synchronize()
		}
		p.nextToken()
	}
	if p.hasErrors() {
		return program, NewErrors(p.errors)
	}
	return program, nil
}

// directive returns the directive expressed by stmt, if stmt is a bare
// string literal statement. A parenthesized string is not a directive.
func directive(first token.Token, stmt ast.Node) *ast.Directive {
	s, ok := stmt.(*ast.String)
	if !ok || first.Type != token.STRING {
		return nil
	}
	return &ast.Directive{ValuePos: s.ValuePos, Value: s.Value}
}

// registerPrefix registers a function for handling a prefix-based statement.
func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers a function for handling an infix-based statement.
func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// addError appends an error to the errors slice.
func (p *Parser) addError(err ParserError) {
	p.errors = append(p.errors, err)
}

// hasErrors returns true if any errors have been recorded.
func (p *Parser) hasErrors() bool {
	return len(p.errors) > 0
}

// tooManyErrors returns true if error limit has been reached.
func (p *Parser) tooManyErrors() bool {
	return len(p.errors) >= MaxErrors
}

// hadNewError returns true if an error was added during the current statement.
func (p *Parser) hadNewError() bool {
	return len(p.errors) > p.stmtErrorCount
}

// synchronize skips the rest of the current line, or up to the next
// semicolon, so that parsing can resume at a statement boundary.
func (p *Parser) synchronize() {
	p.nesting = 0
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) || p.peekToken.NewlineBefore || p.peekTokenIs(token.EOF) {
			return
		}
		p.advanceToken()
	}
}

func lexErrorCode(err error) errors.ErrorCode {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "unterminated string"):
		return errors.E1002
	case strings.Contains(msg, "escape sequence"):
		return errors.E1010
	case strings.Contains(msg, "literal"):
		return errors.E1008
	default:
		return errors.E1003
	}
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	p.setTokenError(t, errors.E1003, "invalid syntax (unexpected %q)", t.Literal)
}

// peekError raises an error if the next token is not the expected type.
func (p *Parser) peekError(context string, expected token.Type, got token.Token) {
	code := errors.E1001
	switch expected {
	case token.RPAREN, token.RBRACKET, token.RBRACE:
		code = errors.E1007
	case token.IDENT:
		code = errors.E1006
	}
	p.setTokenError(got, code, "unexpected %s while parsing %s (expected %s)",
		tokenDescription(got), context, tokenTypeDescription(expected))
}

// cancelled checks if the parsing context has been cancelled.
// Returns true if cancelled, in which case parsing should stop.
func (p *Parser) cancelled() bool {
	if p.ctx == nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		p.addError(newParseError(ErrorOpts{
			Kind:  "context error",
			Cause: p.ctx.Err(),
		}))
		return true
	default:
		return false
	}
}

// enter records one level of recursion, failing once the maximum depth is
// exceeded. Every successful enter must be paired with a leave.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.depth--
		p.setTokenError(p.curToken, errors.E1009, "maximum nesting depth exceeded")
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// peekTerminates reports whether the expression being parsed ends before
// the next token.
func (p *Parser) peekTerminates() bool {
	if p.peekTokenIs(token.SEMICOLON) {
		return true
	}
	if !p.peekToken.NewlineBefore {
		return false
	}
	if p.nesting == 0 {
		return true
	}
	return p.peekTokenIs(token.PLUS_PLUS) || p.peekTokenIs(token.MINUS_MINUS)
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	if p.hadNewError() {
		return nil
	}
	if p.curTokenIs(token.EOF) {
		p.setTokenError(p.curToken, errors.E1004, "unexpected end of file")
		return nil
	}
	if !p.enter() {
		return nil
	}
	defer p.leave()

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	left := prefix()
	if left == nil || p.hadNewError() {
		return nil
	}
	for !p.peekTerminates() && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		if err := p.nextToken(); err != nil {
			return nil
		}
		left = infix(left)
		if left == nil || p.hadNewError() {
			return nil
		}
	}
	return left
}

func (p *Parser) illegalToken() ast.Expr {
	// The lexer has usually reported this token already.
	if n := len(p.errors); n > 0 && p.errors[n-1].StartPosition() == p.curToken.StartPosition {
		return nil
	}
	p.setTokenError(p.curToken, errors.E1003, "illegal token %s", p.curToken.Literal)
	return nil
}

func (p *Parser) setTokenError(t token.Token, code errors.ErrorCode, msg string, args ...any) {
	p.addError(newParseError(ErrorOpts{
		Kind:    "parse error",
		Code:    code,
		Message: fmt.Sprintf(msg, args...),
		File:    p.l.Filename(),
		Start:   t.StartPosition,
		End:     t.EndPosition,
		Line:    p.l.GetLineText(t),
	}))
}

// newIdent creates a new Ident node from a token.
func (p *Parser) newIdent(tok token.Token) *ast.Ident {
	return &ast.Ident{NamePos: tok.StartPosition, Name: tok.Literal}
}

// curTokenIs returns true if the current token has the given type.
func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// peekTokenIs returns true if the next token has the given type.
func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek validates if the next token is of the given type, and advances if
// it is. If it's a different type, then an error is stored.
func (p *Parser) expectPeek(context string, t token.Type) bool {
	if p.peekTokenIs(t) {
		return p.nextToken() == nil
	}
	p.peekError(context, t, p.peekToken)
	return false
}

// peekPrecedence returns the precedence of the next token.
func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

// currentPrecedence returns the precedence of the current token.
func (p *Parser) currentPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}
