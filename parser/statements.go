package parser

import (
	"github.com/risor-io/superstrict/ast"
	"github.com/risor-io/superstrict/errors"
	"github.com/risor-io/superstrict/internal/token"
)

// Statement parsing methods for the Parser.
// This file contains methods that parse statement constructs:
// - Variable declarations (var, let, const)
// - Return, throw, break and continue statements
// - Conditionals and loops
// - Blocks and function declarations
//
// Each method leaves the current token on the last token of the statement.

func (p *Parser) parseStatementStrict() ast.Node {
	stmt := p.parseStatement()
	if stmt == nil {
		return nil
	}
	if !p.atStatementEnd() {
		p.setTokenError(p.peekToken, errors.E1001, "unexpected token %q following statement",
			tokenDescription(p.peekToken))
		return nil
	}
	return stmt
}

// atStatementEnd reports whether the statement just parsed is properly
// terminated.
func (p *Parser) atStatementEnd() bool {
	switch {
	case p.curTokenIs(token.SEMICOLON), p.curTokenIs(token.RBRACE):
		return true
	case p.peekTokenIs(token.RBRACE), p.peekTokenIs(token.EOF):
		return true
	}
	return p.peekToken.NewlineBefore
}

func (p *Parser) parseStatement() ast.Node {
	var stmt ast.Node
	switch p.curToken.Type {
	case token.VAR, token.LET, token.CONST:
		stmt = p.parseVar()
	case token.RETURN:
		stmt = p.parseReturn()
	case token.THROW:
		stmt = p.parseThrow()
	case token.BREAK:
		stmt = &ast.Break{Break: p.curToken.StartPosition}
	case token.CONTINUE:
		stmt = &ast.Continue{Continue: p.curToken.StartPosition}
	case token.IF:
		stmt = p.parseIf()
	case token.WHILE:
		stmt = p.parseWhile()
	case token.FOR:
		stmt = p.parseFor()
	case token.LBRACE:
		if block := p.parseBlock(); block != nil {
			stmt = block
		}
	case token.FUNCTION:
		if p.peekTokenIs(token.IDENT) {
			stmt = p.parseFunc()
		} else {
			stmt = p.parseExpressionStatement()
		}
	case token.SEMICOLON:
		return nil
	default:
		stmt = p.parseExpressionStatement()
	}
	if stmt == nil {
		return nil
	}
	// Consume trailing semicolon if present
	if p.peekTokenIs(token.SEMICOLON) {
		if err := p.nextToken(); err != nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Node {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseVar() ast.Node {
	letPos := p.curToken.StartPosition
	kind := p.curToken.Literal
	if !p.expectPeek(kind+" statement", token.IDENT) {
		return nil
	}
	return p.parseVarRest(letPos, kind, p.newIdent(p.curToken))
}

// parseVarRest parses the optional initializer of a declaration whose name
// is the current token.
func (p *Parser) parseVarRest(letPos token.Position, kind string, name *ast.Ident) ast.Node {
	stmt := &ast.Var{Let: letPos, Kind: kind, Name: name}
	if !p.peekTokenIs(token.ASSIGN) {
		if kind == "const" {
			p.setTokenError(p.curToken, errors.E1004, "missing initializer in const declaration")
			return nil
		}
		return stmt
	}
	p.nextToken() // move to '='
	if err := p.nextToken(); err != nil {
		return nil
	}
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseReturn() ast.Node {
	stmt := &ast.Return{Return: p.curToken.StartPosition}
	if p.peekTerminates() || p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		return stmt
	}
	if err := p.nextToken(); err != nil {
		return nil
	}
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseThrow() ast.Node {
	throwPos := p.curToken.StartPosition
	if p.peekToken.NewlineBefore {
		p.setTokenError(p.curToken, errors.E1004, "illegal newline after throw")
		return nil
	}
	if err := p.nextToken(); err != nil {
		return nil
	}
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.Throw{Throw: throwPos, Value: value}
}

func (p *Parser) parseIf() ast.Node {
	ifPos := p.curToken.StartPosition
	cond := p.parseCondition("if statement")
	if cond == nil {
		return nil
	}
	consequence := p.parseBody("if statement")
	if consequence == nil {
		return nil
	}
	stmt := &ast.If{If: ifPos, Cond: cond, Consequence: consequence}
	if !p.peekTokenIs(token.ELSE) {
		return stmt
	}
	p.nextToken() // move to 'else'
	if p.peekTokenIs(token.IF) {
		p.nextToken() // move to 'if'
		alt := p.parseIf()
		if alt == nil {
			return nil
		}
		stmt.Alternative = alt.(*ast.If)
		return stmt
	}
	alt := p.parseBody("else clause")
	if alt == nil {
		return nil
	}
	stmt.Alternative = alt
	return stmt
}

func (p *Parser) parseWhile() ast.Node {
	whilePos := p.curToken.StartPosition
	cond := p.parseCondition("while statement")
	if cond == nil {
		return nil
	}
	body := p.parseBody("while statement")
	if body == nil {
		return nil
	}
	return &ast.While{While: whilePos, Cond: cond, Body: body}
}

// parseCondition parses a parenthesized condition following the current
// token, leaving the closing parenthesis as the current token.
func (p *Parser) parseCondition(context string) ast.Expr {
	if !p.expectPeek(context, token.LPAREN) {
		return nil
	}
	p.nesting++
	defer func() { p.nesting-- }()
	if err := p.nextToken(); err != nil {
		return nil
	}
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek(context, token.RPAREN) {
		return nil
	}
	return cond
}

// parseFor parses both "for (init; cond; post)" and "for (k in obj)" loops.
func (p *Parser) parseFor() ast.Node {
	forPos := p.curToken.StartPosition
	if !p.expectPeek("for statement", token.LPAREN) {
		return nil
	}
	if err := p.nextToken(); err != nil {
		return nil
	}
	header, ok := p.parseForHeader(forPos)
	if !ok {
		return nil
	}
	body := p.parseBody("for statement")
	if body == nil {
		return nil
	}
	switch s := header.(type) {
	case *ast.ForIn:
		s.Body = body
		return s
	case *ast.For:
		s.Body = body
		return s
	}
	return nil
}

// parseForHeader parses the parenthesized part of a for loop, starting at
// the first token after "(" and ending on ")". The returned loop has no
// body yet.
func (p *Parser) parseForHeader(forPos token.Position) (ast.Stmt, bool) {
	p.nesting++
	defer func() { p.nesting-- }()

	loop := &ast.For{For: forPos}
	switch {
	case p.curTokenIs(token.VAR), p.curTokenIs(token.LET), p.curTokenIs(token.CONST):
		letPos, kind := p.curToken.StartPosition, p.curToken.Literal
		if !p.expectPeek("for statement", token.IDENT) {
			return nil, false
		}
		name := p.newIdent(p.curToken)
		if p.peekTokenIs(token.IN) {
			return p.parseForInRest(forPos, kind, name)
		}
		init := p.parseVarRest(letPos, kind, name)
		if init == nil {
			return nil, false
		}
		loop.Init = init
	case p.curTokenIs(token.IDENT) && p.peekTokenIs(token.IN):
		return p.parseForInRest(forPos, "", p.newIdent(p.curToken))
	case p.curTokenIs(token.SEMICOLON):
		// no initializer
	default:
		init := p.parseExpression(LOWEST)
		if init == nil {
			return nil, false
		}
		loop.Init = init
	}
	if loop.Init != nil && !p.expectPeek("for statement", token.SEMICOLON) {
		return nil, false
	}
	if !p.peekTokenIs(token.SEMICOLON) {
		if err := p.nextToken(); err != nil {
			return nil, false
		}
		if loop.Cond = p.parseExpression(LOWEST); loop.Cond == nil {
			return nil, false
		}
	}
	if !p.expectPeek("for statement", token.SEMICOLON) {
		return nil, false
	}
	if !p.peekTokenIs(token.RPAREN) {
		if err := p.nextToken(); err != nil {
			return nil, false
		}
		if loop.Post = p.parseExpression(LOWEST); loop.Post == nil {
			return nil, false
		}
	}
	if !p.expectPeek("for statement", token.RPAREN) {
		return nil, false
	}
	return loop, true
}

// parseForInRest parses "in obj)" after the loop variable of a for-in loop.
func (p *Parser) parseForInRest(forPos token.Position, kind string, key *ast.Ident) (ast.Stmt, bool) {
	p.nextToken() // move to 'in'
	if err := p.nextToken(); err != nil {
		return nil, false
	}
	x := p.parseExpression(LOWEST)
	if x == nil {
		return nil, false
	}
	if !p.expectPeek("for statement", token.RPAREN) {
		return nil, false
	}
	return &ast.ForIn{For: forPos, Kind: kind, Key: key, X: x}, true
}

// parseBody parses the body of a conditional or loop following the current
// token: either a block or a single statement, which is wrapped in a block.
func (p *Parser) parseBody(context string) *ast.Block {
	if p.peekTokenIs(token.LBRACE) {
		p.nextToken() // move to '{'
		return p.parseBlock()
	}
	if p.peekTokenIs(token.EOF) {
		p.peekError(context, token.LBRACE, p.peekToken)
		return nil
	}
	if err := p.nextToken(); err != nil {
		return nil
	}
	saved := p.nesting
	p.nesting = 0
	defer func() { p.nesting = saved }()
	start := p.curToken.StartPosition
	stmt := p.parseStatement()
	if stmt == nil {
		if !p.hadNewError() {
			p.setTokenError(p.curToken, errors.E1004, "expected statement in %s", context)
		}
		return nil
	}
	return &ast.Block{Lbrace: start, Stmts: []ast.Node{stmt}, Rbrace: p.curToken.StartPosition}
}

// parseBlock parses statements between braces. The current token is "{";
// on success it is the matching "}".
func (p *Parser) parseBlock() *ast.Block {
	if !p.enter() {
		return nil
	}
	defer p.leave()
	saved := p.nesting
	p.nesting = 0
	defer func() { p.nesting = saved }()

	block := &ast.Block{Lbrace: p.curToken.StartPosition}
	if err := p.nextToken(); err != nil {
		return nil
	}
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.setTokenError(p.curToken, errors.E1007, "unterminated block (expected })")
			return nil
		}
		if p.cancelled() {
			return nil
		}
		stmt := p.parseStatementStrict()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		} else if p.hadNewError() {
			return nil
		}
		if err := p.nextToken(); err != nil {
			return nil
		}
	}
	block.Rbrace = p.curToken.StartPosition
	return block
}
