package parser

import (
	"github.com/risor-io/superstrict/ast"
	"github.com/risor-io/superstrict/errors"
	"github.com/risor-io/superstrict/internal/token"
)

// Expression parsing methods for the Parser.
// This file contains methods that parse expression constructs:
// - Identifiers and prefix/infix expressions
// - Increment and decrement
// - Assignment and ternary expressions
// - Grouped expressions
// - Call, attribute and index expressions
// - Membership (in)

func (p *Parser) parseIdent() ast.Expr {
	return p.newIdent(p.curToken)
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	if err := p.nextToken(); err != nil {
		return nil
	}
	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	return &ast.Prefix{OpPos: opPos, Op: op, X: right}
}

// parsePrefixUpdate parses "++x" and "--x".
func (p *Parser) parsePrefixUpdate() ast.Expr {
	opTok := p.curToken
	if err := p.nextToken(); err != nil {
		return nil
	}
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}
	if !isAssignable(operand) {
		p.setTokenError(opTok, errors.E1005, "invalid operand for %s (expected identifier, attribute or index)", opTok.Literal)
		return nil
	}
	return &ast.Update{OpPos: opTok.StartPosition, Op: opTok.Literal, Prefix: true, X: operand}
}

// parsePostfix parses "x++" and "x--". The operator is the current token.
func (p *Parser) parsePostfix(left ast.Expr) ast.Expr {
	if !isAssignable(left) {
		p.setTokenError(p.curToken, errors.E1005, "invalid operand for %s (expected identifier, attribute or index)", p.curToken.Literal)
		return nil
	}
	return &ast.Update{OpPos: p.curToken.StartPosition, Op: p.curToken.Literal, X: left}
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	precedence := p.currentPrecedence()
	if err := p.nextToken(); err != nil {
		return nil
	}
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.Infix{X: left, OpPos: opPos, Op: op, Y: right}
}

func (p *Parser) parseIn(left ast.Expr) ast.Expr {
	inPos := p.curToken.StartPosition
	if err := p.nextToken(); err != nil {
		return nil
	}
	right := p.parseExpression(LESSGREATER)
	if right == nil {
		return nil
	}
	return &ast.In{X: left, InPos: inPos, Y: right}
}

func (p *Parser) parseAssign(target ast.Expr) ast.Expr {
	opTok := p.curToken
	if !isAssignable(target) {
		p.setTokenError(opTok, errors.E1005, "invalid assignment target")
		return nil
	}
	if err := p.nextToken(); err != nil {
		return nil
	}
	// Assignment is right-associative: a = b = c is a = (b = c).
	value := p.parseExpression(ASSIGN - 1)
	if value == nil {
		return nil
	}
	return &ast.Assign{Target: target, OpPos: opTok.StartPosition, Op: opTok.Literal, Value: value}
}

func (p *Parser) parseTernary(cond ast.Expr) ast.Expr {
	question := p.curToken.StartPosition
	if err := p.nextToken(); err != nil {
		return nil
	}
	ifTrue := p.parseExpression(LOWEST)
	if ifTrue == nil {
		return nil
	}
	if !p.expectPeek("ternary expression", token.COLON) {
		return nil
	}
	colon := p.curToken.StartPosition
	if err := p.nextToken(); err != nil {
		return nil
	}
	// Right-associative: a ? b : c ? d : e is a ? b : (c ? d : e).
	ifFalse := p.parseExpression(TERNARY - 1)
	if ifFalse == nil {
		return nil
	}
	return &ast.Ternary{
		Cond:     cond,
		Question: question,
		IfTrue:   ifTrue,
		Colon:    colon,
		IfFalse:  ifFalse,
	}
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.nesting++
	defer func() { p.nesting-- }()
	if err := p.nextToken(); err != nil {
		return nil
	}
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek("grouped expression", token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseCall(fn ast.Expr) ast.Expr {
	lparen := p.curToken.StartPosition
	args, ok := p.parseExprList("call arguments", token.RPAREN)
	if !ok {
		return nil
	}
	return &ast.Call{Fun: fn, Lparen: lparen, Args: args, Rparen: p.curToken.StartPosition}
}

func (p *Parser) parseGetAttr(obj ast.Expr) ast.Expr {
	period := p.curToken.StartPosition
	// Keywords are valid attribute names: o.in, o.null
	if p.peekToken.Literal == "" || token.LookupIdentifier(p.peekToken.Literal) != p.peekToken.Type {
		p.peekError("attribute access", token.IDENT, p.peekToken)
		return nil
	}
	if err := p.nextToken(); err != nil {
		return nil
	}
	return &ast.GetAttr{X: obj, Period: period, Attr: p.newIdent(p.curToken)}
}

func (p *Parser) parseIndex(obj ast.Expr) ast.Expr {
	lbrack := p.curToken.StartPosition
	p.nesting++
	defer func() { p.nesting-- }()
	if err := p.nextToken(); err != nil {
		return nil
	}
	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil
	}
	if !p.expectPeek("index expression", token.RBRACKET) {
		return nil
	}
	return &ast.Index{X: obj, Lbrack: lbrack, Index: index, Rbrack: p.curToken.StartPosition}
}

// parseExprList parses a comma separated list of expressions up to the end
// token. The current token is the opening delimiter; on success the current
// token is the closing one. A trailing comma is permitted.
func (p *Parser) parseExprList(context string, end token.Type) ([]ast.Expr, bool) {
	p.nesting++
	defer func() { p.nesting-- }()
	list := []ast.Expr{}
	if p.peekTokenIs(end) {
		return list, p.nextToken() == nil
	}
	for {
		if err := p.nextToken(); err != nil {
			return nil, false
		}
		item := p.parseExpression(LOWEST)
		if item == nil {
			return nil, false
		}
		list = append(list, item)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, false
		}
		if p.peekTokenIs(end) {
			break
		}
	}
	if !p.expectPeek(context, end) {
		return nil, false
	}
	return list, true
}

// isAssignable reports whether expr may appear on the left of an
// assignment or as the operand of ++ and --.
func isAssignable(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.Ident, *ast.GetAttr, *ast.Index:
		return true
	}
	return false
}
