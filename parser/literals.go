package parser

import (
	"strconv"
	"strings"

	"github.com/risor-io/superstrict/ast"
	"github.com/risor-io/superstrict/errors"
	"github.com/risor-io/superstrict/internal/token"
)

// Literal parsing methods for the Parser.
// This file contains methods that parse literal values and compound literals:
// - Numeric literals (int, float)
// - Boolean and null literals
// - String literals
// - List and map literals
// - Function literals and declarations

func (p *Parser) parseInt() ast.Expr {
	tok, lit := p.curToken, p.curToken.Literal
	var value int64
	var err error
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		value, err = strconv.ParseInt(lit[2:], 16, 64)
	} else {
		value, err = strconv.ParseInt(lit, 10, 64)
	}
	if err != nil {
		p.setTokenError(tok, errors.E1008, "invalid integer: %s", lit)
		return nil
	}
	return &ast.Int{ValuePos: tok.StartPosition, Literal: lit, Value: value}
}

func (p *Parser) parseFloat() ast.Expr {
	tok, lit := p.curToken, p.curToken.Literal
	value, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.setTokenError(tok, errors.E1008, "invalid float: %s", lit)
		return nil
	}
	return &ast.Float{ValuePos: tok.StartPosition, Literal: lit, Value: value}
}

func (p *Parser) parseBoolean() ast.Expr {
	return &ast.Bool{
		ValuePos: p.curToken.StartPosition,
		Literal:  p.curToken.Literal,
		Value:    p.curTokenIs(token.TRUE),
	}
}

func (p *Parser) parseNull() ast.Expr {
	return &ast.Null{NullPos: p.curToken.StartPosition}
}

func (p *Parser) parseString() ast.Expr {
	return &ast.String{ValuePos: p.curToken.StartPosition, Value: p.curToken.Literal}
}

func (p *Parser) parseList() ast.Expr {
	lbrack := p.curToken.StartPosition
	items, ok := p.parseExprList("list", token.RBRACKET)
	if !ok {
		return nil
	}
	return &ast.List{Lbrack: lbrack, Items: items, Rbrack: p.curToken.StartPosition}
}

func (p *Parser) parseMap() ast.Expr {
	lbrace := p.curToken.StartPosition
	p.nesting++
	defer func() { p.nesting-- }()
	var items []ast.MapItem
	for !p.peekTokenIs(token.RBRACE) {
		if p.cancelled() {
			return nil
		}
		if err := p.nextToken(); err != nil {
			return nil
		}
		key := p.parseMapKey()
		if key == nil {
			return nil
		}
		if !p.expectPeek("map", token.COLON) {
			return nil
		}
		if err := p.nextToken(); err != nil {
			return nil
		}
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		items = append(items, ast.MapItem{Key: key, Value: value})
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // move to ','
	}
	if !p.expectPeek("map", token.RBRACE) {
		return nil
	}
	return &ast.Map{Lbrace: lbrace, Items: items, Rbrace: p.curToken.StartPosition}
}

// parseMapKey parses the key of a map entry: a name (keywords included), a
// string or a number.
func (p *Parser) parseMapKey() ast.Expr {
	switch p.curToken.Type {
	case token.STRING:
		return p.parseString()
	case token.INT:
		return p.parseInt()
	case token.FLOAT:
		return p.parseFloat()
	}
	if p.curToken.Literal != "" && token.LookupIdentifier(p.curToken.Literal) == p.curToken.Type {
		return p.newIdent(p.curToken)
	}
	p.setTokenError(p.curToken, errors.E1006, "invalid map key %q", tokenDescription(p.curToken))
	return nil
}

// parseFunc parses a function literal, or a function declaration when the
// "function" keyword is followed by a name.
func (p *Parser) parseFunc() ast.Expr {
	fn := &ast.Func{Func: p.curToken.StartPosition}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		fn.Name = p.newIdent(p.curToken)
	}
	if !p.expectPeek("function", token.LPAREN) {
		return nil
	}
	fn.Lparen = p.curToken.StartPosition
	params, ok := p.parseParams()
	if !ok {
		return nil
	}
	fn.Params = params
	fn.Rparen = p.curToken.StartPosition
	if !p.expectPeek("function", token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	fn.Body = body
	return fn
}

// parseParams parses a parameter list. The current token is "(" and on
// success it is ")".
func (p *Parser) parseParams() ([]*ast.Ident, bool) {
	params := []*ast.Ident{}
	seen := map[string]bool{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}
	for {
		if !p.expectPeek("function parameters", token.IDENT) {
			return nil, false
		}
		if seen[p.curToken.Literal] {
			p.setTokenError(p.curToken, errors.E1003, "duplicate parameter %q", p.curToken.Literal)
			return nil, false
		}
		seen[p.curToken.Literal] = true
		params = append(params, p.newIdent(p.curToken))
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek("function parameters", token.RPAREN) {
		return nil, false
	}
	return params, true
}
