package ast

import (
	"strings"

	"github.com/risor-io/superstrict/internal/token"
)

// Directive is a string literal from the directive prologue of a program,
// such as "use superstrict".
type Directive struct {
	ValuePos token.Position // position of opening quote
	Value    string         // the unquoted directive text
}

func (d *Directive) Pos() token.Position { return d.ValuePos }
func (d *Directive) End() token.Position { return d.ValuePos.Advance(len(Quote(d.Value))) }

func (d *Directive) String() string { return Quote(d.Value) }

// Program is the root node of a parsed source file.
type Program struct {
	Directives []*Directive // leading string-literal statements
	Stmts      []Node       // statements in the program
}

func (p *Program) Pos() token.Position {
	if len(p.Directives) > 0 {
		return p.Directives[0].Pos()
	}
	if len(p.Stmts) > 0 {
		return p.Stmts[0].Pos()
	}
	return token.NoPos
}

func (p *Program) End() token.Position {
	if len(p.Stmts) > 0 {
		return p.Stmts[len(p.Stmts)-1].End()
	}
	if len(p.Directives) > 0 {
		return p.Directives[len(p.Directives)-1].End()
	}
	return token.NoPos
}

// First returns the first statement in the program, or nil if the program
// has no statements.
func (p *Program) First() Node {
	if len(p.Stmts) == 0 {
		return nil
	}
	return p.Stmts[0]
}

// Prepend inserts the given statements before the existing ones, keeping
// the relative order of both.
func (p *Program) Prepend(stmts ...Node) {
	out := make([]Node, 0, len(stmts)+len(p.Stmts))
	out = append(out, stmts...)
	out = append(out, p.Stmts...)
	p.Stmts = out
}

func (p *Program) String() string {
	lines := make([]string, 0, len(p.Directives)+len(p.Stmts))
	for _, d := range p.Directives {
		lines = append(lines, d.String()+";")
	}
	for _, s := range p.Stmts {
		lines = append(lines, StmtString(s))
	}
	return strings.Join(lines, "\n")
}
