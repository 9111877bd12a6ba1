package ast

import (
	"bytes"
	"strings"

	"github.com/risor-io/superstrict/internal/token"
)

// Var is a statement that declares a variable, with an optional initial
// value. Kind is the declaring keyword: "var", "let" or "const".
type Var struct {
	Let   token.Position // position of the declaring keyword
	Kind  string         // "var", "let" or "const"
	Name  *Ident         // variable name
	Value Expr           // initial value; nil if omitted
}

func (s *Var) stmtNode() {}

func (s *Var) Pos() token.Position { return s.Let }
func (s *Var) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.Name.End()
}

func (s *Var) String() string {
	var out bytes.Buffer
	out.WriteString(s.Kind + " ")
	out.WriteString(s.Name.Name)
	if s.Value != nil {
		out.WriteString(" = ")
		out.WriteString(s.Value.String())
	}
	return out.String()
}

// Return defines a return statement.
type Return struct {
	Return token.Position // position of "return" keyword
	Value  Expr           // return value; nil for bare return
}

func (s *Return) stmtNode() {}

func (s *Return) Pos() token.Position { return s.Return }
func (s *Return) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.Return.Advance(6) // len("return")
}

func (s *Return) String() string {
	if s.Value != nil {
		return "return " + s.Value.String()
	}
	return "return"
}

// Throw represents a throw statement.
type Throw struct {
	Throw token.Position // position of "throw" keyword
	Value Expr           // value being thrown
}

func (s *Throw) stmtNode() {}

func (s *Throw) Pos() token.Position { return s.Throw }
func (s *Throw) End() token.Position { return s.Value.End() }

func (s *Throw) String() string { return "throw " + s.Value.String() }

// Break represents a break statement.
type Break struct {
	Break token.Position // position of "break" keyword
}

func (s *Break) stmtNode() {}

func (s *Break) Pos() token.Position { return s.Break }
func (s *Break) End() token.Position { return s.Break.Advance(5) }
func (s *Break) String() string      { return "break" }

// Continue represents a continue statement.
type Continue struct {
	Continue token.Position // position of "continue" keyword
}

func (s *Continue) stmtNode() {}

func (s *Continue) Pos() token.Position { return s.Continue }
func (s *Continue) End() token.Position { return s.Continue.Advance(8) }
func (s *Continue) String() string      { return "continue" }

// Block is a node that holds a sequence of statements. This is used to
// represent the body of a function, loop, or a conditional.
type Block struct {
	Lbrace token.Position // position of "{"
	Stmts  []Node         // statements in the block
	Rbrace token.Position // position of "}"
}

func (s *Block) stmtNode() {}

func (s *Block) Pos() token.Position { return s.Lbrace }
func (s *Block) End() token.Position { return s.Rbrace.Advance(1) }

func (s *Block) String() string {
	if len(s.Stmts) == 0 {
		return "{}"
	}
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, stmt := range s.Stmts {
		out.WriteString("\t")
		out.WriteString(strings.ReplaceAll(StmtString(stmt), "\n", "\n\t"))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// If is a statement node that represents an if/else statement.
type If struct {
	If          token.Position // position of "if" keyword
	Cond        Expr           // condition
	Consequence *Block         // then branch
	Alternative Stmt           // else branch: *Block, *If or nil
}

func (s *If) stmtNode() {}

func (s *If) Pos() token.Position { return s.If }
func (s *If) End() token.Position {
	if s.Alternative != nil {
		return s.Alternative.End()
	}
	return s.Consequence.End()
}

func (s *If) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(s.Cond.String())
	out.WriteString(") ")
	out.WriteString(s.Consequence.String())
	if s.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(s.Alternative.String())
	}
	return out.String()
}

// While is a loop statement that runs its body while a condition holds.
type While struct {
	While token.Position // position of "while" keyword
	Cond  Expr           // loop condition
	Body  *Block         // loop body
}

func (s *While) stmtNode() {}

func (s *While) Pos() token.Position { return s.While }
func (s *While) End() token.Position { return s.Body.End() }

func (s *While) String() string {
	return "while (" + s.Cond.String() + ") " + s.Body.String()
}

// For is a three-clause loop statement. Any of the clauses may be nil.
type For struct {
	For  token.Position // position of "for" keyword
	Init Node           // *Var or an expression; nil if omitted
	Cond Expr           // loop condition; nil if omitted
	Post Expr           // post-iteration expression; nil if omitted
	Body *Block         // loop body
}

func (s *For) stmtNode() {}

func (s *For) Pos() token.Position { return s.For }
func (s *For) End() token.Position { return s.Body.End() }

func (s *For) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if s.Init != nil {
		out.WriteString(clauseString(s.Init))
	}
	out.WriteString("; ")
	if s.Cond != nil {
		out.WriteString(s.Cond.String())
	}
	out.WriteString("; ")
	if s.Post != nil {
		out.WriteString(clauseString(s.Post))
	}
	out.WriteString(") ")
	out.WriteString(s.Body.String())
	return out.String()
}

// ForIn is a loop over the keys of a container: "for (k in obj) {...}".
// The "in" here is part of the loop syntax, not a membership test.
type ForIn struct {
	For  token.Position // position of "for" keyword
	Kind string         // declaring keyword, or "" when Key is an existing variable
	Key  *Ident         // loop variable
	X    Expr           // container being iterated
	Body *Block         // loop body
}

func (s *ForIn) stmtNode() {}

func (s *ForIn) Pos() token.Position { return s.For }
func (s *ForIn) End() token.Position { return s.Body.End() }

func (s *ForIn) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if s.Kind != "" {
		out.WriteString(s.Kind + " ")
	}
	out.WriteString(s.Key.Name)
	out.WriteString(" in ")
	out.WriteString(s.X.String())
	out.WriteString(") ")
	out.WriteString(s.Body.String())
	return out.String()
}

// StmtString formats a node in statement position. Simple statements are
// terminated with a semicolon; compound statements are not. Assignments are
// printed without their enclosing parentheses. An expression that would
// begin with a map literal or a function is parenthesized so it does not
// read as a block or a declaration.
func StmtString(n Node) string {
	switch n := n.(type) {
	case *Block, *If, *While, *For, *ForIn:
		return n.String()
	case *Func:
		if n.Name != nil {
			return n.String()
		}
	}
	if startsWithBrace(n) {
		return "(" + clauseString(n) + ");"
	}
	return clauseString(n) + ";"
}

func startsWithBrace(n Node) bool {
	if a, ok := n.(*Assign); ok {
		n = a.Target
	}
	for {
		switch x := n.(type) {
		case *Map, *Func:
			return true
		case *GetAttr:
			n = x.X
		case *Index:
			n = x.X
		case *Call:
			n = x.Fun
		default:
			return false
		}
	}
}

func clauseString(n Node) string {
	if a, ok := n.(*Assign); ok {
		return a.bare()
	}
	return n.String()
}
