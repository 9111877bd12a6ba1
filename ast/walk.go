package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, d := range n.Directives {
			Walk(v, d)
		}
		for _, stmt := range n.Stmts {
			Walk(v, stmt)
		}

	// Statements
	case *Var:
		Walk(v, n.Name)
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Return:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Throw:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Block:
		for _, stmt := range n.Stmts {
			Walk(v, stmt)
		}
	case *If:
		if n.Cond != nil {
			Walk(v, n.Cond)
		}
		if n.Consequence != nil {
			Walk(v, n.Consequence)
		}
		if n.Alternative != nil {
			Walk(v, n.Alternative)
		}
	case *While:
		if n.Cond != nil {
			Walk(v, n.Cond)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *For:
		if n.Init != nil {
			Walk(v, n.Init)
		}
		if n.Cond != nil {
			Walk(v, n.Cond)
		}
		if n.Post != nil {
			Walk(v, n.Post)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *ForIn:
		Walk(v, n.Key)
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *Break, *Continue, *BadStmt, *Directive:
		// No children

	// Expressions
	case *Ident, *Int, *Float, *Bool, *Null, *String, *BadExpr:
		// No children
	case *Prefix:
		if n.X != nil {
			Walk(v, n.X)
		}
	case *Update:
		if n.X != nil {
			Walk(v, n.X)
		}
	case *Infix:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Y != nil {
			Walk(v, n.Y)
		}
	case *In:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Y != nil {
			Walk(v, n.Y)
		}
	case *Ternary:
		Walk(v, n.Cond)
		Walk(v, n.IfTrue)
		Walk(v, n.IfFalse)
	case *Assign:
		if n.Target != nil {
			Walk(v, n.Target)
		}
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Call:
		if n.Fun != nil {
			Walk(v, n.Fun)
		}
		for _, arg := range n.Args {
			Walk(v, arg)
		}
	case *GetAttr:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Attr != nil {
			Walk(v, n.Attr)
		}
	case *Index:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Index != nil {
			Walk(v, n.Index)
		}
	case *List:
		for _, item := range n.Items {
			Walk(v, item)
		}
	case *Map:
		for _, pair := range n.Items {
			Walk(v, pair.Key)
			Walk(v, pair.Value)
		}
	case *Func:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		for _, param := range n.Params {
			Walk(v, param)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		ok := true
		Inspect(root, func(n Node) bool {
			if ok {
				ok = yield(n)
			}
			return ok
		})
	}
}
