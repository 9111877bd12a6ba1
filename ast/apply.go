package ast

import "fmt"

// ApplyFunc is invoked by Apply for each node. If it returns false, the
// children of the current node are not visited.
type ApplyFunc func(c *Cursor) bool

// Cursor describes a node encountered during Apply. It is only valid for
// the duration of the ApplyFunc call that received it.
type Cursor struct {
	node     Node
	parent   Node
	set      func(Node)
	replaced bool
}

// Node returns the current node.
func (c *Cursor) Node() Node { return c.node }

// Parent returns the parent of the current node, or nil for the root.
func (c *Cursor) Parent() Node { return c.parent }

// Replace replaces the current node with n in its parent. The replacement
// must fit the slot it is stored in: an expression slot only accepts an
// Expr, a block slot only accepts a *Block, and so on. Replace panics
// otherwise.
func (c *Cursor) Replace(n Node) {
	c.set(n)
	c.node = n
	c.replaced = true
}

// Apply traverses the tree rooted at root in depth-first preorder, calling
// fn for each node, and returns the (possibly replaced) root.
//
// When fn replaces the current node, fn is called again with the
// replacement before the traversal descends. The children visited are those
// of the final replacement, and they are visited before the next sibling of
// the replaced node. A callback that replaces every node it is handed
// therefore never terminates; callers must recognise their own output.
func Apply(root Node, fn ApplyFunc) Node {
	a := &applier{fn: fn}
	a.apply(nil, root, func(n Node) { root = n })
	return root
}

type applier struct {
	fn ApplyFunc
}

func (a *applier) apply(parent, n Node, set func(Node)) {
	for {
		c := &Cursor{node: n, parent: parent, set: set}
		if !a.fn(c) {
			return
		}
		if !c.replaced {
			break
		}
		n = c.node
	}
	a.children(n)
}

func (a *applier) children(node Node) {
	switch n := node.(type) {
	case *Program:
		a.nodeList(n, n.Stmts)

	// Statements
	case *Var:
		a.ident(n, &n.Name)
		a.expr(n, &n.Value)
	case *Return:
		a.expr(n, &n.Value)
	case *Throw:
		a.expr(n, &n.Value)
	case *Block:
		a.nodeList(n, n.Stmts)
	case *If:
		a.expr(n, &n.Cond)
		a.block(n, &n.Consequence)
		a.stmt(n, &n.Alternative)
	case *While:
		a.expr(n, &n.Cond)
		a.block(n, &n.Body)
	case *For:
		a.node(n, &n.Init)
		a.expr(n, &n.Cond)
		a.expr(n, &n.Post)
		a.block(n, &n.Body)
	case *ForIn:
		a.ident(n, &n.Key)
		a.expr(n, &n.X)
		a.block(n, &n.Body)

	// Expressions
	case *Prefix:
		a.expr(n, &n.X)
	case *Update:
		a.expr(n, &n.X)
	case *Infix:
		a.expr(n, &n.X)
		a.expr(n, &n.Y)
	case *In:
		a.expr(n, &n.X)
		a.expr(n, &n.Y)
	case *Ternary:
		a.expr(n, &n.Cond)
		a.expr(n, &n.IfTrue)
		a.expr(n, &n.IfFalse)
	case *Assign:
		a.expr(n, &n.Target)
		a.expr(n, &n.Value)
	case *Call:
		a.expr(n, &n.Fun)
		for i := range n.Args {
			a.expr(n, &n.Args[i])
		}
	case *GetAttr:
		a.expr(n, &n.X)
		a.ident(n, &n.Attr)
	case *Index:
		a.expr(n, &n.X)
		a.expr(n, &n.Index)
	case *List:
		for i := range n.Items {
			a.expr(n, &n.Items[i])
		}
	case *Map:
		for i := range n.Items {
			a.expr(n, &n.Items[i].Key)
			a.expr(n, &n.Items[i].Value)
		}
	case *Func:
		a.ident(n, &n.Name)
		for i := range n.Params {
			a.ident(n, &n.Params[i])
		}
		a.block(n, &n.Body)
	}
}

func (a *applier) nodeList(parent Node, list []Node) {
	for i := range list {
		a.node(parent, &list[i])
	}
}

func (a *applier) node(parent Node, p *Node) {
	if *p == nil {
		return
	}
	a.apply(parent, *p, func(n Node) { *p = n })
}

func (a *applier) expr(parent Node, p *Expr) {
	if *p == nil {
		return
	}
	a.apply(parent, *p, func(n Node) { *p = mustBe[Expr](parent, n) })
}

func (a *applier) stmt(parent Node, p *Stmt) {
	if *p == nil {
		return
	}
	a.apply(parent, *p, func(n Node) { *p = mustBe[Stmt](parent, n) })
}

func (a *applier) block(parent Node, p **Block) {
	if *p == nil {
		return
	}
	a.apply(parent, *p, func(n Node) { *p = mustBe[*Block](parent, n) })
}

func (a *applier) ident(parent Node, p **Ident) {
	if *p == nil {
		return
	}
	a.apply(parent, *p, func(n Node) { *p = mustBe[*Ident](parent, n) })
}

func mustBe[T Node](parent, n Node) T {
	v, ok := n.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("ast: cannot replace child of %T with %T (want %T)", parent, n, zero))
	}
	return v
}
