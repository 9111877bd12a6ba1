package superstrict

import "github.com/risor-io/superstrict/ast"

// ignoreSet holds the nodes that the rewrite rules must leave alone. It is
// keyed by node identity and lives for a single pass over one program.
type ignoreSet map[ast.Node]struct{}

func (s ignoreSet) mark(nodes ...ast.Node) {
	for _, n := range nodes {
		if n != nil {
			s[n] = struct{}{}
		}
	}
}

func (s ignoreSet) has(n ast.Node) bool {
	_, ok := s[n]
	return ok
}

// markUpdates marks every increment and decrement within root, root
// included. Attribute and index operands are marked too so the update
// still applies to an assignable target.
func (s ignoreSet) markUpdates(root ast.Node) {
	ast.Inspect(root, func(n ast.Node) bool {
		if u, ok := n.(*ast.Update); ok {
			s.mark(u)
			switch u.X.(type) {
			case *ast.GetAttr, *ast.Index:
				s.mark(u.X)
			}
		}
		return true
	})
}
