package superstrict

import (
	"github.com/risor-io/superstrict/ast"
)

// Default module paths for the runtime helpers.
const (
	DefaultSafeGetFilePath      = "superstrict/lib/safe_get.js"
	DefaultCheckCastingFilePath = "superstrict/lib/check_casting.js"
)

// preamble returns the declarations that bind each runtime helper, in the
// order the helpers are declared:
//
//	var safeGetItem = require("superstrict/lib/safe_get.js").safeGetItem;
//
// The attribute access in each declaration is marked ignored.
func preamble(o *options, ignored ignoreSet) []ast.Node {
	helpers := []struct {
		name string
		path string
	}{
		{SafeGetItem, o.safeGetFilePath},
		{SafeGetAttr, o.safeGetFilePath},
		{CheckIn, o.safeGetFilePath},
		{CheckCastingBinary, o.checkCastingFilePath},
		{CheckCastingUnaryPrefix, o.checkCastingFilePath},
		{CheckCastingUnaryPostfix, o.checkCastingFilePath},
	}
	stmts := make([]ast.Node, 0, len(helpers))
	for _, h := range helpers {
		stmts = append(stmts, requireDecl(h.name, h.path, ignored))
	}
	return stmts
}

func requireDecl(name, path string, ignored ignoreSet) *ast.Var {
	member := &ast.GetAttr{
		X: &ast.Call{
			Fun:  &ast.Ident{Name: "require"},
			Args: []ast.Expr{&ast.String{Value: path}},
		},
		Attr: &ast.Ident{Name: name},
	}
	ignored.mark(member)
	return &ast.Var{
		Kind:  "var",
		Name:  &ast.Ident{Name: name},
		Value: member,
	}
}
