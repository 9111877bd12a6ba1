package superstrict

import (
	"github.com/risor-io/superstrict/ast"
	"github.com/risor-io/superstrict/errors"
)

// Names of the runtime helpers that rewritten code calls.
const (
	SafeGetItem              = "safeGetItem"
	SafeGetAttr              = "safeGetAttr"
	CheckIn                  = "checkIn"
	CheckCastingBinary       = "checkCastingBinary"
	CheckCastingUnaryPrefix  = "checkCastingUnaryPrefix"
	CheckCastingUnaryPostfix = "checkCastingUnaryPostfix"
)

// Rule identifies the rewrite rule that produced a replacement.
type Rule string

const (
	RuleAttribute Rule = "attribute" // a.b
	RuleIndex     Rule = "index"     // a[b]
	RuleUnary     Rule = "unary"     // -x, +x, ~x
	RuleIncrement Rule = "increment" // ++x, --x
	RulePostfix   Rule = "postfix"   // x++, x--
	RuleBinary    Rule = "binary"    // x + y, x < y, ...
	RuleIn        Rule = "in"        // k in obj
)

// Rules lists every rule in a stable order.
var Rules = []Rule{
	RuleAttribute,
	RuleIndex,
	RuleUnary,
	RuleIncrement,
	RulePostfix,
	RuleBinary,
	RuleIn,
}

// Code returns the audit code reported for sites rewritten by r.
func (r Rule) Code() errors.ErrorCode {
	switch r {
	case RuleAttribute:
		return errors.E2001
	case RuleIndex:
		return errors.E2002
	case RuleUnary:
		return errors.E2003
	case RuleIncrement, RulePostfix:
		return errors.E2004
	case RuleBinary:
		return errors.E2005
	case RuleIn:
		return errors.E2006
	}
	return ""
}

var unaryOps = map[string]bool{
	"++": true,
	"--": true,
	"+":  true,
	"-":  true,
	"~":  true,
}

var binaryOps = map[string]bool{
	"+":   true,
	"-":   true,
	"*":   true,
	"/":   true,
	"%":   true,
	"<":   true,
	">":   true,
	"<=":  true,
	">=":  true,
	"<<":  true,
	">>":  true,
	">>>": true,
	"&":   true,
	"^":   true,
	"|":   true,
}

// Site is one place in a program that a rule rewrites.
type Site struct {
	Rule        Rule
	Node        ast.Node // the original node
	Replacement ast.Expr // the call that replaces it
}

// rewriter applies the rule set to one program. The decision is fixed when
// the rewriter is created. In dry-run mode sites are recorded but the tree
// is left untouched.
type rewriter struct {
	enabled   bool
	dryRun    bool
	ignored   ignoreSet
	sites     []Site
	protected int
}

func newRewriter(enabled, dryRun bool) *rewriter {
	return &rewriter{enabled: enabled, dryRun: dryRun, ignored: ignoreSet{}}
}

func (r *rewriter) rewrite(program *ast.Program) {
	if !r.enabled {
		return
	}
	ast.Apply(program, r.visit)
}

func (r *rewriter) visit(c *ast.Cursor) bool {
	if r.ignored.has(c.Node()) {
		return true
	}
	switch n := c.Node().(type) {
	case *ast.Assign:
		r.ignored.mark(n.Target)
		r.protected++

	case *ast.GetAttr:
		r.replace(c, RuleAttribute, helperCall(n, SafeGetItem, n.X, str(n.Attr, n.Attr.Name)))

	case *ast.Index:
		r.replace(c, RuleIndex, helperCall(n, SafeGetAttr, n.X, n.Index))

	case *ast.Prefix:
		if unaryOps[n.Op] {
			r.replace(c, RuleUnary, helperCall(n, CheckCastingUnaryPrefix, n.X, str(n, n.Op)))
		}

	case *ast.Update:
		if n.Prefix {
			r.replace(c, RuleIncrement, helperCall(n, CheckCastingUnaryPrefix, n.X, str(n, n.Op)))
			return true
		}
		call := helperCall(n, CheckCastingUnaryPostfix, n.X, n, str(n, n.Op))
		r.ignored.markUpdates(call)
		r.replace(c, RulePostfix, call)

	case *ast.Infix:
		if binaryOps[n.Op] {
			r.replace(c, RuleBinary, helperCall(n, CheckCastingBinary, n.X, n.Y, str(n, n.Op)))
		}

	case *ast.In:
		r.replace(c, RuleIn, helperCall(n, CheckIn, n.Y, n.X, str(n, "in")))
	}
	return true
}

func (r *rewriter) replace(c *ast.Cursor, rule Rule, call *ast.Call) {
	r.sites = append(r.sites, Site{Rule: rule, Node: c.Node(), Replacement: call})
	if !r.dryRun {
		c.Replace(call)
	}
}

// helperCall builds a call to a runtime helper positioned at the node it
// replaces.
func helperCall(at ast.Node, name string, args ...ast.Expr) *ast.Call {
	return &ast.Call{
		Fun:    &ast.Ident{NamePos: at.Pos(), Name: name},
		Lparen: at.Pos(),
		Args:   args,
		Rparen: at.End(),
	}
}

func str(at ast.Node, value string) *ast.String {
	return &ast.String{ValuePos: at.Pos(), Value: value}
}
