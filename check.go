package superstrict

import (
	"fmt"
	"strings"

	"github.com/risor-io/superstrict/ast"
	"github.com/risor-io/superstrict/errors"
	"github.com/risor-io/superstrict/syntax"
)

// Validate implements syntax.Validator. It reports every site the pass
// would rewrite in program and every directive that looks like a misspelled
// superstrict directive. The program is not modified.
func (p *Pass) Validate(program *ast.Program) []syntax.ValidationError {
	if program == nil {
		return nil
	}
	errs := directiveErrors(program.Directives)
	result := p.run(program, true)
	for _, site := range result.Sites {
		errs = append(errs, siteError(site))
	}
	return errs
}

func siteError(site Site) syntax.ValidationError {
	code := site.Rule.Code()
	return syntax.ValidationError{
		Code:     code,
		Message:  fmt.Sprintf("%s: %s", code.Description(), snippet(site.Node)),
		Hint:     "rewritten as " + site.Replacement.String(),
		Node:     site.Node,
		Position: site.Node.Pos(),
	}
}

// snippet prints n without the parentheses the printer puts around
// operator expressions.
func snippet(n ast.Node) string {
	s := n.String()
	switch n.(type) {
	case *ast.Prefix, *ast.Update, *ast.Infix, *ast.In:
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	return s
}

var knownDirectives = []string{EnableDirective, DisableDirective}

// directiveErrors flags "use" directive tokens that are close to, but not
// exactly, a superstrict directive. Such a token is silently ignored by
// the policy, which is rarely what the author meant.
func directiveErrors(directives []*ast.Directive) []syntax.ValidationError {
	var errs []syntax.ValidationError
	for _, d := range directives {
		for _, tok := range SplitDirective(d.Value) {
			suggestion, ok := suggestDirective(tok)
			if !ok {
				continue
			}
			errs = append(errs, syntax.ValidationError{
				Code:     errors.E2007,
				Message:  fmt.Sprintf("%s %q", errors.E2007.Description(), tok),
				Hint:     fmt.Sprintf("did you mean %q?", suggestion),
				Node:     d,
				Position: d.Pos(),
			})
		}
	}
	return errs
}

func suggestDirective(tok string) (string, bool) {
	for _, known := range knownDirectives {
		if tok == known {
			return "", false
		}
		if strings.EqualFold(tok, known) {
			return known, true
		}
	}
	return errors.Suggest(tok, knownDirectives)
}
