package superstrict

import (
	"strings"

	"github.com/risor-io/superstrict/ast"
)

const (
	// EnableDirective opts a program in to rewriting.
	EnableDirective = "superstrict"

	// DisableDirective opts a program out of rewriting.
	DisableDirective = "!superstrict"

	directivePrefix = "use "
)

// SplitDirective returns the directive tokens encoded in s. A directive of
// the form "use a, b" yields ["a", "b"]; any directive that does not begin
// with "use " yields nothing.
func SplitDirective(s string) []string {
	rest, ok := strings.CutPrefix(s, directivePrefix)
	if !ok {
		return nil
	}
	tokens := strings.Split(rest, ",")
	for i, tok := range tokens {
		tokens[i] = strings.TrimSpace(tok)
	}
	return tokens
}

// Directives summarizes the directive prologue of a program.
type Directives struct {
	Positive bool     // "superstrict" was present
	Negative bool     // "!superstrict" was present
	Tokens   []string // every token found, in source order
}

// ScanDirectives collects the tokens of every directive in the prologue.
func ScanDirectives(directives []*ast.Directive) Directives {
	var d Directives
	for _, directive := range directives {
		d.add(directive.Value)
	}
	return d
}

func (d *Directives) add(s string) {
	for _, tok := range SplitDirective(s) {
		switch tok {
		case EnableDirective:
			d.Positive = true
		case DisableDirective:
			d.Negative = true
		}
		d.Tokens = append(d.Tokens, tok)
	}
}
