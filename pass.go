package superstrict

import (
	stderrors "errors"

	"github.com/risor-io/superstrict/ast"
	"github.com/risor-io/superstrict/syntax"
)

// ErrNilProgram is returned when a nil program is passed to the pass.
var ErrNilProgram = stderrors.New("nil program")

var (
	_ syntax.Transformer = (*Pass)(nil)
	_ syntax.Validator   = (*Pass)(nil)
)

// Pass is the superstrict rewrite pass. A Pass holds only its configuration
// and is safe for concurrent use; all per-program state is created by each
// call.
type Pass struct {
	opts *options
}

// New creates a Pass with the given options.
func New(opts ...Option) *Pass {
	return &Pass{opts: collectOptions(opts...)}
}

// Policy returns the policy the pass applies.
func (p *Pass) Policy() Policy {
	return p.opts.policy
}

// Result describes what a pass did to one program.
type Result struct {
	Policy      Policy     // policy in effect
	Directives  Directives // directives found in the program
	Transformed bool       // whether the program was selected for rewriting
	Sites       []Site     // rewritten sites, in traversal order
	Protected   int        // assignment targets kept out of rewriting
}

// Count returns the number of sites rewritten by rule.
func (r *Result) Count(rule Rule) int {
	n := 0
	for _, site := range r.Sites {
		if site.Rule == rule {
			n++
		}
	}
	return n
}

// Counts returns the number of rewritten sites per rule. Rules that did not
// fire are omitted.
func (r *Result) Counts() map[Rule]int {
	counts := map[Rule]int{}
	for _, site := range r.Sites {
		counts[site.Rule]++
	}
	return counts
}

// Total returns the number of rewritten sites.
func (r *Result) Total() int {
	return len(r.Sites)
}

// Transform rewrites program in place and returns it.
func (p *Pass) Transform(program *ast.Program) (*ast.Program, error) {
	program, _, err := p.TransformWithResult(program)
	return program, err
}

// TransformWithResult rewrites program in place and returns it together
// with a description of the rewrite.
func (p *Pass) TransformWithResult(program *ast.Program) (*ast.Program, *Result, error) {
	if program == nil {
		return nil, nil, ErrNilProgram
	}
	return program, p.run(program, false), nil
}

// run resolves the policy for program and applies the rule set. When dryRun
// is set the program is left untouched and no preamble is added.
func (p *Pass) run(program *ast.Program, dryRun bool) *Result {
	directives := ScanDirectives(program.Directives)
	enabled := Decide(p.opts.policy, directives)
	p.opts.logger.Debug().
		Str("policy", p.opts.policy.String()).
		Bool("positive", directives.Positive).
		Bool("negative", directives.Negative).
		Bool("transform", enabled).
		Bool("dry_run", dryRun).
		Msg("resolved directive policy")

	result := &Result{
		Policy:      p.opts.policy,
		Directives:  directives,
		Transformed: enabled,
	}
	if !enabled {
		return result
	}

	r := newRewriter(enabled, dryRun)
	if !dryRun {
		program.Prepend(preamble(p.opts, r.ignored)...)
	}
	r.rewrite(program)
	result.Sites = r.sites
	result.Protected = r.protected

	event := p.opts.logger.Debug().Int("total", result.Total())
	for _, rule := range Rules {
		if n := result.Count(rule); n > 0 {
			event = event.Int(string(rule), n)
		}
	}
	event.Msg("rewrote program")
	return result
}
