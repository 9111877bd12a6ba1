// Package syntax defines the interfaces shared by passes that rewrite or
// inspect a parsed program.
package syntax

import (
	"fmt"

	"github.com/risor-io/superstrict/ast"
)

// Transformer modifies an AST before it is printed.
// Transformers receive ownership of the AST and return a (possibly new) AST.
type Transformer interface {
	// Transform processes the AST and returns the result.
	// The returned AST may be the same instance (modified in place)
	// or a completely new AST.
	Transform(program *ast.Program) (*ast.Program, error)
}

// TransformerFunc is an adapter to use a function as a Transformer.
type TransformerFunc func(*ast.Program) (*ast.Program, error)

// Transform implements the Transformer interface.
func (f TransformerFunc) Transform(p *ast.Program) (*ast.Program, error) {
	return f(p)
}

// Chain returns a Transformer that runs the given transformers in order,
// feeding each the output of the previous one. It stops at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(p *ast.Program) (*ast.Program, error) {
		for i, t := range transformers {
			var err error
			if p, err = t.Transform(p); err != nil {
				return nil, fmt.Errorf("transform %d: %w", i, err)
			}
		}
		return p, nil
	})
}
