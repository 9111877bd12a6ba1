// Package superstrict rewrites programs so that implicit, potentially unsafe
// operations go through runtime safety checks.
//
// Attribute and index reads, coercing unary and binary arithmetic, membership
// tests and increments are replaced with calls to helper functions that are
// imported by a generated preamble:
//
//	out, err := superstrict.Transform(ctx, `"use superstrict"
//	total = order.price * order.count`)
//	fmt.Println(out.Code())
//
// Whether a program is rewritten depends on the configured Policy and the
// directives found at the top of the program ("use superstrict" or
// "use !superstrict").
package superstrict

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/risor-io/superstrict/ast"
	"github.com/risor-io/superstrict/parser"
	"github.com/risor-io/superstrict/syntax"
)

// Option configures a Pass.
type Option func(*options)

type options struct {
	policy               Policy
	safeGetFilePath      string
	checkCastingFilePath string
	filename             string
	logger               zerolog.Logger
}

func collectOptions(opts ...Option) *options {
	o := &options{
		policy:               DefaultPolicy,
		safeGetFilePath:      DefaultSafeGetFilePath,
		checkCastingFilePath: DefaultCheckCastingFilePath,
		logger:               zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) parserOpts() []parser.Option {
	var opts []parser.Option
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	return opts
}

// WithDirectivePolicy sets the policy that decides which programs are
// rewritten. The empty policy selects DefaultPolicy.
func WithDirectivePolicy(policy Policy) Option {
	return func(o *options) {
		if policy == "" {
			policy = DefaultPolicy
		}
		o.policy = policy
	}
}

// WithSafeGetFilePath sets the module path that provides safeGetItem,
// safeGetAttr and checkIn. An empty path keeps the default.
func WithSafeGetFilePath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.safeGetFilePath = path
		}
	}
}

// WithCheckCastingFilePath sets the module path that provides the casting
// checks. An empty path keeps the default.
func WithCheckCastingFilePath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.checkCastingFilePath = path
		}
	}
}

// WithFilename sets the filename reported in positions and error messages
// when source code is parsed.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithLogger sets the logger used to report policy decisions and rewrite
// counts. Nothing is logged by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Parse parses source code into a program, honoring WithFilename.
func Parse(ctx context.Context, source string, opts ...Option) (*ast.Program, error) {
	o := collectOptions(opts...)
	return parser.Parse(ctx, source, o.parserOpts()...)
}

// Transform parses source, rewrites it and prints the result.
func Transform(ctx context.Context, source string, opts ...Option) (*Output, error) {
	o := collectOptions(opts...)
	program, err := parser.Parse(ctx, source, o.parserOpts()...)
	if err != nil {
		return nil, err
	}
	pass := &Pass{opts: o}
	program, result, err := pass.TransformWithResult(program)
	if err != nil {
		return nil, fmt.Errorf("superstrict: %w", err)
	}
	return &Output{
		code:     program.String(),
		source:   source,
		filename: o.filename,
		result:   result,
	}, nil
}

// Check reports every site that the pass would rewrite in program, along
// with misspelled directives. The program is not modified.
func Check(program *ast.Program, opts ...Option) []syntax.ValidationError {
	return New(opts...).Validate(program)
}

// CheckSource parses source and calls Check on the result.
func CheckSource(ctx context.Context, source string, opts ...Option) ([]syntax.ValidationError, error) {
	o := collectOptions(opts...)
	program, err := parser.Parse(ctx, source, o.parserOpts()...)
	if err != nil {
		return nil, err
	}
	pass := &Pass{opts: o}
	return pass.Validate(program), nil
}
