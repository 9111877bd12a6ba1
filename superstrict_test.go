package superstrict

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risor-io/superstrict/ast"
	"github.com/risor-io/superstrict/parser"
	"github.com/risor-io/superstrict/syntax"
)

func TestTransformSource(t *testing.T) {
	src := "\"use superstrict\"\ntotal = order.price * order.count"
	out, err := Transform(context.Background(), src, WithFilename("order.js"))
	require.NoError(t, err)

	assert.True(t, out.Transformed())
	assert.Equal(t, src, out.Source())
	assert.Equal(t, "order.js", out.Filename())
	assert.Equal(t, 3, out.Result().Total())

	lines := strings.Split(out.Code(), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, `"use superstrict";`, lines[0])
	assert.Equal(t, `total = checkCastingBinary(safeGetItem(order, "price"), safeGetItem(order, "count"), "*");`, lines[7])
}

func TestTransformSourceNotSelected(t *testing.T) {
	out, err := Transform(context.Background(), "var x = a.b")
	require.NoError(t, err)
	assert.False(t, out.Transformed())
	assert.Equal(t, "var x = a.b;", out.Code())
}

func TestTransformSourceParseError(t *testing.T) {
	_, err := Transform(context.Background(), "var = 1", WithFilename("bad.js"))
	require.Error(t, err)

	var perr *parser.Errors
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad.js", perr.First().File())
}

func TestTransformedOutputReparses(t *testing.T) {
	src := "\"use superstrict\"\nvar r = a.b[c] + -d\nx.y++\nif (k in m) { m[k] = m[k] * 2 }"
	out, err := Transform(context.Background(), src)
	require.NoError(t, err)

	again, err := parser.Parse(context.Background(), out.Code())
	require.NoError(t, err)
	assert.Equal(t, out.Code(), again.String())
}

func TestNestedMemberUpdateReparses(t *testing.T) {
	for _, src := range []string{"a[b.c++]++", "o[p.q--]--", "x.y[z.w++]++"} {
		t.Run(src, func(t *testing.T) {
			out, err := Transform(context.Background(), "\"use superstrict\"\n"+src)
			require.NoError(t, err)

			again, err := parser.Parse(context.Background(), out.Code())
			require.NoError(t, err)
			assert.Equal(t, out.Code(), again.String())
		})
	}
}

func TestPassIsSyntaxTransformer(t *testing.T) {
	var count int
	counter := syntax.TransformerFunc(func(p *ast.Program) (*ast.Program, error) {
		count = len(p.Stmts)
		return p, nil
	})
	chain := syntax.Chain(New(WithDirectivePolicy(Everything)), counter)

	program, err := chain.Transform(parse(t, "a.b"))
	require.NoError(t, err)
	assert.Equal(t, preambleLen+1, count)
	assert.Equal(t, `safeGetItem(a, "b");`, ast.StmtString(program.Stmts[preambleLen]))
}

func TestPassPolicy(t *testing.T) {
	assert.Equal(t, OptIn, New().Policy())
	assert.Equal(t, OptIn, New(WithDirectivePolicy("")).Policy())
	assert.Equal(t, OptOut, New(WithDirectivePolicy(OptOut)).Policy())
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := Transform(context.Background(), "\"use superstrict\"\na.b + 1", WithLogger(logger))
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, `"message":"resolved directive policy"`)
	assert.Contains(t, logs, `"policy":"opt in"`)
	assert.Contains(t, logs, `"transform":true`)
	assert.Contains(t, logs, `"message":"rewrote program"`)
	assert.Contains(t, logs, `"binary":1`)
	assert.Contains(t, logs, `"attribute":1`)
	assert.Contains(t, logs, `"total":2`)
}

func TestWithLoggerDisabledProgram(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := Transform(context.Background(), "a.b", WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"transform":false`)
	assert.NotContains(t, buf.String(), "rewrote program")
}

// Each program carries its own decision, so programs processed at the same
// time by one Pass must not affect each other.
func TestConcurrentPrograms(t *testing.T) {
	pass := New()
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			enabled := i%2 == 0
			src := fmt.Sprintf("a.b%d + %d", i, i)
			if enabled {
				src = "\"use superstrict\"\n" + src
			}
			program, err := parser.Parse(context.Background(), src)
			if err != nil {
				errs <- err
				return
			}
			program, result, err := pass.TransformWithResult(program)
			if err != nil {
				errs <- err
				return
			}
			if result.Transformed != enabled {
				errs <- fmt.Errorf("program %d: transformed=%v", i, result.Transformed)
				return
			}
			if enabled && result.Total() != 2 {
				errs <- fmt.Errorf("program %d: %d rewrites", i, result.Total())
				return
			}
			if !enabled && len(program.Stmts) != 1 {
				errs <- fmt.Errorf("program %d: %d statements", i, len(program.Stmts))
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
