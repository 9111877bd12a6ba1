package superstrict

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/risor-io/superstrict/ast"
)

func TestSplitDirective(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"use a, b ,c", []string{"a", "b", "c"}},
		{"use superstrict", []string{"superstrict"}},
		{"use strict, !superstrict", []string{"strict", "!superstrict"}},
		{"use   spaced  ", []string{"spaced"}},
		{"use ", []string{""}},
		{"strict", nil},
		{"usesuperstrict", nil},
		{"Use superstrict", nil},
		{" use superstrict", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitDirective(tt.input))
		})
	}
}

func directives(values ...string) []*ast.Directive {
	out := make([]*ast.Directive, 0, len(values))
	for _, v := range values {
		out = append(out, &ast.Directive{Value: v})
	}
	return out
}

func TestScanDirectives(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		positive bool
		negative bool
	}{
		{"none", nil, false, false},
		{"positive", []string{"use superstrict"}, true, false},
		{"negative", []string{"use !superstrict"}, false, true},
		{"both", []string{"use superstrict, !superstrict"}, true, true},
		{"combined", []string{"use strict, superstrict"}, true, false},
		{"separate directives", []string{"use strict", "use superstrict"}, true, false},
		{"repeated", []string{"use superstrict", "use superstrict, superstrict"}, true, false},
		{"unrelated", []string{"use strict", "superstrict"}, false, false},
		{"case sensitive", []string{"use SuperStrict"}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ScanDirectives(directives(tt.input...))
			assert.Equal(t, tt.positive, d.Positive)
			assert.Equal(t, tt.negative, d.Negative)
		})
	}
}

func TestScanDirectivesOrderIndependent(t *testing.T) {
	a := ScanDirectives(directives("use !superstrict", "use superstrict"))
	b := ScanDirectives(directives("use superstrict", "use !superstrict"))
	assert.Equal(t, a.Positive, b.Positive)
	assert.Equal(t, a.Negative, b.Negative)
	assert.Equal(t, []string{"!superstrict", "superstrict"}, a.Tokens)
}
