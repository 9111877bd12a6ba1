package superstrict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input    string
		expected Policy
	}{
		{"", OptIn},
		{"  ", OptIn},
		{"opt in", OptIn},
		{"opt-in", OptIn},
		{"opt_in", OptIn},
		{"Opt In", Policy("Opt In")},
		{"opt out", OptOut},
		{"opt-out", OptOut},
		{"everything", Everything},
		{"OPT OUT", Policy("OPT OUT")},
		{"EVERYTHING", Policy("EVERYTHING")},
		{"sometimes", Policy("sometimes")},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePolicy(tt.input))
		})
	}
}

func TestMiscasedPolicyRewritesEverything(t *testing.T) {
	assert.True(t, Decide(ParsePolicy("Opt In"), Directives{}))
	assert.True(t, Decide(ParsePolicy("OPT OUT"), Directives{Negative: true}))
}

func TestPolicyKnown(t *testing.T) {
	assert.True(t, OptIn.Known())
	assert.True(t, OptOut.Known())
	assert.True(t, Everything.Known())
	assert.False(t, Policy("sometimes").Known())
	assert.False(t, Policy("").Known())
}

func TestDecide(t *testing.T) {
	none := Directives{}
	positive := Directives{Positive: true}
	negative := Directives{Negative: true}
	both := Directives{Positive: true, Negative: true}

	tests := []struct {
		name       string
		policy     Policy
		directives Directives
		expected   bool
	}{
		{"opt in without directives", OptIn, none, false},
		{"opt in with positive", OptIn, positive, true},
		{"opt in with negative", OptIn, negative, false},
		{"opt in with both", OptIn, both, true},
		{"opt out without directives", OptOut, none, true},
		{"opt out with positive", OptOut, positive, true},
		{"opt out with negative", OptOut, negative, false},
		{"opt out with both", OptOut, both, false},
		{"everything without directives", Everything, none, true},
		{"everything with negative", Everything, negative, true},
		{"empty policy is opt in", Policy(""), none, false},
		{"unknown policy", Policy("sometimes"), none, true},
		{"unknown policy with negative", Policy("sometimes"), negative, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.policy, tt.directives))
		})
	}
}
