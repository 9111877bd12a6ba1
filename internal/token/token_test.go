package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test looking up values succeeds, then fails
func TestLookup(t *testing.T) {
	for key, val := range keywords {

		// Obviously this will pass.
		if LookupIdentifier(key) != val {
			t.Errorf("Lookup of %s failed", key)
		}

		// Once the keywords are uppercase they'll no longer
		// match - so we find them as identifiers.
		if LookupIdentifier(strings.ToUpper(key)) != IDENT {
			t.Errorf("Lookup of %s failed", key)
		}
	}
}

func TestPosition(t *testing.T) {
	tok := Token{
		Type:    IDENT,
		Literal: "foo",
		StartPosition: Position{
			Line:   2,
			Column: 0,
		},
	}
	// Switches to 1-indexed
	require.Equal(t, 3, tok.StartPosition.LineNumber())
	require.Equal(t, 1, tok.StartPosition.ColumnNumber())
	require.Equal(t, "3:1", tok.StartPosition.String())
}

func TestPositionAdvance(t *testing.T) {
	pos := Position{Char: 4, Line: 1, Column: 2, File: "a.js"}
	next := pos.Advance(3)
	require.Equal(t, 7, next.Char)
	require.Equal(t, 5, next.Column)
	require.Equal(t, "a.js:2:6", next.String())
	require.True(t, next.IsValid())
	require.False(t, NoPos.IsValid())
}
