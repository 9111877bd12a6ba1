package superstrict

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestGoldenOutput(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
	}{
		{"member_access", OptIn},
		{"operators", OptIn},
		{"updates", OptIn},
		{"control_flow", OptIn},
		{"opt_out", OptOut},
		{"no_directive", OptIn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join("testdata", tt.name+".js"))
			require.NoError(t, err)

			out, err := Transform(context.Background(), string(src),
				WithDirectivePolicy(tt.policy),
				WithFilename(tt.name+".js"))
			require.NoError(t, err)

			g := goldie.New(t,
				goldie.WithFixtureDir("testdata/golden"),
				goldie.WithNameSuffix(".golden"),
			)
			g.Assert(t, tt.name, []byte(out.Code()+"\n"))
		})
	}
}
