package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risor-io/superstrict"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "superstrict.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, superstrict.OptIn, cfg.Policy())
	assert.Equal(t, superstrict.DefaultSafeGetFilePath, cfg.SafeGetFilePath)
	assert.Equal(t, superstrict.DefaultCheckCastingFilePath, cfg.CheckCastingFilePath)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
	assert.False(t, cfg.NoColor)
	assert.Empty(t, cfg.File)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
directive-policy: opt-out
safe-get-file-path: ./lib/get.js
concurrency: 3
log-level: debug
no-color: true
`)
	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, superstrict.OptOut, cfg.Policy())
	assert.Equal(t, "./lib/get.js", cfg.SafeGetFilePath)
	assert.Equal(t, superstrict.DefaultCheckCastingFilePath, cfg.CheckCastingFilePath)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.True(t, cfg.NoColor)
	assert.Equal(t, path, cfg.File)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "directive-policy: opt in\nconcurrency: 2\n")
	t.Setenv("SUPERSTRICT_DIRECTIVE_POLICY", "everything")
	t.Setenv("SUPERSTRICT_CONCURRENCY", "5")

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, superstrict.Everything, cfg.Policy())
	assert.Equal(t, 5, cfg.Concurrency)
}

func TestMissingExplicitFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read configuration file")
}

func TestMalformedFile(t *testing.T) {
	_, err := New(writeFile(t, "directive-policy: [unclosed\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{"valid", func(*Config) {}, nil},
		{"unknown policy is accepted", func(c *Config) { c.DirectivePolicy = "sometimes" }, nil},
		{"empty safe get path", func(c *Config) { c.SafeGetFilePath = " " }, []string{KeySafeGetFilePath}},
		{"empty check casting path", func(c *Config) { c.CheckCastingFilePath = "" }, []string{KeyCheckCastingFilePath}},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, []string{KeyConcurrency}},
		{"excessive concurrency", func(c *Config) { c.Concurrency = MaxConcurrency + 1 }, []string{KeyConcurrency}},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, []string{KeyLogLevel}},
		{"several", func(c *Config) {
			c.SafeGetFilePath = ""
			c.Concurrency = -1
		}, []string{KeySafeGetFilePath, KeyConcurrency}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DirectivePolicy:      "opt in",
				SafeGetFilePath:      superstrict.DefaultSafeGetFilePath,
				CheckCastingFilePath: superstrict.DefaultCheckCastingFilePath,
				Concurrency:          1,
				LogLevel:             "info",
			}
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			var got []string
			for _, fe := range verr.Errors {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{"concurrency", "must be positive"}}}
	assert.Equal(t, "configuration validation failed: concurrency: must be positive", single.Error())

	multi := ValidationError{Errors: []FieldError{{"a", "bad"}, {"b", "worse"}}}
	assert.Equal(t, "configuration validation failed with 2 errors:\n  - a: bad\n  - b: worse\n", multi.Error())

	assert.Equal(t, "configuration validation failed", ValidationError{}.Error())
}

func TestLoadRejectsInvalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyConcurrency, 0)
	_, err := Load(v)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 1)
}

func TestOptions(t *testing.T) {
	cfg := &Config{
		DirectivePolicy:      "opt_out",
		SafeGetFilePath:      "a.js",
		CheckCastingFilePath: "b.js",
	}
	out, err := superstrict.Transform(context.Background(), "x.y", cfg.Options()...)
	require.NoError(t, err)
	assert.Equal(t, superstrict.OptOut, out.Result().Policy)
	assert.Contains(t, out.Code(), `var safeGetItem = require("a.js").safeGetItem;`)
	assert.Contains(t, out.Code(), `var checkIn = require("b.js").checkIn;`)
}

func TestYAML(t *testing.T) {
	cfg := &Config{DirectivePolicy: "everything", Concurrency: 2, File: "/tmp/x.yaml"}
	data, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "directive-policy: everything\n")
	assert.Contains(t, string(data), "concurrency: 2\n")
	assert.NotContains(t, string(data), "/tmp/x.yaml")
}
