// Package config loads the settings of the superstrict command line tool.
//
// Settings are resolved in order of precedence: command line flags,
// SUPERSTRICT_* environment variables, a .superstrict.yaml file in the
// working directory or the home directory, and finally the defaults.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/risor-io/superstrict"
)

// Configuration keys. These double as flag names.
const (
	KeyDirectivePolicy      = "directive-policy"
	KeySafeGetFilePath      = "safe-get-file-path"
	KeyCheckCastingFilePath = "check-casting-file-path"
	KeyConcurrency          = "concurrency"
	KeyLogLevel             = "log-level"
	KeyNoColor              = "no-color"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "SUPERSTRICT"

// FileName is the base name of the configuration file, without extension.
const FileName = ".superstrict"

// Config holds the resolved settings.
type Config struct {
	DirectivePolicy      string `mapstructure:"directive-policy" yaml:"directive-policy"`
	SafeGetFilePath      string `mapstructure:"safe-get-file-path" yaml:"safe-get-file-path"`
	CheckCastingFilePath string `mapstructure:"check-casting-file-path" yaml:"check-casting-file-path"`
	Concurrency          int    `mapstructure:"concurrency" yaml:"concurrency"`
	LogLevel             string `mapstructure:"log-level" yaml:"log-level"`
	NoColor              bool   `mapstructure:"no-color" yaml:"no-color"`

	// File is the configuration file that was read, if any.
	File string `mapstructure:"-" yaml:"-"`
}

// SetDefaults registers the default value of every key with v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDirectivePolicy, string(superstrict.DefaultPolicy))
	v.SetDefault(KeySafeGetFilePath, superstrict.DefaultSafeGetFilePath)
	v.SetDefault(KeyCheckCastingFilePath, superstrict.DefaultCheckCastingFilePath)
	v.SetDefault(KeyConcurrency, DefaultConcurrency)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyNoColor, false)
}

// New returns a viper instance with defaults, environment binding and the
// configuration file search path set up. An explicit file overrides the
// search.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}
	return v, nil
}

// Load resolves the configuration held by v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		if abs, err := filepath.Abs(used); err == nil {
			used = abs
		}
		cfg.File = used
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Policy returns the configured directive policy.
func (c *Config) Policy() superstrict.Policy {
	return superstrict.ParsePolicy(c.DirectivePolicy)
}

// Level returns the configured log level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		return zerolog.WarnLevel
	}
	return level
}

// Options returns the pass options described by the configuration.
func (c *Config) Options() []superstrict.Option {
	return []superstrict.Option{
		superstrict.WithDirectivePolicy(c.Policy()),
		superstrict.WithSafeGetFilePath(c.SafeGetFilePath),
		superstrict.WithCheckCastingFilePath(c.CheckCastingFilePath),
	}
}

// YAML returns the configuration in the format of the configuration file.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
