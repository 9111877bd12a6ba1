package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/risor-io/superstrict"
	"github.com/risor-io/superstrict/errors"
	"github.com/risor-io/superstrict/internal/config"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Execute runs the command line tool against the process arguments.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fatal(cmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, logger: zerolog.Nop()}
	cmd := &cobra.Command{
		Use:   "superstrict",
		Short: "Rewrite JavaScript to route risky operations through runtime checks",
		Long: `superstrict rewrites programs that opt in with a "use superstrict"
directive so that property access, indexing, arithmetic and membership
tests go through checked helper functions.

Which programs are rewritten is controlled by the directive policy:
  opt in      only programs with "use superstrict" (default)
  opt out     every program except those with "use !superstrict"
  everything  every program`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .superstrict.yaml in the working or home directory)")
	flags.String(config.KeyDirectivePolicy, string(superstrict.DefaultPolicy), `directive policy: "opt in", "opt out" or "everything"`)
	flags.String(config.KeySafeGetFilePath, superstrict.DefaultSafeGetFilePath, "module providing the safe access helpers")
	flags.String(config.KeyCheckCastingFilePath, superstrict.DefaultCheckCastingFilePath, "module providing the checked operator helpers")
	flags.Int(config.KeyConcurrency, config.DefaultConcurrency, "number of files processed at once")
	flags.String(config.KeyLogLevel, "warn", "log level: trace, debug, info, warn or error")
	flags.Bool(config.KeyNoColor, false, "disable colored output")

	cmd.RegisterFlagCompletionFunc(config.KeyDirectivePolicy, cobra.FixedCompletions(
		[]string{"opt-in", "opt-out", "everything"}, cobra.ShellCompDirectiveNoFileComp))

	cmd.AddCommand(
		newTransformCmd(a),
		newCheckCmd(a),
		newASTCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return cmd
}

var configKeys = []string{
	config.KeyDirectivePolicy,
	config.KeySafeGetFilePath,
	config.KeyCheckCastingFilePath,
	config.KeyConcurrency,
	config.KeyLogLevel,
	config.KeyNoColor,
}

// setup resolves the configuration and the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	v, err := config.New(a.cfgFile)
	if err != nil {
		return err
	}
	for _, key := range configKeys {
		if f := cmd.Flags().Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.NoColor || !isTerminal(a.stdout) {
		color.NoColor = true
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     a.stderr,
		NoColor: cfg.NoColor || !isTerminal(a.stderr),
	}).Level(cfg.Level()).With().Timestamp().Logger()
	if cfg.File != "" {
		a.logger.Debug().Str("file", cfg.File).Msg("loaded configuration")
	}
	return nil
}

// options returns the pass options for a source with the given name.
func (a *app) options(filename string) []superstrict.Option {
	opts := append(a.cfg.Options(), superstrict.WithLogger(a.logger))
	if filename != "" {
		opts = append(opts, superstrict.WithFilename(filename))
	}
	return opts
}

func (a *app) useColor() bool {
	return !color.NoColor
}

// fatal reports err, with source context when the error carries it.
func fatal(w io.Writer, err error) {
	fmt.Fprint(w, errors.Render(errors.NewFormatter(!color.NoColor), err))
}
