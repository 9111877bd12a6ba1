package main

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/risor-io/superstrict/internal/batch"
	"github.com/risor-io/superstrict/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		outDir   string
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch path...",
		Short: "Transform files into an output directory whenever they change",
		Long: `Transform every .js file under the given paths into the output
directory, then keep the output up to date as the sources change.`,
		Example: `  superstrict watch --out-dir build/ src/`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				return errors.New("--out-dir is required")
			}
			return a.watch(cmd, args, outDir, debounce)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "directory to write the results to")
	cmd.Flags().DurationVar(&debounce, "debounce", 100*time.Millisecond, "quiet period before changed files are transformed")
	return cmd
}

func (a *app) watch(cmd *cobra.Command, args []string, outDir string, debounce time.Duration) error {
	ctx := cmd.Context()
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return err
	}
	runner := &batch.Runner{
		Concurrency: a.cfg.Concurrency,
		Options:     a.options(""),
		Logger:      a.logger,
	}
	build := func(targets []target) {
		paths := make([]string, len(targets))
		for i, t := range targets {
			paths[i] = t.path
		}
		files, err := runner.Transform(ctx, paths)
		for i, f := range files {
			if f.Err != nil || f.Output == nil {
				continue
			}
			dest := filepath.Join(outDir, targets[i].rel)
			if err := writeOutput(dest, f.Output); err != nil {
				a.logger.Error().Err(err).Str("dest", dest).Msg("failed to write file")
				continue
			}
			a.logger.Info().Str("file", f.Path).Str("dest", dest).Msg("wrote file")
		}
		if err != nil {
			a.logger.Error().Err(err).Msg("transform failed")
		}
	}

	targets, err := collectTargets(args)
	if err != nil {
		return err
	}
	build(targets)

	w, err := watch.New(watch.Config{
		Paths:            args,
		DebounceInterval: debounce,
		SkipHidden:       true,
		Exclude:          func(path string) bool { return within(absOut, path) },
	}, a.logger)
	if err != nil {
		return err
	}
	defer w.Stop()
	return w.Watch(ctx, func(paths []string) {
		changed := make([]target, 0, len(paths))
		for _, p := range paths {
			changed = append(changed, target{path: p, rel: relativeTo(args, p)})
		}
		build(changed)
	})
}

// relativeTo returns path relative to the directory argument containing
// it, or its base name when it was named directly.
func relativeTo(args []string, path string) string {
	for _, arg := range args {
		if !isDir(arg) {
			continue
		}
		if rel, err := filepath.Rel(arg, path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return filepath.Base(path)
}

// within reports whether path is dir or lies beneath it.
func within(dir, path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, abs)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
