package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/risor-io/superstrict"
	"github.com/risor-io/superstrict/internal/batch"
	"github.com/risor-io/superstrict/internal/table"
)

type transformFlags struct {
	write  bool
	outDir string
	stats  bool
}

func newTransformCmd(a *app) *cobra.Command {
	var flags transformFlags
	cmd := &cobra.Command{
		Use:     "transform [path...]",
		Aliases: []string{"t"},
		Short:   "Rewrite programs and print or write the result",
		Long: `Rewrite programs selected by the directive policy.

A single program given with --code, --stdin or one file path is printed to
stdout. Directories are searched for .js files; when several files are
processed the output must go to --out-dir or back into the files (--write).`,
		Example: `  superstrict transform app.js
  superstrict transform --code '"use superstrict"; x = a.b'
  superstrict transform --out-dir build/ src/
  superstrict transform --write --directive-policy everything src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(cmd, args, flags)
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to the source files")
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "directory to write the results to")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print a summary of the rewrites to stderr")
	cmd.MarkFlagsMutuallyExclusive("write", "out-dir")
	cmd.MarkFlagsMutuallyExclusive("write", "code")
	cmd.MarkFlagsMutuallyExclusive("write", "stdin")
	return cmd
}

func (a *app) transform(cmd *cobra.Command, args []string, flags transformFlags) error {
	ctx := cmd.Context()
	if inlineSource(cmd) || (len(args) == 1 && !flags.write && flags.outDir == "" && !isDir(args[0])) {
		src, err := readSource(cmd, args)
		if err != nil {
			return err
		}
		out, err := superstrict.Transform(ctx, src.code, a.options(src.name)...)
		if err != nil {
			return err
		}
		if flags.outDir != "" {
			name := src.name
			if name == "" {
				name = "stdin.js"
			}
			if err := writeOutput(filepath.Join(flags.outDir, filepath.Base(name)), out); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), out.Code())
		}
		if flags.stats {
			return renderStats(cmd.ErrOrStderr(), []batch.File{{Path: src.name, Output: out}})
		}
		return nil
	}

	if len(args) == 0 {
		return errors.New("no input provided")
	}
	if !flags.write && flags.outDir == "" {
		return errors.New("--write or --out-dir is required when transforming several files")
	}
	targets, err := collectTargets(args)
	if err != nil {
		return err
	}
	paths := make([]string, len(targets))
	for i, t := range targets {
		paths[i] = t.path
	}

	runner := &batch.Runner{
		Concurrency: a.cfg.Concurrency,
		Options:     a.options(""),
		Logger:      a.logger,
	}
	files, runErr := runner.Transform(ctx, paths)
	for i, f := range files {
		if f.Err != nil || f.Output == nil {
			continue
		}
		dest := f.Path
		if flags.outDir != "" {
			dest = filepath.Join(flags.outDir, targets[i].rel)
		} else if !f.Output.Transformed() {
			continue
		}
		if err := writeOutput(dest, f.Output); err != nil {
			return err
		}
		a.logger.Info().Str("file", f.Path).Str("dest", dest).Msg("wrote file")
	}
	if flags.stats {
		if err := renderStats(cmd.ErrOrStderr(), files); err != nil {
			return err
		}
	}
	return runErr
}

// target is a file to process and its path relative to the argument it
// was found under.
type target struct {
	path string
	rel  string
}

func collectTargets(args []string) ([]target, error) {
	var targets []target
	seen := map[string]bool{}
	for _, arg := range args {
		files, err := batch.Collect([]string{arg})
		if err != nil {
			return nil, err
		}
		dir := isDir(arg)
		for _, f := range files {
			if seen[f] {
				continue
			}
			seen[f] = true
			rel := filepath.Base(f)
			if dir {
				if r, err := filepath.Rel(arg, f); err == nil {
					rel = r
				}
			}
			targets = append(targets, target{path: f, rel: rel})
		}
	}
	return targets, nil
}

// writeOutput writes the transformed program to path. Programs the policy
// did not select are written as they were read.
func writeOutput(path string, out *superstrict.Output) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data := out.Source()
	if out.Transformed() {
		data = out.Code() + "\n"
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, []byte(data), mode)
}

func renderStats(w io.Writer, files []batch.File) error {
	t := table.NewTable(w).
		WithHeader([]string{"FILE", "STATUS", "REWRITES", "PROTECTED"}).
		WithColumnAlignment([]table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight}).
		WithHeaderAlignment([]table.Alignment{table.AlignCenter, table.AlignCenter, table.AlignCenter, table.AlignCenter})
	for _, f := range files {
		name := f.Path
		if name == "" {
			name = "-"
		}
		switch {
		case f.Err != nil || f.Output == nil:
			t.Append([]string{name, red("error"), "", ""})
		case f.Output.Transformed():
			r := f.Output.Result()
			t.Append([]string{name, green("rewritten"), strconv.Itoa(r.Total()), strconv.Itoa(r.Protected)})
		default:
			t.Append([]string{name, "unchanged", "0", "0"})
		}
	}
	return t.Render()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
