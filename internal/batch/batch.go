// Package batch runs the superstrict pass over many files concurrently.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/risor-io/superstrict"
	"github.com/risor-io/superstrict/syntax"
)

// Extension is the extension of source files found by Collect.
const Extension = ".js"

// File is the outcome of transforming one file.
type File struct {
	Path   string
	Output *superstrict.Output
	Err    error
}

// Report is the outcome of checking one file.
type Report struct {
	Path   string
	Source string
	Errors []syntax.ValidationError
	Err    error
}

// Runner transforms or checks files with bounded concurrency. The zero
// value processes one file at a time with default options.
type Runner struct {
	Concurrency int
	Options     []superstrict.Option
	Logger      zerolog.Logger
}

// Transform transforms every file in paths. Results are returned in the
// order of paths. The returned error combines the errors of every file
// that failed; files that succeeded still carry their output.
func (r *Runner) Transform(ctx context.Context, paths []string) ([]File, error) {
	files := make([]File, len(paths))
	err := r.each(ctx, paths, func(ctx context.Context, i int, path string, source string) error {
		opts := append(slices.Clone(r.Options), superstrict.WithFilename(path))
		out, err := superstrict.Transform(ctx, source, opts...)
		files[i] = File{Path: path, Output: out, Err: err}
		if err == nil {
			r.Logger.Debug().
				Str("file", path).
				Bool("transformed", out.Transformed()).
				Int("rewrites", out.Result().Total()).
				Msg("transformed file")
		}
		return err
	}, func(i int, path string, err error) {
		files[i] = File{Path: path, Err: err}
	})
	return files, err
}

// Check reports the rewrite sites of every file in paths without
// transforming them. Results are returned in the order of paths.
func (r *Runner) Check(ctx context.Context, paths []string) ([]Report, error) {
	reports := make([]Report, len(paths))
	err := r.each(ctx, paths, func(ctx context.Context, i int, path string, source string) error {
		opts := append(slices.Clone(r.Options), superstrict.WithFilename(path))
		errs, err := superstrict.CheckSource(ctx, source, opts...)
		reports[i] = Report{Path: path, Source: source, Errors: errs, Err: err}
		return err
	}, func(i int, path string, err error) {
		reports[i] = Report{Path: path, Err: err}
	})
	return reports, err
}

// each reads every file and calls fn with its contents, running at most
// Concurrency calls at once. Errors are collected rather than stopping the
// batch; only cancellation of ctx stops it early.
func (r *Runner) each(
	ctx context.Context,
	paths []string,
	fn func(ctx context.Context, i int, path, source string) error,
	failed func(i int, path string, err error),
) error {
	errs := make([]error, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Concurrency, 1))
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				failed(i, path, err)
				errs[i] = err
				return nil
			}
			if err := fn(gctx, i, path, string(data)); err != nil {
				errs[i] = fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Collect expands paths into the list of source files to process. Files
// named directly are kept whatever their extension; directories are walked
// for files with the source extension, skipping hidden entries. The result
// is sorted and free of duplicates.
func Collect(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), Extension) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
