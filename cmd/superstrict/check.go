package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/risor-io/superstrict"
	"github.com/risor-io/superstrict/errors"
	"github.com/risor-io/superstrict/internal/batch"
	"github.com/risor-io/superstrict/internal/table"
)

type checkFlags struct {
	output string
	strict bool
}

// finding is the serialized form of one reported site.
type finding struct {
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Hint    string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

type fileFindings struct {
	File     string    `json:"file" yaml:"file"`
	Findings []finding `json:"findings" yaml:"findings"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`
}

func newCheckCmd(a *app) *cobra.Command {
	var flags checkFlags
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Report what transform would rewrite without changing anything",
		Long: `Report every site the transform would rewrite, and any directive in a
program's prologue that looks like a misspelled superstrict directive.

Programs the directive policy does not select produce no findings.`,
		Example: `  superstrict check app.js
  superstrict check --output json src/
  superstrict check --strict --directive-policy everything src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd, args, flags)
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().StringVar(&flags.output, "output", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with an error when anything is reported")
	cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func (a *app) check(cmd *cobra.Command, args []string, flags checkFlags) error {
	if err := checkFormat(flags.output); err != nil {
		return err
	}
	var reports []batch.Report
	if inlineSource(cmd) || (len(args) == 1 && !isDir(args[0])) {
		src, err := readSource(cmd, args)
		if err != nil {
			return err
		}
		errs, err := superstrict.CheckSource(cmd.Context(), src.code, a.options(src.name)...)
		if err != nil {
			return err
		}
		reports = []batch.Report{{Path: src.name, Source: src.code, Errors: errs}}
	} else {
		if len(args) == 0 {
			return fmt.Errorf("no input provided")
		}
		paths, err := batch.Collect(args)
		if err != nil {
			return err
		}
		runner := &batch.Runner{
			Concurrency: a.cfg.Concurrency,
			Options:     a.options(""),
			Logger:      a.logger,
		}
		// Per-file failures are carried by the reports.
		reports, _ = runner.Check(cmd.Context(), paths)
		if err := cmd.Context().Err(); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if strings.EqualFold(flags.output, "text") {
		a.renderFindings(w, reports)
	} else {
		data, err := marshalOutput(serializeReports(reports), flags.output, a.useColor())
		if err != nil {
			return err
		}
		fmt.Fprintln(w, strings.TrimRight(string(data), "\n"))
	}

	var total, failed int
	for _, r := range reports {
		total += len(r.Errors)
		if r.Err != nil {
			failed++
		}
	}
	switch {
	case failed > 0:
		return fmt.Errorf("%d of %d files could not be checked", failed, len(reports))
	case flags.strict && total > 0:
		return fmt.Errorf("findings reported: %d", total)
	}
	return nil
}

func serializeReports(reports []batch.Report) []fileFindings {
	out := make([]fileFindings, 0, len(reports))
	for _, r := range reports {
		ff := fileFindings{File: r.Path, Findings: []finding{}}
		if ff.File == "" {
			ff.File = "-"
		}
		if r.Err != nil {
			ff.Error = r.Err.Error()
		}
		for _, e := range r.Errors {
			ff.Findings = append(ff.Findings, finding{
				Line:    e.Position.LineNumber(),
				Column:  e.Position.ColumnNumber(),
				Code:    string(e.Code),
				Message: e.Message,
				Hint:    e.Hint,
			})
		}
		out = append(out, ff)
	}
	return out
}

// renderFindings prints every finding with its source line, followed by a
// table counting the findings by code.
func (a *app) renderFindings(w io.Writer, reports []batch.Report) {
	f := errors.NewFormatter(a.useColor())
	counts := map[errors.ErrorCode]int{}
	total := 0
	for _, r := range reports {
		if r.Err != nil {
			fmt.Fprintln(w, errors.Render(f, r.Err))
			continue
		}
		for _, e := range r.Errors {
			fmt.Fprintln(w, f.Format(e.ToFormatted(r.Source)))
			counts[e.Code]++
			total++
		}
	}
	if total == 0 {
		fmt.Fprintln(w, green("nothing to rewrite"))
		return
	}
	codes := make([]errors.ErrorCode, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	t := table.NewTable(w).
		WithHeader([]string{"CODE", "DESCRIPTION", "COUNT"}).
		WithColumnAlignment([]table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight}).
		WithHeaderAlignment([]table.Alignment{table.AlignCenter, table.AlignCenter, table.AlignCenter})
	for _, code := range codes {
		t.Append([]string{yellow(string(code)), code.Description(), strconv.Itoa(counts[code])})
	}
	t.Append([]string{bold("total"), "", bold(strconv.Itoa(total))})
	t.Render()
}
