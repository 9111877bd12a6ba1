package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var outputFormatsCompletion = []string{"text", "json", "yaml"}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// source is a program read from one of the input sources of a command.
type source struct {
	name string // file name; empty for --code and --stdin
	code string
}

// readSource determines the single program a command operates on. There
// are three possibilities:
//  1. --code <code>
//  2. --stdin (read code from stdin)
//  3. path as args[0]
func readSource(cmd *cobra.Command, args []string) (source, error) {
	codeSet := flagChanged(cmd, "code")
	stdinSet := flagChanged(cmd, "stdin")
	count := len(args)
	if codeSet {
		count++
	}
	if stdinSet {
		count++
	}
	switch {
	case count > 1:
		return source{}, errors.New("multiple input sources specified")
	case count == 0:
		return source{}, errors.New("no input provided")
	case stdinSet:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return source{}, err
		}
		return source{code: string(data)}, nil
	case codeSet:
		code, _ := cmd.Flags().GetString("code")
		return source{code: code}, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return source{}, err
	}
	return source{name: args[0], code: string(data)}, nil
}

// inlineSource reports whether the command reads its program from --code or
// --stdin rather than from files.
func inlineSource(cmd *cobra.Command) bool {
	return flagChanged(cmd, "code") || flagChanged(cmd, "stdin")
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("code", "", "program to process")
	cmd.Flags().Bool("stdin", false, "read the program from stdin")
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// marshalOutput encodes v as JSON or YAML. JSON is colorized when color
// is enabled.
func marshalOutput(v any, format string, useColor bool) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		if useColor {
			return prettyjson.Marshal(v)
		}
		return json.MarshalIndent(v, "", "  ")
	case "yaml":
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

func checkFormat(format string) error {
	for _, f := range outputFormatsCompletion {
		if strings.EqualFold(format, f) {
			return nil
		}
	}
	return fmt.Errorf("unknown output format: %s", format)
}

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)
