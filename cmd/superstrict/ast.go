package main

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/risor-io/superstrict"
	"github.com/risor-io/superstrict/ast"
)

func newASTCmd(a *app) *cobra.Command {
	var (
		output      string
		transformed bool
	)
	cmd := &cobra.Command{
		Use:   "ast [path]",
		Short: "Print the syntax tree of a program",
		Example: `  superstrict ast --code 'x = a.b'
  superstrict ast --transformed --output json app.js`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			opts := a.options(src.name)
			program, err := superstrict.Parse(cmd.Context(), src.code, opts...)
			if err != nil {
				return err
			}
			if transformed {
				if program, err = superstrict.New(opts...).Transform(program); err != nil {
					return err
				}
			}
			root := treeOf(program)
			if strings.EqualFold(output, "text") {
				printTree(cmd.OutOrStdout(), root)
				return nil
			}
			data, err := marshalOutput(root, output, a.useColor())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
			return nil
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().StringVar(&output, "output", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&transformed, "transformed", false, "show the tree after the transform")
	cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

// treeNode is the serialized form of a syntax tree node.
type treeNode struct {
	Type     string      `json:"type" yaml:"type"`
	Value    string      `json:"value,omitempty" yaml:"value,omitempty"`
	Line     int         `json:"line,omitempty" yaml:"line,omitempty"`
	Column   int         `json:"column,omitempty" yaml:"column,omitempty"`
	Children []*treeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func treeOf(node ast.Node) *treeNode {
	t := &treeNode{Type: reflect.TypeOf(node).Elem().Name(), Value: nodeValue(node)}
	if pos := node.Pos(); pos.IsValid() {
		t.Line, t.Column = pos.LineNumber(), pos.ColumnNumber()
	}
	for _, child := range children(node) {
		t.Children = append(t.Children, treeOf(child))
	}
	return t
}

// children returns the direct children of node in source order.
func children(node ast.Node) []ast.Node {
	var out []ast.Node
	ast.Inspect(node, func(n ast.Node) bool {
		if n == node {
			return true
		}
		out = append(out, n)
		return false
	})
	return out
}

func nodeValue(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Directive:
		return n.Value
	case *ast.Ident:
		return n.Name
	case *ast.Int:
		return n.Literal
	case *ast.Float:
		return n.Literal
	case *ast.Bool:
		return strconv.FormatBool(n.Value)
	case *ast.String:
		return strconv.Quote(n.Value)
	case *ast.Var:
		return n.Kind
	case *ast.Prefix:
		return n.Op
	case *ast.Update:
		if n.Prefix {
			return n.Op + "x"
		}
		return "x" + n.Op
	case *ast.Infix:
		return n.Op
	case *ast.Assign:
		return n.Op
	case *ast.ForIn:
		return n.Kind
	}
	return ""
}

var (
	nodeColor    = color.New(color.FgCyan, color.Bold)
	literalColor = color.New(color.FgYellow)
	mutedColor   = color.New(color.FgHiBlack)
)

func printTree(w io.Writer, root *treeNode) {
	fmt.Fprintln(w, nodeColor.Sprint(root.Type))
	for i, child := range root.Children {
		printTreeNode(w, child, "", i == len(root.Children)-1)
	}
}

func printTreeNode(w io.Writer, node *treeNode, indent string, isLast bool) {
	connector, childIndent := "├─ ", indent+"│  "
	if isLast {
		connector, childIndent = "└─ ", indent+"   "
	}
	line := mutedColor.Sprint(indent+connector) + nodeColor.Sprint(node.Type)
	if node.Value != "" {
		line += " " + literalColor.Sprint(node.Value)
	}
	if node.Line > 0 {
		line += mutedColor.Sprintf(" %d:%d", node.Line, node.Column)
	}
	fmt.Fprintln(w, line)
	for i, child := range node.Children {
		printTreeNode(w, child, childIndent, i == len(node.Children)-1)
	}
}
