package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/deepnoodle-ai/chainexpr/ast"
	"github.com/deepnoodle-ai/chainexpr/parser"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Display the AST for an expression",
	RunE: func(cmd *cobra.Command, args []string) error {
		var source string
		switch {
		case flagCode != "":
			source = flagCode
		case flagStdin:
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			source = string(data)
		case len(args) > 0:
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			source = string(data)
		default:
			return fmt.Errorf("no input provided")
		}
		prog, err := parser.Parse(cmd.Context(), source)
		if err != nil {
			return err
		}
		if flagOutput == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(nodeToJSON(prog))
		}
		printNode(prog, "", true)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(astCmd)
}

// astNode is the JSON representation of one AST node.
type astNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Optional bool       `json:"optional,omitempty"`
	Children []*astNode `json:"children,omitempty"`
}

func nodeToJSON(node ast.Node) *astNode {
	if node == nil {
		return nil
	}
	result := &astNode{Type: nodeTypeName(node)}
	switch n := node.(type) {
	case *ast.Program:
		for _, stmt := range n.Stmts {
			result.Children = append(result.Children, nodeToJSON(stmt))
		}
	case *ast.Ident:
		result.Value = n.Name
	case *ast.Int:
		result.Value = n.Value
	case *ast.Float:
		result.Value = n.Value
	case *ast.Bool:
		result.Value = n.Value
	case *ast.String:
		result.Value = n.Literal
	case *ast.Nil:
	case *ast.Prefix:
		result.Value = n.Op
		result.Children = append(result.Children, nodeToJSON(n.X))
	case *ast.Infix:
		result.Value = n.Op
		result.Children = append(result.Children,
			nodeToJSON(n.X), nodeToJSON(n.Y))
	case *ast.Ternary:
		result.Children = append(result.Children,
			nodeToJSON(n.Cond), nodeToJSON(n.IfTrue), nodeToJSON(n.IfFalse))
	case *ast.Grouped:
		result.Children = append(result.Children, nodeToJSON(n.X))
	case *ast.GetAttr:
		result.Value = n.Attr.Name
		result.Optional = n.Optional
		result.Children = append(result.Children, nodeToJSON(n.X))
	case *ast.Index:
		result.Optional = n.Optional
		result.Children = append(result.Children,
			nodeToJSON(n.X), nodeToJSON(n.Index))
	case *ast.Call:
		result.Optional = n.Optional
		result.Children = append(result.Children, nodeToJSON(n.Fun))
		for _, arg := range n.Args {
			result.Children = append(result.Children, nodeToJSON(arg))
		}
	case *ast.New:
		result.Children = append(result.Children, nodeToJSON(n.Call))
	case *ast.Delete:
		result.Children = append(result.Children, nodeToJSON(n.X))
	case *ast.Assign:
		result.Value = n.Name.Name
		result.Children = append(result.Children, nodeToJSON(n.Value))
	case *ast.SetAttr:
		result.Value = n.Attr.Name
		result.Children = append(result.Children,
			nodeToJSON(n.X), nodeToJSON(n.Value))
	case *ast.SetIndex:
		result.Children = append(result.Children,
			nodeToJSON(n.X), nodeToJSON(n.Index), nodeToJSON(n.Value))
	case *ast.List:
		for _, item := range n.Items {
			result.Children = append(result.Children, nodeToJSON(item))
		}
	case *ast.Map:
		for _, item := range n.Items {
			pair := &astNode{Type: "MapItem"}
			pair.Children = append(pair.Children,
				nodeToJSON(item.Key), nodeToJSON(item.Value))
			result.Children = append(result.Children, pair)
		}
	}
	return result
}

var (
	nodeColor    = color.New(color.FgCyan, color.Bold)
	literalColor = color.New(color.FgYellow)
	mutedColor   = color.New(color.FgHiBlack)
)

func nodeTypeName(node ast.Node) string {
	return reflect.TypeOf(node).Elem().Name()
}

// printNode prints a tree rendering of the AST to stdout.
func printNode(node ast.Node, indent string, isLast bool) {
	if node == nil {
		return
	}
	connector := "├─ "
	childIndent := indent + "│  "
	if isLast {
		connector = "└─ "
		childIndent = indent + "   "
	}
	if indent == "" && isLast {
		connector = ""
		childIndent = "  "
	}

	jsonNode := nodeToJSON(node)
	label := nodeColor.Sprint(jsonNode.Type)
	if jsonNode.Value != nil {
		label += literalColor.Sprintf(" %v", jsonNode.Value)
	}
	if jsonNode.Optional {
		label += mutedColor.Sprint(" (optional)")
	}
	fmt.Println(mutedColor.Sprint(indent+connector) + label)

	children := nodeChildren(node)
	for i, child := range children {
		printNode(child, childIndent, i == len(children)-1)
	}
}

func nodeChildren(node ast.Node) []ast.Node {
	switch n := node.(type) {
	case *ast.Program:
		return n.Stmts
	case *ast.Prefix:
		return []ast.Node{n.X}
	case *ast.Infix:
		return []ast.Node{n.X, n.Y}
	case *ast.Ternary:
		return []ast.Node{n.Cond, n.IfTrue, n.IfFalse}
	case *ast.Grouped:
		return []ast.Node{n.X}
	case *ast.GetAttr:
		return []ast.Node{n.X}
	case *ast.Index:
		return []ast.Node{n.X, n.Index}
	case *ast.Call:
		children := []ast.Node{n.Fun}
		for _, arg := range n.Args {
			children = append(children, arg)
		}
		return children
	case *ast.New:
		return []ast.Node{n.Call}
	case *ast.Delete:
		return []ast.Node{n.X}
	case *ast.Assign:
		return []ast.Node{n.Value}
	case *ast.SetAttr:
		return []ast.Node{n.X, n.Value}
	case *ast.SetIndex:
		return []ast.Node{n.X, n.Index, n.Value}
	case *ast.List:
		children := make([]ast.Node, 0, len(n.Items))
		for _, item := range n.Items {
			children = append(children, item)
		}
		return children
	case *ast.Map:
		var children []ast.Node
		for _, item := range n.Items {
			children = append(children, item.Key, item.Value)
		}
		return children
	}
	return nil
}
