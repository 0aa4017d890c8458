package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

func dumpf(w io.Writer, indentLevel int, typ fmt.Stringer, properties ...string) error {
	indent := strings.Repeat("    ", indentLevel)
	if _, err := fmt.Fprintf(w, "%s- *%s*\n", indent, typ); err != nil {
		return err
	}
	for i := 0; i < len(properties); i += 2 {
		key, value := properties[i], ""
		if i+1 < len(properties) {
			value = properties[i+1]
		}
		value = strconv.Quote(value)
		value = value[1 : len(value)-1]
		if _, err := fmt.Fprintf(w, "%s    - %s: `%s`\n", indent, key, value); err != nil {
			return err
		}
	}
	return nil
}

func dump(w io.Writer, indentLevel int, n Node) error {
	if n == nil {
		return nil
	}

	var properties []string
	var children []Node
	switch n := n.(type) {
	case *Template:
		children = n.Children.Nodes
	case *TextNode:
		properties = append(properties, "Text", n.Text)
	case *VariableNode:
		properties = append(properties, "Name", n.Name)
		if n.Format != "" {
			properties = append(properties, "Format", n.Format)
		}
	case *CommentNode:
	case *IfNode:
		properties = append(properties, "Condition", n.Name)
		children = n.Body.Nodes
	case *UnlessNode:
		properties = append(properties, "Condition", n.Name)
		children = n.Body.Nodes
	case *IfEqNode:
		properties = append(properties, "Variable", n.Variable, "Literal", n.Literal)
		children = n.Body.Nodes
	case *UnlessEqNode:
		properties = append(properties, "Variable", n.Variable, "Literal", n.Literal)
		children = n.Body.Nodes
	case *GreaterThanNode:
		properties = compareProperties(&n.CompareNode)
		children = n.Body.Nodes
	case *LessThanNode:
		properties = compareProperties(&n.CompareNode)
		children = n.Body.Nodes
	case *GreaterThanOrEqNode:
		properties = compareProperties(&n.CompareNode)
		children = n.Body.Nodes
	case *LessThanOrEqNode:
		properties = compareProperties(&n.CompareNode)
		children = n.Body.Nodes
	case *IfHasManyNode:
		properties = append(properties, "Iterable", n.Name)
		children = n.Body.Nodes
	case *UnlessHasManyNode:
		properties = append(properties, "Iterable", n.Name)
		children = n.Body.Nodes
	case *LoopNode:
		properties = append(properties, "Iterable", n.Name)
		children = n.Body.Nodes
	case *FirstNode:
		properties = append(properties, "Iterable", n.Name)
		children = n.Body.Nodes
	case *LastNode:
		properties = append(properties, "Iterable", n.Name)
		children = n.Body.Nodes
	case *LengthNode:
		properties = append(properties, "Iterable", n.Iterable)
	case *IndexNode:
		properties = append(properties, "Variable", n.Variable)
		if n.Index != "" {
			properties = append(properties, "Index", n.Index)
		}
	case *IncludeNode:
		properties = append(properties, "Path", n.Path)
	case *MacroNode:
		if err := dumpf(w, indentLevel, n.Type(), "Name", n.Name); err != nil {
			return err
		}
		for _, arg := range n.Args {
			if err := dumpf(w, indentLevel+1, argType{}, "Name", arg.Name); err != nil {
				return err
			}
			for _, c := range arg.Body.Nodes {
				if err := dump(w, indentLevel+2, c); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := dumpf(w, indentLevel, n.Type(), properties...); err != nil {
		return err
	}
	for _, c := range children {
		if err := dump(w, indentLevel+1, c); err != nil {
			return err
		}
	}
	return nil
}

func compareProperties(n *CompareNode) []string {
	return []string{
		"Variable", n.Variable,
		"Literal", strconv.FormatInt(n.Literal, 10),
	}
}

type argType struct{}

func (argType) String() string { return "Arg" }

// Dump prints a textual representation of the tree rooted at n to the given
// writer.
func Dump(w io.Writer, n Node) error {
	return dump(w, 0, n)
}
