// Parse nodes.

package ast

import (
	"strconv"
	"strings"
)

// Node is the interface implemented by every element of a parsed template.
// Node trees are immutable once parsing completes; a *Template may be shared
// freely across goroutines.
type Node interface {
	Type() NodeType
	String() string
	WriteTo(*strings.Builder)
}

// NodeType identifies the type of a template tree node.
type NodeType int

const (
	TextType          NodeType = iota // A run of literal text.
	VariableType                      // A ${name} interpolation.
	CommentType                       // A $-- ... --$ comment.
	IfType                            // $if: body emitted when the value is truthy.
	UnlessType                        // $unless: body emitted when the value is null or empty.
	IfEqType                          // $if_eq: string comparison against a literal.
	UnlessEqType                      // $unless_eq.
	GreaterThanType                   // $greater_than.
	LessThanType                      // $less_than.
	GreaterThanOrEqType               // $greater_than_or_eq.
	LessThanOrEqType                  // $less_than_or_eq.
	IfHasManyType                     // $if_has_many: at least two elements.
	UnlessHasManyType                 // $unless_has_many.
	LoopType                          // $each.
	FirstType                         // $first.
	LastType                          // $last.
	LengthType                        // $length.
	IndexType                         // $index.
	IncludeType                       // $include.
	MacroType                         // $call.
	TemplateType                      // The root of a parsed template.
)

func (t NodeType) String() string {
	switch t {
	case TextType:
		return "Text"
	case VariableType:
		return "Variable"
	case CommentType:
		return "Comment"
	case IfType:
		return "If"
	case UnlessType:
		return "Unless"
	case IfEqType:
		return "IfEq"
	case UnlessEqType:
		return "UnlessEq"
	case GreaterThanType:
		return "GreaterThan"
	case LessThanType:
		return "LessThan"
	case GreaterThanOrEqType:
		return "GreaterThanOrEq"
	case LessThanOrEqType:
		return "LessThanOrEq"
	case IfHasManyType:
		return "IfHasMany"
	case UnlessHasManyType:
		return "UnlessHasMany"
	case LoopType:
		return "Loop"
	case FirstType:
		return "First"
	case LastType:
		return "Last"
	case LengthType:
		return "Length"
	case IndexType:
		return "Index"
	case IncludeType:
		return "Include"
	case MacroType:
		return "Macro"
	case TemplateType:
		return "Template"
	default:
		return "Unknown"
	}
}

// NodeList holds a sequence of nodes.
type NodeList struct {
	Nodes []Node // The element nodes in lexical order.
}

func List(nodes ...Node) *NodeList {
	return &NodeList{Nodes: nodes}
}

func (l *NodeList) Append(n Node) {
	l.Nodes = append(l.Nodes, n)
}

func (l *NodeList) String() string {
	var sb strings.Builder
	l.WriteTo(&sb)
	return sb.String()
}

func (l *NodeList) WriteTo(sb *strings.Builder) {
	for _, n := range l.Nodes {
		n.WriteTo(sb)
	}
}

// Template is the root of a parse tree.
type Template struct {
	Children *NodeList
}

func NewTemplate(children *NodeList) *Template {
	if children == nil {
		children = List()
	}
	return &Template{Children: children}
}

func (t *Template) Type() NodeType {
	return TemplateType
}

func (t *Template) String() string {
	var sb strings.Builder
	t.WriteTo(&sb)
	return sb.String()
}

func (t *Template) WriteTo(sb *strings.Builder) {
	t.Children.WriteTo(sb)
}

// TextNode holds a run of literal text.
type TextNode struct {
	Text string
}

func Text(text string) *TextNode {
	return &TextNode{Text: text}
}

func (n *TextNode) Type() NodeType {
	return TextType
}

func (n *TextNode) String() string {
	var sb strings.Builder
	n.WriteTo(&sb)
	return sb.String()
}

func (n *TextNode) WriteTo(sb *strings.Builder) {
	// '$' only enters a text node through the '$$' escape.
	sb.WriteString(strings.ReplaceAll(n.Text, "$", "$$"))
}

// VariableNode holds a ${name} or ${name|format} interpolation. Name is the
// raw lookup key; Format is empty when no format clause was given.
type VariableNode struct {
	Name   string
	Format string
}

func Variable(name, format string) *VariableNode {
	return &VariableNode{Name: name, Format: format}
}

func (n *VariableNode) Type() NodeType {
	return VariableType
}

func (n *VariableNode) String() string {
	var sb strings.Builder
	n.WriteTo(&sb)
	return sb.String()
}

func (n *VariableNode) WriteTo(sb *strings.Builder) {
	sb.WriteString("${")
	sb.WriteString(n.Name)
	if n.Format != "" {
		sb.WriteByte('|')
		sb.WriteString(n.Format)
	}
	sb.WriteByte('}')
}

// CommentNode marks a stripped $-- ... --$ comment. The comment text is
// discarded at parse time.
type CommentNode struct {
}

func Comment() *CommentNode {
	return &CommentNode{}
}

func (n *CommentNode) Type() NodeType {
	return CommentType
}

func (n *CommentNode) String() string {
	return "$----$"
}

func (n *CommentNode) WriteTo(sb *strings.Builder) {
	sb.WriteString(n.String())
}

// BranchNode is the common representation of the single-operand block
// directives: $if, $unless, $if_has_many, $unless_has_many, $each, $first
// and $last.
type BranchNode struct {
	typ NodeType

	Name string    // The condition or iterable operand.
	Body *NodeList // What to emit when the branch applies.
}

func branch(typ NodeType, name string, body *NodeList) BranchNode {
	if body == nil {
		body = List()
	}
	return BranchNode{typ: typ, Name: name, Body: body}
}

func (b *BranchNode) Type() NodeType {
	return b.typ
}

func (b *BranchNode) keyword() string {
	switch b.typ {
	case IfType:
		return "if"
	case UnlessType:
		return "unless"
	case IfHasManyType:
		return "if_has_many"
	case UnlessHasManyType:
		return "unless_has_many"
	case LoopType:
		return "each"
	case FirstType:
		return "first"
	case LastType:
		return "last"
	default:
		panic("unknown branch type")
	}
}

func (b *BranchNode) String() string {
	var sb strings.Builder
	b.WriteTo(&sb)
	return sb.String()
}

func (b *BranchNode) WriteTo(sb *strings.Builder) {
	sb.WriteByte('$')
	sb.WriteString(b.keyword())
	sb.WriteByte('(')
	sb.WriteString(b.Name)
	sb.WriteByte(')')
	b.Body.WriteTo(sb)
	sb.WriteString("$end")
}

// IfNode represents $if: the body is emitted when the looked-up value is
// non-null and not the empty string.
type IfNode struct {
	BranchNode
}

func If(condition string, body *NodeList) *IfNode {
	return &IfNode{branch(IfType, condition, body)}
}

// UnlessNode represents $unless, the complement of $if.
type UnlessNode struct {
	BranchNode
}

func Unless(condition string, body *NodeList) *UnlessNode {
	return &UnlessNode{branch(UnlessType, condition, body)}
}

// IfHasManyNode represents $if_has_many: the body is emitted when the
// operand is a sequence yielding at least two elements.
type IfHasManyNode struct {
	BranchNode
}

func IfHasMany(iterable string, body *NodeList) *IfHasManyNode {
	return &IfHasManyNode{branch(IfHasManyType, iterable, body)}
}

// UnlessHasManyNode represents $unless_has_many.
type UnlessHasManyNode struct {
	BranchNode
}

func UnlessHasMany(iterable string, body *NodeList) *UnlessHasManyNode {
	return &UnlessHasManyNode{branch(UnlessHasManyType, iterable, body)}
}

// LoopNode represents $each.
type LoopNode struct {
	BranchNode
}

func Loop(iterable string, body *NodeList) *LoopNode {
	return &LoopNode{branch(LoopType, iterable, body)}
}

// FirstNode represents $first: the body is rendered once with the first
// element bound to "it".
type FirstNode struct {
	BranchNode
}

func First(iterable string, body *NodeList) *FirstNode {
	return &FirstNode{branch(FirstType, iterable, body)}
}

// LastNode represents $last.
type LastNode struct {
	BranchNode
}

func Last(iterable string, body *NodeList) *LastNode {
	return &LastNode{branch(LastType, iterable, body)}
}

// EqNode is the common representation of $if_eq and $unless_eq.
type EqNode struct {
	typ NodeType

	Variable string
	Literal  string
	Body     *NodeList
}

func eq(typ NodeType, variable, literal string, body *NodeList) EqNode {
	if body == nil {
		body = List()
	}
	return EqNode{typ: typ, Variable: variable, Literal: literal, Body: body}
}

func (n *EqNode) Type() NodeType {
	return n.typ
}

func (n *EqNode) String() string {
	var sb strings.Builder
	n.WriteTo(&sb)
	return sb.String()
}

func (n *EqNode) WriteTo(sb *strings.Builder) {
	if n.typ == IfEqType {
		sb.WriteString("$if_eq(")
	} else {
		sb.WriteString("$unless_eq(")
	}
	sb.WriteString(n.Variable)
	sb.WriteString(`, "`)
	sb.WriteString(n.Literal)
	sb.WriteString(`")`)
	n.Body.WriteTo(sb)
	sb.WriteString("$end")
}

// IfEqNode represents $if_eq: the body is emitted when the string projection
// of the looked-up value equals the literal.
type IfEqNode struct {
	EqNode
}

func IfEq(variable, literal string, body *NodeList) *IfEqNode {
	return &IfEqNode{eq(IfEqType, variable, literal, body)}
}

// UnlessEqNode represents $unless_eq.
type UnlessEqNode struct {
	EqNode
}

func UnlessEq(variable, literal string, body *NodeList) *UnlessEqNode {
	return &UnlessEqNode{eq(UnlessEqType, variable, literal, body)}
}

// CompareNode is the common representation of the four integer comparison
// directives. The looked-up value's string projection must parse as a
// decimal integer for the branch to apply.
type CompareNode struct {
	typ NodeType

	Variable string
	Literal  int64
	Body     *NodeList
}

func compare(typ NodeType, variable string, literal int64, body *NodeList) CompareNode {
	if body == nil {
		body = List()
	}
	return CompareNode{typ: typ, Variable: variable, Literal: literal, Body: body}
}

func (n *CompareNode) Type() NodeType {
	return n.typ
}

func (n *CompareNode) keyword() string {
	switch n.typ {
	case GreaterThanType:
		return "greater_than"
	case LessThanType:
		return "less_than"
	case GreaterThanOrEqType:
		return "greater_than_or_eq"
	case LessThanOrEqType:
		return "less_than_or_eq"
	default:
		panic("unknown comparison type")
	}
}

func (n *CompareNode) String() string {
	var sb strings.Builder
	n.WriteTo(&sb)
	return sb.String()
}

func (n *CompareNode) WriteTo(sb *strings.Builder) {
	sb.WriteByte('$')
	sb.WriteString(n.keyword())
	sb.WriteByte('(')
	sb.WriteString(n.Variable)
	sb.WriteString(", ")
	sb.WriteString(strconv.FormatInt(n.Literal, 10))
	sb.WriteByte(')')
	n.Body.WriteTo(sb)
	sb.WriteString("$end")
}

// GreaterThanNode represents $greater_than.
type GreaterThanNode struct {
	CompareNode
}

func GreaterThan(variable string, literal int64, body *NodeList) *GreaterThanNode {
	return &GreaterThanNode{compare(GreaterThanType, variable, literal, body)}
}

// LessThanNode represents $less_than.
type LessThanNode struct {
	CompareNode
}

func LessThan(variable string, literal int64, body *NodeList) *LessThanNode {
	return &LessThanNode{compare(LessThanType, variable, literal, body)}
}

// GreaterThanOrEqNode represents $greater_than_or_eq.
type GreaterThanOrEqNode struct {
	CompareNode
}

func GreaterThanOrEq(variable string, literal int64, body *NodeList) *GreaterThanOrEqNode {
	return &GreaterThanOrEqNode{compare(GreaterThanOrEqType, variable, literal, body)}
}

// LessThanOrEqNode represents $less_than_or_eq.
type LessThanOrEqNode struct {
	CompareNode
}

func LessThanOrEq(variable string, literal int64, body *NodeList) *LessThanOrEqNode {
	return &LessThanOrEqNode{compare(LessThanOrEqType, variable, literal, body)}
}

// LengthNode represents $length, which emits the element count of its
// operand as a decimal integer.
type LengthNode struct {
	Iterable string
}

func Length(iterable string) *LengthNode {
	return &LengthNode{Iterable: iterable}
}

func (n *LengthNode) Type() NodeType {
	return LengthType
}

func (n *LengthNode) String() string {
	var sb strings.Builder
	n.WriteTo(&sb)
	return sb.String()
}

func (n *LengthNode) WriteTo(sb *strings.Builder) {
	sb.WriteString("$length(")
	sb.WriteString(n.Iterable)
	sb.WriteByte(')')
}

// IndexNode represents $index. Index is the raw second argument: empty when
// absent, otherwise either a literal key/position or a ${NAME} reference
// resolved at render time. Any Index that starts with "${" and ends with "}"
// is taken as a reference, so such a literal key cannot be expressed.
type IndexNode struct {
	Variable string
	Index    string
}

func Index(variable, index string) *IndexNode {
	return &IndexNode{Variable: variable, Index: index}
}

func (n *IndexNode) Type() NodeType {
	return IndexType
}

func (n *IndexNode) String() string {
	var sb strings.Builder
	n.WriteTo(&sb)
	return sb.String()
}

func (n *IndexNode) WriteTo(sb *strings.Builder) {
	sb.WriteString("$index(")
	sb.WriteString(n.Variable)
	if n.Index != "" {
		sb.WriteString(", ")
		sb.WriteString(n.Index)
	}
	sb.WriteByte(')')
}

// IncludeNode represents $include.
type IncludeNode struct {
	Path string
}

func Include(path string) *IncludeNode {
	return &IncludeNode{Path: path}
}

func (n *IncludeNode) Type() NodeType {
	return IncludeType
}

func (n *IncludeNode) String() string {
	var sb strings.Builder
	n.WriteTo(&sb)
	return sb.String()
}

func (n *IncludeNode) WriteTo(sb *strings.Builder) {
	sb.WriteString("$include(")
	sb.WriteString(n.Path)
	sb.WriteByte(')')
}

// MacroArg is one $arg(name) ... $end block inside a $call.
type MacroArg struct {
	Name string
	Body *NodeList
}

// MacroNode represents $call. Each argument body is rendered to a string in
// the calling context before the macro is invoked.
type MacroNode struct {
	Name string
	Args []MacroArg
}

func Macro(name string, args ...MacroArg) *MacroNode {
	return &MacroNode{Name: name, Args: args}
}

func (n *MacroNode) Type() NodeType {
	return MacroType
}

func (n *MacroNode) String() string {
	var sb strings.Builder
	n.WriteTo(&sb)
	return sb.String()
}

func (n *MacroNode) WriteTo(sb *strings.Builder) {
	sb.WriteString("$call(")
	sb.WriteString(n.Name)
	sb.WriteByte(')')
	for _, arg := range n.Args {
		sb.WriteString("$arg(")
		sb.WriteString(arg.Name)
		sb.WriteByte(')')
		arg.Body.WriteTo(sb)
		sb.WriteString("$end")
	}
	sb.WriteString("$end")
}
