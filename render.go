package texttemplate

import (
	"strconv"
	"strings"

	"github.com/torsv454/texttemplate/ast"
	"github.com/torsv454/texttemplate/parser"
	"golang.org/x/xerrors"
)

// Render walks a parsed template against a context and returns the produced
// text. A nil opts selects NewOptions(); a nil ctx resolves every name to
// nil. The template may be shared across concurrent Render calls; each call
// owns its output buffer.
func Render(tpl *ast.Template, ctx Context, opts *Options) (string, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if ctx == nil {
		ctx = EmptyContext()
	}
	r := &renderer{opts: opts}
	if err := r.renderList(tpl.Children, ctx); err != nil {
		return "", err
	}
	return r.sb.String(), nil
}

// RenderString parses and renders in one step. Templates rendered more than
// once should be parsed once with Parse and rendered with Render.
func RenderString(source string, ctx Context, opts *Options) (string, error) {
	tpl, err := parser.Parse(source)
	if err != nil {
		return "", err
	}
	return Render(tpl, ctx, opts)
}

// RenderMap renders against a map adapted to a root lookup that returns nil
// on absent keys.
func RenderMap(tpl *ast.Template, data map[string]interface{}, opts *Options) (string, error) {
	return Render(tpl, MapContext(data), opts)
}

type renderer struct {
	sb   strings.Builder
	opts *Options
}

func (r *renderer) renderList(list *ast.NodeList, ctx Context) error {
	for _, n := range list.Nodes {
		if err := r.renderNode(n, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) renderNode(n ast.Node, ctx Context) error {
	switch n := n.(type) {
	case *ast.TextNode:
		r.sb.WriteString(n.Text)
	case *ast.CommentNode:
	case *ast.VariableNode:
		return r.renderVariable(n, ctx)
	case *ast.IfNode:
		v, err := ctx(n.Name)
		if err != nil {
			return err
		}
		if truthy(v) {
			return r.renderList(n.Body, ctx)
		}
	case *ast.UnlessNode:
		v, err := ctx(n.Name)
		if err != nil {
			return err
		}
		if !truthy(v) {
			return r.renderList(n.Body, ctx)
		}
	case *ast.IfEqNode:
		v, err := ctx(n.Variable)
		if err != nil {
			return err
		}
		if stringOf(v) == n.Literal {
			return r.renderList(n.Body, ctx)
		}
	case *ast.UnlessEqNode:
		v, err := ctx(n.Variable)
		if err != nil {
			return err
		}
		if stringOf(v) != n.Literal {
			return r.renderList(n.Body, ctx)
		}
	case *ast.GreaterThanNode:
		return r.renderCompare(&n.CompareNode, ctx, func(a, b int64) bool { return a > b })
	case *ast.LessThanNode:
		return r.renderCompare(&n.CompareNode, ctx, func(a, b int64) bool { return a < b })
	case *ast.GreaterThanOrEqNode:
		return r.renderCompare(&n.CompareNode, ctx, func(a, b int64) bool { return a >= b })
	case *ast.LessThanOrEqNode:
		return r.renderCompare(&n.CompareNode, ctx, func(a, b int64) bool { return a <= b })
	case *ast.IfHasManyNode:
		v, err := ctx(n.Name)
		if err != nil {
			return err
		}
		// iterability as a sequence only: maps never count as "many"
		if seq, ok := sequenceOf(v); ok && len(seq) >= 2 {
			return r.renderList(n.Body, ctx)
		}
	case *ast.UnlessHasManyNode:
		v, err := ctx(n.Name)
		if err != nil {
			return err
		}
		if isNull(v) {
			return r.renderList(n.Body, ctx)
		}
		if seq, ok := sequenceOf(v); ok && len(seq) <= 1 {
			return r.renderList(n.Body, ctx)
		}
	case *ast.LoopNode:
		return r.renderLoop(n, ctx)
	case *ast.FirstNode:
		return r.renderEdge(n.Name, n.Body, ctx, false)
	case *ast.LastNode:
		return r.renderEdge(n.Name, n.Body, ctx, true)
	case *ast.LengthNode:
		v, err := ctx(n.Iterable)
		if err != nil {
			return err
		}
		r.sb.WriteString(strconv.Itoa(lengthOf(v)))
	case *ast.IndexNode:
		return r.renderIndex(n, ctx)
	case *ast.IncludeNode:
		content, err := r.opts.loadInclude(n.Path)
		if err != nil {
			return xerrors.Errorf("include %s: %w", n.Path, err)
		}
		sub, err := parser.Parse(content)
		if err != nil {
			return xerrors.Errorf("include %s: %w", n.Path, err)
		}
		// the included tree participates in the caller's scope chain
		return r.renderList(sub.Children, ctx)
	case *ast.MacroNode:
		return r.renderMacro(n, ctx)
	case *ast.Template:
		return r.renderList(n.Children, ctx)
	}
	return nil
}

func (r *renderer) renderVariable(n *ast.VariableNode, ctx Context) error {
	v, err := ctx(n.Name)
	if err != nil {
		return err
	}
	if isNull(v) {
		r.sb.WriteString(r.opts.variableNotFound(n.Name, ctx))
		return nil
	}
	if n.Format != "" {
		s, err := r.opts.format(v, n.Format)
		if err != nil {
			return err
		}
		r.sb.WriteString(s)
		return nil
	}
	r.sb.WriteString(stringOf(v))
	return nil
}

func (r *renderer) renderCompare(n *ast.CompareNode, ctx Context, cmp func(a, b int64) bool) error {
	v, err := ctx(n.Variable)
	if err != nil {
		return err
	}
	if k, ok := intOf(v); ok && cmp(k, n.Literal) {
		return r.renderList(n.Body, ctx)
	}
	return nil
}

func (r *renderer) renderLoop(n *ast.LoopNode, ctx Context) error {
	v, err := ctx(n.Name)
	if err != nil {
		return err
	}
	if isNull(v) {
		return nil
	}
	if seq, ok := sequenceOf(v); ok {
		total := len(seq)
		for i, el := range seq {
			f := &loopFrame{parent: ctx, it: el, index: i, total: total, hasMeta: true}
			if err := r.renderList(n.Body, f.lookup); err != nil {
				return err
			}
		}
		return nil
	}
	if entries, ok := entriesOf(v); ok {
		total := len(entries)
		for i, e := range entries {
			f := &loopFrame{
				parent:  ctx,
				it:      e.value,
				key:     e.key,
				hasKey:  true,
				index:   i,
				total:   total,
				hasMeta: true,
			}
			if err := r.renderList(n.Body, f.lookup); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// renderEdge implements $first and $last: the body renders exactly once with
// the edge element bound to "it" and no loop counters.
func (r *renderer) renderEdge(name string, body *ast.NodeList, ctx Context, last bool) error {
	v, err := ctx(name)
	if err != nil {
		return err
	}
	if isNull(v) {
		return nil
	}
	f := &loopFrame{parent: ctx}
	if seq, ok := sequenceOf(v); ok {
		if len(seq) == 0 {
			return nil
		}
		if last {
			f.it = seq[len(seq)-1]
		} else {
			f.it = seq[0]
		}
	} else if entries, ok := entriesOf(v); ok {
		if len(entries) == 0 {
			return nil
		}
		e := entries[0]
		if last {
			e = entries[len(entries)-1]
		}
		f.it, f.key, f.hasKey = e.value, e.key, true
	} else {
		return nil
	}
	return r.renderList(body, f.lookup)
}

func (r *renderer) renderIndex(n *ast.IndexNode, ctx Context) error {
	if n.Index == "" {
		return nil
	}
	idx := n.Index
	if strings.HasPrefix(idx, "${") && strings.HasSuffix(idx, "}") {
		v, err := ctx(idx[2 : len(idx)-1])
		if err != nil {
			return err
		}
		idx = stringOf(v)
	}
	target, err := ctx(n.Variable)
	if err != nil {
		return err
	}
	if seq, ok := sequenceOf(target); ok {
		i, err := strconv.Atoi(idx)
		if err != nil || i < 0 || i >= len(seq) {
			return nil
		}
		r.sb.WriteString(stringOf(seq[i]))
		return nil
	}
	if get, ok := mappingOf(target); ok {
		if v, ok := get(idx); ok && !isNull(v) {
			r.sb.WriteString(stringOf(v))
		}
		return nil
	}
	return nil
}

func (r *renderer) renderMacro(n *ast.MacroNode, ctx Context) error {
	args := make(map[string]string, len(n.Args))
	for _, a := range n.Args {
		sub := &renderer{opts: r.opts}
		if err := sub.renderList(a.Body, ctx); err != nil {
			return err
		}
		args[a.Name] = sub.sb.String()
	}
	out, err := r.opts.callMacro(n.Name, args)
	if err != nil {
		return err
	}
	r.sb.WriteString(out)
	return nil
}
