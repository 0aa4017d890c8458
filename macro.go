package texttemplate

import "github.com/torsv454/texttemplate/ast"

// TemplateMacro is a macro whose body is itself a template. The source is
// parsed once at construction; each invocation renders the parsed tree with
// the argument map as its root context.
type TemplateMacro struct {
	tpl *ast.Template
}

func NewTemplateMacro(source string) (*TemplateMacro, error) {
	tpl, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return &TemplateMacro{tpl: tpl}, nil
}

// MustTemplateMacro is NewTemplateMacro that panics on a parse error, for
// package-level macro tables.
func MustTemplateMacro(source string) *TemplateMacro {
	m, err := NewTemplateMacro(source)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *TemplateMacro) Apply(args map[string]string) (string, error) {
	return Render(m.tpl, func(name string) (interface{}, error) {
		if v, ok := args[name]; ok {
			return v, nil
		}
		return nil, nil
	}, nil)
}
