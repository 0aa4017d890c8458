// Package texttemplate is a text templating engine for document generation:
// Markdown tables, emails, reports. A template is compiled once into an
// immutable tree and rendered any number of times against caller-supplied
// contexts.
//
// The directive language covers interpolation (${name}, ${name|pattern}),
// conditionals ($if, $unless, $if_eq, $unless_eq, the integer comparators),
// iteration ($each, $first, $last, $if_has_many), collection access
// ($length, $index), composition ($include, $call) and comments
// ($-- ... --$). A literal dollar sign is written $$.
//
// Parsing and rendering are split across the parser package and this one;
// date and number formatting live in the format package and include loading
// in the include package.
package texttemplate

import (
	"github.com/torsv454/texttemplate/ast"
	"github.com/torsv454/texttemplate/parser"
)

// Template is the immutable parse tree produced by Parse. It is safe to
// cache and to share across concurrent renders.
type Template = ast.Template

// Parse compiles template source into a Template. Malformed input yields a
// *parser.SyntaxError carrying the character offset of the fault.
func Parse(source string) (*Template, error) {
	return parser.Parse(source)
}
