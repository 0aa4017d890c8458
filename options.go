package texttemplate

import (
	"time"

	"github.com/torsv454/texttemplate/format"
)

// Formatter renders a value according to a pattern. Formatters are consulted
// in registration order; the first whose Supports reports true wins.
type Formatter interface {
	Supports(pattern string) bool
	Format(value interface{}, pattern string) (string, error)
}

// Macro is a caller-registered callable invoked by $call. Arguments arrive
// fully rendered.
type Macro interface {
	Apply(args map[string]string) (string, error)
}

// MacroFunc adapts a function to the Macro interface.
type MacroFunc func(args map[string]string) (string, error)

func (f MacroFunc) Apply(args map[string]string) (string, error) {
	return f(args)
}

// Options configures rendering. The zero value of each field other than
// Formatters selects the default behavior; a nil Formatters list supports no
// pattern. A nil *Options passed to Render is equivalent to
// NewOptions(). Options values are not mutated by Render and may be shared
// across concurrent renders once constructed.
type Options struct {
	// OnVariableNotFound supplies the replacement text for a ${name} whose
	// lookup yields null, whether from the root context or from a key missing
	// on a loop element map. The default emits nothing.
	OnVariableNotFound func(name string, ctx Context) string

	// Formatters is consulted, in order, for ${name|pattern} clauses. The
	// default list is the date formatter followed by the number formatter.
	Formatters []Formatter

	// LoadInclude fetches the source text behind $include(path). Unset, any
	// $include fails with ErrIncludeNotConfigured. See the include package
	// for filesystem- and git-backed loaders.
	LoadInclude func(path string) (string, error)

	// Macros maps macro names to their implementations.
	Macros map[string]Macro

	// CallMacro, when set, replaces the Macros table entirely.
	CallMacro func(name string, args map[string]string) (string, error)

	// Location is the time zone set by WithLocation, which also hands it to
	// every registered date formatter. Assigning the field directly does not
	// reconfigure the formatters.
	Location *time.Location
}

// NewOptions returns the default options: empty not-found fallback, date
// then number formatting, includes disabled and no macros.
func NewOptions() *Options {
	return &Options{
		Formatters: []Formatter{
			&format.DateFormatter{},
			&format.NumberFormatter{},
		},
		Macros: map[string]Macro{},
	}
}

// WithLocation sets the time zone and rethreads it through any registered
// date formatters. Returns the options for chaining.
func (o *Options) WithLocation(loc *time.Location) *Options {
	o.Location = loc
	for _, f := range o.Formatters {
		if df, ok := f.(*format.DateFormatter); ok {
			df.Location = loc
		}
	}
	return o
}

// RegisterFormatter adds a formatter ahead of the existing list, so caller
// formatters win over the defaults.
func (o *Options) RegisterFormatter(f Formatter) *Options {
	o.Formatters = append([]Formatter{f}, o.Formatters...)
	return o
}

// RegisterMacro makes a macro available to $call.
func (o *Options) RegisterMacro(name string, m Macro) *Options {
	if o.Macros == nil {
		o.Macros = map[string]Macro{}
	}
	o.Macros[name] = m
	return o
}

func (o *Options) variableNotFound(name string, ctx Context) string {
	if o.OnVariableNotFound != nil {
		return o.OnVariableNotFound(name, ctx)
	}
	return ""
}

func (o *Options) format(value interface{}, pattern string) (string, error) {
	for _, f := range o.Formatters {
		if f.Supports(pattern) {
			return f.Format(value, pattern)
		}
	}
	return "", &UnsupportedFormatError{Pattern: pattern}
}

func (o *Options) loadInclude(path string) (string, error) {
	if o.LoadInclude == nil {
		return "", ErrIncludeNotConfigured
	}
	return o.LoadInclude(path)
}

func (o *Options) callMacro(name string, args map[string]string) (string, error) {
	if o.CallMacro != nil {
		return o.CallMacro(name, args)
	}
	m, ok := o.Macros[name]
	if !ok {
		return "", &NoSuchMacroError{Name: name}
	}
	return m.Apply(args)
}
