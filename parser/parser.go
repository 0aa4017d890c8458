// Package parser translates template source text into an ast.Template.
//
// The parser is a single-pass recursive descent over a rune cursor. There is
// no separate lexer: at any position a '$' introduces a directive which is
// recognized by longest-prefix keyword matching, and any run of non-'$'
// characters becomes a text node. Errors carry the zero-based character
// offset at which they were detected.
package parser

import (
	"runtime"
	"strconv"

	"github.com/torsv454/texttemplate/ast"
)

type parser struct {
	src []rune
	pos int
}

// Parse builds the node tree for the given template source. The returned
// tree is immutable and safe to share across goroutines. On malformed input
// the error is a *SyntaxError.
func Parse(source string) (tpl *ast.Template, err error) {
	p := &parser{src: []rune(source)}
	defer p.recover(&err)
	list := ast.List()
	for !p.isAtEnd() {
		list.Append(p.parseNode())
	}
	return ast.NewTemplate(list), nil
}

// recover turns parse panics into returned errors at the top level of Parse.
func (p *parser) recover(errp *error) {
	if e := recover(); e != nil {
		if _, ok := e.(runtime.Error); ok {
			panic(e)
		}
		*errp = e.(error)
	}
}

// errorf terminates parsing with a *SyntaxError at the given offset. The
// message must not include the position suffix; Error() appends it.
func (p *parser) errorf(pos int, message string) {
	panic(&SyntaxError{Message: message, Position: pos, source: p.src})
}

func (p *parser) isAtEnd() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.isAtEnd() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) advance() rune {
	r := p.src[p.pos]
	p.pos++
	return r
}

// match reports whether the source at the cursor begins with keyword, and
// advances past it when it does.
func (p *parser) match(keyword string) bool {
	i := p.pos
	for _, r := range keyword {
		if i >= len(p.src) || p.src[i] != r {
			return false
		}
		i++
	}
	p.pos = i
	return true
}

// parseUntil consumes characters up to but not including the terminator and
// returns them. Reaching end of input is an error reported at the position
// where input ran out.
func (p *parser) parseUntil(terminator rune) string {
	start := p.pos
	for !p.isAtEnd() {
		if p.peek() == terminator {
			return string(p.src[start:p.pos])
		}
		p.pos++
	}
	p.errorf(p.pos, "Expected '"+string(terminator)+"'")
	return ""
}

// expect consumes the given terminator rune.
func (p *parser) expect(terminator rune) {
	if p.isAtEnd() || p.peek() != terminator {
		p.errorf(p.pos, "Expected '"+string(terminator)+"'")
	}
	p.pos++
}

// trimWhitespaces eats a directive's trailing newline: it consumes a run of
// spaces, tabs and carriage returns only when that run is terminated by a
// newline, consuming through the newline and stopping there. When no newline
// follows the run, nothing is consumed. Invoked after the ')' of every block
// directive header, after every $end, and after '--$'; never after $length
// or $index.
func (p *parser) trimWhitespaces() {
	i := p.pos
	for i < len(p.src) {
		switch p.src[i] {
		case ' ', '\t', '\r':
			i++
		case '\n':
			p.pos = i + 1
			return
		default:
			return
		}
	}
	// trailing whitespace at end of input is preserved as text
}

// skipWhitespaces consumes every whitespace character, newlines included.
// Used between the argument blocks of a macro call.
func (p *parser) skipWhitespaces() {
	for !p.isAtEnd() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

// skipBlanks consumes spaces and tabs in directive headers, e.g. before a
// literal argument.
func (p *parser) skipBlanks() {
	for !p.isAtEnd() {
		switch p.peek() {
		case ' ', '\t':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseNode() ast.Node {
	if p.peek() != '$' {
		return p.parseText()
	}
	return p.parseDirective()
}

func (p *parser) parseText() ast.Node {
	start := p.pos
	for !p.isAtEnd() && p.peek() != '$' {
		p.pos++
	}
	return ast.Text(string(p.src[start:p.pos]))
}

// parseDirective dispatches on the keyword following a '$'. More specific
// prefixes are tested before their ambiguous shorter forms ($if_eq before
// $if, $greater_than_or_eq before $greater_than, and so on).
func (p *parser) parseDirective() ast.Node {
	start := p.pos
	switch {
	case p.match("$$"):
		return ast.Text("$")
	case p.match("${"):
		return p.parseVariable()
	case p.match("$--"):
		return p.parseComment()
	case p.match("$if_eq("):
		v, lit := p.parseEqHeader()
		return ast.IfEq(v, lit, p.parseBody())
	case p.match("$unless_eq("):
		v, lit := p.parseEqHeader()
		return ast.UnlessEq(v, lit, p.parseBody())
	case p.match("$if_has_many("):
		return ast.IfHasMany(p.parseNameHeader(), p.parseBody())
	case p.match("$unless_has_many("):
		return ast.UnlessHasMany(p.parseNameHeader(), p.parseBody())
	case p.match("$greater_than_or_eq("):
		v, lit := p.parseCompareHeader()
		return ast.GreaterThanOrEq(v, lit, p.parseBody())
	case p.match("$less_than_or_eq("):
		v, lit := p.parseCompareHeader()
		return ast.LessThanOrEq(v, lit, p.parseBody())
	case p.match("$greater_than("):
		v, lit := p.parseCompareHeader()
		return ast.GreaterThan(v, lit, p.parseBody())
	case p.match("$less_than("):
		v, lit := p.parseCompareHeader()
		return ast.LessThan(v, lit, p.parseBody())
	case p.match("$if("):
		return ast.If(p.parseNameHeader(), p.parseBody())
	case p.match("$unless("):
		return ast.Unless(p.parseNameHeader(), p.parseBody())
	case p.match("$each("):
		return ast.Loop(p.parseNameHeader(), p.parseBody())
	case p.match("$first("):
		return ast.First(p.parseNameHeader(), p.parseBody())
	case p.match("$last("):
		return ast.Last(p.parseNameHeader(), p.parseBody())
	case p.match("$call("):
		return p.parseMacro()
	case p.match("$include("):
		path := trim(p.parseUntil(')'))
		p.expect(')')
		p.trimWhitespaces()
		return ast.Include(path)
	case p.match("$length("):
		name := trim(p.parseUntil(')'))
		p.expect(')')
		return ast.Length(name)
	case p.match("$index("):
		return p.parseIndex()
	default:
		p.errorf(start, "Unknown directive")
		return nil
	}
}

// parseVariable scans the remainder of a '${' interpolation. Name characters
// are anything except '}' and '|'; the name is looked up verbatim. A '|'
// introduces a format pattern, trimmed of surrounding whitespace.
func (p *parser) parseVariable() ast.Node {
	start := p.pos
	for !p.isAtEnd() {
		switch p.peek() {
		case '}':
			name := string(p.src[start:p.pos])
			p.pos++
			return ast.Variable(name, "")
		case '|':
			name := string(p.src[start:p.pos])
			p.pos++
			format := trim(p.parseUntil('}'))
			p.pos++
			return ast.Variable(name, format)
		default:
			p.pos++
		}
	}
	p.errorf(p.pos, "Expected '}'")
	return nil
}

// parseComment scans past '$--' until the closing '--$'.
func (p *parser) parseComment() ast.Node {
	for p.pos < len(p.src) {
		if p.pos+2 < len(p.src) &&
			p.src[p.pos] == '-' && p.src[p.pos+1] == '-' && p.src[p.pos+2] == '$' {
			p.pos += 3
			p.trimWhitespaces()
			return ast.Comment()
		}
		p.pos++
	}
	p.errorf(p.pos, "Expected '--$' to close comment")
	return nil
}

// parseNameHeader finishes a single-operand block header: the operand up to
// ')', trimmed, with the post-terminator trim applied.
func (p *parser) parseNameHeader() string {
	name := trim(p.parseUntil(')'))
	p.expect(')')
	p.trimWhitespaces()
	return name
}

// parseEqHeader finishes an $if_eq / $unless_eq header: a name up to ',',
// then a double-quoted string literal with no escape processing.
func (p *parser) parseEqHeader() (name, literal string) {
	name = trim(p.parseUntil(','))
	p.expect(',')
	p.skipBlanks()
	p.expect('"')
	literal = p.parseUntil('"')
	p.expect('"')
	p.skipBlanks()
	p.expect(')')
	p.trimWhitespaces()
	return name, literal
}

// parseCompareHeader finishes a comparison header: a name up to ',', then a
// decimal integer literal (digits only, leading whitespace allowed).
func (p *parser) parseCompareHeader() (name string, literal int64) {
	name = trim(p.parseUntil(','))
	p.expect(',')
	p.skipBlanks()
	start := p.pos
	for !p.isAtEnd() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if p.pos == start {
		p.errorf(start, "Expected integer literal")
	}
	literal, err := strconv.ParseInt(string(p.src[start:p.pos]), 10, 64)
	if err != nil {
		p.errorf(start, "Expected integer literal")
	}
	p.skipBlanks()
	p.expect(')')
	p.trimWhitespaces()
	return name, literal
}

// parseIndex finishes an $index header. The second argument is optional;
// when present it is kept raw (it may be a ${NAME} reference resolved at
// render time). No post-terminator trim.
func (p *parser) parseIndex() ast.Node {
	start := p.pos
	for !p.isAtEnd() {
		switch p.peek() {
		case ')':
			variable := trim(string(p.src[start:p.pos]))
			p.pos++
			return ast.Index(variable, "")
		case ',':
			variable := trim(string(p.src[start:p.pos]))
			p.pos++
			index := trim(p.parseUntil(')'))
			p.pos++
			return ast.Index(variable, index)
		default:
			p.pos++
		}
	}
	p.errorf(p.pos, "Expected ')'")
	return nil
}

// parseBody parses a node sequence up to the closing $end of a block
// directive.
func (p *parser) parseBody() *ast.NodeList {
	list := ast.List()
	for !p.isAtEnd() {
		if p.match("$end") {
			p.trimWhitespaces()
			return list
		}
		list.Append(p.parseNode())
	}
	p.errorf(p.pos, "Expected '$end'")
	return nil
}

// parseMacro finishes a $call block: the macro name has not been read yet;
// the body holds zero or more $arg(name) ... $end sub-blocks separated by
// arbitrary whitespace, newlines included.
func (p *parser) parseMacro() ast.Node {
	name := trim(p.parseUntil(')'))
	p.expect(')')
	p.skipWhitespaces()

	var args []ast.MacroArg
	for {
		if p.match("$end") {
			p.trimWhitespaces()
			return ast.Macro(name, args...)
		}
		if p.isAtEnd() {
			p.errorf(p.pos, "Expected '$end'")
		}
		if !p.match("$arg(") {
			p.errorf(p.pos, "Expected '$arg'")
		}
		argName := trim(p.parseUntil(')'))
		p.expect(')')
		p.trimWhitespaces()
		body := p.parseBody()
		args = append(args, ast.MacroArg{Name: argName, Body: body})
		p.skipWhitespaces()
	}
}

// trim strips surrounding whitespace from a directive operand.
func trim(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t' || s[start] == '\r' || s[start] == '\n') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\r' || s[end-1] == '\n') {
		end--
	}
	return s[start:end]
}
