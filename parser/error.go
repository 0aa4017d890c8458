package parser

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/torsv454/texttemplate/internal/errors"
	"golang.org/x/xerrors"
)

// SyntaxError describes a structural template error. Position is the
// zero-based character offset at which the error was detected.
type SyntaxError struct {
	Message  string
	Position int

	source []rune
}

func (e *SyntaxError) Error() string {
	return e.Message + " at position: " + strconv.Itoa(e.Position)
}

// PrettyPrint writes the message and, optionally, an annotated excerpt of
// the template source.
func (e *SyntaxError) PrettyPrint(sink *errors.Sink, colored, inclSource bool) {
	errors.WriteMessage(sink, e.Error(), colored)
	if inclSource && len(e.source) > 0 {
		errors.WriteSource(sink, e.source, e.Position, colored)
	}
}

// FormatError is a utility function that takes advantage of the metadata
// stored in the errors returned by this package's parser.
//
// If the second argument `colored` is true, the error message is colorized.
// If the third argument `inclSource` is true, the error message will
// contain snippets of the template source that was used.
func FormatError(e error, colored, inclSource bool) string {
	var pp errors.PrettyPrinter
	if xerrors.As(e, &pp) {
		var buf bytes.Buffer
		pp.PrettyPrint(&errors.Sink{Writer: &buf}, colored, inclSource)
		return strings.TrimSuffix(buf.String(), "\n")
	}

	return e.Error()
}
