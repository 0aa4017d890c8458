package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Sink collects pretty-printed error output.
type Sink struct {
	io.Writer
}

func (s *Sink) Printf(format string, args ...interface{}) {
	fmt.Fprintf(s.Writer, format, args...)
}

// PrettyPrinter is implemented by errors that can render themselves with
// color and a source excerpt.
type PrettyPrinter interface {
	PrettyPrint(sink *Sink, colored, inclSource bool)
}

var (
	msgColor    = color.New(color.FgHiRed)
	lineColor   = color.New(color.Bold, color.FgHiWhite)
	markerColor = color.New(color.FgHiRed, color.Bold)
)

// WriteMessage writes the error message line.
func WriteMessage(sink *Sink, msg string, colored bool) {
	if colored {
		msg = msgColor.Sprint(msg)
	}
	sink.Printf("%s\n", msg)
}

// WriteSource writes the source line containing the given rune offset with a
// caret marking the offending column. Offsets at or past the end of the
// source annotate the last line.
func WriteSource(sink *Sink, source []rune, offset int, colored bool) {
	if offset > len(source) {
		offset = len(source)
	}
	if offset == len(source) && offset > 0 {
		offset--
		if source[offset] == '\n' && offset > 0 {
			offset--
		}
	}

	lineStart := 0
	lineNum := 1
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			lineStart = i + 1
			lineNum++
		}
	}
	lineEnd := len(source)
	for i := lineStart; i < len(source); i++ {
		if source[i] == '\n' {
			lineEnd = i
			break
		}
	}

	prefix := fmt.Sprintf("%2d | ", lineNum)
	if colored {
		prefix = lineColor.Sprint(prefix)
	}
	sink.Printf("%s%s\n", prefix, string(source[lineStart:lineEnd]))

	marker := "^"
	if colored {
		marker = markerColor.Sprint(marker)
	}
	pad := strings.Repeat(" ", len("99 | ")+offset-lineStart)
	sink.Printf("%s%s\n", pad, marker)
}
