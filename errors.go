package texttemplate

import (
	"fmt"

	"golang.org/x/xerrors"
)

// UnknownVariableError reports a name that a derived context could not
// resolve. The root context never raises it; misses there fall back to the
// configured not-found handler.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return "Unknown variable " + e.Name
}

// NoSuchMacroError reports a $call of an unregistered macro.
type NoSuchMacroError struct {
	Name string
}

func (e *NoSuchMacroError) Error() string {
	return "No such macro " + e.Name
}

// UnsupportedFormatError reports a format pattern no registered formatter
// supports.
type UnsupportedFormatError struct {
	Pattern string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("no formatter supports pattern %q", e.Pattern)
}

// ErrIncludeNotConfigured is returned when a template uses $include but no
// loader has been configured.
var ErrIncludeNotConfigured = xerrors.New("no include loader is configured")
