// Package format holds the formatter back-ends consulted by
// ${name|pattern} clauses: a date formatter over Go reference-time layouts
// and a number formatter over fmt verbs and grouped decimals.
package format

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// TypeError reports a value a formatter cannot handle, e.g. a string handed
// to the date formatter.
type TypeError struct {
	Value   interface{}
	Pattern string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("cannot format %T value with pattern %q", e.Value, e.Pattern)
}

// dateTokens are the reference-time fragments whose presence marks a
// pattern as a date layout.
var dateTokens = []string{
	"2006", "15:04", "03:04", "Jan", "January", "Monday", "Mon",
	"MST", "-0700", "Z07", "PM", "pm",
}

// DateFormatter renders time values through Go reference-time layouts, in
// the configured location when one is set.
type DateFormatter struct {
	Location *time.Location
}

func (f *DateFormatter) Supports(pattern string) bool {
	for _, tok := range dateTokens {
		if strings.Contains(pattern, tok) {
			return true
		}
	}
	return false
}

func (f *DateFormatter) Format(value interface{}, pattern string) (string, error) {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return "", &TypeError{Value: value, Pattern: pattern}
		}
		t = *v
	default:
		return "", &TypeError{Value: value, Pattern: pattern}
	}
	if f.Location != nil {
		t = t.In(f.Location)
	}
	return t.Format(pattern), nil
}

// GroupedDecimal is the pattern that renders a number with locale grouping
// separators, e.g. 1234567 as "1,234,567".
const GroupedDecimal = "#,###"

var numberVerb = regexp.MustCompile(`%[-+ 0#]*[0-9]*(\.[0-9]+)?[dobxXeEfFgGv]`)

// NumberFormatter renders integers and floats through fmt verbs ("%d",
// "%6.2f", "%x", ...) or, for the GroupedDecimal pattern, with grouping
// separators.
type NumberFormatter struct{}

func (f *NumberFormatter) Supports(pattern string) bool {
	return pattern == GroupedDecimal || numberVerb.MatchString(pattern)
}

func (f *NumberFormatter) Format(value interface{}, pattern string) (string, error) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return "", &TypeError{Value: value, Pattern: pattern}
	}
	if pattern == GroupedDecimal {
		p := message.NewPrinter(language.English)
		return p.Sprintf("%v", number.Decimal(value)), nil
	}
	return fmt.Sprintf(pattern, value), nil
}
