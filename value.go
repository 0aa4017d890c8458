package texttemplate

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"unicode/utf8"
)

// The value domain is dynamic: contexts hand back plain Go values and the
// renderer inspects them polymorphically. Nil (and typed nils), booleans,
// integers of any width, floats, strings, slices, arrays, maps, *OrderedMap
// and fmt.Stringer opaques are all understood; anything else falls back to
// its fmt representation.

// isNull reports whether a value stands for the null value, including typed
// nil pointers, interfaces, slices and maps.
func isNull(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// truthy implements the engine's truthiness rule: a value is truthy iff it
// is non-null and not the empty string. false, 0 and 0.0 are truthy.
func truthy(v interface{}) bool {
	if isNull(v) {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// stringOf is the canonical string projection. Null projects to "null".
func stringOf(v interface{}) string {
	if isNull(v) {
		return "null"
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case fmt.Stringer:
		return t.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return rv.String()
	case reflect.Ptr:
		return stringOf(rv.Elem().Interface())
	}
	return fmt.Sprintf("%v", v)
}

// intOf attempts the decimal integer reading of a value's string projection.
func intOf(v interface{}) (int64, bool) {
	if isNull(v) {
		return 0, false
	}
	n, err := strconv.ParseInt(stringOf(v), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// sequenceOf materializes a value's elements when the value is a sequence
// (slice or array). Strings and maps are not sequences.
func sequenceOf(v interface{}) ([]interface{}, bool) {
	if isNull(v) {
		return nil, false
	}
	if s, ok := v.([]interface{}); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

type mapEntry struct {
	key   interface{}
	value interface{}
}

// entriesOf materializes a value's key/value pairs when the value is a map.
// An *OrderedMap yields insertion order; plain Go maps are walked in sorted
// key-projection order so renders stay deterministic.
func entriesOf(v interface{}) ([]mapEntry, bool) {
	if isNull(v) {
		return nil, false
	}
	switch t := v.(type) {
	case *OrderedMap:
		entries := make([]mapEntry, 0, t.Len())
		for _, k := range t.keys {
			entries = append(entries, mapEntry{key: k, value: t.values[k]})
		}
		return entries, true
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]mapEntry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, mapEntry{key: k, value: t[k]})
		}
		return entries, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	entries := make([]mapEntry, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		entries = append(entries, mapEntry{key: k.Interface(), value: rv.MapIndex(k).Interface()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return stringOf(entries[i].key) < stringOf(entries[j].key)
	})
	return entries, true
}

// mappingOf exposes key lookup on a map value. The bool result of the
// returned function reports key presence.
func mappingOf(v interface{}) (func(string) (interface{}, bool), bool) {
	if isNull(v) {
		return nil, false
	}
	switch t := v.(type) {
	case *OrderedMap:
		return t.Get, true
	case map[string]interface{}:
		return func(name string) (interface{}, bool) {
			val, ok := t[name]
			return val, ok
		}, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	return func(name string) (interface{}, bool) {
		for _, k := range rv.MapKeys() {
			if stringOf(k.Interface()) == name {
				return rv.MapIndex(k).Interface(), true
			}
		}
		return nil, false
	}, true
}

// lengthOf implements the $length rules: null counts 0, strings count
// characters, sequences and maps count elements, everything else counts 0.
func lengthOf(v interface{}) int {
	if isNull(v) {
		return 0
	}
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s)
	}
	if seq, ok := sequenceOf(v); ok {
		return len(seq)
	}
	if entries, ok := entriesOf(v); ok {
		return len(entries)
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return utf8.RuneCountInString(rv.String())
	}
	return 0
}

// OrderedMap is a string-keyed map that iterates in insertion order. Use it
// wherever a template relies on map iteration order, e.g. $each over a set
// of labelled columns.
type OrderedMap struct {
	keys   []string
	values map[string]interface{}
}

func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: map[string]interface{}{}}
}

// Set adds or replaces a key and returns the map for chaining.
func (m *OrderedMap) Set(key string, value interface{}) *OrderedMap {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

func (m *OrderedMap) Get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}
