package texttemplate

import "strings"

// Context resolves a variable name to a value. The root context supplied by
// the caller returns nil for unknown names, which routes variable rendering
// to the not-found fallback. Derived contexts introduced by iteration raise
// *UnknownVariableError instead.
//
// Names beginning with "../" re-issue the lookup on the enclosing context
// with the prefix stripped; multiple "../" stack.
type Context func(name string) (interface{}, error)

// MapContext adapts a map to a root lookup returning nil on absent keys.
func MapContext(data map[string]interface{}) Context {
	return func(name string) (interface{}, error) {
		return data[name], nil
	}
}

// EmptyContext resolves every name to nil.
func EmptyContext() Context {
	return func(string) (interface{}, error) {
		return nil, nil
	}
}

const parentPrefix = "../"

// loopFrame is the derived context introduced by $each, $first and $last.
// It layers the element binding, the optional map-entry key and the loop
// counters over the enclosing context. When the focus element is itself a
// map, unqualified names not claimed by a binding fall through to a key
// lookup on it; otherwise an unknown name is a hard error.
type loopFrame struct {
	parent  Context
	it      interface{}
	key     interface{}
	hasKey  bool
	index   int
	total   int
	hasMeta bool
}

func (f *loopFrame) lookup(name string) (interface{}, error) {
	if strings.HasPrefix(name, parentPrefix) {
		return f.parent(name[len(parentPrefix):])
	}
	switch name {
	case "it":
		return f.it, nil
	case "key":
		if f.hasKey {
			return f.key, nil
		}
	case "_index":
		if f.hasMeta {
			return f.index, nil
		}
	case "_first":
		if f.hasMeta {
			return f.index == 0, nil
		}
	case "_last":
		if f.hasMeta {
			return f.index == f.total-1, nil
		}
	}
	if get, ok := mappingOf(f.it); ok {
		// absent keys resolve to null rather than erroring
		v, _ := get(name)
		return v, nil
	}
	return nil, &UnknownVariableError{Name: name}
}
