package texttemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ticket struct {
	id string
}

func (t ticket) String() string { return "T-" + t.id }

func TestStringOf(t *testing.T) {
	cases := map[string]struct {
		value    interface{}
		expected string
	}{
		"nil":          {nil, "null"},
		"typed nil":    {(*ticket)(nil), "null"},
		"string":       {"x", "x"},
		"bool true":    {true, "true"},
		"bool false":   {false, "false"},
		"int":          {42, "42"},
		"int8":         {int8(-3), "-3"},
		"int64":        {int64(1 << 40), "1099511627776"},
		"uint16":       {uint16(9), "9"},
		"float":        {1.5, "1.5"},
		"whole float":  {2.0, "2"},
		"stringer":     {ticket{id: "7"}, "T-7"},
		"named string": {stringAlias("aka"), "aka"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stringOf(tc.value))
		})
	}
}

type stringAlias string

func TestTruthy(t *testing.T) {
	assert.False(t, truthy(nil))
	assert.False(t, truthy(""))
	assert.False(t, truthy((*ticket)(nil)))
	assert.True(t, truthy(false))
	assert.True(t, truthy(0))
	assert.True(t, truthy(0.0))
	assert.True(t, truthy("x"))
	assert.True(t, truthy([]interface{}{}))
}

func TestIntOf(t *testing.T) {
	if n, ok := intOf("5"); assert.True(t, ok) {
		assert.Equal(t, int64(5), n)
	}
	if n, ok := intOf(7); assert.True(t, ok) {
		assert.Equal(t, int64(7), n)
	}
	if n, ok := intOf(3.0); assert.True(t, ok) {
		assert.Equal(t, int64(3), n)
	}
	_, ok := intOf("abc")
	assert.False(t, ok)
	_, ok = intOf(nil)
	assert.False(t, ok)
	_, ok = intOf(1.5)
	assert.False(t, ok)
}

func TestSequenceOf(t *testing.T) {
	seq, ok := sequenceOf([]interface{}{1, 2})
	assert.True(t, ok)
	assert.Len(t, seq, 2)

	seq, ok = sequenceOf([3]string{"a", "b", "c"})
	assert.True(t, ok)
	assert.Equal(t, []interface{}{"a", "b", "c"}, seq)

	seq, ok = sequenceOf([]int{4, 5})
	assert.True(t, ok)
	assert.Equal(t, []interface{}{4, 5}, seq)

	_, ok = sequenceOf("not a sequence")
	assert.False(t, ok)
	_, ok = sequenceOf(map[string]interface{}{"a": 1})
	assert.False(t, ok)
	_, ok = sequenceOf(nil)
	assert.False(t, ok)
}

func TestEntriesOfSortsPlainMaps(t *testing.T) {
	entries, ok := entriesOf(map[string]interface{}{"c": 3, "a": 1, "b": 2})
	assert.True(t, ok)
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = stringOf(e.key)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	_, ok = entriesOf([]interface{}{})
	assert.False(t, ok)
}

func TestLengthOf(t *testing.T) {
	assert.Equal(t, 0, lengthOf(nil))
	assert.Equal(t, 5, lengthOf("Alice"))
	assert.Equal(t, 5, lengthOf("héllo"))
	assert.Equal(t, 4, lengthOf([]interface{}{1, 2, 3, 4}))
	assert.Equal(t, 2, lengthOf(map[string]interface{}{"a": 1, "b": 2}))
	assert.Equal(t, 0, lengthOf(7))
	assert.Equal(t, 0, lengthOf(true))
}

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap().
		Set("b", 1).
		Set("a", 2).
		Set("b", 3) // overwrite keeps original position

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"b", "a"}, m.Keys())

	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = m.Get("zz")
	assert.False(t, ok)

	entries, ok := entriesOf(m)
	assert.True(t, ok)
	assert.Equal(t, "b", stringOf(entries[0].key))
	assert.Equal(t, 3, entries[0].value)
}
