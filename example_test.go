package texttemplate_test

import (
	"fmt"

	"github.com/torsv454/texttemplate"
)

func ExampleRenderString() {
	out, _ := texttemplate.RenderString(
		"Hello ${name}! You have $length(messages) new messages.",
		texttemplate.MapContext(map[string]interface{}{
			"name":     "Ada",
			"messages": []interface{}{"a", "b"},
		}),
		nil,
	)
	fmt.Println(out)
	// Output: Hello Ada! You have 2 new messages.
}

func ExampleRender() {
	tpl, _ := texttemplate.Parse("$each(rows)- ${it}\n$end")
	out, _ := texttemplate.RenderMap(tpl, map[string]interface{}{
		"rows": []interface{}{"first", "second"},
	}, nil)
	fmt.Print(out)
	// Output:
	// - first
	// - second
}
