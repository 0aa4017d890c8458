// Command ttrender renders a template file against a YAML context.
//
//	ttrender [-c context.yaml] [-I includedir] template
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/torsv454/texttemplate"
	"github.com/torsv454/texttemplate/include"
	"github.com/torsv454/texttemplate/parser"
	"gopkg.in/yaml.v3"
)

func _main(args []string) error {
	flags := flag.NewFlagSet("ttrender", flag.ContinueOnError)
	contextPath := flags.String("c", "", "YAML file holding the root context")
	includeDir := flags.String("I", "", "directory resolved by $include")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("ttrender: usage: ttrender [-c context.yaml] [-I includedir] template")
	}

	source, err := os.ReadFile(flags.Arg(0))
	if err != nil {
		return err
	}
	tpl, err := texttemplate.Parse(string(source))
	if err != nil {
		return err
	}

	data := map[string]interface{}{}
	if *contextPath != "" {
		raw, err := os.ReadFile(*contextPath)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return err
		}
	}

	opts := texttemplate.NewOptions()
	if *includeDir != "" {
		opts.LoadInclude = include.Dir(*includeDir)
	}

	out, err := texttemplate.RenderMap(tpl, data, opts)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func main() {
	if err := _main(os.Args[1:]); err != nil {
		stderr := colorable.NewColorableStderr()
		fmt.Fprintf(stderr, "%s\n", parser.FormatError(err, true, true))
		os.Exit(1)
	}
}
