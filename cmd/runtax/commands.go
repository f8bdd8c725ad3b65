package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"gopkg.in/yaml.v3"

	"github.com/runtax/runtax"
)

type checkCmd struct {
	Start   string `help:"Verify that every rule is reachable from this one."`
	Grammar string `arg:"" type:"existingfile" help:"Rule definitions."`
}

func (c *checkCmd) Run(g *Globals) error {
	registry, err := g.compile(c.Grammar)
	if err != nil {
		return err
	}
	for _, name := range registry.Names() {
		rule, _ := registry.Get(name)
		fmt.Fprintf(g.Stdout, "%s: %s\n", name, rule.NamedPattern())
		if captures := runtax.Captures(rule); len(captures) > 0 {
			fmt.Fprintf(g.Stdout, "  captures: %s\n", strings.Join(captures, ", "))
		}
	}
	if c.Start != "" {
		var base []string
		if g.Basic {
			base = runtax.Basic().Names()
		}
		return registry.Verify(c.Start, base...)
	}
	return nil
}

type ebnfCmd struct {
	Grammar string `arg:"" type:"existingfile" help:"Rule definitions."`
}

func (c *ebnfCmd) Run(g *Globals) error {
	registry, err := g.compile(c.Grammar)
	if err != nil {
		return err
	}
	fmt.Fprintln(g.Stdout, registry.EBNF())
	return nil
}

type parseCmd struct {
	Format  string   `enum:"text,yaml,repr" default:"text" help:"Output format (${enum})."`
	Grammar string   `arg:"" type:"existingfile" help:"Rule definitions."`
	Rule    string   `arg:"" help:"Rule to match."`
	Input   []string `arg:"" optional:"" type:"existingfile" help:"Files to match (stdin if omitted)."`
}

func (c *parseCmd) Run(g *Globals) error {
	registry, err := g.compile(c.Grammar)
	if err != nil {
		return err
	}
	rule, err := registry.Get(c.Rule)
	if err != nil {
		return err
	}
	if len(c.Input) == 0 {
		text, err := io.ReadAll(g.Stdin)
		if err != nil {
			return err
		}
		return c.print(g.Stdout, rule, string(text))
	}
	for _, path := range c.Input {
		text, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if len(c.Input) > 1 && c.Format == "text" {
			fmt.Fprintf(g.Stdout, "%s:\n", path)
		}
		if err := c.print(g.Stdout, rule, string(text)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func (c *parseCmd) print(w io.Writer, rule *runtax.Rule, text string) error {
	nodes, err := runtax.ParseTree(rule, text)
	if err != nil {
		return err
	}
	switch c.Format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nodes); err != nil {
			return err
		}
		return enc.Close()

	case "repr":
		repr.New(w, repr.Indent("  ")).Println(nodes)
		return nil

	default:
		for _, node := range nodes {
			if err := runtax.Fprint(w, node); err != nil {
				return err
			}
		}
		return nil
	}
}
