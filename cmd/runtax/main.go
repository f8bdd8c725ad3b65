package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/runtax/runtax"
	"github.com/runtax/runtax/dsl"
)

var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Version     kong.VersionFlag `help:"Show version."`
	Debug       bool             `help:"Log compilation in detail."`
	SkipInvalid bool             `help:"Skip definitions that fail to compile instead of stopping."`
	Basic       bool             `help:"Allow definitions to refer to the basic rules (letter, digit, word, ...)."`

	Stdin  io.Reader `kong:"-"`
	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

type CLI struct {
	Globals

	Check checkCmd `cmd:"" help:"Compile a grammar and list its rules."`
	EBNF  ebnfCmd  `cmd:"" name:"ebnf" help:"Print a grammar as EBNF."`
	Parse parseCmd `cmd:"" help:"Match a rule of a grammar against input and print the parse trees."`
}

func main() {
	cli := &CLI{Globals: Globals{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}}
	kctx := kong.Parse(cli,
		kong.Description(`Compile rule definitions and match them against text.`),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)
	err := kctx.Run(&cli.Globals)
	if err != nil {
		report(cli.Stderr, err)
		kctx.Exit(1)
	}
}

func (g *Globals) logger() (*zap.Logger, error) {
	if g.Debug {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return config.Build()
}

// compile the grammar definitions in path.
func (g *Globals) compile(path string) (*runtax.Registry, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	logger, err := g.logger()
	if err != nil {
		return nil, err
	}
	defer logger.Sync() // nolint: errcheck
	options := []dsl.Option{dsl.Filename(path), dsl.Logger(logger)}
	if g.Basic {
		options = append(options, dsl.Base(runtax.Basic()))
	}
	if g.SkipInvalid {
		options = append(options, dsl.OnError(func(err *runtax.CompileError) error {
			warn(g.Stderr, err)
			return nil
		}))
	}
	return dsl.Compile(string(source), nil, options...)
}
