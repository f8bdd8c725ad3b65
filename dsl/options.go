package dsl

import (
	"errors"

	"go.uber.org/zap"

	"github.com/runtax/runtax"
	"github.com/runtax/runtax/lexer"
)

// An Option to modify the behaviour of Compile.
type Option func(c *compiler) error

// Filename sets the filename reported in error positions.
func Filename(filename string) Option {
	return func(c *compiler) error {
		c.filename = filename
		return nil
	}
}

// Logger sets the logger Compile reports progress to. The default discards everything.
func Logger(logger *zap.Logger) Option {
	return func(c *compiler) error {
		c.log = logger
		return nil
	}
}

// Base seeds the compiled registry with a copy of base, so that definitions may refer to its
// rules.
//
// eg.
//
//	registry, err := dsl.Compile(source, nil, dsl.Base(runtax.Basic()))
func Base(base *runtax.Registry) Option {
	return func(c *compiler) error {
		if base == nil {
			return errors.New("dsl: nil base registry")
		}
		c.registry = base.Clone()
		return nil
	}
}

// OnComment is called with the content of each comment line, after the leading "#".
func OnComment(fn func(pos lexer.Position, content string)) Option {
	return func(c *compiler) error {
		c.onComment = fn
		return nil
	}
}

// OnError is called for each definition that fails to compile.
//
// If fn returns nil the definition is skipped and compilation continues, otherwise Compile
// fails with the returned error. By default the first error stops compilation.
func OnError(fn func(err *runtax.CompileError) error) Option {
	return func(c *compiler) error {
		c.onError = fn
		return nil
	}
}

// SkipInvalid is an Option that skips every definition that fails to compile.
func SkipInvalid() Option {
	return OnError(func(*runtax.CompileError) error { return nil })
}
