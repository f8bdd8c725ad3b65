package runtax_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runtax/runtax"
	"github.com/runtax/runtax/lexer"
)

func TestCompileErrorFormatting(t *testing.T) {
	pos := lexer.Position{Filename: "g.rules", Offset: 12, Line: 2, Column: 3}
	err := &runtax.CompileError{Pos: pos, Text: "nope"}
	require.EqualError(t, err, `g.rules:2:3: invalid rule definition "nope"`)
	require.Equal(t, pos, err.Position())
	require.True(t, errors.Is(err, runtax.ErrCompile))
	require.False(t, errors.Is(err, runtax.ErrUnknownRule))

	err = &runtax.CompileError{Pos: lexer.Position{Line: 1, Column: 5}, Text: "a = b ;", Err: &runtax.UnknownRuleError{Name: "b"}}
	require.EqualError(t, err, `1:5: "a = b ;": unknown rule "b"`)
	require.Equal(t, `"a = b ;": unknown rule "b"`, err.Message())
	require.True(t, errors.Is(err, runtax.ErrUnknownRule))
	var unknown *runtax.UnknownRuleError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "b", unknown.Name)
}

func TestMalformedRuleError(t *testing.T) {
	_, err := runtax.OneOf()
	require.EqualError(t, err, "malformed oneOf rule: at least one entry is required")
}
