package runtax

import (
	"errors"
	"fmt"

	"github.com/runtax/runtax/lexer"
)

var (
	// ErrMalformedRule matches every MalformedRuleError.
	ErrMalformedRule = errors.New("malformed rule")
	// ErrUnknownRule matches every UnknownRuleError.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrPatternRejected matches every PatternRejectedError.
	ErrPatternRejected = errors.New("pattern rejected")
	// ErrCompile matches every CompileError.
	ErrCompile = errors.New("compile error")
	// ErrRegistration matches every RegistrationError.
	ErrRegistration = errors.New("invalid registration")
)

// Error represents an error with positional information.
type Error interface {
	error
	// Unadorned message.
	Message() string
	// Position error occurred.
	Position() lexer.Position
}

// MalformedRuleError is returned when a combinator is built with invalid entries.
type MalformedRuleError struct {
	Kind   Kind
	Reason string
}

func (m *MalformedRuleError) Error() string {
	return fmt.Sprintf("malformed %s rule: %s", m.Kind, m.Reason)
}

func (m *MalformedRuleError) Is(target error) bool { return target == ErrMalformedRule }

// UnknownRuleError is returned when a name is looked up before it has been registered.
type UnknownRuleError struct {
	Name string
}

func (u *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule %q", u.Name)
}

func (u *UnknownRuleError) Is(target error) bool { return target == ErrUnknownRule }

// RegistrationError is returned when a rule cannot be registered under a name.
type RegistrationError struct {
	Name   string
	Reason string
}

func (r *RegistrationError) Error() string {
	return fmt.Sprintf("cannot register %q: %s", r.Name, r.Reason)
}

func (r *RegistrationError) Is(target error) bool { return target == ErrRegistration }

// PatternRejectedError is returned when the matcher refuses an assembled pattern.
type PatternRejectedError struct {
	Pattern string
	Err     error
}

func (p *PatternRejectedError) Error() string {
	return fmt.Sprintf("pattern rejected: %s", p.Err)
}

func (p *PatternRejectedError) Unwrap() error { return p.Err }

func (p *PatternRejectedError) Is(target error) bool { return target == ErrPatternRejected }

// CompileError is returned when a line of rule-definition source cannot be compiled.
//
// Err holds the cause, if any. A nil Err means the line did not match the grammar at all.
type CompileError struct {
	Pos  lexer.Position
	Text string
	Err  error
}

var _ Error = &CompileError{}

func (c *CompileError) Message() string {
	if c.Err == nil {
		return fmt.Sprintf("invalid rule definition %q", c.Text)
	}
	return fmt.Sprintf("%q: %s", c.Text, c.Err)
}

func (c *CompileError) Position() lexer.Position { return c.Pos }

func (c *CompileError) Error() string { return lexer.FormatError(c.Pos, c.Message()) }

func (c *CompileError) Unwrap() error { return c.Err }

func (c *CompileError) Is(target error) bool { return target == ErrCompile }
