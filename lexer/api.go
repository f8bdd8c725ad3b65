package lexer

import (
	"fmt"
)

// Position of a span within a source.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// StartOf returns the position of the first byte of a source.
func StartOf(filename string) Position {
	return Position{Filename: filename, Line: 1, Column: 1}
}

func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Offset: %d, Line: %d, Column: %d}",
		p.Filename, p.Offset, p.Line, p.Column)
}

func (p Position) String() string {
	filename := p.Filename
	if filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", filename, p.Line, p.Column)
}

// FormatError formats an error in the form "[<filename>:][<line>:<col>:] <message>"
func FormatError(pos Position, message string) string {
	msg := ""
	if pos.Filename != "" {
		msg += pos.Filename + ":"
	}
	if pos.Line != 0 || pos.Column != 0 {
		msg += fmt.Sprintf("%d:%d:", pos.Line, pos.Column)
	}
	if msg != "" {
		msg += " " + message
	} else {
		msg = message
	}
	return msg
}
