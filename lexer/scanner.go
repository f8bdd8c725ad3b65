package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Unmatched is a run of non-blank text, within a single line, that no match accounted for.
type Unmatched struct {
	Pos  Position
	Text string
}

// A Scanner tracks positions while a caller walks the leftmost non-overlapping matches of a
// pattern over a source, in increasing offset order.
//
// Text between two consecutive matches is a gap. Blank gaps are ignored, every other line of a
// gap is reported by Skip.
type Scanner struct {
	source string
	pos    Position
}

// NewScanner creates a Scanner positioned at the start of source.
func NewScanner(filename, source string) *Scanner {
	return &Scanner{source: source, pos: StartOf(filename)}
}

// Pos returns the current position.
func (s *Scanner) Pos() Position { return s.pos }

// Seek moves forward to offset, which must not precede the current offset, and returns the
// position there.
func (s *Scanner) Seek(offset int) Position {
	if offset < s.pos.Offset {
		panic("lexer: scanner cannot seek backwards")
	}
	chunk := s.source[s.pos.Offset:offset]
	lines := strings.Count(chunk, "\n")
	s.pos.Line += lines
	if lines == 0 {
		s.pos.Column += utf8.RuneCountInString(chunk)
	} else {
		s.pos.Column = utf8.RuneCountInString(chunk[strings.LastIndexByte(chunk, '\n')+1:]) + 1
	}
	s.pos.Offset = offset
	return s.pos
}

// Locate returns the position of offset, which must not precede the current offset, without
// moving the scanner.
func (s *Scanner) Locate(offset int) Position {
	peek := *s
	return peek.Seek(offset)
}

// Skip moves forward to offset and returns the non-blank lines of the gap it crossed.
func (s *Scanner) Skip(offset int) []Unmatched {
	var out []Unmatched
	gap := s.source[s.pos.Offset:offset]
	start := s.pos.Offset
	for gap != "" {
		line := gap
		if i := strings.IndexByte(gap, '\n'); i >= 0 {
			line = gap[:i+1]
		}
		if lead := strings.IndexFunc(line, isNotSpace); lead >= 0 {
			out = append(out, Unmatched{
				Pos:  s.Seek(start + lead),
				Text: strings.TrimRightFunc(line[lead:], unicode.IsSpace),
			})
		}
		start += len(line)
		gap = gap[len(line):]
	}
	s.Seek(offset)
	return out
}

func isNotSpace(r rune) bool { return !unicode.IsSpace(r) }
