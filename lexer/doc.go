// Package lexer tracks source positions for rule-definition sources.
//
// A Scanner follows the matches of a line-oriented pattern through a source, converting byte
// offsets to line and column Positions and reporting the text no match accounted for.
package lexer
