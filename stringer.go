package runtax

import (
	"bytes"
	"fmt"
)

type stringerVisitor struct {
	bytes.Buffer
}

// String renders the rule as builder calls, eg. `seq("a", digits:oneOrMore(regex("[0-9]")))`.
func (r *Rule) String() string {
	s := &stringerVisitor{}
	s.visit(r)
	return s.String()
}

func (s *stringerVisitor) visit(r *Rule) {
	switch r.kind {
	case TextKind:
		fmt.Fprintf(s, "%q", r.text)

	case RegexKind:
		fmt.Fprintf(s, "regex(%q)", r.text)

	default:
		fmt.Fprintf(s, "%s(", r.kind)
		for i, entry := range r.entries {
			if i > 0 {
				fmt.Fprint(s, ", ")
			}
			if entry.Name != "" {
				fmt.Fprintf(s, "%s:", entry.Name)
			}
			s.visit(entry.Rule)
		}
		fmt.Fprint(s, ")")
	}
}
