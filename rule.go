package runtax

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Kind tags the variant of a Rule.
type Kind int

const (
	// RegexKind is a leaf matching a raw pattern.
	RegexKind Kind = iota
	// TextKind is a leaf matching literal text.
	TextKind
	// SequenceKind matches its entries one after another.
	SequenceKind
	// OneOfKind matches the first of its entries that matches.
	OneOfKind
	// OptionalKind matches its entries zero or one times.
	OptionalKind
	// ZeroOrMoreKind matches its entries as many times as possible, possibly none.
	ZeroOrMoreKind
	// LazyZeroOrMoreKind matches its entries as few times as possible, possibly none.
	LazyZeroOrMoreKind
	// OneOrMoreKind matches its entries as many times as possible, at least once.
	OneOrMoreKind
	// LazyOneOrMoreKind matches its entries as few times as possible, at least once.
	LazyOneOrMoreKind
)

var kindNames = [...]string{
	RegexKind:          "regex",
	TextKind:           "text",
	SequenceKind:       "seq",
	OneOfKind:          "oneOf",
	OptionalKind:       "optional",
	ZeroOrMoreKind:     "zeroOrMore",
	LazyZeroOrMoreKind: "lazyZeroOrMore",
	OneOrMoreKind:      "oneOrMore",
	LazyOneOrMoreKind:  "lazyOneOrMore",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Leaf returns true for kinds that carry a pattern rather than entries.
func (k Kind) Leaf() bool { return k == RegexKind || k == TextKind }

// quantifier returns the pattern suffix applied by a repeating kind.
func (k Kind) quantifier() string {
	switch k {
	case OptionalKind:
		return "?"
	case ZeroOrMoreKind:
		return "*"
	case LazyZeroOrMoreKind:
		return "*?"
	case OneOrMoreKind:
		return "+"
	case LazyOneOrMoreKind:
		return "+?"
	}
	return ""
}

// An Entry pairs an optional name with a Rule.
//
// Named entries become named capture groups, and so named children in parse trees.
type Entry struct {
	Name string
	Rule *Rule
}

// A Rule is an immutable node of the rule algebra: either a leaf pattern or a combination of
// entries.
//
// Both patterns are assembled when the Rule is built and never change afterwards.
type Rule struct {
	kind         Kind
	text         string
	entries      []Entry
	pattern      string
	namedPattern string

	compile  sync.Once
	re       *regexp.Regexp
	anchored *regexp.Regexp
	err      error
}

// Kind of the rule.
func (r *Rule) Kind() Kind { return r.kind }

// Source returns the raw pattern of a regex leaf or the literal of a text leaf.
func (r *Rule) Source() string { return r.text }

// Entries returns a copy of the rule's entries.
func (r *Rule) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Pattern returns the pattern with every group anonymous.
func (r *Rule) Pattern() string { return r.pattern }

// NamedPattern returns the pattern with a named capture group for every named entry.
func (r *Rule) NamedPattern() string { return r.namedPattern }

// Regexp returns the compiled NamedPattern.
//
// Compilation happens on first use. Patterns containing the same capture name twice are rejected,
// as a name could not then identify a single group.
func (r *Rule) Regexp() (*regexp.Regexp, error) {
	r.compileOnce()
	return r.re, r.err
}

// Match reports whether the rule matches the whole of text.
func (r *Rule) Match(text string) (bool, error) {
	r.compileOnce()
	if r.err != nil {
		return false, r.err
	}
	return r.anchored.MatchString(text), nil
}

func (r *Rule) compileOnce() {
	r.compile.Do(func() {
		r.re, r.err = compilePattern(r.namedPattern)
		if r.err != nil {
			return
		}
		r.anchored, r.err = compilePattern(`^(?:` + r.namedPattern + `)$`)
	})
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternRejectedError{Pattern: pattern, Err: err}
	}
	seen := map[string]bool{}
	for _, name := range re.SubexpNames() {
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, &PatternRejectedError{Pattern: pattern, Err: fmt.Errorf("duplicate capture name %q", name)}
		}
		seen[name] = true
	}
	return re, nil
}

// assemble derives both patterns of a rule from its kind and entries.
func assemble(kind Kind, text string, entries []Entry) (pattern, named string) {
	switch kind {
	case RegexKind:
		return text, text

	case TextKind:
		quoted := regexp.QuoteMeta(text)
		return quoted, quoted

	case OneOfKind:
		return "(" + join(entries, "|", false) + ")", "(" + join(entries, "|", true) + ")"

	case SequenceKind, OptionalKind, ZeroOrMoreKind, LazyZeroOrMoreKind, OneOrMoreKind, LazyOneOrMoreKind:
		suffix := kind.quantifier()
		return "(" + join(entries, "", false) + ")" + suffix, "(" + join(entries, "", true) + ")" + suffix
	}
	panic("unsupported rule kind " + kind.String())
}

func join(entries []Entry, sep string, named bool) string {
	parts := make([]string, len(entries))
	for i, entry := range entries {
		parts[i] = embed(entry, named)
	}
	return strings.Join(parts, sep)
}

// embed renders an entry as it appears inside its parent's pattern.
func embed(entry Entry, named bool) string {
	child := entry.Rule.pattern
	if named {
		child = entry.Rule.namedPattern
	}
	switch {
	case entry.Name != "" && named:
		return "(?P<" + entry.Name + ">" + child + ")"
	case entry.Name != "":
		return "(" + child + ")"
	case entry.Rule.kind == RegexKind:
		// Raw patterns may contain a top-level alternation.
		return "(?:" + child + ")"
	}
	return child
}
