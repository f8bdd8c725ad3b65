package runtax

import (
	"regexp"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// An Item is anything a combinator accepts: a *Rule, which becomes an anonymous Entry, or an
// Entry.
type Item interface {
	entry() Entry
}

func (r *Rule) entry() Entry { return Entry{Rule: r} }

func (e Entry) entry() Entry { return e }

// Named attaches a name to a rule.
func Named(name string, rule *Rule) Entry {
	return Entry{Name: name, Rule: rule}
}

// ValidName returns true if name can label an Entry or a Registry rule.
func ValidName(name string) bool { return validName.MatchString(name) }

// Must panics if err is non-nil.
//
// eg.
//
//	digits := runtax.Must(runtax.OneOrMore(runtax.Regex(`[0-9]`)))
func Must(rule *Rule, err error) *Rule {
	if err != nil {
		panic(err)
	}
	return rule
}

// Regex creates a leaf matching a raw pattern.
func Regex(pattern string) *Rule {
	return leaf(RegexKind, pattern)
}

// Text creates a leaf matching text literally.
func Text(text string) *Rule {
	return leaf(TextKind, text)
}

// Opaque creates a regex leaf matching the same text as rule, but without any named groups.
//
// This allows a rule containing named entries to be embedded more than once in a parent.
func Opaque(rule *Rule) *Rule {
	return leaf(RegexKind, rule.Pattern())
}

func leaf(kind Kind, text string) *Rule {
	pattern, named := assemble(kind, text, nil)
	return &Rule{kind: kind, text: text, pattern: pattern, namedPattern: named}
}

// New creates a combinator of the given kind from items.
func New(kind Kind, items ...Item) (*Rule, error) {
	if kind.Leaf() || kind.quantifier() == "" && kind != SequenceKind && kind != OneOfKind {
		return nil, &MalformedRuleError{Kind: kind, Reason: "not a combinator"}
	}
	if len(items) == 0 {
		return nil, &MalformedRuleError{Kind: kind, Reason: "at least one entry is required"}
	}
	entries := make([]Entry, len(items))
	for i, item := range items {
		if item == nil {
			return nil, &MalformedRuleError{Kind: kind, Reason: "nil entry"}
		}
		entry := item.entry()
		if entry.Rule == nil {
			return nil, &MalformedRuleError{Kind: kind, Reason: "entry without a rule"}
		}
		if entry.Name != "" && !ValidName(entry.Name) {
			return nil, &MalformedRuleError{Kind: kind, Reason: "invalid entry name " + entry.Name}
		}
		entries[i] = entry
	}
	pattern, named := assemble(kind, "", entries)
	return &Rule{kind: kind, entries: entries, pattern: pattern, namedPattern: named}, nil
}

// Sequence matches items one after another.
func Sequence(items ...Item) (*Rule, error) { return New(SequenceKind, items...) }

// OneOf matches the first of items that matches.
func OneOf(items ...Item) (*Rule, error) { return New(OneOfKind, items...) }

// Optional matches the sequence of items zero or one times.
func Optional(items ...Item) (*Rule, error) { return New(OptionalKind, items...) }

// ZeroOrMore matches the sequence of items as many times as possible, possibly none.
func ZeroOrMore(items ...Item) (*Rule, error) { return New(ZeroOrMoreKind, items...) }

// LazyZeroOrMore matches the sequence of items as few times as possible, possibly none.
func LazyZeroOrMore(items ...Item) (*Rule, error) { return New(LazyZeroOrMoreKind, items...) }

// OneOrMore matches the sequence of items as many times as possible, at least once.
func OneOrMore(items ...Item) (*Rule, error) { return New(OneOrMoreKind, items...) }

// LazyOneOrMore matches the sequence of items as few times as possible, at least once.
func LazyOneOrMore(items ...Item) (*Rule, error) { return New(LazyOneOrMoreKind, items...) }
