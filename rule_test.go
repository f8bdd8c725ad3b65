package runtax

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var namedGroup = regexp.MustCompile(`\(\?P<[A-Za-z0-9_]+>`)

func TestPatterns(t *testing.T) {
	digit := Regex(`[0-9]`)
	x := Text("x")
	tests := []struct {
		name    string
		rule    *Rule
		pattern string
		named   string
	}{
		{"Regex", digit, `[0-9]`, `[0-9]`},
		{"Text", Text("a.b(c)"), `a\.b\(c\)`, `a\.b\(c\)`},
		{"Sequence", Must(Sequence(Text("a"), Named("d", digit))), `(a([0-9]))`, `(a(?P<d>[0-9]))`},
		{"OneOf", Must(OneOf(Text("a"), Regex(`b|c`))), `(a|(?:b|c))`, `(a|(?:b|c))`},
		{"OneOfNamed", Must(OneOf(Named("a", Text("a")), x)), `((a)|x)`, `((?P<a>a)|x)`},
		{"Optional", Must(Optional(x)), `(x)?`, `(x)?`},
		{"ZeroOrMore", Must(ZeroOrMore(x, digit)), `(x(?:[0-9]))*`, `(x(?:[0-9]))*`},
		{"LazyZeroOrMore", Must(LazyZeroOrMore(x)), `(x)*?`, `(x)*?`},
		{"OneOrMore", Must(OneOrMore(Named("n", digit))), `(([0-9]))+`, `((?P<n>[0-9]))+`},
		{"LazyOneOrMore", Must(LazyOneOrMore(x)), `(x)+?`, `(x)+?`},
		{"Opaque", Opaque(Must(Sequence(Named("d", digit)))), `(([0-9]))`, `(([0-9]))`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.pattern, test.rule.Pattern())
			require.Equal(t, test.named, test.rule.NamedPattern())
		})
	}
}

func TestStrippingNamedGroupsYieldsPattern(t *testing.T) {
	digit := Regex(`[0-9]`)
	letter := Regex(`[a-z]|_`)
	inner := Must(Sequence(Named("first", letter), Named("rest", Must(ZeroOrMore(Must(OneOf(letter, digit)))))))
	for _, kind := range []Kind{SequenceKind, OneOfKind, OptionalKind, ZeroOrMoreKind, LazyZeroOrMoreKind, OneOrMoreKind, LazyOneOrMoreKind} {
		t.Run(kind.String(), func(t *testing.T) {
			rule := Must(New(kind, Named("ident", inner), Text("="), Named("value", Must(OneOrMore(digit)))))
			require.Equal(t, rule.Pattern(), namedGroup.ReplaceAllString(rule.NamedPattern(), "("))
			_, err := rule.Regexp()
			require.NoError(t, err)
		})
	}
}

func TestSequenceIsAssociative(t *testing.T) {
	a := Text("a")
	b := Regex(`b+`)
	c := Text("c")
	forms := []*Rule{
		Must(Sequence(Must(Sequence(a, b)), c)),
		Must(Sequence(a, Must(Sequence(b, c)))),
		Must(Sequence(a, b, c)),
	}
	for _, input := range []string{"abc", "abbbc xabcab", "ac", "", "abcabbc"} {
		var expected [][]int
		for i, form := range forms {
			re, err := form.Regexp()
			require.NoError(t, err)
			spans := re.FindAllStringIndex(input, -1)
			if i == 0 {
				expected = spans
				continue
			}
			require.Equal(t, expected, spans, "%s on %q", form, input)
		}
	}
}

func TestOneOfLeftmostAlternativeWins(t *testing.T) {
	rule := Must(OneOf(Text("a"), Text("ab")))
	re, err := rule.Regexp()
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, re.FindAllString("ab", -1))
}

func TestSequenceOfTextMatchesConcatenationOnce(t *testing.T) {
	texts := []string{"a.b", "(x)", "*", "hello", `\d`, "[]", "|"}
	items := []Item{}
	concatenation := ""
	for _, text := range texts {
		items = append(items, Text(text))
		concatenation += text
	}
	re, err := Must(Sequence(items...)).Regexp()
	require.NoError(t, err)
	require.Equal(t, [][]int{{0, len(concatenation)}}, re.FindAllStringIndex(concatenation, -1))
}

func TestMalformedRules(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (*Rule, error)
	}{
		{"EmptySequence", func() (*Rule, error) { return Sequence() }},
		{"EmptyOneOf", func() (*Rule, error) { return OneOf() }},
		{"EmptyOptional", func() (*Rule, error) { return Optional() }},
		{"LeafKind", func() (*Rule, error) { return New(TextKind, Text("a")) }},
		{"UnknownKind", func() (*Rule, error) { return New(Kind(42), Text("a")) }},
		{"NilRule", func() (*Rule, error) { return Sequence((*Rule)(nil)) }},
		{"NilEntryRule", func() (*Rule, error) { return Sequence(Named("a", nil)) }},
		{"InvalidName", func() (*Rule, error) { return OneOf(Named("not a name", Text("x"))) }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rule, err := test.fn()
			require.Nil(t, rule)
			require.True(t, errors.Is(err, ErrMalformedRule), "%v", err)
			var malformed *MalformedRuleError
			require.True(t, errors.As(err, &malformed))
		})
	}
	require.Panics(t, func() { Must(Sequence()) })
}

func TestPatternRejected(t *testing.T) {
	integer := Must(Sequence(Named("digits", Must(OneOrMore(Regex(`[0-9]`))))))
	// Construction succeeds: rejection only happens when the matcher sees the pattern.
	pair := Must(Sequence(Named("left", integer), Text(","), Named("right", integer)))
	_, err := pair.Regexp()
	require.True(t, errors.Is(err, ErrPatternRejected), "%v", err)
	require.Contains(t, err.Error(), `duplicate capture name "digits"`)

	_, err = Regex(`(unclosed`).Regexp()
	var rejected *PatternRejectedError
	require.True(t, errors.As(err, &rejected))
	require.Equal(t, `(unclosed`, rejected.Pattern)

	_, err = Regex(`(unclosed`).Match("x")
	require.Error(t, err)
}

func TestMatch(t *testing.T) {
	integer := Must(Sequence(
		Named("sign", Must(Optional(Must(OneOf(Text("+"), Text("-")))))),
		Named("digits", Must(OneOrMore(Regex(`[0-9]`)))),
	))
	for input, expected := range map[string]bool{"-12": true, "7": true, "12x": false, "": false, " 1": false} {
		ok, err := integer.Match(input)
		require.NoError(t, err)
		require.Equal(t, expected, ok, input)
	}
}

func TestRuleAccessors(t *testing.T) {
	digit := Regex(`[0-9]`)
	rule := Must(Sequence(Named("d", digit), Text("x")))
	require.Equal(t, SequenceKind, rule.Kind())
	require.Equal(t, `[0-9]`, digit.Source())
	entries := rule.Entries()
	require.Equal(t, []Entry{{Name: "d", Rule: digit}, {Rule: entries[1].Rule}}, entries)
	// Entries are a copy.
	entries[0].Name = "changed"
	require.Equal(t, "d", rule.Entries()[0].Name)
	require.True(t, TextKind.Leaf())
	require.False(t, OneOfKind.Leaf())
	require.Equal(t, "Kind(99)", Kind(99).String())
}

func TestRuleString(t *testing.T) {
	integer := Must(Sequence(
		Named("sign", Must(Optional(Must(OneOf(Text("+"), Text("-")))))),
		Named("digits", Must(LazyOneOrMore(Regex(`[0-9]`)))),
	))
	require.Equal(t, `seq(sign:optional(oneOf("+", "-")), digits:lazyOneOrMore(regex("[0-9]")))`, integer.String())
}

func TestCaptures(t *testing.T) {
	integer := Must(Sequence(
		Named("sign", Must(Optional(Text("-")))),
		Named("digits", Must(OneOrMore(Regex(`[0-9]`)))),
	))
	pair := Must(Sequence(Named("key", Regex(`[a-z]+`)), Text("="), Named("value", integer)))
	require.Equal(t, []string{"key", "value", "sign", "digits"}, Captures(pair))
	re, err := pair.Regexp()
	require.NoError(t, err)
	require.Equal(t, []string{"key", "value", "sign", "digits"}, nonEmpty(re.SubexpNames()))
	require.Empty(t, Captures(Regex(`(?P<hidden>x)`)))
}

func TestVisitStopsOnError(t *testing.T) {
	stop := errors.New("stop")
	rule := Must(Sequence(Named("a", Text("a")), Named("b", Text("b"))))
	visited := []string{}
	err := Visit(rule, func(entry Entry, next func() error) error {
		visited = append(visited, entry.Name)
		if entry.Name == "a" {
			return stop
		}
		return next()
	})
	require.Equal(t, stop, err)
	require.Equal(t, []string{"", "a"}, visited)
}

func nonEmpty(names []string) []string {
	out := []string{}
	for _, name := range names {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}
