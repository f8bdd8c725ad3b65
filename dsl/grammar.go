package dsl

import (
	"sync"

	"github.com/runtax/runtax"
)

// MaxGroupDepth is how deeply groups may nest in a value.
const MaxGroupDepth = 4

var (
	blank      = runtax.Regex(`[ \t]`)
	space      = runtax.Must(runtax.OneOrMore(blank))
	optSpace   = runtax.Must(runtax.ZeroOrMore(blank))
	lineStart  = runtax.Regex(`(?m:^)`)
	lineEnd    = runtax.Regex(`\r?\n|\z`)
	letter     = runtax.Regex(`[a-zA-Z]`)
	digit      = runtax.Regex(`[0-9]`)
	underscore = runtax.Text("_")
)

var bootstrap = sync.OnceValue(func() *runtax.Registry {
	r := runtax.NewRegistry()
	set := func(name string, rule *runtax.Rule) *runtax.Rule {
		if err := r.Set(name, rule); err != nil {
			panic(err)
		}
		return rule
	}

	name := set("name", runtax.Must(runtax.Sequence(
		runtax.Must(runtax.OneOf(letter, underscore)),
		runtax.Must(runtax.ZeroOrMore(runtax.Must(runtax.OneOf(letter, digit, underscore)))),
	)))
	text := set("text", runtax.Regex(`"(?:[^"\\\r\n]|\\.)*"`))
	pattern := set("pattern", runtax.Regex(`'(?:[^'\\\r\n]|\\.)*'`))
	bare := set("bare", runtax.Regex(`[^\s"'()|?*+;]+`))
	literal := set("literal", runtax.Must(runtax.OneOf(
		runtax.Named("text", text),
		runtax.Named("pattern", pattern),
		runtax.Named("bare", bare),
	)))
	suffix := set("suffix", runtax.Must(runtax.OneOf(
		runtax.Text("*?"), runtax.Text("+?"), runtax.Text("?"), runtax.Text("*"), runtax.Text("+"),
	)))

	// Groups are expanded level by level from tokens without any.
	anyLiteral := runtax.Opaque(literal)
	optSuffix := runtax.Must(runtax.Optional(suffix))
	tok := runtax.Must(runtax.Sequence(anyLiteral, optSuffix))
	for depth := 1; depth < MaxGroupDepth; depth++ {
		tok = runtax.Must(runtax.Sequence(runtax.Must(runtax.OneOf(groupOf(tok), anyLiteral)), optSuffix))
	}

	group := set("group", runtax.Must(runtax.Sequence(
		runtax.Text("("), optSpace,
		runtax.Named("alternatives", runtax.Opaque(alternativesOf(tok))),
		optSpace, runtax.Text(")"),
	)))
	atom := set("atom", runtax.Must(runtax.OneOf(runtax.Named("group", group), runtax.Named("literal", literal))))
	token := set("token", runtax.Must(runtax.Sequence(
		runtax.Named("atom", atom),
		runtax.Named("suffix", runtax.Must(runtax.Optional(suffix))),
	)))
	value := set("value", sequenceOf(runtax.Opaque(token)))
	set("alternative", runtax.Must(runtax.Sequence(
		runtax.Named("sequence", runtax.Opaque(sequenceOf(tok))),
		optSpace, runtax.Must(runtax.Optional(runtax.Text("|"))), optSpace,
	)))

	comment := set("comment", runtax.Must(runtax.Sequence(
		lineStart, optSpace, runtax.Text("#"),
		runtax.Named("content", runtax.Regex(`[^\r\n]*`)),
		lineEnd,
	)))
	ruleEntry := set("ruleEntry", runtax.Must(runtax.Sequence(
		lineStart, optSpace,
		runtax.Named("name", name),
		optSpace, runtax.Text("="), optSpace,
		runtax.Named("value", value),
		optSpace, runtax.Text(";"), optSpace,
		lineEnd,
	)))
	set("line", runtax.Must(runtax.OneOf(runtax.Named("comment", comment), runtax.Named("ruleEntry", ruleEntry))))
	return r
})

// Bootstrap returns the grammar of the rule-definition language, expressed as rules.
//
// Compile relies on the following rules and entry names:
//
//	line         comment | ruleEntry
//	comment      content
//	ruleEntry    name, value
//	token        atom (group | literal), suffix
//	group        alternatives
//	literal      text | pattern | bare
//	alternative  sequence
//	name         a rule name, used to tell references from bare text
//
// The rules are built once. Each call returns a new Registry sharing them.
func Bootstrap() *runtax.Registry {
	return bootstrap().Clone()
}

// sequenceOf matches one or more t separated by blanks.
func sequenceOf(t *runtax.Rule) *runtax.Rule {
	return runtax.Must(runtax.Sequence(t, runtax.Must(runtax.ZeroOrMore(space, t))))
}

// alternativesOf matches one or more sequences of t separated by "|".
func alternativesOf(t *runtax.Rule) *runtax.Rule {
	separator := runtax.Must(runtax.OneOf(
		runtax.Must(runtax.Sequence(optSpace, runtax.Text("|"), optSpace)),
		space,
	))
	return runtax.Must(runtax.Sequence(t, runtax.Must(runtax.ZeroOrMore(separator, t))))
}

func groupOf(t *runtax.Rule) *runtax.Rule {
	return runtax.Must(runtax.Sequence(runtax.Text("("), optSpace, alternativesOf(t), optSpace, runtax.Text(")")))
}
