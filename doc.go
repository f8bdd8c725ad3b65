// Package runtax builds text-matching rules from an algebra of leaves and combinators, compiles
// them to regular expressions, and turns matches into parse trees.
//
// Rules are immutable. Leaves match a raw pattern or literal text, combinators arrange entries:
//
//	Regex(`[0-9]`)           raw pattern
//	Text("+")                literal text
//	Sequence(a, b, ...)      a then b
//	OneOf(a, b, ...)         a, else b
//	Optional(a, ...)         (a ...)?
//	ZeroOrMore(a, ...)       (a ...)*   LazyZeroOrMore: (a ...)*?
//	OneOrMore(a, ...)        (a ...)+   LazyOneOrMore:  (a ...)+?
//
// An entry can carry a name with Named. Every Rule has two patterns: Pattern, where all groups
// are anonymous, and NamedPattern, where each named entry is a named capture group. MatchToTree
// matches the NamedPattern and builds a ParseNode per match, with a child for each named entry
// that took part, recursively.
//
// Here's a rule for signed integers.
//
//	digits := Must(OneOrMore(Regex(`[0-9]`)))
//	integer := Must(Sequence(
//		Named("sign", Must(Optional(Must(OneOf(Text("+"), Text("-")))))),
//		Named("digits", digits),
//	))
//
// Rules are usually written in the rule-definition language instead, see package dsl.
package runtax
