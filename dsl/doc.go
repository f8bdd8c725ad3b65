// Package dsl compiles the rule-definition language into a runtax.Registry.
//
// A definition source holds one item per line:
//
//	# Comments start with a hash.
//	digit = '[0-9]' ;
//	sign = ("+" | "-") ;
//	integer = sign? digit+ ;
//
// A value is a sequence of tokens separated by blanks. Double-quoted tokens are literal text and
// understand Go escape sequences. Single-quoted tokens are regular expressions, in which only \'
// is unescaped. An unquoted identifier refers to a rule defined earlier and appears as a named
// child in parse trees. Any other unquoted token is literal text. Parentheses group alternatives
// separated by "|", and may nest up to MaxGroupDepth deep. A token may be followed by one of the
// suffixes ?, *, +, *? and +?.
//
// A reference becomes a child node whose own children are those of the referenced rule. A
// suffixed reference such as integer? still becomes a child called integer, but it wraps the
// referenced rule in a quantifier, so its node has no children of its own. References inside
// groups never become nodes.
//
// The language is itself described by rules, see Bootstrap.
package dsl
