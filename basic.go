package runtax

import "sync"

var basic = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	letter := Regex(`[a-zA-Z]`)
	digit := Regex(`[0-9]`)
	underscore := Text("_")
	for _, rule := range []struct {
		name string
		rule *Rule
	}{
		{"anything", Regex(`.`)},
		{"letter", letter},
		{"digit", digit},
		{"underscore", underscore},
		{"whitespace", Regex(`\s`)},
		{"word", Must(OneOrMore(Must(OneOf(letter, digit, underscore))))},
	} {
		_ = r.Set(rule.name, rule.rule)
	}
	return r
})

// Basic returns a registry of commonly useful rules: anything, letter, digit, underscore,
// whitespace and word.
//
// The rules are built once per process. Every call returns a fresh Registry sharing them, so
// callers may extend the result freely.
func Basic() *Registry {
	return basic().Clone()
}
