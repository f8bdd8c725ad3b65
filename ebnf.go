package runtax

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/exp/ebnf"
)

// EBNF returns the registry as EBNF, one production per rule in registration order.
//
// Text leaves render as quoted tokens and regex leaves as quoted tokens delimited by slashes,
// eg. "/[0-9]/". Entries whose rule is registered render as references to it. Laziness has no
// EBNF form and is dropped.
func (r *Registry) EBNF() string {
	return r.render(r.order, func(name string) string { return name })
}

// verifyPrefix makes every production name lowercase-initial, so that golang.org/x/exp/ebnf
// treats them all as lexical and does not police references between the two kinds.
const verifyPrefix = "r_"

var verifyName = regexp.MustCompile(`\b` + verifyPrefix + `(\w+)`)

// Verify checks the EBNF rendering of the registry with golang.org/x/exp/ebnf: every reference
// must resolve and every rule must be reachable from start.
//
// Rules named in base, such as those seeded from Basic, need not be reachable. They are checked
// only when some other rule refers to them.
func (r *Registry) Verify(start string, base ...string) error {
	source := r.render(r.verified(start, base), func(name string) string { return verifyPrefix + name })
	grammar, err := ebnf.Parse("", strings.NewReader(source))
	if err == nil {
		err = ebnf.Verify(grammar, verifyPrefix+start)
	}
	if err != nil {
		return errors.New(verifyName.ReplaceAllString(err.Error(), "$1"))
	}
	return nil
}

// verified returns the names Verify renders: every rule not in base, start, and whatever they
// refer to.
func (r *Registry) verified(start string, base []string) []string {
	excluded := map[string]bool{}
	for _, name := range base {
		excluded[name] = true
	}
	delete(excluded, start)
	keep := map[string]bool{}
	queue := []string{}
	for _, name := range r.order {
		if !excluded[name] {
			keep[name] = true
			queue = append(queue, name)
		}
	}
	names := r.ruleNames()
	for len(queue) > 0 {
		e := &ebnfp{registry: r, names: names, rename: func(name string) string { return name }}
		e.rule(true, r.rules[queue[0]])
		queue = queue[1:]
		for _, ref := range e.refs {
			if !keep[ref] {
				keep[ref] = true
				queue = append(queue, ref)
			}
		}
	}
	out := []string{}
	for _, name := range r.order {
		if keep[name] {
			out = append(out, name)
		}
	}
	return out
}

func (r *Registry) render(order []string, rename func(string) string) string {
	names := r.ruleNames()
	out := []string{}
	for _, name := range order {
		e := &ebnfp{registry: r, names: names, rename: rename}
		e.rule(true, r.rules[name])
		out = append(out, fmt.Sprintf("%s = %s .", rename(name), e.String()))
	}
	return strings.Join(out, "\n")
}

// ruleNames maps each registered rule to the first name it was registered under.
func (r *Registry) ruleNames() map[*Rule]string {
	names := map[*Rule]string{}
	for _, name := range r.order {
		if _, ok := names[r.rules[name]]; !ok {
			names[r.rules[name]] = name
		}
	}
	return names
}

type ebnfp struct {
	strings.Builder
	registry *Registry
	// First name each registered rule is known by.
	names  map[*Rule]string
	rename func(string) string
	// References written so far.
	refs []string
}

func (e *ebnfp) rule(root bool, rule *Rule) {
	switch rule.kind {
	case TextKind:
		e.WriteString(strconv.Quote(rule.text))

	case RegexKind:
		e.WriteString(strconv.Quote("/" + rule.text + "/"))

	case SequenceKind:
		group := !root && len(rule.entries) > 1
		if group {
			e.WriteString("(")
		}
		e.sequence(rule.entries)
		if group {
			e.WriteString(")")
		}

	case OneOfKind:
		if !root {
			e.WriteString("(")
		}
		for i, entry := range rule.entries {
			if i > 0 {
				e.WriteString(" | ")
			}
			e.entry(true, entry)
		}
		if !root {
			e.WriteString(")")
		}

	case OptionalKind:
		e.WriteString("[ ")
		e.sequence(rule.entries)
		e.WriteString(" ]")

	case ZeroOrMoreKind, LazyZeroOrMoreKind:
		e.WriteString("{ ")
		e.sequence(rule.entries)
		e.WriteString(" }")

	case OneOrMoreKind, LazyOneOrMoreKind:
		if len(rule.entries) > 1 {
			e.WriteString("(")
			e.sequence(rule.entries)
			e.WriteString(")")
		} else {
			e.entry(false, rule.entries[0])
		}
		e.WriteString(" { ")
		e.sequence(rule.entries)
		e.WriteString(" }")
	}
}

func (e *ebnfp) sequence(entries []Entry) {
	for i, entry := range entries {
		if i > 0 {
			e.WriteString(" ")
		}
		e.entry(false, entry)
	}
}

func (e *ebnfp) entry(root bool, entry Entry) {
	if entry.Name != "" && e.registry.rules[entry.Name] == entry.Rule {
		e.reference(entry.Name)
		return
	}
	if name, ok := e.names[entry.Rule]; ok {
		e.reference(name)
		return
	}
	e.rule(root, entry.Rule)
}

func (e *ebnfp) reference(name string) {
	e.refs = append(e.refs, name)
	e.WriteString(e.rename(name))
}
