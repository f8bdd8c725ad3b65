package runtax

import (
	"fmt"
	"strings"
)

// A Registry maps names to Rules for one grammar.
//
// Lookup does not depend on order, but the order in which names were first set is kept for
// listing and rendering. A Registry is not safe for concurrent mutation.
type Registry struct {
	rules map[string]*Rule
	order []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: map[string]*Rule{}}
}

// Get returns the rule registered under name.
func (r *Registry) Get(name string) (*Rule, error) {
	rule, ok := r.rules[name]
	if !ok {
		return nil, &UnknownRuleError{Name: name}
	}
	return rule, nil
}

// Lookup returns the rule registered under name, if any.
func (r *Registry) Lookup(name string) (*Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// Set registers rule under name, replacing any previous rule of that name.
func (r *Registry) Set(name string, rule *Rule) error {
	if !ValidName(name) {
		return &RegistrationError{Name: name, Reason: "invalid rule name"}
	}
	if rule == nil {
		return &RegistrationError{Name: name, Reason: "nil rule"}
	}
	if _, ok := r.rules[name]; !ok {
		r.order = append(r.order, name)
	}
	r.rules[name] = rule
	return nil
}

// Names returns the registered names in the order they were first set.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered rules.
func (r *Registry) Len() int { return len(r.order) }

// Clone returns a copy of the registry sharing its rules.
func (r *Registry) Clone() *Registry {
	out := &Registry{rules: make(map[string]*Rule, len(r.rules)), order: r.Names()}
	for name, rule := range r.rules {
		out.rules[name] = rule
	}
	return out
}

// Merge sets every rule of other into r, in other's order.
func (r *Registry) Merge(other *Registry) {
	for _, name := range other.order {
		_ = r.Set(name, other.rules[name])
	}
}

func (r *Registry) String() string {
	out := &strings.Builder{}
	fmt.Fprintln(out, "{")
	for _, name := range r.order {
		fmt.Fprintf(out, "  %s: %s\n", name, r.rules[name].Pattern())
	}
	fmt.Fprint(out, "}")
	return out.String()
}
