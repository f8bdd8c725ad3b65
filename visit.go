package runtax

// A Visitor is called for every entry reachable from a rule, depth first and in pattern order.
//
// Calling next visits the entries of entry.Rule. A rule shared by several entries is visited
// once per entry.
type Visitor func(entry Entry, next func() error) error

// Visit walks rule, which is presented to visitor as an anonymous root entry.
func Visit(rule *Rule, visitor Visitor) error {
	return visit(Entry{Rule: rule}, visitor)
}

func visit(entry Entry, visitor Visitor) error {
	return visitor(entry, func() error {
		for _, child := range entry.Rule.entries {
			if err := visit(child, visitor); err != nil {
				return err
			}
		}
		return nil
	})
}

// Captures returns the names of the capture groups rule's NamedPattern contains, in order.
//
// Groups inside the raw patterns of regex leaves are not included.
func Captures(rule *Rule) []string {
	var out []string
	_ = Visit(rule, func(entry Entry, next func() error) error {
		if entry.Name != "" {
			out = append(out, entry.Name)
		}
		return next()
	})
	return out
}
