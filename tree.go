package runtax

import (
	"iter"
	"regexp"
)

// A ParseNode is one matched span and the named sub-rules matched within it.
type ParseNode struct {
	// Name of the entry that produced the node. Empty for top-level matches.
	Name string `yaml:"name,omitempty"`
	// Text matched.
	Text string `yaml:"text"`
	// Offset of Text in the input given to MatchToTree.
	Offset   int          `yaml:"offset"`
	Children []*ParseNode `yaml:"children,omitempty"`
}

// End returns the offset just past the node's text.
func (n *ParseNode) End() int { return n.Offset + len(n.Text) }

// Child returns the first child called name, or nil.
func (n *ParseNode) Child(name string) *ParseNode {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// All returns every child called name.
func (n *ParseNode) All(name string) []*ParseNode {
	var out []*ParseNode
	for _, child := range n.Children {
		if child.Name == name {
			out = append(out, child)
		}
	}
	return out
}

// MatchToTree returns one ParseNode per leftmost non-overlapping match of rule in text.
//
// Each time the sequence is ranged over, the locations of all matches in text are found up
// front, holding one index slice per match in memory. Trees are only built as the sequence is
// consumed. Matching the whole text in one pass keeps anchors and word boundaries at a match's
// edges evaluated against the full text. Callers with very large inputs should split them.
//
// The sequence may be ranged over any number of times. Text without a match yields nothing. If
// the rule's pattern is rejected by the matcher, the error is yielded once and iteration ends.
//
// For each match the rule's direct entries are walked in order. Every named entry whose group
// took part in the match becomes a child, built by re-matching the entry's rule against exactly
// the captured text. Anonymous entries never appear in the tree.
func MatchToTree(rule *Rule, text string) iter.Seq2[*ParseNode, error] {
	return func(yield func(*ParseNode, error) bool) {
		re, err := rule.Regexp()
		if err != nil {
			yield(nil, err)
			return
		}
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			node, err := buildNode(rule, re, text, loc, 0)
			if !yield(node, err) || err != nil {
				return
			}
		}
	}
}

// ParseTree collects MatchToTree into a slice.
func ParseTree(rule *Rule, text string) ([]*ParseNode, error) {
	var out []*ParseNode
	for node, err := range MatchToTree(rule, text) {
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

// buildNode creates the node for one match of re, whose submatch indices are loc, within text.
func buildNode(rule *Rule, re *regexp.Regexp, text string, loc []int, base int) (*ParseNode, error) {
	node := &ParseNode{Text: text[loc[0]:loc[1]], Offset: base + loc[0]}
	for _, entry := range rule.entries {
		if entry.Name == "" {
			continue
		}
		group := re.SubexpIndex(entry.Name)
		if group < 0 || loc[2*group] < 0 {
			continue
		}
		start, end := loc[2*group], loc[2*group+1]
		child, err := descend(entry.Rule, text[start:end], base+start)
		if err != nil {
			return nil, err
		}
		child.Name = entry.Name
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// descend builds the node for a captured span by matching rule against all of it.
func descend(rule *Rule, span string, offset int) (*ParseNode, error) {
	rule.compileOnce()
	if rule.err != nil {
		return nil, rule.err
	}
	loc := rule.anchored.FindStringSubmatchIndex(span)
	if loc == nil {
		// Only context-sensitive leaves (anchors, word boundaries) can refuse their own capture.
		return &ParseNode{Text: span, Offset: offset}, nil
	}
	// The anchored pattern wraps the named pattern in one non-capturing group, so group indices
	// and names line up with the unanchored expression.
	return buildNode(rule, rule.anchored, span, loc, offset)
}
