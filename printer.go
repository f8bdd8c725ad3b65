package runtax

import (
	"fmt"
	"io"
	"strings"
)

// String renders the node and its descendants, one per line, indented by depth.
func (n *ParseNode) String() string {
	out := &strings.Builder{}
	_ = Fprint(out, n)
	return out.String()
}

// Fprint writes the tree rooted at n to w, one node per line, indented by depth.
//
// Each line reads `name@offset "text"`; top-level nodes print as `<match>`.
func Fprint(w io.Writer, n *ParseNode) error {
	return nodePrinter(w, n, 0)
}

func nodePrinter(w io.Writer, n *ParseNode, depth int) error {
	name := n.Name
	if name == "" {
		name = "<match>"
	}
	if _, err := fmt.Fprintf(w, "%s%s@%d %q\n", strings.Repeat("  ", depth), name, n.Offset, n.Text); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := nodePrinter(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
