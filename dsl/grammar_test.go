package dsl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runtax/runtax"
)

func TestBootstrapCompiles(t *testing.T) {
	grammar := Bootstrap()
	require.Equal(t, []string{
		"name", "text", "pattern", "bare", "literal", "suffix", "group", "atom", "token", "value",
		"alternative", "comment", "ruleEntry", "line",
	}, grammar.Names())
	for _, name := range grammar.Names() {
		rule, err := grammar.Get(name)
		require.NoError(t, err)
		_, err = rule.Regexp()
		require.NoError(t, err, name)
		seen := map[string]bool{}
		for _, capture := range runtax.Captures(rule) {
			require.False(t, seen[capture], "%s captures %q twice", name, capture)
			seen[capture] = true
		}
	}
}

func TestBootstrapIsIsolated(t *testing.T) {
	grammar := Bootstrap()
	require.NoError(t, grammar.Set("extra", runtax.Text("x")))
	_, ok := Bootstrap().Lookup("extra")
	require.False(t, ok)
}

func TestBootstrapTokens(t *testing.T) {
	token, err := Bootstrap().Get("token")
	require.NoError(t, err)
	nodes, err := runtax.ParseTree(token, `"a b" '[0-9]'+ name* (x | "y")? -> z+?`)
	require.NoError(t, err)
	texts := []string{}
	for _, node := range nodes {
		texts = append(texts, node.Text)
	}
	require.Equal(t, []string{`"a b"`, `'[0-9]'+`, `name*`, `(x | "y")?`, `->`, `z+?`}, texts)

	require.Equal(t, "+", nodes[1].Child("suffix").Text)
	require.NotNil(t, nodes[1].Child("atom").Child("literal").Child("pattern"))
	require.NotNil(t, nodes[4].Child("atom").Child("literal").Child("bare"))
	group := nodes[3].Child("atom").Child("group")
	require.NotNil(t, group)
	require.Equal(t, `x | "y"`, group.Child("alternatives").Text)
	require.Equal(t, "+?", nodes[5].Child("suffix").Text)
}

func TestBootstrapLines(t *testing.T) {
	line, err := Bootstrap().Get("line")
	require.NoError(t, err)
	source := "# hello\n  x = \"a\" ;\nbogus\ny=(a|(b|c)) d;"
	nodes, err := runtax.ParseTree(line, source)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	require.Equal(t, " hello", nodes[0].Child("comment").Child("content").Text)
	entry := nodes[1].Child("ruleEntry")
	require.Equal(t, "x", entry.Child("name").Text)
	require.Equal(t, `"a"`, entry.Child("value").Text)
	entry = nodes[2].Child("ruleEntry")
	require.Equal(t, "y", entry.Child("name").Text)
	require.Equal(t, "(a|(b|c)) d", entry.Child("value").Text)
}

func TestBootstrapGroupDepth(t *testing.T) {
	value, err := Bootstrap().Get("value")
	require.NoError(t, err)
	ok, err := value.Match(`(((("a"))))`)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = value.Match(`((((("a")))))`)
	require.NoError(t, err)
	require.False(t, ok)
}
