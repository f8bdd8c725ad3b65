package dsl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/runtax/runtax"
	"github.com/runtax/runtax/lexer"
)

var quantifiers = map[string]func(items ...runtax.Item) (*runtax.Rule, error){
	"?":  runtax.Optional,
	"*":  runtax.ZeroOrMore,
	"*?": runtax.LazyZeroOrMore,
	"+":  runtax.OneOrMore,
	"+?": runtax.LazyOneOrMore,
}

type compiler struct {
	filename  string
	log       *zap.Logger
	registry  *runtax.Registry
	onComment func(pos lexer.Position, content string)
	onError   func(err *runtax.CompileError) error

	line        *runtax.Rule
	token       *runtax.Rule
	alternative *runtax.Rule
	name        *runtax.Rule

	scanner *lexer.Scanner
	// Text of the definition being compiled.
	definition string
}

// Compile rule definitions from source into a Registry, using grammar to read them.
//
// A nil grammar selects Bootstrap(). Definitions are compiled top to bottom, so a rule can only
// refer to rules defined above it or provided by Base. Redefining a rule replaces it.
func Compile(source string, grammar *runtax.Registry, options ...Option) (*runtax.Registry, error) {
	if grammar == nil {
		grammar = Bootstrap()
	}
	c := &compiler{
		log:     zap.NewNop(),
		onError: func(err *runtax.CompileError) error { return err },
	}
	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}
	if c.registry == nil {
		c.registry = runtax.NewRegistry()
	}
	for _, rule := range []struct {
		name string
		rule **runtax.Rule
	}{
		{"line", &c.line},
		{"token", &c.token},
		{"alternative", &c.alternative},
		{"name", &c.name},
	} {
		var err error
		if *rule.rule, err = grammar.Get(rule.name); err != nil {
			return nil, fmt.Errorf("grammar: %w", err)
		}
	}

	c.scanner = lexer.NewScanner(c.filename, source)
	for node, err := range runtax.MatchToTree(c.line, source) {
		if err != nil {
			return nil, fmt.Errorf("grammar: %w", err)
		}
		if err := c.unmatched(node.Offset); err != nil {
			return nil, err
		}
		if err := c.entry(node); err != nil {
			return nil, err
		}
		c.scanner.Seek(node.End())
	}
	if err := c.unmatched(len(source)); err != nil {
		return nil, err
	}
	return c.registry, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(source string, grammar *runtax.Registry, options ...Option) *runtax.Registry {
	registry, err := Compile(source, grammar, options...)
	if err != nil {
		panic(err)
	}
	return registry
}

// unmatched reports every non-blank line between the scanner and offset.
func (c *compiler) unmatched(offset int) error {
	for _, text := range c.scanner.Skip(offset) {
		if err := c.fail(&runtax.CompileError{Pos: text.Pos, Text: text.Text}); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) fail(err *runtax.CompileError) error {
	c.log.Debug("invalid definition", zap.Stringer("pos", err.Pos), zap.Error(err))
	return c.onError(err)
}

func (c *compiler) entry(node *runtax.ParseNode) error {
	if comment := node.Child("comment"); comment != nil {
		content := ""
		if child := comment.Child("content"); child != nil {
			content = child.Text
		}
		pos := c.scanner.Locate(comment.Offset)
		c.log.Debug("comment", zap.Stringer("pos", pos), zap.String("content", content))
		if c.onComment != nil {
			c.onComment(pos, content)
		}
		return nil
	}

	definition := node.Child("ruleEntry")
	if definition == nil {
		return nil
	}
	name, value := definition.Child("name"), definition.Child("value")
	if name == nil || value == nil {
		return c.fail(&runtax.CompileError{Pos: c.scanner.Locate(definition.Offset), Text: strings.TrimSpace(definition.Text)})
	}
	c.definition = strings.TrimSpace(definition.Text)

	rule, err := c.sequence(value.Text, value.Offset)
	if err == nil {
		_, err = rule.Regexp()
	}
	if err == nil {
		if _, ok := c.registry.Lookup(name.Text); ok {
			c.log.Debug("redefining rule", zap.String("name", name.Text))
		}
		err = c.registry.Set(name.Text, rule)
	}
	if err != nil {
		var compileErr *runtax.CompileError
		if !errors.As(err, &compileErr) {
			compileErr = c.errorAt(name.Offset, err)
		}
		return c.fail(compileErr)
	}
	c.log.Debug("rule",
		zap.String("name", name.Text),
		zap.Int("line", c.scanner.Locate(name.Offset).Line),
		zap.String("pattern", rule.NamedPattern()))
	return nil
}

func (c *compiler) errorAt(offset int, err error) *runtax.CompileError {
	return &runtax.CompileError{Pos: c.scanner.Locate(offset), Text: c.definition, Err: err}
}

// sequence compiles a run of tokens, found in text at offset base of the source.
func (c *compiler) sequence(text string, base int) (*runtax.Rule, error) {
	items, err := c.tokens(text, base)
	if err != nil {
		return nil, err
	}
	return runtax.Sequence(items...)
}

func (c *compiler) tokens(text string, base int) ([]runtax.Item, error) {
	var items []runtax.Item
	for node, err := range runtax.MatchToTree(c.token, text) {
		if err != nil {
			return nil, err
		}
		item, err := c.term(node, base)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// term compiles one token. References to other rules are returned as named entries.
func (c *compiler) term(node *runtax.ParseNode, base int) (runtax.Item, error) {
	var (
		name string
		rule *runtax.Rule
		err  error
	)
	atom := node.Child("atom")
	if atom == nil {
		return nil, c.errorAt(base+node.Offset, fmt.Errorf("unrecognised token %q", node.Text))
	}
	switch {
	case atom.Child("group") != nil:
		rule, err = c.group(atom.Child("group"), base)
	case atom.Child("literal") != nil:
		name, rule, err = c.literal(atom.Child("literal"), base)
	default:
		err = c.errorAt(base+node.Offset, fmt.Errorf("unrecognised token %q", node.Text))
	}
	if err != nil {
		return nil, err
	}
	if suffix := node.Child("suffix"); suffix != nil && suffix.Text != "" {
		quantify, ok := quantifiers[suffix.Text]
		if !ok {
			return nil, c.errorAt(base+suffix.Offset, fmt.Errorf("unknown suffix %q", suffix.Text))
		}
		if rule, err = quantify(rule); err != nil {
			return nil, err
		}
	}
	if name != "" {
		return runtax.Named(name, rule), nil
	}
	return rule, nil
}

// group compiles a parenthesised set of alternatives into a OneOf.
//
// References inside a group are anonymous, as only the direct entries of a rule become nodes.
func (c *compiler) group(node *runtax.ParseNode, base int) (*runtax.Rule, error) {
	alternatives := node.Child("alternatives")
	if alternatives == nil {
		return nil, c.errorAt(base+node.Offset, errors.New("empty group"))
	}
	base += alternatives.Offset
	var items []runtax.Item
	for alternative, err := range runtax.MatchToTree(c.alternative, alternatives.Text) {
		if err != nil {
			return nil, err
		}
		sequence := alternative.Child("sequence")
		if sequence == nil {
			continue
		}
		tokens, err := c.tokens(sequence.Text, base+sequence.Offset)
		if err != nil {
			return nil, err
		}
		for i, token := range tokens {
			if entry, ok := token.(runtax.Entry); ok {
				tokens[i] = entry.Rule
			}
		}
		if len(tokens) == 1 {
			items = append(items, tokens[0])
			continue
		}
		rule, err := runtax.Sequence(tokens...)
		if err != nil {
			return nil, err
		}
		items = append(items, rule)
	}
	return runtax.OneOf(items...)
}

// literal compiles a quoted or bare literal. The returned name is set for references.
func (c *compiler) literal(node *runtax.ParseNode, base int) (string, *runtax.Rule, error) {
	if text := node.Child("text"); text != nil {
		value, err := strconv.Unquote(text.Text)
		if err != nil {
			return "", nil, c.errorAt(base+text.Offset, fmt.Errorf("invalid quoted text %s: %w", text.Text, err))
		}
		return "", runtax.Text(value), nil
	}
	if pattern := node.Child("pattern"); pattern != nil {
		return "", runtax.Regex(unescapePattern(pattern.Text)), nil
	}
	bare := node.Child("bare")
	if bare == nil {
		return "", nil, c.errorAt(base+node.Offset, fmt.Errorf("unrecognised literal %q", node.Text))
	}
	reference, err := c.name.Match(bare.Text)
	if err != nil {
		return "", nil, err
	}
	if !reference {
		return "", runtax.Text(bare.Text), nil
	}
	rule, err := c.registry.Get(bare.Text)
	if err != nil {
		return "", nil, c.errorAt(base+bare.Offset, err)
	}
	return bare.Text, rule, nil
}

// unescapePattern strips the quotes of a single-quoted pattern and unescapes \'. Every other
// escape is left for the regular expression.
func unescapePattern(s string) string {
	s = s[1 : len(s)-1]
	out := strings.Builder{}
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			if s[i+1] != '\'' {
				out.WriteByte('\\')
			}
			out.WriteByte(s[i+1])
			i++
			continue
		}
		out.WriteByte(s[i])
	}
	return out.String()
}
