package tagger

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/yesoreyeram/transect/pkg/pstate"
)

// Rule pairs a terminal tag with the expr-lang boolean expression that
// selects it. Expressions are evaluated against a textEnv exposing the
// terminal's surface text; the first rule whose expression evaluates true
// wins.
type Rule struct {
	Tag  string
	When string
}

// textEnv is the expr-lang environment every rule expression is compiled
// and evaluated against.
type textEnv struct {
	Text string
}

// DefaultRules classifies a terminal as Punctuation when its text consists
// entirely of punctuation characters, and Word otherwise.
func DefaultRules() []Rule {
	return []Rule{
		{Tag: "Punctuation", When: `Text matches "^[[:punct:]]+$"`},
	}
}

type compiledRule struct {
	tag     string
	program *vm.Program
}

// RuleBasedTagger assigns each terminal's Tag field by evaluating its
// rules in order against the terminal's text, falling back to DefaultTag
// when none match.
type RuleBasedTagger struct {
	rules      []compiledRule
	defaultTag string
}

// NewRuleBasedTagger compiles rules once at construction, so that calling
// the resulting Tag function on every State built from the same tagger
// never recompiles an expression.
func NewRuleBasedTagger(rules []Rule, defaultTag string) (*RuleBasedTagger, error) {
	t := &RuleBasedTagger{defaultTag: defaultTag}
	for _, r := range rules {
		program, err := expr.Compile(r.When, expr.Env(textEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q: %v", ErrRuleCompileFailed, r.Tag, err)
		}
		t.rules = append(t.rules, compiledRule{tag: r.Tag, program: program})
	}
	return t, nil
}

// Tag implements the pstate.New/pstate.NewFromGold construction callback:
// it assigns every terminal's Tag field, leaving already-tagged terminals
// (the gold-training case) untouched only when explicitly asked to via
// TagGoldAware.
func (t *RuleBasedTagger) Tag(s *pstate.State) {
	for _, n := range s.Nodes {
		if !n.IsTerminal() {
			continue
		}
		n.Tag = t.classify(*n.Text)
	}
}

// TagGoldAware behaves like Tag but skips terminals that already carry a
// non-empty Tag, which is the case when a State was built from a gold
// graph via pstate.NewFromGold and the gold tag should take precedence.
func (t *RuleBasedTagger) TagGoldAware(s *pstate.State) {
	for _, n := range s.Nodes {
		if !n.IsTerminal() || n.Tag != "" {
			continue
		}
		n.Tag = t.classify(*n.Text)
	}
}

// Classify returns the tag this tagger would assign to text, independent of
// any tag already recorded on a Node. pkg/passage.Builder uses this to
// compare a terminal's known (gold or previously predicted) tag against an
// independently derived guess, the way fix_terminal_tags compares a freshly
// built terminal's tag against the one already known from self.terminals.
func (t *RuleBasedTagger) Classify(text string) string {
	return t.classify(text)
}

func (t *RuleBasedTagger) classify(text string) string {
	env := textEnv{Text: text}
	for _, r := range t.rules {
		out, err := expr.Run(r.program, env)
		if err != nil {
			continue
		}
		if matched, ok := out.(bool); ok && matched {
			return r.tag
		}
	}
	return t.defaultTag
}
