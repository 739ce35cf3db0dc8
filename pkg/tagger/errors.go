package tagger

import "errors"

// ErrRuleCompileFailed is returned by NewRuleBasedTagger when one of the
// configured expressions fails to compile.
var ErrRuleCompileFailed = errors.New("tagger: rule expression failed to compile")

// ErrRuleEvalFailed names a rule expression that fails at evaluation time.
// The tagger does not return it: classify skips a rule whose evaluation
// fails and goes on to the next one, falling back to the default tag when
// no rule matches.
var ErrRuleEvalFailed = errors.New("tagger: rule expression failed to evaluate")
