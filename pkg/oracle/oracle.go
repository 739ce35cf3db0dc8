package oracle

import (
	"github.com/yesoreyeram/transect/pkg/action"
	"github.com/yesoreyeram/transect/pkg/pstate"
)

// ActionSource is any policy that proposes the next action for a state: a
// gold-graph oracle during training, a learned classifier at inference
// time, or a fixture replaying a recorded trace. pkg/pstate depends on
// nothing in this package; ActionSource depends on pstate, keeping the
// dependency one-directional.
type ActionSource interface {
	// Next returns the action to apply to s. It does not itself call
	// s.AssertValid: callers (typically a driver loop) are expected to
	// validate before transitioning, exactly as they would a classifier's
	// proposal.
	Next(s *pstate.State) (action.Action, error)
}

// Fixed replays a pre-recorded sequence of actions in order, ignoring the
// state it's given. It exists to exercise pkg/pstate and pkg/passage
// end-to-end without a learned policy or a gold-graph oracle, both out of
// scope here.
type Fixed struct {
	actions []action.Action
	pos     int
}

// NewFixed returns a Fixed action source that replays actions in order.
func NewFixed(actions []action.Action) *Fixed {
	return &Fixed{actions: actions}
}

// Next returns the next action in the recorded trace, or ErrExhausted once
// the trace is consumed.
func (f *Fixed) Next(s *pstate.State) (action.Action, error) {
	if f.pos >= len(f.actions) {
		return action.Action{}, ErrExhausted
	}
	a := f.actions[f.pos]
	f.pos++
	return a, nil
}

// Remaining reports how many actions are left to replay.
func (f *Fixed) Remaining() int {
	return len(f.actions) - f.pos
}

// Run drives s to completion by repeatedly asking src for the next action,
// validating it, and applying it, stopping after a FINISH transition
// succeeds. It is a convenience for callers that just want "run this trace
// against this state"; pkg/server and cmd/parse replay their traces with
// their own loops instead.
func Run(s *pstate.State, src ActionSource) error {
	for {
		a, err := src.Next(s)
		if err != nil {
			return err
		}
		if err := s.AssertValid(a); err != nil {
			return err
		}
		if err := s.Transition(a); err != nil {
			return err
		}
		if a.Is(action.Finish) {
			return nil
		}
	}
}
