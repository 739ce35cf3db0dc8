// Package action defines the closed vocabulary of parser actions.
//
// An Action is the unit a policy (an oracle consulting a gold graph during
// training, or a learned classifier during inference) selects one at a time;
// pstate.State validates and applies it. The action and its policy are kept
// separate from the state machine itself: this package only names the ten
// action kinds and the tag payload each one carries.
package action
