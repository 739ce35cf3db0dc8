// Package oracle defines the seam between pkg/pstate and whatever decides
// which action to apply next: a gold-graph oracle during training, a
// learned classifier during inference, or (in this repository, since
// neither is in scope) a recorded trace replayed action by action.
package oracle
