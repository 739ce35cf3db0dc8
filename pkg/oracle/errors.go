package oracle

import "errors"

// ErrExhausted is returned by Next when an ActionSource has no further
// action to offer (the trace replayed by Fixed ran out before FINISH).
var ErrExhausted = errors.New("oracle: action source exhausted")
