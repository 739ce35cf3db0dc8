package pstate

import (
	"errors"
	"fmt"
)

// ErrInvalidAction is the sentinel wrapped by every validity failure
// returned from AssertValid/Transition. Callers (typically a classifier's
// retry loop) can test for it with errors.Is.
var ErrInvalidAction = errors.New("invalid action for current state")

// invalid wraps ErrInvalidAction with a human-readable reason.
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidAction, fmt.Sprintf(format, args...))
}

// StructuralFault reports an invariant violation detected inside Transition
// or passage construction under verification: a cycle that slipped past the
// pre-check, a duplicate edge, a stack/buffer overlap, or a terminal left
// without a parent at finalization. These are implementer bugs, not
// recoverable policy mistakes, and are never expected to occur when
// AssertValid has been honored before every Transition.
type StructuralFault struct {
	Reason string
}

func (f *StructuralFault) Error() string {
	return "structural fault: " + f.Reason
}

func fault(format string, args ...interface{}) *StructuralFault {
	return &StructuralFault{Reason: fmt.Sprintf(format, args...)}
}
