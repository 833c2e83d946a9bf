package workflow

import "fmt"

// TransitionViolationError reports a rejected state transition. The tracker's
// state is unchanged when this is returned.
type TransitionViolationError struct {
	From   Status
	To     Status
	Reason string
}

func (e *TransitionViolationError) Error() string {
	return fmt.Sprintf("state transition violation: %s -> %s: %s", e.From, e.To, e.Reason)
}
