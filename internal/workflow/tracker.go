// Package workflow tracks a job posting's progress through the tailoring
// workflow as a finite state machine.
package workflow

// Status is a posting's position in the workflow.
type Status string

// Workflow states. Forward-only: the single back-transition is an explicit
// user reset to todo.
const (
	// StatusTodo: posting ingested, no analysis yet.
	StatusTodo Status = "todo"
	// StatusStrategy: a strategic plan has been generated and awaits approval.
	StatusStrategy Status = "strategy"
	// StatusTailoring: plan approved; document generation is unlocked.
	StatusTailoring Status = "tailoring"
	// StatusApplied: terminal, user-marked after manual submission.
	StatusApplied Status = "applied"
)

// ValidStatus reports whether s names a known workflow state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusStrategy, StatusTailoring, StatusApplied:
		return true
	}
	return false
}

// transitions holds the allowed forward edges. strategy -> tailoring is only
// reachable through Approve, enforcing the human checkpoint between generated
// strategy and generated document content.
var transitions = map[Status]Status{
	StatusTodo:      StatusStrategy,
	StatusStrategy:  StatusTailoring,
	StatusTailoring: StatusApplied,
}

// Tracker records and gates the state of a single posting.
type Tracker struct {
	status Status
}

// NewTracker returns a tracker in the todo state.
func NewTracker() *Tracker {
	return &Tracker{status: StatusTodo}
}

// ResumeTracker returns a tracker restored to a previously persisted state.
func ResumeTracker(status Status) (*Tracker, error) {
	if !ValidStatus(status) {
		return nil, &TransitionViolationError{From: status, To: status, Reason: "unknown state"}
	}
	return &Tracker{status: status}, nil
}

// Status returns the current state.
func (t *Tracker) Status() Status {
	return t.status
}

// Advance moves the tracker to the requested state. Only the single next
// forward state is allowed, and strategy -> tailoring is refused here: that
// edge requires Approve. On violation the original state is preserved.
func (t *Tracker) Advance(to Status) error {
	next, ok := transitions[t.status]
	if !ok || next != to {
		return &TransitionViolationError{From: t.status, To: to, Reason: "not a permitted transition"}
	}
	if t.status == StatusStrategy && to == StatusTailoring {
		return &TransitionViolationError{
			From:   t.status,
			To:     to,
			Reason: "strategy requires explicit approval; use Approve",
		}
	}
	t.status = to
	return nil
}

// Approve performs the strategy -> tailoring transition. It is the only way
// to unlock document generation and is never triggered automatically.
func (t *Tracker) Approve() error {
	if t.status != StatusStrategy {
		return &TransitionViolationError{From: t.status, To: StatusTailoring, Reason: "no strategic plan awaiting approval"}
	}
	t.status = StatusTailoring
	return nil
}

// Reset returns the posting to todo from any state. This is the explicit
// user-triggered back-transition.
func (t *Tracker) Reset() {
	t.status = StatusTodo
}
