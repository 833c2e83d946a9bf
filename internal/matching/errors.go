package matching

import "fmt"

// InvalidProfileError reports a missing or empty skill index. Matching cannot
// proceed without one; this is fatal for the run.
type InvalidProfileError struct {
	Reason string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid profile state: %s", e.Reason)
}
