package vtcore

import "fmt"

// ResizeRejected is returned by Terminal.Resize when asked for
// non-positive geometry (spec §7 category 3: the only error category
// surfaced to the core's caller). Current state is left untouched.
type ResizeRejected struct {
	Rows, Cols int
	Reason     string
}

func (e *ResizeRejected) Error() string {
	return fmt.Sprintf("vtcore: resize to %dx%d rejected: %s", e.Rows, e.Cols, e.Reason)
}
