package challenge

import (
	"errors"
	"fmt"
	"time"
)

// ErrDivisionByZero is returned when statistics are requested for a window
// that was not built by NewWindow and has no required count or no days.
var ErrDivisionByZero = errors.New("challenge window has zero required commits or zero days")

// InvalidRangeError reports a challenge whose end is not after its start.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("challenge end (%s) must be after start (%s)",
		e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

// InvalidCountError reports a required commit count that is not positive,
// or an observed commit count that is negative.
type InvalidCountError struct {
	Observed bool // false for the required count, true for the observed count
	Count    int
}

func (e *InvalidCountError) Error() string {
	if e.Observed {
		return fmt.Sprintf("observed commit count cannot be negative (received %d)", e.Count)
	}
	return fmt.Sprintf("required commit count must be greater than 0 (received %d)", e.Count)
}
