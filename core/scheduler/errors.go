package scheduler

import (
	"errors"
	"fmt"
)

// ErrUsage is wrapped by every error caused by a call the caller should not
// have made.
var ErrUsage = errors.New("usage error")

var (
	ErrNoSubjects  = fmt.Errorf("%w: no subjects to schedule", ErrUsage)
	ErrNoPlan      = fmt.Errorf("%w: no prior plan to rebalance", ErrUsage)
	ErrNothingLeft = fmt.Errorf("%w: nothing left to schedule", ErrUsage)
)
