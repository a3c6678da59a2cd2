package scheduler

import (
	"fmt"
	"math"
)

// epsilon absorbs float residue from repeated subtraction of durations.
const epsilon = 1e-9

// FormatClock renders fractional hours after midnight as HH:MM. Minutes are
// truncated. Values of 24 or more are not wrapped.
func FormatClock(hours float64) string {
	tm := int(math.Floor(hours*60 + epsilon))
	return fmt.Sprintf("%02d:%02d", tm/60, tm%60)
}

func isZero(v float64) bool { return v < epsilon }
