package routine

import (
	"fmt"
	"math"
)

// FormatTime renders a signed second count as "mm:ss" with zero-padded
// two-digit fields. Minutes are not wrapped at 60, so 3661 renders as
// "61:01". Negative inputs get a leading "-" with the magnitude formatted
// normally. NaN and infinite inputs are treated as zero.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	total := int(seconds)
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}

// FormatTimeVerbose is FormatTime with a trailing " remaining", for countdown
// displays.
func FormatTimeVerbose(seconds float64) string {
	return FormatTime(seconds) + " remaining"
}
