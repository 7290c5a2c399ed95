package routine

import "math"

// Progress returns the percent of the routine's steps that have been
// processed (completed or skipped), rounded to the nearest integer.
func Progress(state *RunState) int {
	if state.TotalSteps <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(state.ProcessedCount()) / float64(state.TotalSteps)))
}

// RunComplete reports whether every step of the routine has been processed.
func RunComplete(state *RunState) bool {
	return state.ProcessedCount() >= state.TotalSteps
}
