package routine

import (
	"math"
	"time"
)

// Summary is the post-run report: counts, percentages, the XP breakdown, and
// the chronological step history. It is the only output handed to anything
// outside the runner, typically a stats collector via a HistoryStore.
type Summary struct {
	RunID            string        `json:"run_id"`
	RoutineID        string        `json:"routine_id"`
	RoutineTitle     string        `json:"routine_title"`
	TotalSteps       int           `json:"total_steps"`
	CompletedCount   int           `json:"completed_count"`
	SkippedCount     int           `json:"skipped_count"`
	OnTimePercentage int           `json:"on_time_percentage"`
	XP               XPBreakdown   `json:"xp"`
	PlannedDuration  int           `json:"planned_duration"`
	ActualDuration   int           `json:"actual_duration"`
	TotalPaused      time.Duration `json:"total_paused"`
	StartedAt        time.Time     `json:"started_at"`
	FinishedAt       time.Time     `json:"finished_at"`
	Logs             []*StepResult `json:"logs"`
}

// Summary folds a run state into its report. ActualDuration is wall-clock
// seconds since the run started and deliberately includes time spent paused;
// TotalPaused is reported alongside for consumers that want to subtract it.
func (e *Engine) Summary(state *RunState) *Summary {
	now := e.clock()
	completedCount := len(state.CompletedSteps)
	var onTimeCount int
	for _, result := range state.CompletedSteps {
		if result.CompletedOnTime {
			onTimeCount++
		}
	}
	var onTimePercentage int
	if completedCount > 0 {
		onTimePercentage = int(math.Round(100 * float64(onTimeCount) / float64(completedCount)))
	}
	return &Summary{
		RunID:            state.RunID,
		RoutineID:        e.routine.ID(),
		RoutineTitle:     e.routine.Title(),
		TotalSteps:       e.routine.StepCount(),
		CompletedCount:   completedCount,
		SkippedCount:     len(state.SkippedSteps),
		OnTimePercentage: onTimePercentage,
		XP:               TotalXP(state.CompletedSteps, e.routine.StepCount()),
		PlannedDuration:  e.routine.PlannedDuration(),
		ActualDuration:   int(now.Sub(state.StartedAt).Seconds()),
		TotalPaused:      state.TotalPaused,
		StartedAt:        state.StartedAt,
		FinishedAt:       now,
		Logs:             copyResults(state.Logs),
	}
}
