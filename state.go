package routine

import (
	"time"

	"go.jetify.com/typeid"
)

// NewRunID returns a new unique ID for run identification.
func NewRunID() string {
	id, err := typeid.WithPrefix("run")
	if err != nil {
		panic(err)
	}
	return id.String()
}

// StepStatus classifies the outcome of a processed step.
type StepStatus string

const (
	StepStatusCompleted StepStatus = "completed"
	StepStatusSkipped   StepStatus = "skipped"
)

// StepResult records the outcome of a single processed step. Completed steps
// carry the on-time flag, the XP awarded, and the actual duration; skipped
// steps carry the skip reason instead.
type StepResult struct {
	StepIndex       int        `json:"step_index"`
	StepLabel       string     `json:"step_label"`
	Status          StepStatus `json:"status"`
	CompletedOnTime bool       `json:"completed_on_time,omitempty"`
	XP              int        `json:"xp,omitempty"`
	Reason          string     `json:"reason,omitempty"`
	PlannedDuration int        `json:"planned_duration"`
	ActualDuration  int        `json:"actual_duration,omitempty"`
	Timestamp       time.Time  `json:"timestamp"`
}

// RunState is a snapshot of one in-progress routine execution. It is designed
// to be fully JSON serializable, and it is never mutated in place: every
// engine transition copies the state and returns a new one.
//
// Each processed step appears in exactly one of CompletedSteps or
// SkippedSteps. Logs is the interleaved chronological union of both, kept for
// the summary's ordered step history.
type RunState struct {
	RunID            string        `json:"run_id"`
	RoutineID        string        `json:"routine_id"`
	TotalSteps       int           `json:"total_steps"`
	CurrentStepIndex int           `json:"current_step_index"`
	Running          bool          `json:"running"`
	Paused           bool          `json:"paused"`
	RemainingSeconds int           `json:"remaining_seconds"`
	StartedAt        time.Time     `json:"started_at"`
	PausedAt         time.Time     `json:"paused_at,omitzero"`
	TotalPaused      time.Duration `json:"total_paused"`
	CompletedSteps   []*StepResult `json:"completed_steps"`
	SkippedSteps     []*StepResult `json:"skipped_steps"`
	Logs             []*StepResult `json:"logs"`
}

// Copy returns a copy of the run state. The outcome slices are copied so that
// appends on the copy never alias the original; the records themselves are
// immutable once written and are shared.
func (s *RunState) Copy() *RunState {
	return &RunState{
		RunID:            s.RunID,
		RoutineID:        s.RoutineID,
		TotalSteps:       s.TotalSteps,
		CurrentStepIndex: s.CurrentStepIndex,
		Running:          s.Running,
		Paused:           s.Paused,
		RemainingSeconds: s.RemainingSeconds,
		StartedAt:        s.StartedAt,
		PausedAt:         s.PausedAt,
		TotalPaused:      s.TotalPaused,
		CompletedSteps:   copyResults(s.CompletedSteps),
		SkippedSteps:     copyResults(s.SkippedSteps),
		Logs:             copyResults(s.Logs),
	}
}

// ProcessedCount returns how many steps have been completed or skipped.
func (s *RunState) ProcessedCount() int {
	return len(s.CompletedSteps) + len(s.SkippedSteps)
}

func copyResults(results []*StepResult) []*StepResult {
	copied := make([]*StepResult, len(results))
	copy(copied, results)
	return copied
}
