package routine

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Clock returns the current wall-clock time. Engines default to time.Now;
// tests substitute a fake.
type Clock func() time.Time

// EngineOptions configures a new engine.
type EngineOptions struct {
	Routine   *Routine
	RunID     string
	Clock     Clock
	Logger    *slog.Logger
	Callbacks RunCallbacks
}

// Engine drives one run of a routine. Every transition takes a RunState and
// returns a new RunState; the engine itself holds only the routine definition
// and infrastructure, never run progress, so a single engine value can be
// shared by whatever owns the run.
//
// The engine contains no timer of its own. The one-second cadence belongs to
// the caller, which invokes Tick once per wall-clock second while the run is
// active.
type Engine struct {
	routine   *Routine
	runID     string
	clock     Clock
	logger    *slog.Logger
	callbacks RunCallbacks
}

// NewEngine creates an engine for one run of the given routine.
func NewEngine(opts EngineOptions) (*Engine, error) {
	if opts.Routine == nil {
		return nil, fmt.Errorf("routine is required")
	}
	if opts.Routine.StepCount() == 0 {
		return nil, fmt.Errorf("routine must have at least one step")
	}
	if opts.RunID == "" {
		opts.RunID = NewRunID()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Callbacks == nil {
		opts.Callbacks = &BaseRunCallbacks{}
	}
	return &Engine{
		routine:   opts.Routine,
		runID:     opts.RunID,
		clock:     opts.Clock,
		logger:    opts.Logger,
		callbacks: opts.Callbacks,
	}, nil
}

// Routine returns the routine definition this engine runs.
func (e *Engine) Routine() *Routine {
	return e.routine
}

// RunID returns the run ID.
func (e *Engine) RunID() string {
	return e.runID
}

// NewRunState returns the initial state for a run: positioned on the first
// step with its full planned duration on the clock, not yet running.
func (e *Engine) NewRunState() *RunState {
	var remaining int
	if step, ok := e.routine.Step(0); ok {
		remaining = step.Duration
	}
	return &RunState{
		RunID:            e.runID,
		RoutineID:        e.routine.ID(),
		TotalSteps:       e.routine.StepCount(),
		RemainingSeconds: remaining,
		StartedAt:        e.clock(),
		CompletedSteps:   []*StepResult{},
		SkippedSteps:     []*StepResult{},
		Logs:             []*StepResult{},
	}
}

// Start begins the run. Starting an already-running or finished state is a
// no-op.
func (e *Engine) Start(state *RunState) *RunState {
	if state.Running || e.finished(state) {
		return state
	}
	next := state.Copy()
	next.Running = true
	e.logger.Info("run started",
		"run_id", e.runID,
		"routine", e.routine.Title(),
		"steps", e.routine.StepCount())
	e.callbacks.OnRunStarted(e.runEvent(next))
	return next
}

// Advance moves the run to the next step without recording an outcome for
// the current one. Crossing past the last step ends the run. Most callers
// want Complete or Skip, which record the outcome and then advance.
func (e *Engine) Advance(state *RunState) *RunState {
	if e.finished(state) {
		return state
	}
	next := state.Copy()
	e.advance(next)
	return next
}

// Complete records the current step as done and advances. The step counts as
// on time only if the countdown still shows time remaining; reaching zero
// first makes it late. Completing an already-finished run is a no-op.
func (e *Engine) Complete(state *RunState) *RunState {
	step, ok := e.routine.Step(state.CurrentStepIndex)
	if !ok {
		return state
	}
	onTime := state.RemainingSeconds > 0
	result := &StepResult{
		StepIndex:       state.CurrentStepIndex,
		StepLabel:       step.Label,
		Status:          StepStatusCompleted,
		CompletedOnTime: onTime,
		XP:              StepXP(onTime),
		PlannedDuration: step.Duration,
		ActualDuration:  step.Duration - state.RemainingSeconds,
		Timestamp:       e.clock(),
	}
	next := state.Copy()
	next.CompletedSteps = append(next.CompletedSteps, result)
	next.Logs = append(next.Logs, result)
	e.logger.Info("step completed",
		"run_id", e.runID,
		"step", step.Label,
		"on_time", onTime,
		"xp", result.XP)
	e.callbacks.OnStepCompleted(&StepEvent{
		RunID:        e.runID,
		RoutineTitle: e.routine.Title(),
		Result:       result,
		Timestamp:    result.Timestamp,
	})
	e.advance(next)
	return next
}

// Skip records the current step as skipped, with an optional reason, and
// advances. Skipped steps never award XP. Skipping an already-finished run is
// a no-op.
func (e *Engine) Skip(state *RunState, reason string) *RunState {
	step, ok := e.routine.Step(state.CurrentStepIndex)
	if !ok {
		return state
	}
	result := &StepResult{
		StepIndex:       state.CurrentStepIndex,
		StepLabel:       step.Label,
		Status:          StepStatusSkipped,
		Reason:          reason,
		PlannedDuration: step.Duration,
		Timestamp:       e.clock(),
	}
	next := state.Copy()
	next.SkippedSteps = append(next.SkippedSteps, result)
	next.Logs = append(next.Logs, result)
	e.logger.Info("step skipped",
		"run_id", e.runID,
		"step", step.Label,
		"reason", reason)
	e.callbacks.OnStepSkipped(&StepEvent{
		RunID:        e.runID,
		RoutineTitle: e.routine.Title(),
		Result:       result,
		Timestamp:    result.Timestamp,
	})
	e.advance(next)
	return next
}

// TogglePause pauses a running state or resumes a paused one. Pausing
// freezes the visible countdown only; the time spent paused accumulates in
// TotalPaused on resume. Toggling a non-running or finished state is a no-op.
func (e *Engine) TogglePause(state *RunState) *RunState {
	if !state.Running || e.finished(state) {
		return state
	}
	now := e.clock()
	next := state.Copy()
	if state.Paused {
		pauseDuration := now.Sub(state.PausedAt)
		next.TotalPaused += pauseDuration
		next.PausedAt = time.Time{}
		next.Paused = false
		e.logger.Info("run resumed", "run_id", e.runID, "paused_for", pauseDuration)
		e.callbacks.OnRunResumed(&PauseEvent{
			RunID:         e.runID,
			RoutineTitle:  e.routine.Title(),
			StepIndex:     state.CurrentStepIndex,
			PauseDuration: pauseDuration,
			Timestamp:     now,
		})
		return next
	}
	next.Paused = true
	next.PausedAt = now
	e.logger.Info("run paused", "run_id", e.runID, "step_index", state.CurrentStepIndex)
	e.callbacks.OnRunPaused(&PauseEvent{
		RunID:        e.runID,
		RoutineTitle: e.routine.Title(),
		StepIndex:    state.CurrentStepIndex,
		Timestamp:    now,
	})
	return next
}

// Tick counts the active step down by one second, stopping at zero. A step
// that reaches zero stays there until the user completes or skips it; there
// is no automatic advance. Ticking a paused, unstarted, or finished state is
// a no-op, so redundant ticks never corrupt the countdown.
func (e *Engine) Tick(state *RunState) *RunState {
	if !state.Running || state.Paused || e.finished(state) {
		return state
	}
	if state.RemainingSeconds <= 0 {
		return state
	}
	next := state.Copy()
	next.RemainingSeconds--
	return next
}

func (e *Engine) finished(state *RunState) bool {
	return state.CurrentStepIndex >= e.routine.StepCount()
}

// advance mutates a freshly-copied state in place. Entering a step resets
// the countdown and clears any pause; crossing past the last step ends the
// run and leaves the countdown as-is. An open pause interval is discarded
// rather than folded into TotalPaused, matching the countdown-only scope of
// a pause.
func (e *Engine) advance(state *RunState) {
	state.CurrentStepIndex++
	if step, ok := e.routine.Step(state.CurrentStepIndex); ok {
		state.RemainingSeconds = step.Duration
		state.Paused = false
		state.PausedAt = time.Time{}
		return
	}
	state.Running = false
	e.logger.Info("run completed",
		"run_id", e.runID,
		"completed", len(state.CompletedSteps),
		"skipped", len(state.SkippedSteps))
	e.callbacks.OnRunCompleted(e.runEvent(state))
}

func (e *Engine) runEvent(state *RunState) *RunEvent {
	return &RunEvent{
		RunID:          e.runID,
		RoutineID:      e.routine.ID(),
		RoutineTitle:   e.routine.Title(),
		TotalSteps:     e.routine.StepCount(),
		CompletedCount: len(state.CompletedSteps),
		SkippedCount:   len(state.SkippedSteps),
		StartedAt:      state.StartedAt,
		Timestamp:      e.clock(),
	}
}
