package routine

import "time"

// RunCallbacks defines the callback interface for run lifecycle events. The
// engine invokes callbacks synchronously, after the transition that produced
// the event.
type RunCallbacks interface {
	// Run-level callbacks
	OnRunStarted(event *RunEvent)
	OnRunCompleted(event *RunEvent)

	// Step-level callbacks
	OnStepCompleted(event *StepEvent)
	OnStepSkipped(event *StepEvent)

	// Pause toggles
	OnRunPaused(event *PauseEvent)
	OnRunResumed(event *PauseEvent)
}

// RunEvent provides context for run-level events.
type RunEvent struct {
	RunID          string
	RoutineID      string
	RoutineTitle   string
	TotalSteps     int
	CompletedCount int
	SkippedCount   int
	StartedAt      time.Time
	Timestamp      time.Time
}

// StepEvent provides context for step outcome events.
type StepEvent struct {
	RunID        string
	RoutineTitle string
	Result       *StepResult
	Timestamp    time.Time
}

// PauseEvent provides context for pause and resume events.
type PauseEvent struct {
	RunID         string
	RoutineTitle  string
	StepIndex     int
	PauseDuration time.Duration
	Timestamp     time.Time
}

// BaseRunCallbacks provides a default implementation that does nothing.
// Embed this in your own callbacks to only implement the events you need.
type BaseRunCallbacks struct{}

func (c *BaseRunCallbacks) OnRunStarted(event *RunEvent) {
	// noop
}

func (c *BaseRunCallbacks) OnRunCompleted(event *RunEvent) {
	// noop
}

func (c *BaseRunCallbacks) OnStepCompleted(event *StepEvent) {
	// noop
}

func (c *BaseRunCallbacks) OnStepSkipped(event *StepEvent) {
	// noop
}

func (c *BaseRunCallbacks) OnRunPaused(event *PauseEvent) {
	// noop
}

func (c *BaseRunCallbacks) OnRunResumed(event *PauseEvent) {
	// noop
}

// CallbackChain fans run events out to multiple callback implementations.
type CallbackChain struct {
	callbacks []RunCallbacks
}

// NewCallbackChain creates a new callback chain.
func NewCallbackChain(callbacks ...RunCallbacks) *CallbackChain {
	return &CallbackChain{callbacks: callbacks}
}

// Add adds a callback to the chain.
func (c *CallbackChain) Add(callback RunCallbacks) {
	c.callbacks = append(c.callbacks, callback)
}

func (c *CallbackChain) OnRunStarted(event *RunEvent) {
	for _, callback := range c.callbacks {
		callback.OnRunStarted(event)
	}
}

func (c *CallbackChain) OnRunCompleted(event *RunEvent) {
	for _, callback := range c.callbacks {
		callback.OnRunCompleted(event)
	}
}

func (c *CallbackChain) OnStepCompleted(event *StepEvent) {
	for _, callback := range c.callbacks {
		callback.OnStepCompleted(event)
	}
}

func (c *CallbackChain) OnStepSkipped(event *StepEvent) {
	for _, callback := range c.callbacks {
		callback.OnStepSkipped(event)
	}
}

func (c *CallbackChain) OnRunPaused(event *PauseEvent) {
	for _, callback := range c.callbacks {
		callback.OnRunPaused(event)
	}
}

func (c *CallbackChain) OnRunResumed(event *PauseEvent) {
	for _, callback := range c.callbacks {
		callback.OnRunResumed(event)
	}
}
