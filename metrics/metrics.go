// Package metrics exposes routine run activity as Prometheus metrics.
//
// RunCollector implements routine.RunCallbacks, so it can be handed directly
// to an engine (alone or in a callback chain) and will count runs, step
// outcomes, pauses, and XP as they happen.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aurorae-haven/routine"
)

// RunCollector counts run lifecycle events on a Prometheus registry.
type RunCollector struct {
	runsStarted    prometheus.Counter
	runsCompleted  prometheus.Counter
	stepsCompleted *prometheus.CounterVec
	stepsSkipped   prometheus.Counter
	pauses         prometheus.Counter
	xpAwarded      prometheus.Counter
}

var _ routine.RunCallbacks = (*RunCollector)(nil)

// NewRunCollector creates a collector and registers its metrics with reg.
func NewRunCollector(reg prometheus.Registerer) (*RunCollector, error) {
	c := &RunCollector{
		runsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routine_runs_started_total",
			Help: "Number of routine runs started.",
		}),
		runsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routine_runs_completed_total",
			Help: "Number of routine runs that processed every step.",
		}),
		stepsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "routine_steps_completed_total",
			Help: "Number of steps completed, by on-time classification.",
		}, []string{"on_time"}),
		stepsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routine_steps_skipped_total",
			Help: "Number of steps skipped.",
		}),
		pauses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routine_pauses_total",
			Help: "Number of times a run was paused.",
		}),
		xpAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routine_step_xp_awarded_total",
			Help: "Total step XP awarded across all runs.",
		}),
	}
	collectors := []prometheus.Collector{
		c.runsStarted,
		c.runsCompleted,
		c.stepsCompleted,
		c.stepsSkipped,
		c.pauses,
		c.xpAwarded,
	}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *RunCollector) OnRunStarted(event *routine.RunEvent) {
	c.runsStarted.Inc()
}

func (c *RunCollector) OnRunCompleted(event *routine.RunEvent) {
	c.runsCompleted.Inc()
}

func (c *RunCollector) OnStepCompleted(event *routine.StepEvent) {
	onTime := "false"
	if event.Result.CompletedOnTime {
		onTime = "true"
	}
	c.stepsCompleted.With(prometheus.Labels{"on_time": onTime}).Inc()
	c.xpAwarded.Add(float64(event.Result.XP))
}

func (c *RunCollector) OnStepSkipped(event *routine.StepEvent) {
	c.stepsSkipped.Inc()
}

func (c *RunCollector) OnRunPaused(event *routine.PauseEvent) {
	c.pauses.Inc()
}

func (c *RunCollector) OnRunResumed(event *routine.PauseEvent) {
	// resume duration is already visible via TotalPaused in summaries
}
