package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/aurorae-haven/routine"
)

func TestRunCollector(t *testing.T) {
	def, err := routine.New(routine.Options{
		Title: "Metrics Routine",
		Steps: []*routine.Step{
			{Label: "one", Duration: 10},
			{Label: "two", Duration: 10},
			{Label: "three", Duration: 10},
		},
	})
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	collector, err := NewRunCollector(registry)
	require.NoError(t, err)

	engine, err := routine.NewEngine(routine.EngineOptions{
		Routine:   def,
		Callbacks: collector,
	})
	require.NoError(t, err)

	state := engine.Start(engine.NewRunState())
	state = engine.TogglePause(state)
	state = engine.TogglePause(state)
	state = engine.Tick(state)
	state = engine.Complete(state) // on time, xp 2
	for i := 0; i < 10; i++ {
		state = engine.Tick(state)
	}
	state = engine.Complete(state) // late, xp 1
	state = engine.Skip(state, "skipped")
	require.True(t, routine.RunComplete(state))

	require.Equal(t, float64(1), testutil.ToFloat64(collector.runsStarted))
	require.Equal(t, float64(1), testutil.ToFloat64(collector.runsCompleted))
	require.Equal(t, float64(1), testutil.ToFloat64(collector.pauses))
	require.Equal(t, float64(1), testutil.ToFloat64(collector.stepsSkipped))
	require.Equal(t, float64(1),
		testutil.ToFloat64(collector.stepsCompleted.With(prometheus.Labels{"on_time": "true"})))
	require.Equal(t, float64(1),
		testutil.ToFloat64(collector.stepsCompleted.With(prometheus.Labels{"on_time": "false"})))
	require.Equal(t, float64(3), testutil.ToFloat64(collector.xpAwarded))
}

func TestRunCollectorRegistersOnce(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewRunCollector(registry)
	require.NoError(t, err)
	_, err = NewRunCollector(registry)
	require.Error(t, err, "duplicate registration must surface")
}
