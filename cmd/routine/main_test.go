package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurorae-haven/routine"
)

func testEngine(t *testing.T) (*routine.Engine, *routine.Routine) {
	t.Helper()
	def, err := routine.New(routine.Options{
		Title: "CLI Routine",
		Steps: []*routine.Step{
			{Label: "first", Duration: 10},
			{Label: "second", Duration: 10},
		},
	})
	require.NoError(t, err)
	engine, err := routine.NewEngine(routine.EngineOptions{
		Routine: def,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return engine, def
}

func TestRunInteractiveProcessesCommands(t *testing.T) {
	engine, def := testEngine(t)
	input := strings.NewReader("done\nskip tired\n")

	state := engine.Start(engine.NewRunState())
	state = runInteractive(engine, state, def, input)

	require.True(t, routine.RunComplete(state))
	require.Len(t, state.CompletedSteps, 1)
	require.Len(t, state.SkippedSteps, 1)
	require.Equal(t, "tired", state.SkippedSteps[0].Reason)
}

// The loop must return as soon as the run ends, even with input left
// unread, and must not leave the reader goroutine stuck on a send.
func TestRunInteractiveReturnsWithPendingInput(t *testing.T) {
	engine, def := testEngine(t)
	input := strings.NewReader("done\ndone\ndone\ndone\n")

	state := engine.Start(engine.NewRunState())
	state = runInteractive(engine, state, def, input)

	require.True(t, routine.RunComplete(state))
	require.Len(t, state.CompletedSteps, 2)
}

func TestRunInteractiveQuit(t *testing.T) {
	engine, def := testEngine(t)
	input := strings.NewReader("done\nquit\ndone\n")

	state := engine.Start(engine.NewRunState())
	state = runInteractive(engine, state, def, input)

	require.False(t, routine.RunComplete(state))
	require.Len(t, state.CompletedSteps, 1)
}

func TestRunInteractiveEOF(t *testing.T) {
	engine, def := testEngine(t)

	state := engine.Start(engine.NewRunState())
	state = runInteractive(engine, state, def, strings.NewReader(""))

	require.False(t, routine.RunComplete(state))
	require.Empty(t, state.Logs)
}

func TestApplyCommandUnknownVerb(t *testing.T) {
	engine, _ := testEngine(t)
	state := engine.Start(engine.NewRunState())

	next, advanced := applyCommand(engine, state, "frobnicate")
	require.Same(t, state, next)
	require.False(t, advanced)
}
