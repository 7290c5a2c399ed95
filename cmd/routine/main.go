// Command routine runs a timed routine in the terminal.
//
// It loads a routine definition from a YAML file and drives the engine at
// one tick per second while reading commands from stdin:
//
//	done            complete the current step
//	skip [reason]   skip the current step
//	pause           pause or resume the countdown
//	quit            abandon the run
//
// With -auto the run is simulated without user input, completing each step
// after a single tick. On completion the run summary is printed and, when
// -history is set, saved as JSON under that directory.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/aurorae-haven/routine"
)

type config struct {
	routineFile string
	historyDir  string
	auto        bool
	verbose     bool
	jsonLogs    bool
}

func main() {
	cfg := parseFlags()

	if cfg.routineFile == "" {
		color.Red("Error: routine file is required")
		flag.Usage()
		os.Exit(1)
	}

	def, err := routine.LoadFile(cfg.routineFile)
	if err != nil {
		log.Fatalf("Failed to load routine: %v", err)
	}

	engine, err := routine.NewEngine(routine.EngineOptions{
		Routine: def,
		Logger:  setupLogger(cfg),
	})
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	color.Cyan("Routine: %s (%d steps, %s planned)",
		def.Title(), def.StepCount(), routine.FormatTime(float64(def.PlannedDuration())))

	var store routine.HistoryStore = routine.NewNullHistoryStore()
	if cfg.historyDir != "" {
		store, err = routine.NewFileHistoryStore(cfg.historyDir)
		if err != nil {
			log.Fatalf("Failed to open history store: %v", err)
		}
	}

	state := engine.Start(engine.NewRunState())
	if cfg.auto {
		state = runAuto(engine, state)
	} else {
		state = runInteractive(engine, state, def, os.Stdin)
	}

	if !routine.RunComplete(state) {
		color.Yellow("Run abandoned after %d of %d steps.", state.ProcessedCount(), def.StepCount())
		return
	}

	summary := engine.Summary(state)
	printSummary(summary)

	if err := store.SaveSummary(context.Background(), summary); err != nil {
		log.Fatalf("Failed to save run history: %v", err)
	}
	if cfg.historyDir != "" {
		color.Blue("History saved to %s", cfg.historyDir)
	}
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.routineFile, "file", "", "Path to routine YAML file (required)")
	flag.StringVar(&cfg.historyDir, "history", "", "Directory for run history JSON (optional)")
	flag.BoolVar(&cfg.auto, "auto", false, "Simulate the run without user input")
	flag.BoolVar(&cfg.verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&cfg.jsonLogs, "json", false, "Log in JSON format")
	flag.Parse()
	return cfg
}

func setupLogger(cfg config) *slog.Logger {
	if !cfg.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.jsonLogs {
		return routine.NewJSONLogger(slog.LevelDebug)
	}
	return routine.NewLogger(slog.LevelDebug)
}

// runInteractive drives the engine at one tick per second while applying
// user commands as they arrive on in (stdin, in practice).
func runInteractive(engine *routine.Engine, state *routine.RunState, def *routine.Routine, in io.Reader) *routine.RunState {
	commands := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(commands)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case commands <- strings.TrimSpace(scanner.Text()):
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	printStep(def, state)
	for !routine.RunComplete(state) {
		select {
		case <-ticker.C:
			state = engine.Tick(state)
			printCountdown(state)
		case command, ok := <-commands:
			if !ok {
				return state
			}
			var advanced bool
			state, advanced = applyCommand(engine, state, command)
			if advanced && !routine.RunComplete(state) {
				printStep(def, state)
			}
			if command == "quit" {
				return state
			}
		}
	}
	return state
}

func applyCommand(engine *routine.Engine, state *routine.RunState, command string) (*routine.RunState, bool) {
	verb, rest, _ := strings.Cut(command, " ")
	switch verb {
	case "done":
		return engine.Complete(state), true
	case "skip":
		return engine.Skip(state, rest), true
	case "pause":
		state = engine.TogglePause(state)
		if state.Paused {
			color.Yellow("Paused.")
		} else {
			color.Yellow("Resumed.")
		}
		return state, false
	case "quit", "":
		return state, false
	default:
		color.Red("Unknown command %q (done, skip, pause, quit)", verb)
		return state, false
	}
}

// runAuto completes every step after a single tick, for demos and smoke
// testing.
func runAuto(engine *routine.Engine, state *routine.RunState) *routine.RunState {
	for !routine.RunComplete(state) {
		state = engine.Tick(state)
		state = engine.Complete(state)
	}
	return state
}

func printStep(def *routine.Routine, state *routine.RunState) {
	step, ok := def.Step(state.CurrentStepIndex)
	if !ok {
		return
	}
	color.Cyan("\nStep %d/%d: %s (%s)",
		state.CurrentStepIndex+1, def.StepCount(), step.Label,
		routine.FormatTime(float64(step.Duration)))
}

func printCountdown(state *routine.RunState) {
	fmt.Printf("\r  %s ", routine.FormatTimeVerbose(float64(state.RemainingSeconds)))
}

func printSummary(summary *routine.Summary) {
	fmt.Println()
	color.Green("Routine complete: %s", summary.RoutineTitle)
	fmt.Printf("  Steps:     %d completed, %d skipped of %d\n",
		summary.CompletedCount, summary.SkippedCount, summary.TotalSteps)
	fmt.Printf("  On time:   %d%%\n", summary.OnTimePercentage)
	fmt.Printf("  Duration:  %s (planned %s, paused %s)\n",
		routine.FormatTime(float64(summary.ActualDuration)),
		routine.FormatTime(float64(summary.PlannedDuration)),
		summary.TotalPaused.Round(time.Second))
	color.Green("  XP:        %d (steps %d + routine bonus %d + perfect bonus %d)",
		summary.XP.Total, summary.XP.StepXP, summary.XP.RoutineBonus, summary.XP.PerfectBonus)
}
