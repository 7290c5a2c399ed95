package routine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step is one timed unit of a routine: a label and a planned duration in
// whole seconds.
type Step struct {
	Label    string `json:"label" yaml:"label"`
	Duration int    `json:"duration" yaml:"duration"`
}

// Options are used to configure a routine.
type Options struct {
	ID    string  `json:"id,omitempty" yaml:"id,omitempty"`
	Title string  `json:"title" yaml:"title"`
	Steps []*Step `json:"steps" yaml:"steps"`
}

// Routine is an ordered sequence of timed steps. The definition is read-only
// once built; the runner never modifies it.
type Routine struct {
	id    string
	title string
	steps []*Step
}

// New returns a new Routine configured with the given options.
func New(opts Options) (*Routine, error) {
	if opts.Title == "" {
		return nil, fmt.Errorf("routine title required")
	}
	if len(opts.Steps) == 0 {
		return nil, fmt.Errorf("routine must have at least one step")
	}
	for i, step := range opts.Steps {
		if step.Label == "" {
			return nil, fmt.Errorf("step %d: label required", i)
		}
		if step.Duration < 0 {
			return nil, fmt.Errorf("step %d (%q): duration must not be negative", i, step.Label)
		}
	}
	return &Routine{
		id:    opts.ID,
		title: opts.Title,
		steps: opts.Steps,
	}, nil
}

// ID returns the routine ID.
func (r *Routine) ID() string {
	return r.id
}

// Title returns the routine title.
func (r *Routine) Title() string {
	return r.title
}

// Steps returns the routine steps in order.
func (r *Routine) Steps() []*Step {
	return r.steps
}

// StepCount returns the number of steps in the routine.
func (r *Routine) StepCount() int {
	return len(r.steps)
}

// Step returns the step at the given index.
func (r *Routine) Step(index int) (*Step, bool) {
	if index < 0 || index >= len(r.steps) {
		return nil, false
	}
	return r.steps[index], true
}

// PlannedDuration returns the sum of all step durations, in seconds.
func (r *Routine) PlannedDuration() int {
	var total int
	for _, step := range r.steps {
		total += step.Duration
	}
	return total
}

// LoadFile loads a routine definition from a YAML file.
func LoadFile(path string) (*Routine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routine file: %w", err)
	}
	return LoadString(string(data))
}

// LoadString loads a routine definition from a YAML string.
func LoadString(data string) (*Routine, error) {
	var opts Options
	if err := yaml.Unmarshal([]byte(data), &opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal routine definition: %w", err)
	}
	return New(opts)
}
