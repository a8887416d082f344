// Package filtering narrows a profile's signal list before display or export.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/skillsense/internal/skills"
)

// Filter represents a single filtering step applied to signals.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, signals []skills.Signal) ([]skills.Signal, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	MinConfidence float64           `mapstructure:"min-confidence" validate:"gte=0,lte=1"`
	Categories    []string          `mapstructure:"categories"`
	SignalType    skills.SignalKind `mapstructure:"signal-type" validate:"omitempty,oneof=explicit implicit"`
	Top           int               `mapstructure:"top" validate:"gte=0"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Defaults returns the standard filter chain. Order matters: top must run last.
func Defaults() []Filter {
	return []Filter{
		NewMinConfidence(),
		NewCategories(),
		NewSignalType(),
		NewTop(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially and returns the remaining
// signals. The input slice is not modified.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, signals []skills.Signal) ([]skills.Signal, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	current := append([]skills.Signal{}, signals...)
	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Debug("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, current)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Debug("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		current = next
	}

	return current, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

func keep(signals []skills.Signal, pred func(skills.Signal) bool) ([]skills.Signal, Step) {
	out := make([]skills.Signal, 0, len(signals))
	for _, s := range signals {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out, Step{Initial: len(signals), Dropped: len(signals) - len(out), Left: len(out)}
}
