package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skillsense/internal/skills"
)

// toggle carries the enabled state shared by every step.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

type minConfidenceFilter struct {
	toggle
	min float64
}

// NewMinConfidence creates a filter that drops signals below a confidence floor.
func NewMinConfidence() Filter {
	return &minConfidenceFilter{}
}

func (f *minConfidenceFilter) Name() string { return "min_confidence" }

func (f *minConfidenceFilter) Validate(cfg *Config) error {
	f.min = 0
	if cfg == nil {
		return nil
	}
	if cfg.MinConfidence < 0 || cfg.MinConfidence > 1 {
		return fmt.Errorf("minimum confidence must be within [0, 1], got %v", cfg.MinConfidence)
	}
	f.min = cfg.MinConfidence
	return nil
}

func (f *minConfidenceFilter) Apply(_ context.Context, deps Deps, signals []skills.Signal) ([]skills.Signal, Step, error) {
	if f.min == 0 {
		return signals, Step{Initial: len(signals), Left: len(signals)}, nil
	}

	out, step := keep(signals, func(s skills.Signal) bool { return s.Confidence >= f.min })
	if deps.Logger != nil && step.Dropped > 0 {
		deps.Logger.Debug("dropping low confidence signals",
			zap.Float64("min_confidence", f.min),
			zap.Int("signals_left", step.Left),
		)
	}
	return out, step, nil
}

func (f *minConfidenceFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min_confidence": fmt.Sprintf("%.2f", f.min)},
	}
}

type categoriesFilter struct {
	toggle
	categories map[string]struct{}
	names      []string
}

// NewCategories creates a filter that keeps signals of the configured categories.
func NewCategories() Filter {
	return &categoriesFilter{}
}

func (f *categoriesFilter) Name() string { return "categories" }

func (f *categoriesFilter) Validate(cfg *Config) error {
	f.categories = nil
	f.names = nil
	if cfg == nil {
		return nil
	}
	for _, c := range cfg.Categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if f.categories == nil {
			f.categories = make(map[string]struct{})
		}
		f.categories[strings.ToLower(c)] = struct{}{}
		f.names = append(f.names, c)
	}
	return nil
}

func (f *categoriesFilter) Apply(_ context.Context, deps Deps, signals []skills.Signal) ([]skills.Signal, Step, error) {
	if len(f.categories) == 0 {
		return signals, Step{Initial: len(signals), Left: len(signals)}, nil
	}

	out, step := keep(signals, func(s skills.Signal) bool {
		_, ok := f.categories[strings.ToLower(s.Category)]
		return ok
	})
	if deps.Logger != nil && step.Dropped > 0 {
		deps.Logger.Debug("keeping selected categories",
			zap.Strings("categories", f.names),
			zap.Int("signals_left", step.Left),
		)
	}
	return out, step, nil
}

func (f *categoriesFilter) Status() Status {
	details := map[string]string{}
	if len(f.names) > 0 {
		details["categories"] = strings.Join(f.names, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type signalTypeFilter struct {
	toggle
	kind skills.SignalKind
}

// NewSignalType creates a filter that keeps only explicit or implicit signals.
func NewSignalType() Filter {
	return &signalTypeFilter{}
}

func (f *signalTypeFilter) Name() string { return "signal_type" }

func (f *signalTypeFilter) Validate(cfg *Config) error {
	f.kind = ""
	if cfg == nil {
		return nil
	}
	switch kind := skills.SignalKind(strings.ToLower(strings.TrimSpace(string(cfg.SignalType)))); kind {
	case "", skills.KindExplicit, skills.KindImplicit:
		f.kind = kind
		return nil
	default:
		return fmt.Errorf("unknown signal type %q", cfg.SignalType)
	}
}

func (f *signalTypeFilter) Apply(_ context.Context, _ Deps, signals []skills.Signal) ([]skills.Signal, Step, error) {
	if f.kind == "" {
		return signals, Step{Initial: len(signals), Left: len(signals)}, nil
	}
	out, step := keep(signals, func(s skills.Signal) bool { return s.Type == f.kind })
	return out, step, nil
}

func (f *signalTypeFilter) Status() Status {
	details := map[string]string{}
	if f.kind != "" {
		details["signal_type"] = string(f.kind)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type topFilter struct {
	toggle
	limit int
}

// NewTop creates a filter that keeps the first N signals.
func NewTop() Filter {
	return &topFilter{}
}

func (f *topFilter) Name() string { return "top" }

func (f *topFilter) Validate(cfg *Config) error {
	f.limit = 0
	if cfg == nil {
		return nil
	}
	if cfg.Top < 0 {
		return fmt.Errorf("top must not be negative, got %d", cfg.Top)
	}
	f.limit = cfg.Top
	return nil
}

func (f *topFilter) Apply(_ context.Context, _ Deps, signals []skills.Signal) ([]skills.Signal, Step, error) {
	initial := len(signals)
	if f.limit == 0 || initial <= f.limit {
		return signals, Step{Initial: initial, Left: initial}, nil
	}
	return signals[:f.limit], Step{Initial: initial, Dropped: initial - f.limit, Left: f.limit}, nil
}

func (f *topFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"limit": strconv.Itoa(f.limit)},
	}
}
