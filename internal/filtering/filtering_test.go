package filtering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/skillsense/internal/skills"
)

func sample() []skills.Signal {
	return []skills.Signal{
		{Name: "python", Category: skills.CategoryTechnical, Type: skills.KindExplicit, Confidence: 0.9},
		{Name: "pandas", Category: skills.CategoryData, Type: skills.KindExplicit, Confidence: 0.7},
		{Name: "leadership", Category: skills.CategoryLeadership, Type: skills.KindImplicit, Confidence: 0.63},
		{Name: "mentorship", Category: skills.CategoryLeadership, Type: skills.KindImplicit, Confidence: 0.53},
	}
}

func names(signals []skills.Signal) []string {
	out := make([]string, 0, len(signals))
	for _, s := range signals {
		out = append(out, s.Name)
	}
	return out
}

func TestRunNoConfig(t *testing.T) {
	t.Parallel()

	out, err := Run(context.Background(), nil, Deps{}, Defaults(), sample())
	require.NoError(t, err)
	assert.Equal(t, names(sample()), names(out))
}

func TestRunFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    *Config
		expect []string
	}{
		{
			name:   "min confidence",
			cfg:    &Config{MinConfidence: 0.63},
			expect: []string{"python", "pandas", "leadership"},
		},
		{
			name:   "categories are case insensitive",
			cfg:    &Config{Categories: []string{"leadership & impact", " "}},
			expect: []string{"leadership", "mentorship"},
		},
		{
			name:   "signal type",
			cfg:    &Config{SignalType: skills.KindExplicit},
			expect: []string{"python", "pandas"},
		},
		{
			name:   "top",
			cfg:    &Config{Top: 2},
			expect: []string{"python", "pandas"},
		},
		{
			name:   "top runs after the other filters",
			cfg:    &Config{SignalType: skills.KindImplicit, Top: 1},
			expect: []string{"leadership"},
		},
		{
			name:   "nothing left",
			cfg:    &Config{MinConfidence: 0.95},
			expect: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := Run(context.Background(), tt.cfg, Deps{}, Defaults(), sample())
			require.NoError(t, err)
			assert.Equal(t, tt.expect, names(out))
		})
	}
}

func TestRunValidation(t *testing.T) {
	t.Parallel()

	for _, cfg := range []*Config{
		{MinConfidence: 1.5},
		{SignalType: "inferred"},
		{Top: -1},
	} {
		_, err := Run(context.Background(), cfg, Deps{}, Defaults(), sample())
		assert.Error(t, err, "config %+v", cfg)
	}
}

func TestRunDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	in := sample()
	_, err := Run(context.Background(), &Config{Top: 1}, Deps{}, Defaults(), in)
	require.NoError(t, err)
	assert.Len(t, in, 4)
}

func TestDisableByName(t *testing.T) {
	t.Parallel()

	steps := Defaults()
	DisableByName(steps, "min_confidence", "exploring weak signals")

	out, err := Run(context.Background(), &Config{MinConfidence: 0.8}, Deps{}, steps, sample())
	require.NoError(t, err)
	assert.Len(t, out, 4)

	statuses := Describe(steps)
	require.Len(t, statuses, 4)
	assert.Equal(t, "min_confidence", statuses[0].Name)
	assert.False(t, statuses[0].Enabled)
	assert.Equal(t, "exploring weak signals", statuses[0].Reason)
	assert.True(t, statuses[3].Enabled)
}

func TestDescribeDetails(t *testing.T) {
	t.Parallel()

	steps := Defaults()
	_, err := Run(context.Background(), &Config{MinConfidence: 0.5, Categories: []string{"Data & AI"}, Top: 3}, Deps{}, steps, sample())
	require.NoError(t, err)

	statuses := Describe(steps)
	assert.Equal(t, "0.50", statuses[0].Details["min_confidence"])
	assert.Equal(t, "Data & AI", statuses[1].Details["categories"])
	assert.Equal(t, "3", statuses[3].Details["limit"])
}

func TestRunLogsSteps(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)
	deps := Deps{Logger: zap.New(core)}

	_, err := Run(context.Background(), &Config{MinConfidence: 0.6}, deps, Defaults(), sample())
	require.NoError(t, err)

	steps := observed.FilterMessage("filter step").All()
	require.Len(t, steps, 4)
	ctx := steps[0].ContextMap()
	assert.Equal(t, "min_confidence", ctx["name"])
	assert.Equal(t, int64(1), ctx["dropped"])
	assert.Len(t, observed.FilterMessage("dropping low confidence signals").All(), 1)
}

func TestDisableEveryStep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "min_confidence", cfg: &Config{MinConfidence: 0.8}},
		{name: "categories", cfg: &Config{Categories: []string{"leadership & impact"}}},
		{name: "signal_type", cfg: &Config{SignalType: skills.KindImplicit}},
		{name: "top", cfg: &Config{Top: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			enabled, err := Run(context.Background(), tt.cfg, Deps{}, Defaults(), sample())
			require.NoError(t, err)
			assert.Less(t, len(enabled), 4)

			steps := Defaults()
			DisableByName(steps, tt.name, "requested")
			out, err := Run(context.Background(), tt.cfg, Deps{}, steps, sample())
			require.NoError(t, err)
			assert.Equal(t, names(sample()), names(out))

			for _, st := range Describe(steps) {
				if st.Name == tt.name {
					assert.False(t, st.Enabled)
					assert.Equal(t, "requested", st.Reason)
					continue
				}
				assert.True(t, st.Enabled, st.Name)
			}
		})
	}
}

func TestDisabledStepSkipsValidation(t *testing.T) {
	t.Parallel()

	steps := Defaults()
	DisableByName(steps, "top", "unbounded")

	out, err := Run(context.Background(), &Config{Top: -1}, Deps{}, steps, sample())
	require.NoError(t, err)
	assert.Len(t, out, 4)
}
