package skills

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/skillsense/internal/sources"
)

const scenarioText = "Led a team to deliver a Python microservice using Docker and mentored two engineers."

func newBuilder(t *testing.T) *Builder {
	t.Helper()

	b, err := NewBuilder(nil, nil)
	require.NoError(t, err)
	return b
}

func doc(name, text string) sources.Document {
	return sources.Document{Name: name, Text: text, Visibility: sources.Private, Origin: sources.OriginManual}
}

func TestBuildScenario(t *testing.T) {
	t.Parallel()

	p := newBuilder(t).Build([]sources.Document{doc("Resume", scenarioText)})

	set := SkillSet(p.Signals)
	require.Len(t, set, 4)

	for _, name := range []string{"python", "docker"} {
		s, ok := set[name]
		require.True(t, ok, "missing %s", name)
		assert.Equal(t, KindExplicit, s.Type)
		assert.Equal(t, CategoryTechnical, s.Category)
		assert.Equal(t, 0.63, s.Confidence)
		assert.Equal(t, []string{"Resume"}, s.Sources)
		require.Len(t, s.Evidence, 1)
		assert.Contains(t, strings.ToLower(s.Evidence[0].Snippet), name)
	}

	for _, name := range []string{"leadership", "mentorship"} {
		s, ok := set[name]
		require.True(t, ok, "missing %s", name)
		assert.Equal(t, KindImplicit, s.Type)
		assert.Equal(t, CategoryLeadership, s.Category)
		assert.Equal(t, 0.53, s.Confidence)
	}

	for _, s := range p.Signals {
		assert.Greater(t, s.Confidence, 0.45)
		assert.Less(t, s.Confidence, 0.98)
	}

	assert.Equal(t, 1, p.Stats.SourceCount)
	assert.Equal(t, 2, p.Stats.ExplicitCount)
	assert.Equal(t, 2, p.Stats.ImplicitCount)
	assert.Equal(t, 0.58, p.Stats.AvgConfidence)
	assert.Equal(t, []string{"Resume"}, p.Stats.TopSources)
	assert.Equal(t, map[sources.Visibility]int{sources.Private: 1}, p.Stats.SourcesVisibility)
	assert.Equal(t, []CategoryCount{
		{Category: CategoryTechnical, Count: 2},
		{Category: CategoryLeadership, Count: 2},
	}, p.Stats.CategoryDistribution)

	assert.Equal(t,
		"Identified 2 explicit and 2 implicit skills across 1 sources. "+
			"Top strengths: Python, Docker, Mentorship, Leadership. "+
			"Coverage spans Technical Foundation (2), Leadership & Impact (2) with an average confidence of 0.58.",
		p.Summary,
	)
}

func TestBuildOrdering(t *testing.T) {
	t.Parallel()

	p := newBuilder(t).Build([]sources.Document{doc("Resume", scenarioText)})

	names := make([]string, 0, len(p.Signals))
	for _, s := range p.Signals {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"python", "docker", "mentorship", "leadership"}, names)
}

func TestBuildFrameworkAlignment(t *testing.T) {
	t.Parallel()

	p := newBuilder(t).Build([]sources.Document{doc("Resume", scenarioText)})
	require.Len(t, p.Stats.FrameworkAlignment, 4)

	byCategory := make(map[string]Alignment)
	for _, a := range p.Stats.FrameworkAlignment {
		byCategory[a.Category] = a
	}

	technical := byCategory[CategoryTechnical]
	assert.Equal(t, []string{"docker", "python"}, technical.Covered)
	assert.Equal(t, 15, technical.TargetTotal)
	assert.Equal(t, 0.13, technical.Coverage)

	leadership := byCategory[CategoryLeadership]
	assert.Equal(t, []string{"leadership", "mentorship"}, leadership.Covered)
	assert.Equal(t, 0.29, leadership.Coverage)

	data := byCategory[CategoryData]
	assert.Empty(t, data.Covered)
	assert.Equal(t, 0.0, data.Coverage)
}

func TestBuildEvidenceCap(t *testing.T) {
	t.Parallel()

	docs := make([]sources.Document, 0, 10)
	for i := range 10 {
		docs = append(docs, doc(fmt.Sprintf("Doc %d", i), strings.Repeat("Python scripting. ", 5)))
	}

	p := newBuilder(t).Build(docs)
	s, ok := SkillSet(p.Signals)["python"]
	require.True(t, ok)

	assert.Equal(t, 50, s.Mentions)
	assert.Len(t, s.Sources, 10)
	assert.Len(t, s.Evidence, MaxEvidence)
	assert.Equal(t, 0.98, s.Confidence)
}

func TestBuildIsCommutative(t *testing.T) {
	t.Parallel()

	a := doc("Bio", "Led the data migration and presented the roadmap.")
	b := doc("Notes", "Strong leadership across Python and SQL projects.")

	builder := newBuilder(t)
	forward := builder.Build([]sources.Document{a, b})
	backward := builder.Build([]sources.Document{b, a})

	require.Equal(t, len(forward.Signals), len(backward.Signals))
	for i := range forward.Signals {
		f, r := forward.Signals[i], backward.Signals[i]
		assert.Equal(t, f.Name, r.Name)
		assert.Equal(t, f.Type, r.Type)
		assert.Equal(t, f.Category, r.Category)
		assert.Equal(t, f.Confidence, r.Confidence)
		assert.Equal(t, f.Sources, r.Sources)
		assert.Equal(t, f.Mentions, r.Mentions)
	}
	assert.Equal(t, forward.Stats.ExplicitCount, backward.Stats.ExplicitCount)
	assert.Equal(t, forward.Stats.AvgConfidence, backward.Stats.AvgConfidence)
}

func TestBuildExplicitWinsOverImplicit(t *testing.T) {
	t.Parallel()

	p := newBuilder(t).Build([]sources.Document{
		doc("Bio", "Led the data migration."),
		doc("Notes", "Strong leadership at every level."),
	})

	s, ok := SkillSet(p.Signals)["leadership"]
	require.True(t, ok)
	assert.Equal(t, KindExplicit, s.Type)
	assert.Equal(t, CategoryLeadership, s.Category)
	assert.Equal(t, 2, s.Mentions)
	assert.Equal(t, []string{"Bio", "Notes"}, s.Sources)
	assert.Equal(t, 0.76, s.Confidence)
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	builder := newBuilder(t)
	for _, docs := range [][]sources.Document{nil, {doc("Blank", "  \n ")}} {
		p := builder.Build(docs)

		assert.Empty(t, p.Signals)
		assert.Equal(t, 0, p.Stats.SourceCount)
		assert.Equal(t, 0.0, p.Stats.AvgConfidence)
		assert.NotNil(t, p.Stats.CategoryDistribution)
		assert.NotNil(t, p.Stats.TopSources)
		assert.Equal(t, emptySummary, p.Summary)
	}
}

func TestBuildTopSourcesLimit(t *testing.T) {
	t.Parallel()

	docs := []sources.Document{
		doc("One", "python"), doc("Two", "docker"), doc("Three", "aws"), doc("Four", "sql"),
	}
	docs[1].Visibility = sources.Public

	p := newBuilder(t).Build(docs)
	assert.Equal(t, []string{"One", "Two", "Three"}, p.Stats.TopSources)
	assert.Equal(t, 4, p.Stats.SourceCount)
	assert.Equal(t, 1, p.Stats.SourcesVisibility[sources.Public])
	assert.Equal(t, 3, p.Stats.SourcesVisibility[sources.Private])
}

func TestBuildLogsProfile(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)
	b, err := NewBuilder(DefaultLexicon(), zap.New(core))
	require.NoError(t, err)

	b.Build([]sources.Document{doc("Resume", scenarioText)})

	entries := observed.FilterMessage("profile built").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, int64(2), ctx["explicit"])
	assert.Equal(t, int64(2), ctx["implicit"])
	assert.Equal(t, int64(4), ctx["skills"])

	assert.Len(t, observed.FilterMessage("document scanned").All(), 1)
}

func TestSortSignalsTies(t *testing.T) {
	t.Parallel()

	signals := []Signal{
		{Name: "aws", Confidence: 0.63},
		{Name: "sql", Confidence: 0.63},
		{Name: "python", Confidence: 0.9},
	}
	SortSignals(signals)

	assert.Equal(t, "python", signals[0].Name)
	assert.Equal(t, "sql", signals[1].Name)
	assert.Equal(t, "aws", signals[2].Name)
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Machine Learning", TitleCase("machine learning"))
	assert.Equal(t, "Python", TitleCase("python"))
}

func TestFormatConfidence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.6", FormatConfidence(0.60))
	assert.Equal(t, "0.63", FormatConfidence(0.63))
}
