package skills

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/skillsense/internal/sources"
)

func extract(t *testing.T, text string) []Occurrence {
	t.Helper()

	e, err := NewExtractor(DefaultLexicon())
	require.NoError(t, err)
	return e.Extract(sources.Document{Name: "doc", Text: text, Visibility: sources.Private})
}

func skillNames(events []Occurrence, kind SignalKind) []string {
	names := []string{}
	for _, ev := range events {
		if ev.Kind == kind {
			names = append(names, ev.Skill)
		}
	}
	return names
}

func TestExtractWholeWords(t *testing.T) {
	t.Parallel()

	events := extract(t, "JavaScript developer building scalable services")
	names := skillNames(events, KindExplicit)

	assert.Contains(t, names, "javascript")
	assert.NotContains(t, names, "java", "java must not match inside javascript")
	assert.NotContains(t, names, "scala", "scala must not match inside scalable")
}

func TestExtractSymbolTerms(t *testing.T) {
	t.Parallel()

	names := skillNames(extract(t, "Shipped C++ and C# tooling with a CI/CD pipeline on Node.js"), KindExplicit)

	assert.Contains(t, names, "c++")
	assert.Contains(t, names, "c#")
	assert.Contains(t, names, "ci/cd")
	assert.Contains(t, names, "node.js")
}

func TestExtractIgnoresEverydayWords(t *testing.T) {
	t.Parallel()

	prose := "Covered for the rest of the team, moved swiftly, sparked a debate on job security and did excel at hiring."
	assert.Empty(t, skillNames(extract(t, prose), KindExplicit))

	names := skillNames(extract(t, "Designed a REST API on Apache Spark, ran cybersecurity reviews from Microsoft Excel."), KindExplicit)
	assert.ElementsMatch(t, []string{"rest api", "apache spark", "cybersecurity", "microsoft excel"}, names)
}

func TestExtractMultiWordTermsAcrossWhitespace(t *testing.T) {
	t.Parallel()

	names := skillNames(extract(t, "Applied MACHINE\nlearning to churn data"), KindExplicit)
	assert.Contains(t, names, "machine learning")
}

func TestExtractImplicit(t *testing.T) {
	t.Parallel()

	events := extract(t, "Led the platform group, mentored juniors and troubleshooted outages.")
	names := skillNames(events, KindImplicit)

	assert.ElementsMatch(t, []string{"leadership", "mentorship", "problem solving"}, names)
	for _, ev := range events {
		if ev.Skill == "problem solving" {
			assert.Equal(t, CategoryTechnical, ev.Category)
		}
	}
}

func TestExtractCategoriesFromFramework(t *testing.T) {
	t.Parallel()

	for _, ev := range extract(t, "pandas, scrum and kafka") {
		switch ev.Skill {
		case "pandas":
			assert.Equal(t, CategoryData, ev.Category)
		case "scrum":
			assert.Equal(t, CategoryDelivery, ev.Category)
		case "kafka":
			assert.Equal(t, DefaultExplicitCategory, ev.Category, "terms outside the framework use the default category")
		}
	}
}

func TestExtractBlankDocument(t *testing.T) {
	t.Parallel()

	assert.Empty(t, extract(t, "   \n\t "))
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("a", 200) + " python " + strings.Repeat("b", 200)
	start := strings.Index(text, "python")
	got := snippet(text, start, start+len("python"))

	assert.Contains(t, got, "python")
	assert.LessOrEqual(t, len(got), 2*snippetWindow+len("python"))

	multiline := snippet("first line\npython\nlast line", 11, 17)
	assert.Equal(t, "first line python last line", multiline)
}

func TestSnippetRuneBoundaries(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("é", 100) + "python" + strings.Repeat("ü", 100)
	start := strings.Index(text, "python")
	got := snippet(text, start, start+len("python"))

	assert.Contains(t, got, "python")
	assert.True(t, utf8.ValidString(got), "snippet must not split multi-byte runes")
}

func TestSnippetCountsRunes(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("é", 120) + " python " + strings.Repeat("ü", 120)
	start := strings.Index(text, "python")
	got := snippet(text, start, start+len("python"))

	assert.Equal(t, strings.Repeat("é", 89)+" python "+strings.Repeat("ü", 89), got)
	assert.Equal(t, 2*snippetWindow+len("python"), utf8.RuneCountInString(got))

	cyrillic := strings.Repeat("д", 30) + " docker " + strings.Repeat("ж", 30)
	start = strings.Index(cyrillic, "docker")
	assert.Equal(t, cyrillic, snippet(cyrillic, start, start+len("docker")), "short texts are kept whole")
}

func TestExtractImplicitUnicodeBoundaries(t *testing.T) {
	t.Parallel()

	assert.NotContains(t, skillNames(extract(t, "Projekt Éled"), KindImplicit), "leadership")
	assert.NotContains(t, skillNames(extract(t, "ledé la migration"), KindImplicit), "leadership")
	assert.Contains(t, skillNames(extract(t, "Zoé led the migration"), KindImplicit), "leadership")
	assert.Contains(t, skillNames(extract(t, "Équipe: led, mentored"), KindImplicit), "mentorship")
}

func TestExtractImplicitUnanchoredPattern(t *testing.T) {
	t.Parallel()

	lex := DefaultLexicon()
	lex.Implicit = []ImplicitSkill{{Name: "scheduling", Patterns: []string{"schedul"}}}
	e, err := NewExtractor(lex)
	require.NoError(t, err)

	events := e.Extract(sources.Document{Name: "doc", Text: "Rescheduled the release", Visibility: sources.Private})
	assert.Contains(t, skillNames(events, KindImplicit), "scheduling", "patterns without \\b are not boundary checked")
}

func TestNewExtractorRejectsBadPattern(t *testing.T) {
	t.Parallel()

	lex := DefaultLexicon()
	lex.Implicit = []ImplicitSkill{{Name: "broken", Patterns: []string{"(unclosed"}}}

	_, err := NewExtractor(lex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
