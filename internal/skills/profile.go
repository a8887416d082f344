package skills

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spigell/skillsense/internal/logger"
	"github.com/spigell/skillsense/internal/sources"
)

const (
	topStrengths    = 5
	topSourcesLimit = 3

	emptySummary = "No skills detected yet. Add more sources to unlock hidden strengths."
)

// Signal is a detected skill with provenance and confidence.
type Signal struct {
	Name       string
	Category   string
	Type       SignalKind
	Confidence float64
	Sources    []string
	Evidence   []Evidence
	// Mentions is the number of occurrences merged into the signal.
	Mentions int

	key string
}

// Key returns the normalized name used for set membership.
func (s Signal) Key() string {
	if s.key == "" {
		return Normalize(s.Name)
	}
	return s.key
}

// CategoryCount is one row of the category distribution, kept in order of
// first appearance in the sorted signal list.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Alignment is the coverage of one framework category.
type Alignment struct {
	Category    string   `json:"category"`
	Covered     []string `json:"covered"`
	Coverage    float64  `json:"coverage"`
	TargetTotal int      `json:"target_total"`
}

// Stats aggregates a profile.
type Stats struct {
	SourceCount          int                        `json:"source_count"`
	ExplicitCount        int                        `json:"explicit_count"`
	ImplicitCount        int                        `json:"implicit_count"`
	CategoryDistribution []CategoryCount            `json:"category_distribution"`
	FrameworkAlignment   []Alignment                `json:"framework_alignment"`
	AvgConfidence        float64                    `json:"avg_confidence"`
	SourcesVisibility    map[sources.Visibility]int `json:"sources_visibility"`
	TopSources           []string                   `json:"top_sources"`
}

// Profile is the immutable result of a build.
type Profile struct {
	Signals []Signal
	Stats   Stats
	Summary string
}

// Builder runs extraction, aggregation and scoring over document batches.
// A Builder is safe for concurrent use: every Build call keeps its state local.
type Builder struct {
	lexicon   *Lexicon
	extractor *Extractor
	logger    *zap.Logger
}

// NewBuilder compiles the lexicon and returns a Builder. A nil logger is
// replaced by a no-op one.
func NewBuilder(lex *Lexicon, log *zap.Logger) (*Builder, error) {
	if lex == nil {
		lex = DefaultLexicon()
	}

	extractor, err := NewExtractor(lex)
	if err != nil {
		return nil, fmt.Errorf("building extractor: %w", err)
	}

	return &Builder{
		lexicon:   lex,
		extractor: extractor,
		logger:    logger.OrNop(log),
	}, nil
}

// Build produces a profile from the documents. Blank documents are skipped;
// an empty batch yields an empty profile.
func (b *Builder) Build(docs []sources.Document) *Profile {
	kept := make([]sources.Document, 0, len(docs))
	for _, doc := range docs {
		if strings.TrimSpace(doc.Text) == "" {
			continue
		}
		kept = append(kept, doc)
	}

	registry := NewRegistry()
	for _, doc := range kept {
		events := b.extractor.Extract(doc)
		registry.Register(events)

		b.logger.Debug("document scanned",
			zap.String("source", doc.Name),
			zap.Int("occurrences", len(events)),
		)
	}

	signals := registry.Signals()
	stats := b.stats(signals, kept)

	b.logger.Debug("profile built",
		zap.Int("sources", stats.SourceCount),
		zap.Int("skills", registry.Len()),
		zap.Int("explicit", stats.ExplicitCount),
		zap.Int("implicit", stats.ImplicitCount),
		zap.Float64("avg_confidence", stats.AvgConfidence),
	)

	return &Profile{
		Signals: signals,
		Stats:   stats,
		Summary: Summarize(signals, stats),
	}
}

func (b *Builder) stats(signals []Signal, docs []sources.Document) Stats {
	stats := Stats{
		SourceCount:          len(docs),
		CategoryDistribution: []CategoryCount{},
		FrameworkAlignment:   make([]Alignment, 0, len(b.lexicon.Framework)),
		SourcesVisibility:    make(map[sources.Visibility]int),
		TopSources:           []string{},
	}

	categoryIdx := make(map[string]int)
	total := 0.0
	for _, s := range signals {
		switch s.Type {
		case KindExplicit:
			stats.ExplicitCount++
		case KindImplicit:
			stats.ImplicitCount++
		}

		idx, ok := categoryIdx[s.Category]
		if !ok {
			idx = len(stats.CategoryDistribution)
			categoryIdx[s.Category] = idx
			stats.CategoryDistribution = append(stats.CategoryDistribution, CategoryCount{Category: s.Category})
		}
		stats.CategoryDistribution[idx].Count++

		total += s.Confidence
	}

	for _, category := range b.lexicon.Framework {
		targets := make(map[string]struct{}, len(category.Skills))
		for _, skill := range category.Skills {
			if key := Normalize(skill); key != "" {
				targets[key] = struct{}{}
			}
		}

		coveredSet := make(map[string]struct{})
		for _, s := range signals {
			if s.Category != category.Name {
				continue
			}
			if _, ok := targets[s.Key()]; ok {
				coveredSet[s.Key()] = struct{}{}
			}
		}

		covered := make([]string, 0, len(coveredSet))
		for key := range coveredSet {
			covered = append(covered, key)
		}
		sort.Strings(covered)

		stats.FrameworkAlignment = append(stats.FrameworkAlignment, Alignment{
			Category:    category.Name,
			Covered:     covered,
			Coverage:    ratio(len(covered), len(targets)),
			TargetTotal: len(targets),
		})
	}

	if len(signals) > 0 {
		stats.AvgConfidence = round2(total / float64(len(signals)))
	}

	for i, doc := range docs {
		stats.SourcesVisibility[doc.Visibility]++
		if i < topSourcesLimit {
			stats.TopSources = append(stats.TopSources, doc.Name)
		}
	}

	return stats
}

// Summarize renders the one-paragraph profile description from the stats.
func Summarize(signals []Signal, stats Stats) string {
	if len(signals) == 0 {
		return emptySummary
	}

	top := make([]string, 0, topStrengths)
	for i := 0; i < len(signals) && i < topStrengths; i++ {
		top = append(top, TitleCase(signals[i].Name))
	}

	categories := make([]string, 0, len(stats.CategoryDistribution))
	for _, c := range stats.CategoryDistribution {
		categories = append(categories, fmt.Sprintf("%s (%d)", c.Category, c.Count))
	}

	return fmt.Sprintf(
		"Identified %d explicit and %d implicit skills across %d sources. Top strengths: %s. "+
			"Coverage spans %s with an average confidence of %s.",
		stats.ExplicitCount, stats.ImplicitCount, stats.SourceCount,
		strings.Join(top, ", "),
		strings.Join(categories, ", "),
		FormatConfidence(stats.AvgConfidence),
	)
}

// SkillSet maps normalized keys to signals.
func SkillSet(signals []Signal) map[string]Signal {
	set := make(map[string]Signal, len(signals))
	for _, s := range signals {
		set[s.Key()] = s
	}
	return set
}

// TitleCase capitalizes every word of a skill name for display.
func TitleCase(name string) string {
	return cases.Title(language.Und).String(name)
}

// FormatConfidence prints a confidence without trailing zeros.
func FormatConfidence(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return round2(float64(n) / float64(d))
}
