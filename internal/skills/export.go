package skills

import (
	"encoding/json"
	"sort"
	"strings"
)

const (
	defaultHighlights     = 4
	highlightSnippetRunes = 120

	// DevelopmentThreshold marks signals weak enough to suggest learning paths.
	DevelopmentThreshold = 0.65
	defaultDevelopment   = 5
)

// ExportedSignal is the interchange shape of a signal. Field names are part
// of the export contract and must not change.
type ExportedSignal struct {
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Type       SignalKind `json:"type"`
	Confidence float64    `json:"confidence"`
	Sources    []string   `json:"sources"`
	Evidence   []Evidence `json:"evidence"`
}

// Export converts signals into the interchange shape, keeping their order.
func Export(signals []Signal) []ExportedSignal {
	payload := make([]ExportedSignal, 0, len(signals))
	for _, s := range signals {
		srcs := append([]string{}, s.Sources...)
		evidence := append([]Evidence{}, s.Evidence...)
		payload = append(payload, ExportedSignal{
			Name:       s.Name,
			Category:   s.Category,
			Type:       s.Type,
			Confidence: s.Confidence,
			Sources:    srcs,
			Evidence:   evidence,
		})
	}
	return payload
}

// ExportJSON renders the export payload as indented JSON.
func ExportJSON(signals []Signal) ([]byte, error) {
	return json.MarshalIndent(Export(signals), "", "  ")
}

// Highlights returns CV-ready bullet lines for the strongest signals.
// A non-positive limit selects the default of four.
func Highlights(p *Profile, limit int) []string {
	if p == nil {
		return []string{}
	}
	if limit <= 0 {
		limit = defaultHighlights
	}

	out := make([]string, 0, limit)
	for i := 0; i < len(p.Signals) && i < limit; i++ {
		s := p.Signals[i]
		bullet := TitleCase(s.Name) + " (" + s.Category + ") - confidence " + FormatConfidence(s.Confidence)
		if len(s.Evidence) > 0 && s.Evidence[0].Snippet != "" {
			bullet += "; evidence: " + truncateRunes(s.Evidence[0].Snippet, highlightSnippetRunes) + "..."
		}
		out = append(out, bullet)
	}
	return out
}

// DevelopmentTargets lists the names of signals below threshold, weakest
// first, capped at limit. Non-positive arguments select the defaults.
func DevelopmentTargets(p *Profile, threshold float64, limit int) []string {
	if p == nil {
		return []string{}
	}
	if threshold <= 0 {
		threshold = DevelopmentThreshold
	}
	if limit <= 0 {
		limit = defaultDevelopment
	}

	weak := make([]Signal, 0)
	for _, s := range p.Signals {
		if s.Confidence < threshold {
			weak = append(weak, s)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].Confidence < weak[j].Confidence
	})

	out := make([]string, 0, limit)
	for i := 0; i < len(weak) && i < limit; i++ {
		out = append(out, weak[i].Name)
	}
	return out
}

func truncateRunes(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
