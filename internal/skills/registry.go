package skills

import (
	"sort"
)

// MaxEvidence caps the evidence kept for a single signal.
const MaxEvidence = 3

// Evidence is a snippet supporting a signal.
type Evidence struct {
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
}

type entry struct {
	// names collects every display candidate per kind; the winner is picked at
	// finalize time so the outcome does not depend on arrival order.
	names      map[SignalKind]map[string]string
	mentions   int
	sourcesSet map[string]struct{}
	evidence   []Evidence
}

// Registry merges occurrences into one entry per normalized skill name.
// A Registry belongs to a single build call and is not safe for concurrent use.
type Registry struct {
	entries map[string]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds every occurrence to the registry.
func (r *Registry) Register(events []Occurrence) {
	for _, ev := range events {
		r.RegisterOne(ev)
	}
}

// RegisterOne adds a single occurrence. Occurrences whose skill normalizes to
// an empty key are ignored.
func (r *Registry) RegisterOne(ev Occurrence) {
	key := Normalize(ev.Skill)
	if key == "" {
		return
	}

	e, ok := r.entries[key]
	if !ok {
		e = &entry{
			names:      make(map[SignalKind]map[string]string),
			sourcesSet: make(map[string]struct{}),
		}
		r.entries[key] = e
	}

	if e.names[ev.Kind] == nil {
		e.names[ev.Kind] = make(map[string]string)
	}
	if _, seen := e.names[ev.Kind][ev.Skill]; !seen {
		e.names[ev.Kind][ev.Skill] = ev.Category
	}

	e.mentions++
	e.sourcesSet[ev.Source] = struct{}{}
	if ev.Snippet != "" && len(e.evidence) < MaxEvidence {
		e.evidence = append(e.evidence, Evidence{Source: ev.Source, Snippet: ev.Snippet})
	}
}

// Len returns the number of distinct skills registered.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Signals scores every entry and returns them sorted by confidence
// descending, then by name descending.
func (r *Registry) Signals() []Signal {
	signals := make([]Signal, 0, len(r.entries))
	for key, e := range r.entries {
		kind, name, category := e.resolve()

		srcs := make([]string, 0, len(e.sourcesSet))
		for s := range e.sourcesSet {
			srcs = append(srcs, s)
		}
		sort.Strings(srcs)

		evidence := make([]Evidence, len(e.evidence))
		copy(evidence, e.evidence)

		signals = append(signals, Signal{
			Name:       name,
			Category:   category,
			Type:       kind,
			Confidence: Score(kind, e.mentions, len(srcs)),
			Sources:    srcs,
			Evidence:   evidence,
			Mentions:   e.mentions,
			key:        key,
		})
	}

	SortSignals(signals)
	return signals
}

// resolve picks kind, display name and category. Explicit detection wins over
// implicit; among names of the winning kind the smallest one is used.
func (e *entry) resolve() (SignalKind, string, string) {
	kind := KindImplicit
	if len(e.names[KindExplicit]) > 0 {
		kind = KindExplicit
	}

	var name string
	for candidate := range e.names[kind] {
		if name == "" || candidate < name {
			name = candidate
		}
	}

	category := e.names[kind][name]
	if category == "" {
		category = DefaultExplicitCategory
		if kind == KindImplicit {
			category = DefaultImplicitCategory
		}
	}

	return kind, name, category
}

// SortSignals orders signals by confidence descending, breaking ties by name
// descending and then by key.
func SortSignals(signals []Signal) {
	sort.SliceStable(signals, func(i, j int) bool {
		a, b := signals[i], signals[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Name != b.Name {
			return a.Name > b.Name
		}
		return a.Key() > b.Key()
	})
}
