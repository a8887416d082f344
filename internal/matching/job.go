// Package matching compares skill profiles against jobs and teams.
package matching

import (
	"math"
	"sort"

	"github.com/spigell/skillsense/internal/skills"
	"github.com/spigell/skillsense/internal/sources"
)

const jobSourceName = "Job Posting"

// ResourceLookup resolves learning resources for skill names.
type ResourceLookup interface {
	ResourcesFor(skills []string) map[string]string
}

// JobResult is the outcome of matching a profile against a job posting.
type JobResult struct {
	Coverage        float64           `json:"coverage"`
	Matched         []string          `json:"matched"`
	Gaps            []string          `json:"gaps"`
	Recommendations map[string]string `json:"recommendations"`
	JobProfile      *skills.Profile   `json:"-"`
}

// Matcher matches profiles against job texts.
type Matcher struct {
	builder   *skills.Builder
	resources ResourceLookup
}

// NewMatcher returns a Matcher. resources may be nil, in which case no
// recommendations are produced.
func NewMatcher(builder *skills.Builder, resources ResourceLookup) *Matcher {
	return &Matcher{builder: builder, resources: resources}
}

// MatchJob builds a skill set from the job text and compares it with the
// candidate signals. Blank text or a job without detectable skills yields a
// zero result, never an error.
func (m *Matcher) MatchJob(candidate []skills.Signal, jobText string) *JobResult {
	return m.compare(candidate, m.BuildJob(jobText))
}

// BuildJob turns job text into a profile built from one synthetic public
// document. Blank text yields an empty profile.
func (m *Matcher) BuildJob(jobText string) *skills.Profile {
	doc, ok := sources.FromText(jobSourceName, jobText, "job", sources.Public)
	if !ok {
		return &skills.Profile{Signals: []skills.Signal{}}
	}
	return m.builder.Build([]sources.Document{doc})
}

func (m *Matcher) compare(candidate []skills.Signal, jobProfile *skills.Profile) *JobResult {
	result := &JobResult{
		Matched:         []string{},
		Gaps:            []string{},
		Recommendations: map[string]string{},
		JobProfile:      jobProfile,
	}

	jobSet := skills.SkillSet(jobProfile.Signals)
	if len(jobSet) == 0 {
		return result
	}

	candidateSet := skills.SkillSet(candidate)
	matched := make(map[string]struct{})
	gaps := make(map[string]struct{})
	hits := 0
	for key, signal := range jobSet {
		if _, ok := candidateSet[key]; ok {
			matched[signal.Name] = struct{}{}
			hits++
		} else {
			gaps[signal.Name] = struct{}{}
		}
	}

	result.Matched = sortedKeys(matched)
	result.Gaps = sortedKeys(gaps)
	result.Coverage = round2(float64(hits) / float64(len(jobSet)))

	if m.resources != nil && len(result.Gaps) > 0 {
		result.Recommendations = m.resources.ResourcesFor(result.Gaps)
	}

	return result
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
