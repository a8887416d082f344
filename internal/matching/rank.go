package matching

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/skillsense/internal/logger"
	"github.com/spigell/skillsense/internal/sources"
)

const defaultWorkers = 4

// Candidate is a named batch of evidence documents.
type Candidate struct {
	Name      string
	Documents []sources.Document
}

// Ranking is one candidate's position against a job.
type Ranking struct {
	Candidate string     `json:"candidate"`
	Signals   int        `json:"signals"`
	Result    *JobResult `json:"result"`
}

// Rank builds every candidate profile in parallel and matches it against the
// job text. Results are sorted by coverage, then matched count, both
// descending, then by candidate name.
func (m *Matcher) Rank(ctx context.Context, candidates []Candidate, jobText string, workers int, log *zap.Logger) ([]Ranking, error) {
	log = logger.OrNop(log)
	if workers <= 0 {
		workers = defaultWorkers
	}

	jobProfile := m.BuildJob(jobText)
	rankings := make([]Ranking, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, candidate := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("ranking %s: %w", candidate.Name, err)
			}

			profile := m.builder.Build(candidate.Documents)
			result := m.compare(profile.Signals, jobProfile)
			rankings[i] = Ranking{
				Candidate: candidate.Name,
				Signals:   len(profile.Signals),
				Result:    result,
			}

			logger.WithCandidate(log, candidate.Name).Debug("candidate ranked",
				zap.Int("signals", len(profile.Signals)),
				zap.Float64("coverage", result.Coverage),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		a, b := rankings[i], rankings[j]
		if a.Result.Coverage != b.Result.Coverage {
			return a.Result.Coverage > b.Result.Coverage
		}
		if len(a.Result.Matched) != len(b.Result.Matched) {
			return len(a.Result.Matched) > len(b.Result.Matched)
		}
		return a.Candidate < b.Candidate
	})

	return rankings, nil
}
