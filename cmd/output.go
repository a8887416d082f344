package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spigell/skillsense/internal/filtering"
	"github.com/spigell/skillsense/internal/matching"
	"github.com/spigell/skillsense/internal/schemas"
	"github.com/spigell/skillsense/internal/skills"
	"github.com/spigell/skillsense/internal/sources"
)

func printSignals(w io.Writer, signals []skills.Signal) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SKILL\tCATEGORY\tTYPE\tCONFIDENCE\tSOURCES")
	for _, s := range signals {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\n",
			skills.TitleCase(s.Name), s.Category, s.Type, s.Confidence, strings.Join(s.Sources, ", "))
	}
	tw.Flush()
}

func printProfile(w io.Writer, p *skills.Profile, signals []skills.Signal) {
	fmt.Fprintln(w, p.Summary)
	fmt.Fprintln(w)
	if len(signals) == 0 {
		return
	}
	printSignals(w, signals)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Framework alignment:")
	for _, a := range p.Stats.FrameworkAlignment {
		fmt.Fprintf(w, "  %s: %d/%d (%.0f%%)\n", a.Category, len(a.Covered), a.TargetTotal, a.Coverage*100)
	}
}

func printHighlights(w io.Writer, p *skills.Profile, catalog matching.ResourceLookup) {
	fmt.Fprintln(w, "Highlights:")
	for _, line := range skills.Highlights(p, 0) {
		fmt.Fprintf(w, "  - %s\n", line)
	}

	targets := skills.DevelopmentTargets(p, 0, 0)
	if len(targets) == 0 {
		return
	}
	links := catalog.ResourcesFor(targets)
	fmt.Fprintln(w, "Development targets:")
	for _, name := range targets {
		fmt.Fprintf(w, "  - %s: %s\n", skills.TitleCase(name), links[name])
	}
}

func printJobResult(w io.Writer, r *matching.JobResult) {
	fmt.Fprintf(w, "Coverage: %.0f%%\n", r.Coverage*100)
	fmt.Fprintf(w, "Matched: %s\n", joinOrNone(r.Matched))
	fmt.Fprintf(w, "Gaps: %s\n", joinOrNone(r.Gaps))
	if len(r.Recommendations) == 0 {
		return
	}

	keys := make([]string, 0, len(r.Recommendations))
	for k := range r.Recommendations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(w, "Recommendations:")
	for _, k := range keys {
		fmt.Fprintf(w, "  - %s: %s\n", k, r.Recommendations[k])
	}
}

func printTeamReport(w io.Writer, r *matching.TeamReport) {
	fmt.Fprintf(w, "Team size: %d\n", r.TeamSize)
	fmt.Fprintf(w, "Team skill coverage: %d\n", r.TeamSkillCoverage)
	fmt.Fprintf(w, "Unique strengths: %s\n", joinOrNone(r.UniqueStrengths))
	fmt.Fprintf(w, "Team gaps: %s\n", joinOrNone(r.TeamGapLabels))
}

func printRankings(w io.Writer, rankings []matching.Ranking) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCANDIDATE\tCOVERAGE\tMATCHED\tGAPS")
	for i, r := range rankings {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\t%s\n",
			i+1, r.Candidate, r.Result.Coverage, len(r.Result.Matched), joinOrNone(r.Result.Gaps))
	}
	tw.Flush()
}

func printFilters(w io.Writer, steps []filtering.Filter) {
	for _, st := range filtering.Describe(steps) {
		details := make([]string, 0, len(st.Details))
		for k, v := range st.Details {
			details = append(details, k+"="+v)
		}
		sort.Strings(details)
		if st.Reason != "" {
			details = append(details, "reason="+strconv.Quote(st.Reason))
		}
		fmt.Fprintf(w, "  %s enabled=%t %s\n", st.Name, st.Enabled, strings.Join(details, " "))
	}
}

// printPreview shows the public evidence as it would be shared, one
// "[name | kind]" block per document.
func printPreview(w io.Writer, docs []sources.Document) {
	fmt.Fprintln(w, "Public evidence:")
	merged := sources.MergeText(docs, sources.Public)
	if merged == "" {
		fmt.Fprintln(w, "  none")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintln(w, merged)
	fmt.Fprintln(w)
}

func printJSON(w io.Writer, v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(pretty))
	return err
}

// writeExport writes the schema-checked export payload to path.
func writeExport(path string, signals []skills.Signal) error {
	payload, err := skills.ExportJSON(signals)
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if err := schemas.ValidateExport(payload); err != nil {
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
