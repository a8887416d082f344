package matching

import (
	"sort"
	"strings"

	"github.com/spigell/skillsense/internal/skills"
)

// TeamMember is one line of a team skill inventory.
type TeamMember struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// TeamReport compares a candidate with a team.
type TeamReport struct {
	TeamSize          int      `json:"team_size"`
	TeamSkillCoverage int      `json:"team_skill_coverage"`
	UniqueStrengths   []string `json:"unique_strengths"`
	// TeamGaps holds normalized keys of team skills the candidate lacks.
	TeamGaps []string `json:"team_gaps"`
	// TeamGapLabels holds the first spelling typed for each entry of TeamGaps,
	// index aligned.
	TeamGapLabels []string `json:"team_gap_labels"`
}

// ParseTeam reads "Name: skill1, skill2" lines. Lines without a colon or
// without any skill are skipped.
func ParseTeam(raw string) []TeamMember {
	members := []TeamMember{}
	for _, line := range strings.Split(raw, "\n") {
		name, blob, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		var list []string
		for _, skill := range strings.Split(blob, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				list = append(list, skill)
			}
		}
		if len(list) == 0 {
			continue
		}

		members = append(members, TeamMember{Name: strings.TrimSpace(name), Skills: list})
	}
	return members
}

// CompareTeam reports the candidate's unique strengths and the team skills
// the candidate does not cover.
func CompareTeam(candidate []skills.Signal, members []TeamMember) *TeamReport {
	candidateSet := skills.SkillSet(candidate)

	team := make(map[string]string)
	for _, member := range members {
		for _, skill := range member.Skills {
			key := skills.Normalize(skill)
			if key == "" {
				continue
			}
			if _, ok := team[key]; !ok {
				team[key] = strings.TrimSpace(skill)
			}
		}
	}

	strengths := make([]string, 0)
	for key, signal := range candidateSet {
		if _, ok := team[key]; !ok {
			strengths = append(strengths, signal.Name)
		}
	}
	sort.Strings(strengths)

	gaps := make([]string, 0)
	for key := range team {
		if _, ok := candidateSet[key]; !ok {
			gaps = append(gaps, key)
		}
	}
	sort.Strings(gaps)

	labels := make([]string, 0, len(gaps))
	for _, key := range gaps {
		labels = append(labels, team[key])
	}

	return &TeamReport{
		TeamSize:          len(members),
		TeamSkillCoverage: len(team),
		UniqueStrengths:   strengths,
		TeamGaps:          gaps,
		TeamGapLabels:     labels,
	}
}
