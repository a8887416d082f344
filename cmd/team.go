package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillsense/internal/logger"
	"github.com/spigell/skillsense/internal/matching"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Compare a skill profile with a team inventory",
	Long: "The team inventory has one member per line in the form 'Name: skill, skill'. " +
		"Lines without a colon are ignored.",
	Example: "  skillsense team -p resume.md --team team.txt",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return team(cmd)
	},
}

func init() {
	rootCmd.AddCommand(teamCmd)

	addDocumentFlags(teamCmd)
	teamCmd.Flags().String("team", "", "team inventory file (.txt, .md)")
	teamCmd.Flags().String("team-text", "", "team inventory text; takes precedence over --team")
	teamCmd.Flags().Bool("format-json", false, "print the report as JSON")
}

func team(cmd *cobra.Command) error {
	e := setup(cmd)

	docs, err := loadDocuments(cmd, e.logger)
	if err != nil {
		return err
	}
	lg := logger.WithSources(e.logger, len(docs))

	teamFile, _ := cmd.Flags().GetString("team")
	teamInline, _ := cmd.Flags().GetString("team-text")
	raw, err := readText(teamInline, teamFile, "team inventory")
	if err != nil {
		return err
	}

	members := matching.ParseTeam(raw)
	if len(members) == 0 {
		lg.Warn("team inventory has no members", zap.String("hint", "use lines like 'Asha: cloud, security'"))
	}

	p := e.builder.Build(docs)
	report := matching.CompareTeam(p.Signals, members)

	lg.Info("team compared",
		zap.Int("team_size", report.TeamSize),
		zap.Int("unique_strengths", len(report.UniqueStrengths)),
		zap.Int("team_gaps", len(report.TeamGaps)),
	)

	if asJSON, _ := cmd.Flags().GetBool("format-json"); asJSON {
		return printJSON(cmd.OutOrStdout(), report)
	}
	printTeamReport(cmd.OutOrStdout(), report)
	return nil
}
