package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillsense/internal/logger"
	"github.com/spigell/skillsense/internal/matching"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidates against a job posting",
	Long: "Every --candidate takes the form name=directory; all .txt, .md and .html files " +
		"in the directory become that candidate's private evidence.",
	Example: "  skillsense rank --job posting.md --candidate asha=./asha --candidate kofi=./kofi",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringArray("candidate", nil, "candidate as name=directory; repeatable")
	rankCmd.Flags().String("job", "", "job posting file (.txt, .md, .html)")
	rankCmd.Flags().String("job-text", "", "job posting text; takes precedence over --job")
	rankCmd.Flags().Int("workers", 0, "number of candidates processed in parallel")
	rankCmd.Flags().Bool("format-json", false, "print the ranking as JSON")

	viper.BindPFlag("rank.workers", rankCmd.Flags().Lookup("workers"))
}

func rank(cmd *cobra.Command) error {
	ctx := context.Background()
	e := setup(cmd)

	args, _ := cmd.Flags().GetStringArray("candidate")
	if len(args) == 0 {
		return fmt.Errorf("at least one --candidate is required")
	}

	candidates := make([]matching.Candidate, 0, len(args))
	for _, arg := range args {
		name, dir, ok := strings.Cut(arg, "=")
		name, dir = strings.TrimSpace(name), strings.TrimSpace(dir)
		if !ok || name == "" || dir == "" {
			return fmt.Errorf("invalid candidate %q, expected name=directory", arg)
		}

		docs, err := loadDirectory(dir, logger.WithCandidate(e.logger, name))
		if err != nil {
			return err
		}
		candidates = append(candidates, matching.Candidate{Name: name, Documents: docs})
	}

	jobFile, _ := cmd.Flags().GetString("job")
	jobInline, _ := cmd.Flags().GetString("job-text")
	jobText, err := readText(jobInline, jobFile, "job posting")
	if err != nil {
		return err
	}

	e.logger.Info("ranking candidates",
		zap.Int("candidates", len(candidates)),
		zap.Int("workers", e.config.Rank.Workers),
	)

	rankings, err := e.matcher.Rank(ctx, candidates, jobText, e.config.Rank.Workers, e.logger)
	if err != nil {
		return fmt.Errorf("ranking: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("format-json"); asJSON {
		return printJSON(cmd.OutOrStdout(), rankings)
	}
	printRankings(cmd.OutOrStdout(), rankings)
	return nil
}
