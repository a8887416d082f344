package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillsense/internal/logger"
	"github.com/spigell/skillsense/internal/utils"
)

var matchCmd = &cobra.Command{
	Use:     "match",
	Short:   "Compare a skill profile with a job posting",
	Example: "  skillsense match -p resume.md --job posting.html",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	addDocumentFlags(matchCmd)
	matchCmd.Flags().String("job", "", "job posting file (.txt, .md, .html)")
	matchCmd.Flags().String("job-text", "", "job posting text; takes precedence over --job")
	matchCmd.Flags().Bool("format-json", false, "print the result as JSON")
}

func match(cmd *cobra.Command) error {
	e := setup(cmd)

	docs, err := loadDocuments(cmd, e.logger)
	if err != nil {
		return err
	}
	lg := logger.WithSources(e.logger, len(docs))

	jobFile, _ := cmd.Flags().GetString("job")
	jobInline, _ := cmd.Flags().GetString("job-text")
	jobText, err := readText(jobInline, jobFile, "job posting")
	if err != nil {
		return err
	}

	lg.Debug("matching job", zap.String("job_preview", utils.TruncateForLog(jobText, previewLength)))

	p := e.builder.Build(docs)
	result := e.matcher.MatchJob(p.Signals, jobText)

	lg.Info("job matched",
		zap.Float64("coverage", result.Coverage),
		zap.Int("matched", len(result.Matched)),
		zap.Int("gaps", len(result.Gaps)),
	)

	if asJSON, _ := cmd.Flags().GetBool("format-json"); asJSON {
		return printJSON(cmd.OutOrStdout(), result)
	}
	printJobResult(cmd.OutOrStdout(), result)
	return nil
}
