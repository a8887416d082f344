package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillsense/internal/filtering"
	"github.com/spigell/skillsense/internal/logger"
	"github.com/spigell/skillsense/internal/skills"
	"github.com/spigell/skillsense/internal/sources"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Build a skill profile from evidence documents",
	Example: "  skillsense profile -p resume.md --private feedback.txt --highlights\n" +
		"  skillsense profile --text 'Mentored two engineers on Kubernetes' --out profile.json",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return profile(cmd)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)

	addDocumentFlags(profileCmd)
	addFilterFlags(profileCmd)
	profileCmd.Flags().StringP("out", "o", "", "write the exported profile as JSON to this file")
	profileCmd.Flags().Bool("highlights", false, "print CV highlights and development targets")
	profileCmd.Flags().Bool("format-json", false, "print the full profile as JSON instead of a table")
	profileCmd.Flags().StringSlice("no-filter", nil, "skip these filter steps: min_confidence, categories, signal_type, top")
	profileCmd.Flags().Bool("preview", false, "print the merged public evidence before the profile")
}

func profile(cmd *cobra.Command) error {
	ctx := context.Background()
	e := setup(cmd)

	docs, err := loadDocuments(cmd, e.logger)
	if err != nil {
		return err
	}
	lg := logger.WithSources(e.logger, len(docs))

	desc := sources.Describe(docs)
	lg.Info("building profile",
		zap.Int("public", desc.Visibility[sources.Public]),
		zap.Int("private", desc.Visibility[sources.Private]),
		zap.Int("words", desc.TotalWords),
	)

	p := e.builder.Build(docs)

	steps := filtering.Defaults()
	skip, _ := cmd.Flags().GetStringSlice("no-filter")
	if err := disableFilters(steps, skip); err != nil {
		return err
	}
	signals, err := filtering.Run(ctx, e.config.Filters, filtering.Deps{Logger: lg}, steps, p.Signals)
	if err != nil {
		return err
	}
	if viper.GetBool("debug") {
		printFilters(cmd.ErrOrStderr(), steps)
	}

	out := cmd.OutOrStdout()
	if preview, _ := cmd.Flags().GetBool("preview"); preview {
		printPreview(out, docs)
	}
	if asJSON, _ := cmd.Flags().GetBool("format-json"); asJSON {
		if err := printJSON(out, struct {
			Signals any    `json:"signals"`
			Stats   any    `json:"stats"`
			Summary string `json:"summary"`
		}{Signals: skills.Export(signals), Stats: p.Stats, Summary: p.Summary}); err != nil {
			return err
		}
	} else {
		printProfile(out, p, signals)
	}

	if highlights, _ := cmd.Flags().GetBool("highlights"); highlights {
		printHighlights(out, p, e.catalog)
	}

	if path, _ := cmd.Flags().GetString("out"); path != "" {
		if err := writeExport(path, signals); err != nil {
			return err
		}
		lg.Info("profile exported", zap.String("file", path), zap.Int("signals", len(signals)))
	}

	return nil
}

// disableFilters turns off the named steps. Unknown names are rejected.
func disableFilters(steps []filtering.Filter, names []string) error {
	known := make([]string, 0, len(steps))
	for _, step := range steps {
		known = append(known, step.Name())
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !slices.Contains(known, name) {
			return fmt.Errorf("unknown filter %q, expected one of %s", name, strings.Join(known, ", "))
		}
		filtering.DisableByName(steps, name, "disabled by --no-filter")
	}
	return nil
}
