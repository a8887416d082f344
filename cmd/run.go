package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillsense/internal/matching"
	"github.com/spigell/skillsense/internal/skills"
	"github.com/spigell/skillsense/internal/sources"
)

const (
	PromptSummary    = "Show summary"
	PromptHighlights = "Show highlights and development targets"
	PromptAddSource  = "Add evidence text"
	PromptMatchJob   = "Match a job posting"
	PromptTeam       = "Compare with a team inventory"
	PromptExport     = "Export profile to file"
	PromptExit       = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSummary, PromptHighlights, PromptAddSource, PromptMatchJob, PromptTeam, PromptExport, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Explore a skill profile interactively",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	addDocumentFlags(runCmd)
}

// session keeps the documents of an interactive run and the profile built
// from them.
type session struct {
	env     *env
	out     io.Writer
	docs    []sources.Document
	profile *skills.Profile
}

func (s *session) rebuild() {
	s.profile = s.env.builder.Build(s.docs)
	s.env.logger.Info("profile rebuilt",
		zap.Int("sources", s.profile.Stats.SourceCount),
		zap.Int("signals", len(s.profile.Signals)),
	)
}

// run is the interactive command for the cli.
func run(cmd *cobra.Command) {
	e := setup(cmd)

	e.logger.Info("starting the skillsense", zap.String("version", version))

	docs, err := loadDocuments(cmd, e.logger)
	if err != nil {
		e.logger.Fatal("loading documents", zap.Error(err))
	}

	s := &session{env: e, out: cmd.OutOrStdout(), docs: docs}
	s.rebuild()

	for {
		_, action, err := prompt.Run()
		if err != nil {
			e.logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, s); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			e.logger.Error("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func handleAction(action string, s *session) error {
	switch action {
	case PromptSummary:
		printProfile(s.out, s.profile, s.profile.Signals)
		return nil
	case PromptHighlights:
		printHighlights(s.out, s.profile, s.env.catalog)
		return nil
	case PromptAddSource:
		return addSource(s)
	case PromptMatchJob:
		text, err := ask("Job posting file or text")
		if err != nil {
			return err
		}
		jobText, err := resolveInput(text)
		if err != nil {
			return err
		}
		printJobResult(s.out, s.env.matcher.MatchJob(s.profile.Signals, jobText))
		return nil
	case PromptTeam:
		text, err := ask("Team inventory file")
		if err != nil {
			return err
		}
		raw, err := resolveInput(text)
		if err != nil {
			return err
		}
		printTeamReport(s.out, matching.CompareTeam(s.profile.Signals, matching.ParseTeam(raw)))
		return nil
	case PromptExport:
		path, err := ask("Export file")
		if err != nil {
			return err
		}
		if err := writeExport(path, s.profile.Signals); err != nil {
			return err
		}
		s.env.logger.Info("profile exported", zap.String("file", path))
		return nil
	case PromptExit:
		s.env.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func addSource(s *session) error {
	name, err := ask("Source name")
	if err != nil {
		return err
	}
	text, err := ask("Evidence text")
	if err != nil {
		return err
	}

	visibilityPrompt := promptui.Select{
		Label: "Visibility",
		Items: []string{string(sources.Private), string(sources.Public)},
	}
	_, visibility, err := visibilityPrompt.Run()
	if err != nil {
		return err
	}

	doc, ok := sources.FromText(name, text, "notes", sources.ParseVisibility(visibility))
	if !ok {
		s.env.logger.Warn("skipping empty evidence")
		return nil
	}

	s.docs = sources.UniqueNames(append(s.docs, doc))
	s.rebuild()
	return nil
}

func ask(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("value is required")
			}
			return nil
		},
	}
	return p.Run()
}

// resolveInput treats input naming a supported file as a path and anything
// else as literal text.
func resolveInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	if sources.SupportedSuffix(input) {
		return readText("", input, "input")
	}
	return input, nil
}
