package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillsense/internal/logger"
	"github.com/spigell/skillsense/internal/matching"
	"github.com/spigell/skillsense/internal/resources"
	"github.com/spigell/skillsense/internal/skills"
	"github.com/spigell/skillsense/internal/sources"
	"github.com/spigell/skillsense/internal/utils"
)

const (
	inlineSourceName = "Inline Evidence"
	previewLength    = 80
)

// env holds everything a command needs after flags and config are resolved.
type env struct {
	config  *Config
	logger  *zap.Logger
	builder *skills.Builder
	catalog *resources.Catalog
	matcher *matching.Matcher
}

func addDocumentFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("doc", "p", nil, "public evidence file (.txt, .md, .html); repeatable")
	cmd.Flags().StringArray("private", nil, "private evidence file (.txt, .md, .html); repeatable")
	cmd.Flags().String("text", "", "inline evidence text, treated as private")
	cmd.Flags().String("kind", "", "document kind recorded for every loaded file, e.g. resume or feedback")
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min-confidence", 0, "drop signals below this confidence")
	cmd.Flags().StringSlice("category", nil, "keep only signals from these categories")
	cmd.Flags().String("type", "", "keep only explicit or implicit signals")
	cmd.Flags().Int("top", 0, "keep only the first N signals")

	viper.BindPFlag("filters.min-confidence", cmd.Flags().Lookup("min-confidence"))
	viper.BindPFlag("filters.categories", cmd.Flags().Lookup("category"))
	viper.BindPFlag("filters.signal-type", cmd.Flags().Lookup("type"))
	viper.BindPFlag("filters.top", cmd.Flags().Lookup("top"))
}

// setup builds the logger, config and domain components shared by commands.
func setup(cmd *cobra.Command) *env {
	lg, err := logger.New(logger.Options{
		JSON:    viper.GetBool("json"),
		Debug:   viper.GetBool("debug"),
		File:    viper.GetString("log-file"),
		RunID:   uuid.NewString(),
		Command: cmd.Name(),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	lg.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	lexicon := skills.DefaultLexicon()
	if config.LexiconFile != "" {
		lexicon, err = skills.LoadLexicon(config.LexiconFile)
		if err != nil {
			lg.Fatal("loading lexicon", zap.Error(err), zap.String("file", config.LexiconFile))
		}
		lg.Info("using custom lexicon", zap.String("file", config.LexiconFile), zap.Int("terms", len(lexicon.Terms)))
	}

	builder, err := skills.NewBuilder(lexicon, lg)
	if err != nil {
		lg.Fatal("building skill extractor", zap.Error(err))
	}

	catalog := resources.New()
	if config.ResourcesFile != "" {
		catalog, err = resources.LoadFile(config.ResourcesFile)
		if err != nil {
			lg.Fatal("loading resources", zap.Error(err), zap.String("file", config.ResourcesFile))
		}
	}

	return &env{
		config:  config,
		logger:  lg,
		builder: builder,
		catalog: catalog,
		matcher: matching.NewMatcher(builder, catalog),
	}
}

// loadDocuments resolves the document flags of the command into documents.
func loadDocuments(cmd *cobra.Command, lg *zap.Logger) ([]sources.Document, error) {
	public, _ := cmd.Flags().GetStringArray("doc")
	private, _ := cmd.Flags().GetStringArray("private")
	inline, _ := cmd.Flags().GetString("text")
	kind, _ := cmd.Flags().GetString("kind")

	srcs := make([]sources.Source, 0, len(public)+len(private)+1)
	for _, file := range public {
		srcs = append(srcs, sources.Source{File: file, Kind: kind, Visibility: sources.Public})
	}
	for _, file := range private {
		srcs = append(srcs, sources.Source{File: file, Kind: kind, Visibility: sources.Private})
	}
	if strings.TrimSpace(inline) != "" {
		srcs = append(srcs, sources.Source{Name: inlineSourceName, Kind: "notes", Value: inline, Visibility: sources.Private})
	}

	return loadSources(srcs, lg)
}

func loadSources(srcs []sources.Source, lg *zap.Logger) ([]sources.Document, error) {
	docs := make([]sources.Document, 0, len(srcs))
	for _, src := range srcs {
		doc, ok, err := sources.Load(src)
		if err != nil {
			return nil, err
		}
		if !ok {
			lg.Warn("skipping empty document", zap.String("file", src.File), zap.String("name", src.Name))
			continue
		}

		lg.Debug("document loaded",
			zap.String("name", doc.Name),
			zap.String("visibility", string(doc.Visibility)),
			zap.Int("words", doc.WordCount()),
			zap.String("preview", utils.TruncateForLog(doc.Text, previewLength)),
		)
		docs = append(docs, doc)
	}
	return sources.UniqueNames(docs), nil
}

// loadDirectory returns every supported file in dir as a private document.
func loadDirectory(dir string, lg *zap.Logger) ([]sources.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !sources.SupportedSuffix(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	srcs := make([]sources.Source, 0, len(files))
	for _, file := range files {
		srcs = append(srcs, sources.Source{File: file, Visibility: sources.Private})
	}
	return loadSources(srcs, lg)
}

// readText returns inline text if set, otherwise the content of the file.
func readText(inline, file, what string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if strings.TrimSpace(file) == "" {
		return "", fmt.Errorf("%s is required", what)
	}

	doc, ok, err := sources.Load(sources.Source{Name: what, File: file, Visibility: sources.Private})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return doc.Text, nil
}
