package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/skillsense/internal/filtering"
)

const (
	app       = "skillsense"
	envPrefix = "SKILLSENSE"
)

type Config struct {
	LexiconFile   string            `mapstructure:"lexicon-file"`
	ResourcesFile string            `mapstructure:"resources-file"`
	Filters       *filtering.Config `mapstructure:"filters"`
	Rank          *RankConfig       `mapstructure:"rank"`
}

type RankConfig struct {
	Workers int `mapstructure:"workers" validate:"gte=0,lte=64"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skillsense builds confidence-scored skill profiles from free-text evidence",
		Long: "skillsense scans resumes, bios, project notes and feedback for explicit and implicit skills, " +
			"scores them and compares the result with job postings and team inventories.",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skillsense.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().String("lexicon-file", "", "yaml/json/toml file overriding the built-in skill lexicon")
	rootCmd.PersistentFlags().String("resources-file", "", "yaml file mapping skill names to learning resource urls")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("lexicon-file", rootCmd.PersistentFlags().Lookup("lexicon-file"))
	viper.BindPFlag("resources-file", rootCmd.PersistentFlags().Lookup("resources-file"))

	viper.SetDefault("rank.workers", 4)
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional; defaults and flags are enough to run.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Filters == nil {
		config.Filters = &filtering.Config{}
	}
	if config.Rank == nil {
		config.Rank = &RankConfig{}
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
