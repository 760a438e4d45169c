package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/NikKohlmeier/job-helper/internal/config"
)

const (
	app = "job-helper"
)

type Config struct {
	ProfilePath  string           `mapstructure:"profile-path"`
	DatabasePath string           `mapstructure:"database-path"`
	Scoring      config.Scoring   `mapstructure:"scoring"`
	Profile      *ProfileConfig   `mapstructure:"profile"`
	Embedding    *EmbeddingConfig `mapstructure:"embedding"`
}

// ProfileConfig carries the profile knobs that do not live in the markdown
// profile document.
type ProfileConfig struct {
	RoleBonuses map[string]float64 `mapstructure:"role-bonuses"`
	Locations   []string           `mapstructure:"locations"`
}

type EmbeddingConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-helper is a cli for scoring saved job postings against your career profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("embedding.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-helper.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing config file is fine, the defaults cover everything except
	// the embedding provider credentials. A file parsed with error is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

// setDefaults seeds viper so a partial scoring section in the config file
// overrides individual values instead of zeroing the rest.
func setDefaults() {
	viper.SetDefault("profile-path", "job_profile_document.md")
	viper.SetDefault("database-path", "job-helper.db")

	scoring := config.DefaultScoring()
	viper.SetDefault("scoring.technical-weight", scoring.TechnicalWeight)
	viper.SetDefault("scoring.culture-weight", scoring.CultureWeight)
	viper.SetDefault("scoring.min-technical-score", scoring.MinTechnicalScore)
	viper.SetDefault("scoring.min-culture-score", scoring.MinCultureScore)
	viper.SetDefault("scoring.min-overall-score", scoring.MinOverallScore)
	viper.SetDefault("scoring.culture.arrangement", scoring.Culture.Arrangement)
	viper.SetDefault("scoring.culture.priorities", scoring.Culture.Priorities)
	viper.SetDefault("scoring.culture.red-flags", scoring.Culture.RedFlags)
	viper.SetDefault("scoring.culture.partial-remote", scoring.Culture.PartialRemote)
	viper.SetDefault("scoring.culture.partial-salary", scoring.Culture.PartialSalary)
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
