package cmd

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/NikKohlmeier/job-helper/internal/config"
	"github.com/NikKohlmeier/job-helper/internal/embedding"
	"github.com/NikKohlmeier/job-helper/internal/embedding/gemini"
	"github.com/NikKohlmeier/job-helper/internal/job"
	applogger "github.com/NikKohlmeier/job-helper/internal/logger"
	"github.com/NikKohlmeier/job-helper/internal/matching"
	"github.com/NikKohlmeier/job-helper/internal/profile"
	"github.com/NikKohlmeier/job-helper/internal/secrets"
	"github.com/NikKohlmeier/job-helper/internal/store"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score all saved job postings against your profile",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().BoolP("show-all", "a", false, "show postings that fail the minimum thresholds too")
	matchCmd.Flags().IntP("workers", "w", 4, "how many postings to embed concurrently")
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := applogger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cfg, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// Every score produced with bad weights would be silently wrong, so this
	// is fatal before any matching starts.
	if err := cfg.Scoring.Validate(); err != nil {
		logger.Fatal("validating scoring configuration", zap.Error(err))
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("opening the job store", zap.Error(err))
	}
	defer st.Close()

	jobs, err := st.All(ctx)
	if err != nil {
		logger.Fatal("loading saved jobs", zap.Error(err))
	}

	if jobs.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs saved yet, use the add command first"))
		return
	}

	prof, err := loadProfile(cfg)
	if err != nil {
		logger.Fatal("loading the profile document", zap.Error(err))
	}

	provider, err := newProvider(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(
			"building the embedding provider",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE or the embedding.gemini.api-key-file configuration key"),
		)
	}

	if err := ensureProfileEmbedding(ctx, st, provider, prof, logger); err != nil {
		logger.Fatal("computing the profile embedding", zap.Error(err))
	}

	workers, _ := cmd.Flags().GetInt("workers")
	engine := matching.NewEngine(provider, cfg.Scoring, workers, logger)

	logger.Info("matching saved jobs", zap.Int("count", jobs.Len()))

	result, err := engine.MatchAll(ctx, prof, jobs)
	if err != nil {
		logger.Fatal("matching failed", zap.Error(err))
	}

	for _, j := range result.Scored.Items {
		if err := st.UpdateScores(ctx, j.ID, j.Scores); err != nil {
			logger.Fatal("saving scores", zap.String("job_id", j.ID), zap.Error(err))
		}
	}

	for _, failure := range result.Failures {
		logger.Warn("posting skipped",
			zap.String("job_id", failure.Job.ID),
			zap.String("title", failure.Job.Title),
			zap.Error(failure.Err),
		)
	}

	showAll, _ := cmd.Flags().GetBool("show-all")
	printResults(result.Scored, engine.Scoring(), showAll)
}

// loadProfile reads and parses the markdown profile document and applies the
// config-side overrides (role bonuses, extra locations).
func loadProfile(cfg *Config) (*profile.Profile, error) {
	content, err := os.ReadFile(cfg.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("read profile document: %w", err)
	}

	prof, err := profile.Parse(string(content))
	if err != nil {
		return nil, err
	}

	if cfg.Profile != nil {
		for tag, bonus := range cfg.Profile.RoleBonuses {
			prof.RoleTypeBonuses[strings.ToLower(tag)] = bonus
		}
		prof.WorkPreferences.AcceptableLocations = append(
			prof.WorkPreferences.AcceptableLocations, cfg.Profile.Locations...,
		)
	}

	return prof, nil
}

func newProvider(ctx context.Context, cfg *Config, logger *zap.Logger) (embedding.Provider, error) {
	var geminiCfg GeminiConfig
	if cfg.Embedding != nil {
		if provider := strings.TrimSpace(strings.ToLower(cfg.Embedding.Provider)); provider != "" && provider != "gemini" {
			return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
		}
		if cfg.Embedding.Gemini != nil {
			geminiCfg = *cfg.Embedding.Gemini
		}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: geminiCfg.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	client, err := gemini.NewClient(ctx, apiKey, geminiCfg.Model)
	if err != nil {
		return nil, err
	}

	providerLogger := applogger.WithFields(logger, applogger.CommonFields("gemini", client.Model())...)

	return gemini.NewProvider(client, geminiCfg.MaxRetries, geminiCfg.MaxLogLength, providerLogger), nil
}

// ensureProfileEmbedding loads the cached profile embedding, recomputing it
// only when the profile summary text has changed since the cache was
// written.
func ensureProfileEmbedding(ctx context.Context, st *store.Store, provider embedding.Provider, prof *profile.Profile, logger *zap.Logger) error {
	summary := prof.SummaryText()
	hash := fmt.Sprintf("%x", sha256.Sum256([]byte(summary)))

	cached, err := st.ProfileEmbedding(ctx, hash)
	if err != nil {
		return err
	}

	if len(cached) > 0 {
		logger.Debug("using cached profile embedding", zap.Int("dimensions", len(cached)))
		prof.Embedding = cached
		return nil
	}

	logger.Info("computing profile embedding", zap.String("model", provider.Model()))

	vector, err := provider.Embed(ctx, summary)
	if err != nil {
		return err
	}

	if err := st.SaveProfileEmbedding(ctx, hash, vector); err != nil {
		return err
	}

	prof.Embedding = vector
	return nil
}

func printResults(jobs *job.Jobs, scoring config.Scoring, showAll bool) {
	jobs.SortByOverall()

	shown := jobs
	if !showAll {
		shown = jobs.Passed()
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("JOB MATCHING RESULTS")
	fmt.Println(strings.Repeat("=", 80))

	if showAll {
		fmt.Printf("\nShowing all %d scored jobs\n\n", shown.Len())
	} else {
		fmt.Printf("\nShowing %d jobs that pass the minimum thresholds\n\n", shown.Len())
	}

	if shown.Len() == 0 {
		fmt.Println("No jobs meet the minimum score thresholds.")
		fmt.Printf("  - Technical: %.2f\n", scoring.MinTechnicalScore)
		fmt.Printf("  - Culture:   %.2f\n", scoring.MinCultureScore)
		fmt.Printf("  - Overall:   %.2f\n", scoring.MinOverallScore)
		fmt.Println("\nTry lowering the thresholds in the config file or add more jobs.")
		return
	}

	for i, j := range shown.Items {
		status := "FAIL"
		if j.Scores.Passed {
			status = "PASS"
		}

		fmt.Printf("%d. %s at %s\n", i+1, j.Title, j.Company)
		fmt.Printf("   ID: %s\n", j.ID)
		fmt.Printf("   Overall: %.1f%% [%s]\n", j.Scores.Overall*100, status)
		fmt.Printf("   Technical: %.1f%% | Culture: %.1f%%\n", j.Scores.Technical*100, j.Scores.Culture*100)

		if j.Location != "" {
			if j.Remote {
				fmt.Printf("   Location: %s (Remote)\n", j.Location)
			} else {
				fmt.Printf("   Location: %s\n", j.Location)
			}
		} else if j.Remote {
			fmt.Println("   Location: Remote")
		}

		switch {
		case j.SalaryMin > 0 && j.SalaryMax > 0:
			fmt.Printf("   Salary: $%d - $%d\n", j.SalaryMin, j.SalaryMax)
		case j.SalaryMin > 0:
			fmt.Printf("   Salary: $%d+\n", j.SalaryMin)
		}

		if j.URL != "" {
			fmt.Printf("   URL: %s\n", j.URL)
		}

		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 80))
}
