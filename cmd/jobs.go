package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	applogger "github.com/NikKohlmeier/job-helper/internal/logger"
	"github.com/NikKohlmeier/job-helper/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved job postings and their scores",
	Run: func(_ *cobra.Command, _ []string) {
		runList()
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <job-id>",
	Short: "Delete a saved job posting",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runDelete(args[0])
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runList() {
	ctx := context.Background()

	logger, err := applogger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cfg, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
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
		fmt.Println("No jobs saved yet.")
		return
	}

	jobs.SortByOverall()

	for _, j := range jobs.Items {
		fmt.Printf("%s  %s at %s", j.ID, j.Title, j.Company)
		if j.Scored() {
			status := "FAIL"
			if j.Scores.Passed {
				status = "PASS"
			}
			fmt.Printf("  (overall %.1f%% [%s])", j.Scores.Overall*100, status)
		} else {
			fmt.Print("  (unscored)")
		}
		fmt.Println()
	}
}

func runDelete(id string) {
	ctx := context.Background()

	logger, err := applogger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cfg, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("opening the job store", zap.Error(err))
	}
	defer st.Close()

	if err := st.Delete(ctx, id); err != nil {
		logger.Fatal("deleting the job posting", zap.String("job_id", id), zap.Error(err))
	}

	logger.Info("job deleted", zap.String("job_id", id))
}
