package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/NikKohlmeier/job-helper/internal/export"
	applogger "github.com/NikKohlmeier/job-helper/internal/logger"
	"github.com/NikKohlmeier/job-helper/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved job postings and scores to an xlsx report",
	Run: func(cmd *cobra.Command, _ []string) {
		runExport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "job-report.xlsx", "path of the report file to write")
}

func runExport(cmd *cobra.Command) {
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
		logger.Info("exiting", zap.String("reason", "no jobs to export"))
		return
	}

	jobs.SortByOverall()

	output, _ := cmd.Flags().GetString("output")
	if err := export.WriteReport(output, jobs); err != nil {
		logger.Fatal("writing the report", zap.Error(err))
	}

	logger.Info("report written",
		zap.String("filename", output),
		zap.Int("count", jobs.Len()),
	)
}
