package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/NikKohlmeier/job-helper/internal/job"
	applogger "github.com/NikKohlmeier/job-helper/internal/logger"
	"github.com/NikKohlmeier/job-helper/internal/scrape"
	"github.com/NikKohlmeier/job-helper/internal/store"
	"github.com/NikKohlmeier/job-helper/internal/utils"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a job posting, manually or from a URL",
	Run: func(cmd *cobra.Command, _ []string) {
		runAdd(cmd)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringP("url", "u", "", "fetch the posting from this URL instead of entering it manually")
}

func runAdd(cmd *cobra.Command) {
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

	var j *job.Job

	url, _ := cmd.Flags().GetString("url")
	if url != "" {
		j, err = fetchJob(url, logger)
	} else {
		j, err = enterJob()
	}
	if err != nil {
		logger.Fatal("collecting the job posting", zap.Error(err))
	}
	if j == nil {
		logger.Info("exiting", zap.String("reason", "job entry canceled"))
		return
	}

	if err := st.Add(ctx, j); err != nil {
		logger.Fatal("saving the job posting", zap.Error(err))
	}

	logger.Info("job saved",
		zap.String("job_id", j.ID),
		zap.String("title", j.Title),
		zap.String("company", j.Company),
	)
}

// fetchJob scrapes the posting from the URL and asks for confirmation before
// accepting it. Returns nil when the user rejects the extraction.
func fetchJob(url string, logger *zap.Logger) (*job.Job, error) {
	logger.Info("fetching job posting", zap.String("url", url))

	j, err := scrape.FetchJob(url, logger)
	if err != nil {
		return nil, err
	}

	fmt.Println("\nExtracted:")
	fmt.Printf("  Title: %s\n", j.Title)
	fmt.Printf("  Company: %s\n", j.Company)
	fmt.Printf("  Description: %s\n\n", utils.TruncateForLog(j.Description, 200))

	confirm := promptui.Select{
		Label: "Looks good?",
		Items: []string{PromptYes, PromptNo},
	}

	_, answer, err := confirm.Run()
	if err != nil {
		return nil, err
	}
	if answer != PromptYes {
		return nil, nil
	}

	return j, nil
}

// enterJob collects a posting interactively.
func enterJob() (*job.Job, error) {
	title, err := promptText("Job Title")
	if err != nil {
		return nil, err
	}

	company, err := promptText("Company Name")
	if err != nil {
		return nil, err
	}

	fmt.Println("\nJob Description (paste the full description, finish with two empty lines):")
	description := readMultiline(os.Stdin)

	j, err := job.New(title, company, description)
	if err != nil {
		return nil, err
	}

	if j.URL, err = promptOptional("Job URL (optional)"); err != nil {
		return nil, err
	}
	if j.Location, err = promptOptional("Location (optional)"); err != nil {
		return nil, err
	}

	remote := promptui.Select{
		Label: "Remote?",
		Items: []string{PromptYes, PromptNo},
	}
	_, answer, err := remote.Run()
	if err != nil {
		return nil, err
	}
	j.Remote = answer == PromptYes

	salary, err := promptOptional("Salary range, e.g. 70000-90000 (optional)")
	if err != nil {
		return nil, err
	}
	j.SalaryMin, j.SalaryMax = parseSalaryRange(salary)

	return j, nil
}

func promptText(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(label))
			}
			return nil
		},
	}
	value, err := prompt.Run()
	return strings.TrimSpace(value), err
}

func promptOptional(label string) (string, error) {
	prompt := promptui.Prompt{Label: label}
	value, err := prompt.Run()
	return strings.TrimSpace(value), err
}

// readMultiline collects lines until two consecutive empty ones.
func readMultiline(r *os.File) string {
	var lines []string
	empty := 0

	scanner := bufio.NewScanner(r)
	for empty < 2 && scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			empty++
			continue
		}
		empty = 0
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func parseSalaryRange(input string) (int, int) {
	input = strings.TrimSpace(input)
	if input == "" || !strings.Contains(input, "-") {
		return 0, 0
	}

	parts := strings.SplitN(input, "-", 2)
	low, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	high, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0
	}

	return low, high
}
