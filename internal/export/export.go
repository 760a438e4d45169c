package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/NikKohlmeier/job-helper/internal/job"
)

const sheet = "Jobs"

var header = []string{
	"Title", "Company", "Location", "Remote", "Salary Min", "Salary Max",
	"Technical", "Culture", "Overall", "Passed", "URL",
}

// WriteReport writes the postings to an xlsx workbook at path. Unscored
// postings get empty score cells.
func WriteReport(path string, jobs *job.Jobs) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}

	for i, j := range jobs.Items {
		values := []any{
			j.Title, j.Company, j.Location, j.Remote, j.SalaryMin, j.SalaryMax,
			nil, nil, nil, nil, j.URL,
		}
		if j.Scored() {
			values[6] = j.Scores.Technical
			values[7] = j.Scores.Culture
			values[8] = j.Scores.Overall
			values[9] = j.Scores.Passed
		}

		for col, value := range values {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	return nil
}
