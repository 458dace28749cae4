package internal

import (
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"
)

// WriteAccountsXLSX exports the account list and a monthly summary for the
// current year as a spreadsheet in dir, returning the generated path.
func WriteAccountsXLSX(dir string, accounts []Account, now time.Time, atRiskWindowDays int) (string, error) {
	filename := fmt.Sprintf("bills_%s.xlsx", now.Format("20060102_150405"))
	return writeReportFile(dir, filename, "xlsx", func(tmp *os.File) error {
		return renderAccountsXLSX(tmp, accounts, now, atRiskWindowDays)
	})
}

func renderAccountsXLSX(tmp *os.File, accounts []Account, now time.Time, atRiskWindowDays int) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Accounts"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	headers := []string{"ID", "Service", "Description", "Issued", "Due", "Next reading", "Cutoff", "Amount (CLP)", "Paid", "Paid on", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, "A1", last, style)
	}

	for row, a := range accounts {
		values := []any{
			a.ID,
			a.Service.Label(),
			a.Description,
			formatOptionalDate(a.IssueDate),
			formatOptionalDate(a.DueDate),
			formatOptionalDate(a.NextReadingDate),
			formatOptionalDate(a.CutoffDate),
			a.Amount,
			a.Paid,
			formatOptionalDate(a.PaidDate),
			string(Classify(a, now, atRiskWindowDays)),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row+1, err)
			}
		}
	}
	f.SetColWidth(sheet, "A", "C", 28)
	f.SetColWidth(sheet, "D", "K", 14)

	if err := writeSummarySheet(f, accounts, now.Year()); err != nil {
		return err
	}

	if err := f.Write(tmp); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, accounts []Account, year int) error {
	sheet := fmt.Sprintf("Summary %d", year)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	headers := []string{"Month"}
	for _, st := range ServiceTypes {
		headers = append(headers, st.Label())
	}
	headers = append(headers, "Total")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, sum := range SummarizeYear(accounts, year) {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(sheet, cell, sum.Month.String())
		for j, st := range ServiceTypes {
			cell, _ = excelize.CoordinatesToCellName(j+2, row)
			f.SetCellValue(sheet, cell, sum.ByService[st])
		}
		cell, _ = excelize.CoordinatesToCellName(len(ServiceTypes)+2, row)
		f.SetCellValue(sheet, cell, sum.Total)
	}
	f.SetColWidth(sheet, "A", "G", 14)
	return nil
}
