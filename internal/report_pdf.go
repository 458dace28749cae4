package internal

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
)

// WriteAccountsPDF renders an account report into dir and returns the path
// of the generated file.
func WriteAccountsPDF(dir string, accounts []Account, now time.Time, atRiskWindowDays int) (string, error) {
	filename := fmt.Sprintf("bills_%s.pdf", now.Format("20060102_150405"))
	return writeReportFile(dir, filename, "pdf", func(f *os.File) error {
		return renderAccountsPDF(f, accounts, now, atRiskWindowDays)
	})
}

func renderAccountsPDF(f *os.File, accounts []Account, now time.Time, atRiskWindowDays int) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Utility bill report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Utility bill report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+now.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Account table
	headers := []string{"Service", "Description", "Issued", "Due", "Cutoff", "Amount", "Status"}
	widths := []float64{24, 52, 20, 20, 20, 26, 20}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(120, 120, 120)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(245, 245, 220)
	if len(accounts) == 0 {
		pdf.CellFormat(sum(widths), 7, "No accounts to show", "1", 1, "C", false, 0, "")
	}
	for _, a := range accounts {
		cutoff := formatOptionalDate(a.CutoffDate)
		if cutoff == "" {
			cutoff = "-"
		}
		desc := a.Description
		if len(desc) > 34 {
			desc = desc[:31] + "..."
		}
		cells := []struct {
			text  string
			align string
		}{
			{a.Service.Label(), "L"},
			{desc, "L"},
			{a.IssueDate.Format(DateFormat), "C"},
			{a.DueDate.Format(DateFormat), "C"},
			{cutoff, "C"},
			{FormatCLP(a.Amount), "R"},
			{statusLabel(Classify(a, now, atRiskWindowDays)), "C"},
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c.text, "1", 0, c.align, true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	// Summary block
	counts := CountByStatus(accounts, now, atRiskWindowDays)
	pending := TotalPending(accounts)
	paid := TotalPaid(accounts)
	rows := [][2]string{
		{"Total pending", FormatCLP(pending)},
		{"Total paid", FormatCLP(paid)},
		{"Total overall", FormatCLP(pending + paid)},
		{"Overdue accounts", fmt.Sprintf("%d", counts[StatusOverdue])},
		{"At risk of cutoff", fmt.Sprintf("%d", counts[StatusAtRisk])},
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(80, 7, "Summary", "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, r := range rows {
		pdf.CellFormat(50, 7, r[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, r[1], "1", 1, "R", false, 0, "")
	}

	if pdf.Err() {
		return fmt.Errorf("building pdf: %v", pdf.Error())
	}
	return pdf.Output(f)
}

func statusLabel(s Status) string {
	switch s {
	case StatusPaid:
		return "Paid"
	case StatusOverdue:
		return "Overdue"
	case StatusAtRisk:
		return "At risk"
	default:
		return "Pending"
	}
}

func sum(widths []float64) float64 {
	var total float64
	for _, w := range widths {
		total += w
	}
	return total
}
