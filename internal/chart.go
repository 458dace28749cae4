package internal

import (
	"fmt"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// WriteMonthlyChart renders a bar chart of total billed amounts per month of
// the given year as a PNG in dir.
func WriteMonthlyChart(dir string, accounts []Account, year int) (string, error) {
	summaries := SummarizeYear(accounts, year)
	var yearTotal int64
	bars := make([]chart.Value, 0, 12)
	for _, s := range summaries {
		yearTotal += s.Total
		bars = append(bars, chart.Value{
			Label: s.Month.String()[:3],
			Value: float64(s.Total),
		})
	}
	if yearTotal == 0 {
		return "", &ReportError{Kind: "chart", Err: fmt.Errorf("no billed amounts in %d", year)}
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Billed per month, %d (CLP)", year),
		Width:    900,
		Height:   450,
		BarWidth: 40,
		Bars:     bars,
	}

	filename := fmt.Sprintf("monthly_%d.png", year)
	return writeReportFile(dir, filename, "chart", func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}

// WriteServiceChart renders a pie chart of total billed amounts by service
// type as a PNG in dir.
func WriteServiceChart(dir string, accounts []Account, now time.Time) (string, error) {
	totals := TotalByService(accounts)
	var values []chart.Value
	for _, st := range ServiceTypes {
		if totals[st] > 0 {
			values = append(values, chart.Value{
				Label: st.Label(),
				Value: float64(totals[st]),
			})
		}
	}
	if len(values) == 0 {
		return "", &ReportError{Kind: "chart", Err: fmt.Errorf("no billed amounts to chart")}
	}

	graph := chart.PieChart{
		Title:  "Billed by service (CLP)",
		Width:  600,
		Height: 600,
		Values: values,
	}

	filename := fmt.Sprintf("services_%s.png", now.Format("20060102"))
	return writeReportFile(dir, filename, "chart", func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}
