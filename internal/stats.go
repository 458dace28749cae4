package internal

import "time"

// MonthlySummary aggregates billed amounts for one calendar month, bucketed
// by the month of the issue date.
type MonthlySummary struct {
	Year      int
	Month     time.Month
	ByService map[ServiceType]int64
	Total     int64
}

// SummarizeMonth totals all accounts issued in the given month.
func SummarizeMonth(accounts []Account, year int, month time.Month) MonthlySummary {
	sum := MonthlySummary{
		Year:      year,
		Month:     month,
		ByService: make(map[ServiceType]int64),
	}
	for _, a := range accounts {
		if a.IssueDate.Year() != year || a.IssueDate.Month() != month {
			continue
		}
		sum.ByService[a.Service] += a.Amount
		sum.Total += a.Amount
	}
	return sum
}

// SummarizeYear returns one summary per month, January through December.
func SummarizeYear(accounts []Account, year int) []MonthlySummary {
	summaries := make([]MonthlySummary, 0, 12)
	for m := time.January; m <= time.December; m++ {
		summaries = append(summaries, SummarizeMonth(accounts, year, m))
	}
	return summaries
}

// TotalPending sums the amounts of all unpaid accounts.
func TotalPending(accounts []Account) int64 {
	var total int64
	for _, a := range accounts {
		if !a.Paid {
			total += a.Amount
		}
	}
	return total
}

// TotalPaid sums the amounts of all paid accounts.
func TotalPaid(accounts []Account) int64 {
	var total int64
	for _, a := range accounts {
		if a.Paid {
			total += a.Amount
		}
	}
	return total
}

// TotalByService sums amounts per service type across all accounts.
func TotalByService(accounts []Account) map[ServiceType]int64 {
	totals := make(map[ServiceType]int64)
	for _, a := range accounts {
		totals[a.Service] += a.Amount
	}
	return totals
}

// CountByStatus counts accounts per derived status.
func CountByStatus(accounts []Account, now time.Time, atRiskWindowDays int) map[Status]int {
	counts := make(map[Status]int)
	for _, a := range accounts {
		counts[Classify(a, now, atRiskWindowDays)]++
	}
	return counts
}
