package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONTHLY AGGREGATION
// =============================================================================

// CategoryTotal accumulates the results classified into one category.
type CategoryTotal struct {
	Hours  decimal.Decimal
	Amount decimal.Decimal
	Count  int
}

// MonthlySummary is a snapshot fold over one employee's submissions:
// per-category totals plus grand totals. Recomputing after adding a
// submission means re-running the fold; there is no incremental update.
type MonthlySummary struct {
	EmpID string
	Name  string
	Role  Role
	Month string // YYYY-MM label, filled by the caller

	Categories  map[Category]CategoryTotal
	TotalHours  decimal.Decimal
	TotalAmount decimal.Decimal
}

// CalculateMonthly prices every submission independently and folds the
// results by category. Submissions are assumed pre-validated; one that
// still fails to price aborts the fold with an error rather than being
// silently skipped, so a summary never under-reports.
func CalculateMonthly(emp Employee, subs []Submission, cfg Config) (MonthlySummary, error) {
	summary := MonthlySummary{
		EmpID:       emp.ID,
		Name:        emp.Name,
		Role:        emp.Role,
		Categories:  make(map[Category]CategoryTotal),
		TotalHours:  decimal.Zero,
		TotalAmount: decimal.Zero,
	}

	for i, sub := range subs {
		result, err := Calculate(emp, sub, cfg)
		if err != nil {
			return MonthlySummary{}, fmt.Errorf("submission %d (%s): %w", i, sub.Date, err)
		}

		total := summary.Categories[result.Category]
		total.Hours = total.Hours.Add(result.Hours)
		total.Amount = total.Amount.Add(result.Amount)
		total.Count++
		summary.Categories[result.Category] = total

		summary.TotalHours = summary.TotalHours.Add(result.Hours)
		summary.TotalAmount = summary.TotalAmount.Add(result.Amount)
	}

	return summary, nil
}
