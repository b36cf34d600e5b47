package engine

import (
	"github.com/shopspring/decimal"
)

// hourlyRate derives the per-hour pay rate from a monthly salary figure:
// salary / (dailyHourValue * workingDays). A non-positive divisor product
// is a misconfiguration and fails here rather than producing a nonsense
// amount downstream.
func hourlyRate(salary, dailyHourValue decimal.Decimal, workingDays int) (decimal.Decimal, error) {
	if !dailyHourValue.IsPositive() {
		return decimal.Zero, &ConfigError{Field: "daily hour value", Value: dailyHourValue}
	}
	if workingDays <= 0 {
		return decimal.Zero, &ConfigError{Field: "working days per month", Value: decimal.NewFromInt(int64(workingDays))}
	}
	return salary.Div(dailyHourValue.Mul(decimal.NewFromInt(int64(workingDays)))), nil
}

// price applies a matched rule to a duty and produces the final result.
// amount = round2(hours * hourlyRate * multiplier).
func price(emp Employee, d duty, rule Rule, cfg Config) (Result, error) {
	dhv, err := cfg.dailyHourValue(emp.Role)
	if err != nil {
		return Result{}, err
	}
	rate, err := hourlyRate(emp.Salary(rule.Basis), dhv, cfg.WorkingDaysPerMonth)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Hours:          d.hours,
		Category:       rule.Category,
		RateMultiplier: rule.Multiplier,
		BasedOn:        rule.Basis,
		Amount:         d.hours.Mul(rate).Mul(rule.Multiplier).Round(2),
		Description:    rule.describe(cfg),
	}, nil
}
