package engine

import (
	"time"
)

// DateLayout is the calendar date shape submissions carry.
const DateLayout = "2006-01-02"

// Calculate runs one classification+pricing pass: parse the submission,
// pick the first matching rule for the employee's role, derive the hourly
// rate, compute the amount. Pure and idempotent; identical inputs produce
// identical results.
//
// Calculate reports malformed dates and clocks as errors but performs no
// other well-formedness checks; production flows run ValidateSubmission
// first and surface its error list to the submitter.
func Calculate(emp Employee, sub Submission, cfg Config) (Result, error) {
	d, err := parseDuty(sub)
	if err != nil {
		return Result{}, err
	}
	rule, err := classify(emp.Role, d, cfg)
	if err != nil {
		return Result{}, err
	}
	return price(emp, d, rule, cfg)
}

// parseDuty converts a raw submission into a classifiable duty.
func parseDuty(sub Submission) (duty, error) {
	date, err := time.Parse(DateLayout, sub.Date)
	if err != nil {
		return duty{}, &BadDateError{Value: sub.Date}
	}
	start, err := ParseClock(sub.StartTime)
	if err != nil {
		return duty{}, err
	}
	end, err := ParseClock(sub.EndTime)
	if err != nil {
		return duty{}, err
	}
	return duty{
		date:    date,
		shift:   sub.Shift,
		start:   start,
		end:     end,
		hours:   ElapsedHours(start, end),
		remarks: sub.Remarks,
	}, nil
}
