package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SUBMISSION VALIDATION
// =============================================================================

// Validation is the outcome of checking one raw submission. Errors holds
// every failure found, in check order, so the submitter sees the complete
// list at once. Valid is true exactly when Errors is empty.
type Validation struct {
	Valid  bool
	Errors []string
}

var maxDutyHours = decimal.NewFromInt(24)

// ValidateSubmission checks a raw submission for syntactic and logical
// well-formedness before classification is attempted. It accumulates all
// failures rather than stopping at the first. The duration checks only
// run when both clock fields parse, since elapsed hours are undefined
// otherwise.
func ValidateSubmission(sub Submission) Validation {
	var errs []string

	if _, err := time.Parse(DateLayout, sub.Date); err != nil {
		errs = append(errs, "Invalid date format. Use YYYY-MM-DD")
	}

	start, startErr := ParseClock(sub.StartTime)
	if startErr != nil {
		errs = append(errs, "Invalid start time format. Use HH:mm")
	}
	end, endErr := ParseClock(sub.EndTime)
	if endErr != nil {
		errs = append(errs, "Invalid end time format. Use HH:mm")
	}

	if !sub.Shift.Valid() {
		errs = append(errs, "Invalid shift. Must be FN, AN, Both, or Special Task")
	}

	if startErr == nil && endErr == nil {
		hours := ElapsedHours(start, end)
		if !hours.IsPositive() {
			errs = append(errs, "End time must be after start time")
		}
		if hours.GreaterThan(maxDutyHours) {
			errs = append(errs, "Duty hours cannot exceed 24 hours")
		}
	}

	return Validation{Valid: len(errs) == 0, Errors: errs}
}
