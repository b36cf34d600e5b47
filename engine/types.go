/*
Package engine implements the overtime pay calculation engine for the
school transport fleet.

PURPOSE:
  Given an employee (driver or conductor), one logged duty interval, and
  the active rate configuration, the engine classifies the duty into a
  pay category and prices it. It also validates raw submissions and folds
  per-day results into monthly summaries.

KEY CONCEPTS IN THIS FILE (types.go):
  - Role: Closed two-variant tag (Driver/Conductor) the classifier
    dispatches on
  - Shift: The duty shift designator recorded on a submission
  - Category: The pay category a duty resolves to
  - Config: Rate divisors and premium time windows
  - Employee / Submission / Result: Inputs and output of one pricing pass

DESIGN PRINCIPLES:
  1. Purity: Every operation is a side-effect-free function of its
     arguments. No hidden state, no I/O, no clocks read at runtime.
  2. Precision: Uses decimal.Decimal for hours and money. Payroll amounts
     round half-away-from-zero to 2 places.
  3. Explicit configuration: Callers supply Config; DefaultConfig() is a
     constructor, not ambient process state.
  4. Loud failure: An unknown role or a non-positive divisor is an error,
     never a silently wrong amount.

USAGE:
  result, err := engine.Calculate(employee, submission, engine.DefaultConfig())

SEE ALSO:
  - clock.go:    Wall-clock arithmetic and wrap-aware windows
  - rules.go:    Per-role classification rules (first match wins)
  - rate.go:     Hourly rate derivation
  - validate.go: Submission validation
  - summary.go:  Monthly aggregation
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// ROLE - Closed employee role tag
// =============================================================================

// Role identifies which rate table and rule list applies to an employee.
// Upstream systems pass roles as loose strings; convert at the boundary
// with ParseRole so the classifier only ever sees the two valid variants.
type Role string

const (
	RoleDriver    Role = "Driver"
	RoleConductor Role = "Conductor"
)

// ParseRole converts a raw role string into a Role, rejecting anything
// that is not exactly Driver or Conductor.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleDriver, RoleConductor:
		return Role(s), nil
	default:
		return "", &UnsupportedRoleError{Role: Role(s)}
	}
}

func (r Role) Valid() bool {
	return r == RoleDriver || r == RoleConductor
}

// =============================================================================
// SHIFT - Duty shift designator
// =============================================================================

type Shift string

const (
	ShiftFN          Shift = "FN"
	ShiftAN          Shift = "AN"
	ShiftBoth        Shift = "Both"
	ShiftSpecialTask Shift = "Special Task"
)

func (s Shift) Valid() bool {
	switch s {
	case ShiftFN, ShiftAN, ShiftBoth, ShiftSpecialTask:
		return true
	default:
		return false
	}
}

// =============================================================================
// CATEGORY & SALARY BASIS - Pricing outcome tags
// =============================================================================

// Category is the pay category a duty resolves to. Every submission
// resolves to exactly one category per the rule lists in rules.go.
type Category string

const (
	CategoryFridayHoliday  Category = "Friday/Holiday"
	CategoryEarlyMorning   Category = "Early Morning Shift"
	CategoryFNShiftTask    Category = "FN Shift Task"
	CategoryOffShift       Category = "Off Shift"
	CategoryAdditionalDuty Category = "Additional Duty Allowance"
)

// SalaryBasis selects which monthly salary figure the hourly rate is
// derived from.
type SalaryBasis string

const (
	BasisBasic SalaryBasis = "Basic"
	BasisGross SalaryBasis = "Gross"
)

// =============================================================================
// CONFIG - Rate divisors and premium windows
// =============================================================================

// Config holds the divisors and time windows the classifier and rate
// calculator read. Treat a Config as immutable for the duration of any
// calculation; pass it by value.
type Config struct {
	// Hours-per-day-equivalent divisors used to derive an hourly rate
	// from a monthly salary, per role. Must be strictly positive.
	DriverDailyHourValue    decimal.Decimal
	ConductorDailyHourValue decimal.Decimal

	// WorkingDaysPerMonth divides the monthly salary down to a day.
	// Must be strictly positive.
	WorkingDaysPerMonth int

	// EarlyMorning is the driver early-morning premium window.
	EarlyMorning Window

	// OffShift is the off-shift premium window. It wraps past midnight:
	// start is evening, end is early morning.
	OffShift Window
}

// DefaultConfig returns the stock rate table: driver divisor 1, conductor
// divisor 4, 22 working days, early morning 07:30-10:30, off shift
// 19:30-04:30.
func DefaultConfig() Config {
	return Config{
		DriverDailyHourValue:    decimal.NewFromInt(1),
		ConductorDailyHourValue: decimal.NewFromInt(4),
		WorkingDaysPerMonth:     22,
		EarlyMorning:            Window{Start: MustClock("07:30"), End: MustClock("10:30")},
		OffShift:                Window{Start: MustClock("19:30"), End: MustClock("04:30")},
	}
}

// dailyHourValue returns the role's divisor.
func (c Config) dailyHourValue(role Role) (decimal.Decimal, error) {
	switch role {
	case RoleDriver:
		return c.DriverDailyHourValue, nil
	case RoleConductor:
		return c.ConductorDailyHourValue, nil
	default:
		return decimal.Zero, &UnsupportedRoleError{Role: role}
	}
}

// =============================================================================
// EMPLOYEE - Identity and pay basis
// =============================================================================

type Employee struct {
	ID          string
	Name        string
	Role        Role
	BasicSalary decimal.Decimal
	GrossSalary decimal.Decimal
}

// Salary returns the monthly figure for the given basis.
func (e Employee) Salary(basis SalaryBasis) decimal.Decimal {
	if basis == BasisGross {
		return e.GrossSalary
	}
	return e.BasicSalary
}

// =============================================================================
// SUBMISSION - One duty record to be priced
// =============================================================================

// Submission is one logged duty interval. Fields are carried as raw
// strings exactly as submitted; ValidateSubmission checks their shape and
// Calculate parses them. Submissions are never mutated by the engine.
type Submission struct {
	Date      string // calendar date, YYYY-MM-DD
	Shift     Shift
	StartTime string // wall clock, HH:mm
	EndTime   string // wall clock, HH:mm
	Remarks   string // free text; "holiday" (case-insensitive) is a premium signal
}

// =============================================================================
// RESULT - Output of one classification+pricing pass
// =============================================================================

type Result struct {
	Hours          decimal.Decimal // elapsed duty time, 2 decimals
	Category       Category
	RateMultiplier decimal.Decimal // 1.25 or 1.5
	BasedOn        SalaryBasis
	Amount         decimal.Decimal // 2 decimals
	Description    string
}
