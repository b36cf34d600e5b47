/*
rules.go - Per-role classification rules

PURPOSE:
  Decides which single pay category a duty belongs to. Each role has a
  fixed, ordered rule list; the first rule whose predicate matches wins.
  The order IS the payroll policy, so it is kept as an explicit list
  rather than inlined branching - tests assert on it directly.

PRIORITY ORDER:
  Driver:
    1. Friday/Holiday
    2. Early Morning Shift   (duty starts inside the early-morning window)
    3. Off Shift             (duty starts OR ends inside the off-shift window)
    4. Additional Duty Allowance (catch-all)

  Conductor:
    1. Friday/Holiday
    2. FN Shift Task         (FN shift, hours within the conductor divisor)
    3. Off Shift
    4. Additional Duty Allowance (catch-all)

RATE CONTRACT:
  Each category carries a fixed (multiplier, salary basis) pair. This
  mapping encodes payroll policy and is not configurable per call:
    Friday/Holiday            1.5x Basic
    Early Morning Shift       1.5x Gross
    FN Shift Task             1.5x Gross
    Off Shift                 1.5x Basic
    Additional Duty Allowance 1.25x Basic

KNOWN LIMITATION:
  "Friday or holiday" is detected as weekday Friday OR a case-insensitive
  "holiday" substring in the free-text remarks. The substring match is
  loose ("no holiday today" also matches); it is preserved as operated
  until the payroll office defines a stricter signal.
*/
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Rate multipliers are fixed per category.
var (
	rate15  = decimal.NewFromFloat(1.5)
	rate125 = decimal.NewFromFloat(1.25)
)

// duty is a submission parsed and ready for classification.
type duty struct {
	date    time.Time
	shift   Shift
	start   Clock
	end     Clock
	hours   decimal.Decimal
	remarks string
}

// =============================================================================
// RULE - One (predicate, category) pair
// =============================================================================

// Rule couples a classification predicate with the pay terms that apply
// when it matches. Rules are evaluated in list order, first match wins;
// every list ends with an unconditional catch-all.
type Rule struct {
	Category   Category
	Multiplier decimal.Decimal
	Basis      SalaryBasis

	matches  func(d duty, cfg Config) bool
	describe func(cfg Config) string
}

// =============================================================================
// PREDICATES
// =============================================================================

// isFridayOrHoliday is the premium-day heuristic: weekday Friday, or the
// remarks mention "holiday" anywhere, in any case.
func isFridayOrHoliday(d duty) bool {
	return d.date.Weekday() == time.Friday ||
		strings.Contains(strings.ToLower(d.remarks), "holiday")
}

// touchesWindow reports whether the duty starts or ends inside w.
func touchesWindow(d duty, w Window) bool {
	return w.Contains(d.start) || w.Contains(d.end)
}

// =============================================================================
// RULE LISTS
// =============================================================================

// fridayHolidayRule is role-independent and always first.
func fridayHolidayRule() Rule {
	return Rule{
		Category:   CategoryFridayHoliday,
		Multiplier: rate15,
		Basis:      BasisBasic,
		matches:    func(d duty, _ Config) bool { return isFridayOrHoliday(d) },
		describe:   func(_ Config) string { return "Friday/Holiday duty at 1.5x Basic Salary" },
	}
}

// additionalDutyRule is the catch-all default and always last.
func additionalDutyRule() Rule {
	return Rule{
		Category:   CategoryAdditionalDuty,
		Multiplier: rate125,
		Basis:      BasisBasic,
		matches:    func(duty, Config) bool { return true },
		describe:   func(_ Config) string { return "Additional duty at 1.25x Basic Salary" },
	}
}

// DriverRules returns the driver classification list in priority order.
func DriverRules() []Rule {
	return []Rule{
		fridayHolidayRule(),
		{
			Category:   CategoryEarlyMorning,
			Multiplier: rate15,
			Basis:      BasisGross,
			matches: func(d duty, cfg Config) bool {
				return cfg.EarlyMorning.Contains(d.start)
			},
			describe: func(cfg Config) string {
				return fmt.Sprintf("Early morning shift (%s) at 1.5x Gross Salary", cfg.EarlyMorning)
			},
		},
		{
			Category:   CategoryOffShift,
			Multiplier: rate15,
			Basis:      BasisBasic,
			matches: func(d duty, cfg Config) bool {
				return touchesWindow(d, cfg.OffShift)
			},
			describe: func(cfg Config) string {
				return fmt.Sprintf("Off-shift duty (%s) at 1.5x Basic Salary", cfg.OffShift)
			},
		},
		additionalDutyRule(),
	}
}

// ConductorRules returns the conductor classification list in priority order.
func ConductorRules() []Rule {
	return []Rule{
		fridayHolidayRule(),
		{
			Category:   CategoryFNShiftTask,
			Multiplier: rate15,
			Basis:      BasisGross,
			matches: func(d duty, cfg Config) bool {
				return d.shift == ShiftFN && d.hours.LessThanOrEqual(cfg.ConductorDailyHourValue)
			},
			describe: func(cfg Config) string {
				return fmt.Sprintf("FN shift task (up to %vh) at 1.5x Gross Salary", cfg.ConductorDailyHourValue)
			},
		},
		{
			Category:   CategoryOffShift,
			Multiplier: rate15,
			Basis:      BasisBasic,
			matches: func(d duty, cfg Config) bool {
				return touchesWindow(d, cfg.OffShift)
			},
			describe: func(cfg Config) string {
				return fmt.Sprintf("Off-shift duty (%s) at 1.5x Basic Salary", cfg.OffShift)
			},
		},
		additionalDutyRule(),
	}
}

// RulesFor returns the rule list for a role.
func RulesFor(role Role) ([]Rule, error) {
	switch role {
	case RoleDriver:
		return DriverRules(), nil
	case RoleConductor:
		return ConductorRules(), nil
	default:
		return nil, &UnsupportedRoleError{Role: role}
	}
}

// classify walks the role's rule list and returns the first match. The
// catch-all guarantees a match for any valid role.
func classify(role Role, d duty, cfg Config) (Rule, error) {
	rules, err := RulesFor(role)
	if err != nil {
		return Rule{}, err
	}
	for _, r := range rules {
		if r.matches(d, cfg) {
			return r, nil
		}
	}
	return Rule{}, fmt.Errorf("no rule matched duty for role %q", role)
}
