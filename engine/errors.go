/*
errors.go - Centralized error types for the overtime engine

PURPOSE:
  All engine error types in one place. Callers branch with errors.Is()
  against the sentinels; the structured types carry context for messages.

ERROR CATEGORIES:
  1. Input errors - Malformed dates and clock times on a submission
  2. Configuration errors - Non-positive divisors (ops mistake, fatal to
     the calculation, never a silent division)
  3. Role errors - A role outside the two supported variants

Note that submission well-formedness in production flows is reported by
ValidateSubmission as a plain error-string list, not as error values;
the types here surface when Calculate is invoked directly on bad input.
*/
package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnsupportedRole is returned when a role is neither Driver nor
	// Conductor. Classification fails loudly rather than defaulting into
	// one branch.
	ErrUnsupportedRole = errors.New("unsupported role")

	// ErrBadConfig is returned when a rate divisor is zero or negative.
	ErrBadConfig = errors.New("invalid overtime configuration")

	// ErrBadClock is returned when a clock string is not valid "HH:mm".
	ErrBadClock = errors.New("invalid clock time")

	// ErrBadDate is returned when a date string is not a valid calendar
	// date in "YYYY-MM-DD" shape.
	ErrBadDate = errors.New("invalid date")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnsupportedRoleError reports a role outside the two supported variants.
type UnsupportedRoleError struct {
	Role Role
}

func (e *UnsupportedRoleError) Error() string {
	return fmt.Sprintf("unsupported role %q: must be Driver or Conductor", string(e.Role))
}

func (e *UnsupportedRoleError) Unwrap() error { return ErrUnsupportedRole }

// ConfigError reports a non-positive divisor in the active configuration.
type ConfigError struct {
	Field string
	Value decimal.Decimal
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid overtime configuration: %s must be positive, got %v", e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error { return ErrBadConfig }

// BadClockError reports a malformed clock string.
type BadClockError struct {
	Value string
}

func (e *BadClockError) Error() string {
	return fmt.Sprintf("invalid clock time %q: want 24-hour HH:mm", e.Value)
}

func (e *BadClockError) Unwrap() error { return ErrBadClock }

// BadDateError reports a malformed date string.
type BadDateError struct {
	Value string
}

func (e *BadDateError) Error() string {
	return fmt.Sprintf("invalid date %q: want YYYY-MM-DD", e.Value)
}

func (e *BadDateError) Unwrap() error { return ErrBadDate }
