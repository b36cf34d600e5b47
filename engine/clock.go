package engine

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLOCK - Wall-clock time of day with minute precision
// =============================================================================

// Clock is a time of day on an unspecified calendar day. Duty intervals
// and premium windows are pairs of Clocks; both kinds of intervals may
// wrap past midnight.
type Clock struct {
	minutes int // since midnight, 0..1439
}

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ParseClock parses a 24-hour "HH:mm" string (hours 00-23, minutes 00-59).
func ParseClock(s string) (Clock, error) {
	if !clockPattern.MatchString(s) {
		return Clock{}, &BadClockError{Value: s}
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	return Clock{minutes: h*60 + m}, nil
}

// MustClock parses s or panics. For constants and tests only.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) Hour() int   { return c.minutes / 60 }
func (c Clock) Minute() int { return c.minutes % 60 }

func (c Clock) Before(o Clock) bool { return c.minutes < o.minutes }
func (c Clock) After(o Clock) bool  { return c.minutes > o.minutes }
func (c Clock) Equal(o Clock) bool  { return c.minutes == o.minutes }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// =============================================================================
// ELAPSED HOURS - Duty duration with midnight wrap
// =============================================================================

var sixty = decimal.NewFromInt(60)

// ElapsedHours computes the duty duration from start to end in hours,
// rounded to 2 decimals. An end clock earlier than the start clock means
// the duty crossed midnight, so 22:00 to 05:00 is 7 hours, not -17.
// Equal clocks yield zero; the validator rejects that case.
func ElapsedHours(start, end Clock) decimal.Decimal {
	mins := end.minutes - start.minutes
	if mins < 0 {
		mins += 24 * 60
	}
	return decimal.NewFromInt(int64(mins)).Div(sixty).Round(2)
}

// =============================================================================
// WINDOW - Named premium interval, possibly wrapping midnight
// =============================================================================

// Window is a clock interval. Both bounds are inclusive, matching the
// payroll policy as operated: a duty starting exactly at the window edge
// attracts the premium.
type Window struct {
	Start Clock
	End   Clock
}

// Wraps reports whether the window crosses midnight (end before start),
// e.g. the 19:30-04:30 off-shift window.
func (w Window) Wraps() bool { return w.End.Before(w.Start) }

// Contains reports whether c falls inside the window. A wrapping window
// is tested as two sub-ranges, [start, midnight] and [midnight, end].
func (w Window) Contains(c Clock) bool {
	if w.Wraps() {
		return !c.Before(w.Start) || !c.After(w.End)
	}
	return !c.Before(w.Start) && !c.After(w.End)
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}
