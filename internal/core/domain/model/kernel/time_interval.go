package kernel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	timeOfDayLayout   = "15:04"
	intervalSeparator = "-"
	minutesPerDay     = 24 * 60
)

// ErrTimeIntervalIsNotConstructed is returned when a zero-value TimeInterval is used.
var ErrTimeIntervalIsNotConstructed = errs.NewValueIsRequiredError(
	"time interval must be created via NewTimeInterval or ParseTimeInterval")

// TimeInterval is a same-day range of wall-clock time with minute precision.
// Both ends are inclusive.
//
// Example:
//
//	working, _ := kernel.ParseTimeInterval("11:35-14:55")
//	delivery, _ := kernel.ParseTimeInterval("12:00-14:30")
//	working.Overlaps(delivery) // true
type TimeInterval struct { //nolint:recvcheck //using for validation
	start int
	end   int
	guard guard.ConstructorGuard
}

// NewTimeInterval builds an interval from minutes since midnight.
// start must be strictly before end and both must fall inside one day.
func NewTimeInterval(start, end int) (TimeInterval, error) {
	interval := TimeInterval{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(interval.setStart(start), interval.setEnd(end)); err != nil {
		return TimeInterval{}, err
	}

	if interval.start >= interval.end {
		return TimeInterval{}, errs.NewValueIsInvalidErrorWithCause(
			"time interval",
			fmt.Errorf("start %s is not before end %s", formatMinutes(start), formatMinutes(end)),
		)
	}

	return interval, nil
}

// ParseTimeInterval parses "H:MM-HH:MM" (single-digit hours are accepted).
func ParseTimeInterval(s string) (TimeInterval, error) {
	parts := strings.Split(s, intervalSeparator)
	if len(parts) != 2 {
		return TimeInterval{}, errs.NewValueIsInvalidErrorWithCause(
			"time interval", fmt.Errorf("%q is not in HH:MM-HH:MM form", s))
	}

	start, err := parseTimeOfDay(parts[0])
	if err != nil {
		return TimeInterval{}, err
	}

	end, err := parseTimeOfDay(parts[1])
	if err != nil {
		return TimeInterval{}, err
	}

	return NewTimeInterval(start, end)
}

// ParseTimeIntervals parses every entry and joins all failures.
func ParseTimeIntervals(values []string) ([]TimeInterval, error) {
	intervals := make([]TimeInterval, 0, len(values))
	var parseErrs []error

	for _, value := range values {
		interval, err := ParseTimeInterval(value)
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}
		intervals = append(intervals, interval)
	}

	if err := errors.Join(parseErrs...); err != nil {
		return nil, err
	}

	return intervals, nil
}

// Start returns the interval start in minutes since midnight.
func (i TimeInterval) Start() int {
	return i.start
}

// End returns the interval end in minutes since midnight.
func (i TimeInterval) End() int {
	return i.end
}

// Overlaps reports whether the two intervals share at least one instant.
// Touching ends count as an overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.start <= other.end && other.start <= i.end
}

func (i TimeInterval) IsEqual(other TimeInterval) bool {
	return i.start == other.start && i.end == other.end
}

// String renders the interval as HH:MM-HH:MM.
func (i TimeInterval) String() string {
	return formatMinutes(i.start) + intervalSeparator + formatMinutes(i.end)
}

func (i TimeInterval) Validate() error {
	return i.guard.Validate(ErrTimeIntervalIsNotConstructed)
}

// AnyOverlap reports whether any interval of a intersects any interval of b.
// It is an existential test: no interval has to be contained in another.
func AnyOverlap(a, b []TimeInterval) bool {
	for _, left := range a {
		for _, right := range b {
			if left.Overlaps(right) {
				return true
			}
		}
	}
	return false
}

// FormatTimeIntervals is the inverse of ParseTimeIntervals.
func FormatTimeIntervals(intervals []TimeInterval) []string {
	out := make([]string, 0, len(intervals))
	for _, interval := range intervals {
		out = append(out, interval.String())
	}
	return out
}

func (i *TimeInterval) setStart(start int) error {
	if start < 0 || start >= minutesPerDay {
		return errs.NewValueIsOutOfRangeError("interval start", start, 0, minutesPerDay-1)
	}
	i.start = start
	return nil
}

func (i *TimeInterval) setEnd(end int) error {
	if end < 0 || end >= minutesPerDay {
		return errs.NewValueIsOutOfRangeError("interval end", end, 0, minutesPerDay-1)
	}
	i.end = end
	return nil
}

func parseTimeOfDay(s string) (int, error) {
	parsed, err := time.Parse(timeOfDayLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("time of day", err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
