// Package booking implements the reservation availability and table
// assignment engine.  It is storage-agnostic: all state is reached
// through the narrow store interfaces declared in engine.go, so the same
// logic runs against MySQL in production and in-memory fakes in tests.
package booking

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar-date format used across the API and the
	// reservations table ("YYYY-MM-DD").
	DateLayout = "2006-01-02"
	// TimeLayout is the time-of-day format ("HH:MM").  Fixed width, so
	// lexicographic comparison of two values orders them chronologically.
	TimeLayout = "15:04"
	// DefaultDurationHours is how long a table is held per booking when
	// no duration is configured.
	DefaultDurationHours = 2
)

// ErrBadSlot reports a malformed date or time on a reservation request.
var ErrBadSlot = errors.New("invalid date or time")

// Slot is a candidate reservation window on a single calendar date.
// End is always Start plus the booking duration, clamped to 23:59 so the
// window never spills into the next day.
type Slot struct {
	Date  string
	Start string
	End   string
}

// NewSlot validates date and start against their layouts and derives the
// end time.  durationHours must be positive.
func NewSlot(date, start string, durationHours int) (Slot, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Slot{}, fmt.Errorf("%w: date %q", ErrBadSlot, date)
	}
	t, err := time.Parse(TimeLayout, start)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: time %q", ErrBadSlot, start)
	}
	if durationHours <= 0 {
		durationHours = DefaultDurationHours
	}
	end := t.Add(time.Duration(durationHours) * time.Hour)
	// A window ending past midnight is clamped to the end of the day so
	// the stored interval stays well-formed on its own date.
	if end.Day() != t.Day() {
		end = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, time.UTC)
	}
	return Slot{Date: date, Start: start, End: end.Format(TimeLayout)}, nil
}

// overlaps reports whether the half-open windows [aStart, aEnd) and
// [bStart, bEnd) intersect.  True interval overlap: it also catches the
// case where one window fully contains the other.
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}
