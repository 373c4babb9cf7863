// Package clock provides injectable time sources so that billing and overstay
// computations are deterministic under test.
package clock

import (
	"time"
)

// Clock is the time-source capability threaded into the pure engines.
// Production code uses System; tests supply Fixed timestamps.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. For tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Hotel wraps a Clock and converts readings to the hotel's configured
// local timezone. All "today" decisions in the core are hotel-local.
type Hotel struct {
	Source   Clock
	Location *time.Location
}

// NewHotel creates a hotel-local clock. A nil location falls back to UTC.
func NewHotel(source Clock, loc *time.Location) Hotel {
	if loc == nil {
		loc = time.UTC
	}
	return Hotel{Source: source, Location: loc}
}

// Now returns the current instant in hotel-local time.
func (h Hotel) Now() time.Time {
	return h.Source.Now().In(h.Location)
}

// Today returns the current hotel-local civil date (midnight, hotel tz).
func (h Hotel) Today() time.Time {
	return DateOf(h.Now())
}

// DateOf truncates a timestamp to its civil date, preserving location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole civil days from one date to another.
// Both arguments are normalized to their civil dates first; the result is
// negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	// Compare y/m/d only: rebuild both in UTC to sidestep DST arithmetic.
	f := DateOf(from)
	fu := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	t := DateOf(to)
	tu := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(tu.Sub(fu).Hours() / 24)
}

// SameDate reports whether two timestamps fall on the same civil date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
