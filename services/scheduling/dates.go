package scheduling

import (
	"fmt"
	"time"
)

// CalendarDate is a wall-clock calendar day with no time zone attached.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// CalendarDateOf returns the calendar day t falls on in its own location.
func CalendarDateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// String renders the canonical form, e.g. "April 25, 2025".
func (d CalendarDate) String() string {
	return fmt.Sprintf("%s %d, %d", d.Month.String(), d.Day, d.Year)
}

func (d CalendarDate) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return CalendarDateOf(d.midnight().AddDate(0, 0, n))
}

func (d CalendarDate) Before(o CalendarDate) bool {
	return d.midnight().Before(o.midnight())
}

func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// Valid reports whether Day exists in Month of Year.
func (d CalendarDate) Valid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	return CalendarDateOf(d.midnight()) == d
}

// At returns the instant minutes past midnight of d in loc.
func (d CalendarDate) At(minutes int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc).Add(time.Duration(minutes) * time.Minute)
}

// MinuteOfDay returns minutes elapsed since midnight for t's wall clock.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Key renders d as "2006-01-02" for storage lookups.
func (d CalendarDate) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
