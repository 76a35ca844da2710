// Package time contains clock seams and UTC day helpers
package time

import "time"

// Clock returns the current instant
type Clock func() time.Time

// UTC is the production clock
func UTC() time.Time { return time.Now().UTC() }

// Fixed returns a Clock that always reports t
func Fixed(t time.Time) Clock { return func() time.Time { return t } }

// OrDefault returns c, or the UTC clock when c is nil
func (c Clock) OrDefault() Clock {
	if c == nil {
		return UTC
	}
	return c
}

// DayLayout is the calendar-date layout used for export days
const DayLayout = time.DateOnly

// Day formats t's UTC calendar date as YYYY-MM-DD
func Day(t time.Time) string { return t.UTC().Format(DayLayout) }

// DayBounds returns the first and last whole second of t's UTC calendar day
func DayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24*time.Hour - time.Second)
}
