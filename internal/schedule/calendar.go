// Package schedule holds the pure calendar math behind recurring
// templates: deciding whether a rule fires on a date and navigating to
// the nearest occurrence in either direction. All functions are total
// and side-effect free; dates are local calendar days at midnight.
package schedule

import "time"

// MondayIndex converts Go's Sunday-based weekday to the Monday-indexed
// 0..6 scheme used by recurrence rules (Monday=0 .. Sunday=6).
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Midnight truncates t to its calendar date in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WholeDays is the number of whole calendar days from 'from' to 'to',
// negative when 'to' precedes 'from'. Only the calendar components
// count; the two values may carry different locations without skewing
// the difference, the same contract SameDay keeps.
func WholeDays(from, to time.Time) int {
	return dayOrdinal(to) - dayOrdinal(from)
}

// dayOrdinal maps a calendar date onto a continuous day count,
// independent of the value's location.
func dayOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func lastDayOfMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, loc).AddDate(0, 1, -1).Day()
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
