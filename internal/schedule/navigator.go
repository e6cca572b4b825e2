package schedule

import (
	"time"

	"github.com/sandeepkv93/reportd/internal/model"
)

// previousScanLimit bounds the backward day-by-day walk. A year plus a
// few days covers every supported frequency.
const previousScanLimit = 370

// forwardMonthLimit bounds the month scan for quarterly and semiannual
// rules.
const forwardMonthLimit = 24

// NextOccurrence returns the first date on or after 'from' the rule fires
// on. 'from' is normalized to its calendar date first. When no occurrence
// can be resolved within the frequency's bound, 'from' itself comes back;
// callers treat an unchanged value as "not found".
func NextOccurrence(rule model.RecurrenceRule, from time.Time) time.Time {
	loc := from.Location()
	from = Midnight(from, loc)

	switch rule.Frequency {
	case model.FrequencyDaily:
		return from

	case model.FrequencyWeekly:
		days := rule.Weekdays()
		idx := MondayIndex(from)
		for _, d := range days {
			if d >= idx {
				return from.AddDate(0, 0, d-idx)
			}
		}
		return from.AddDate(0, 0, 7-idx+days[0])

	case model.FrequencyMonthly:
		return nextMonthly(rule, from)

	case model.FrequencyYearly:
		if rule.DayOfMonth != nil && *rule.DayOfMonth == model.DayOfMonthLast {
			if sched := yearEnd(from.Year(), loc); !sched.Before(from) {
				return sched
			}
			return yearEnd(from.Year()+1, loc)
		}
		if rule.MonthOfYear == nil {
			return nextMonthly(rule, from)
		}
		month := time.Month(*rule.MonthOfYear)
		// A January schedule can backshift into late December, so the
		// next-year result needs the same on-or-after guard.
		for i := 0; i <= 2; i++ {
			if sched, ok := monthSchedule(rule, from.Year()+i, month, loc); ok && !sched.Before(from) {
				return sched
			}
		}
		return from

	case model.FrequencyQuarterly, model.FrequencySemiannual:
		interval := rule.Frequency.MonthInterval()
		year, month := from.Year(), from.Month()
		for i := 0; i < forwardMonthLimit; i++ {
			qualifies := int(month)%interval == 0 &&
				(rule.MonthOfYear == nil || *rule.MonthOfYear == int(month))
			if qualifies {
				if sched, ok := monthSchedule(rule, year, month, loc); ok && !sched.Before(from) {
					return sched
				}
			}
			year, month = nextMonth(year, month)
		}
		return from

	default:
		return from
	}
}

// nextMonthly walks month by month until a scheduled date lands on or
// after 'from'. The guard matters at month ends: a day-1 schedule in the
// following month can backshift across the boundary to a date before
// 'from', so an unguarded next-month result would move backward.
func nextMonthly(rule model.RecurrenceRule, from time.Time) time.Time {
	loc := from.Location()
	year, month := from.Year(), from.Month()
	for i := 0; i < forwardMonthLimit; i++ {
		if sched, ok := monthSchedule(rule, year, month, loc); ok && !sched.Before(from) {
			return sched
		}
		year, month = nextMonth(year, month)
	}
	return from
}

// PreviousOccurrence walks backward day by day from 'from' until the rule
// fires, bounded to previousScanLimit days. On exhaustion it returns
// 'from' unchanged as the explicit safety fallback.
func PreviousOccurrence(rule model.RecurrenceRule, from time.Time) time.Time {
	start := Midnight(from, from.Location())
	cursor := start
	for i := 0; i < previousScanLimit; i++ {
		if IsOccurringOn(rule, cursor) {
			return cursor
		}
		cursor = cursor.AddDate(0, 0, -1)
	}
	return start
}
