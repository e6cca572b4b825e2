package schedule

import (
	"time"

	"github.com/sandeepkv93/reportd/internal/model"
)

// monthSchedule resolves the scheduled date a monthly-style rule produces
// for the given (year, month), or false when the configured day does not
// exist in that month (31 in February and the like).
//
// Unless the rule asked for the first working day (already a weekday by
// construction), a result landing on Saturday or Sunday is pulled back to
// the preceding Friday, which may cross into the previous month.
func monthSchedule(rule model.RecurrenceRule, year int, month time.Month, loc *time.Location) (time.Time, bool) {
	last := lastDayOfMonth(year, month, loc)

	day := 1
	firstWorking := false
	if rule.DayOfMonth != nil {
		switch *rule.DayOfMonth {
		case model.DayOfMonthLast:
			day = last
		case model.DayOfMonthFirstWorking:
			firstWorking = true
			switch time.Date(year, month, 1, 0, 0, 0, 0, loc).Weekday() {
			case time.Saturday:
				day = 3
			case time.Sunday:
				day = 2
			default:
				day = 1
			}
		default:
			day = *rule.DayOfMonth
			if day > last {
				return time.Time{}, false
			}
		}
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if !firstWorking {
		switch date.Weekday() {
		case time.Saturday:
			date = date.AddDate(0, 0, -1)
		case time.Sunday:
			date = date.AddDate(0, 0, -2)
		}
	}
	return date, true
}

// yearEnd is the scheduled date of a year-end rule: Dec 31, pulled back
// to Dec 30 when the 31st is a Saturday and to Dec 29 when it is a Sunday.
func yearEnd(year int, loc *time.Location) time.Time {
	date := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)
	switch date.Weekday() {
	case time.Saturday:
		return date.AddDate(0, 0, -1)
	case time.Sunday:
		return date.AddDate(0, 0, -2)
	}
	return date
}

// IsOccurringOn reports whether the rule produces an occurrence on the
// given calendar date. It is total: inactive rules and unknown
// frequencies yield false, never an error.
func IsOccurringOn(rule model.RecurrenceRule, date time.Time) bool {
	if !rule.Active {
		return false
	}

	switch rule.Frequency {
	case model.FrequencyDaily:
		return true

	case model.FrequencyWeekly:
		idx := MondayIndex(date)
		for _, d := range rule.Weekdays() {
			if d == idx {
				return true
			}
		}
		return false

	case model.FrequencyMonthly:
		return occursMonthly(rule, date)

	case model.FrequencyYearly:
		loc := date.Location()
		if rule.DayOfMonth != nil && *rule.DayOfMonth == model.DayOfMonthLast {
			return SameDay(date, yearEnd(date.Year(), loc)) ||
				SameDay(date, yearEnd(date.Year()+1, loc))
		}
		if rule.MonthOfYear == nil {
			// Without a target month the yearly rule degenerates into the
			// monthly algorithm. Long-standing behavior; keep it.
			return occursMonthly(rule, date)
		}
		month := time.Month(*rule.MonthOfYear)
		if sched, ok := monthSchedule(rule, date.Year(), month, loc); ok && SameDay(date, sched) {
			return true
		}
		if sched, ok := monthSchedule(rule, date.Year()+1, month, loc); ok && SameDay(date, sched) {
			return true
		}
		return false

	case model.FrequencyQuarterly, model.FrequencySemiannual:
		interval := rule.Frequency.MonthInterval()
		loc := date.Location()
		monthValue := int(date.Month())
		nextYear, next := nextMonth(date.Year(), date.Month())
		if rule.MonthOfYear != nil && *rule.MonthOfYear != monthValue && *rule.MonthOfYear != int(next) {
			return false
		}
		if monthValue%interval == 0 {
			if sched, ok := monthSchedule(rule, date.Year(), date.Month(), loc); ok && SameDay(date, sched) {
				return true
			}
		}
		if int(next)%interval == 0 {
			if sched, ok := monthSchedule(rule, nextYear, next, loc); ok && SameDay(date, sched) {
				return true
			}
		}
		return false

	default:
		return false
	}
}

// occursMonthly matches date against its own month's scheduled date and
// against the following month's. The second check catches schedules whose
// weekend backshift slides them across the month boundary.
func occursMonthly(rule model.RecurrenceRule, date time.Time) bool {
	loc := date.Location()
	if sched, ok := monthSchedule(rule, date.Year(), date.Month(), loc); ok && SameDay(date, sched) {
		return true
	}
	ny, nm := nextMonth(date.Year(), date.Month())
	if sched, ok := monthSchedule(rule, ny, nm, loc); ok && SameDay(date, sched) {
		return true
	}
	return false
}
