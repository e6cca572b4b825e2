package model

import (
	"errors"
	"fmt"
	"sort"
)

type Frequency string

const (
	FrequencyDaily      Frequency = "DAILY"
	FrequencyWeekly     Frequency = "WEEKLY"
	FrequencyMonthly    Frequency = "MONTHLY"
	FrequencyYearly     Frequency = "YEARLY"
	FrequencyQuarterly  Frequency = "QUARTERLY"
	FrequencySemiannual Frequency = "SEMIANNUAL"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly, FrequencyQuarterly, FrequencySemiannual:
		return true
	default:
		return false
	}
}

// MonthInterval is 3 for quarterly rules, 6 for semiannual ones and 0 for
// every other frequency.
func (f Frequency) MonthInterval() int {
	switch f {
	case FrequencyQuarterly:
		return 3
	case FrequencySemiannual:
		return 6
	default:
		return 0
	}
}

// Shorthand is the single-letter subtype printed on system report rows.
func (f Frequency) Shorthand() string {
	switch f {
	case FrequencyDaily:
		return "D"
	case FrequencyWeekly:
		return "W"
	case FrequencyMonthly:
		return "M"
	case FrequencyYearly:
		return "Y"
	case FrequencyQuarterly:
		return "Q"
	case FrequencySemiannual:
		return "H"
	default:
		return "?"
	}
}

// Sentinel values accepted by RecurrenceRule.DayOfMonth.
const (
	DayOfMonthLast         = 0  // last calendar day of the month
	DayOfMonthFirstWorking = -1 // first non-weekend day of the month
)

var (
	ErrInvalidFrequency  = errors.New("model: invalid recurrence frequency")
	ErrInvalidWeekday    = errors.New("model: weekday out of range")
	ErrInvalidDayOfMonth = errors.New("model: day of month out of range")
	ErrInvalidMonth      = errors.New("model: month of year out of range")
)

// RecurrenceRule describes when a template produces occurrences.
//
// Weekdays are Monday-indexed: 0=Monday .. 6=Sunday. DayOfMonth is nil for
// "day 1", a literal 1..31, or one of the sentinels above. MonthOfYear
// scopes yearly/quarterly/semiannual rules to a single month.
type RecurrenceRule struct {
	Frequency   Frequency
	DayOfWeek   *int
	DaysOfWeek  []int
	DayOfMonth  *int
	MonthOfYear *int
	Active      bool
}

func (r RecurrenceRule) Validate() error {
	if !r.Frequency.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, r.Frequency)
	}
	if r.DayOfWeek != nil && (*r.DayOfWeek < 0 || *r.DayOfWeek > 6) {
		return fmt.Errorf("%w: %d", ErrInvalidWeekday, *r.DayOfWeek)
	}
	if len(r.DaysOfWeek) > 0 {
		s := make([]int, len(r.DaysOfWeek))
		copy(s, r.DaysOfWeek)
		sort.Ints(s)
		for i, d := range s {
			if d < 0 || d > 6 {
				return fmt.Errorf("%w: %d", ErrInvalidWeekday, d)
			}
			if i > 0 && s[i-1] == d {
				return errors.New("model: duplicate weekday in recurrence")
			}
		}
	}
	if r.DayOfMonth != nil {
		if d := *r.DayOfMonth; d < DayOfMonthFirstWorking || d > 31 {
			return fmt.Errorf("%w: %d", ErrInvalidDayOfMonth, d)
		}
	}
	if r.MonthOfYear != nil && (*r.MonthOfYear < 1 || *r.MonthOfYear > 12) {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, *r.MonthOfYear)
	}
	return nil
}

// Weekdays returns the Monday-indexed weekdays a weekly rule fires on:
// the explicit set when present, the single configured weekday otherwise,
// and Monday as the final default.
func (r RecurrenceRule) Weekdays() []int {
	if len(r.DaysOfWeek) > 0 {
		out := make([]int, len(r.DaysOfWeek))
		copy(out, r.DaysOfWeek)
		sort.Ints(out)
		return out
	}
	if r.DayOfWeek != nil {
		return []int{*r.DayOfWeek}
	}
	return []int{0}
}
