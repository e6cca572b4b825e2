// Package report turns template occurrences and tasks into one
// deterministically ordered daily report. It owns the lateness labels,
// the row ordering and the dedup rules; presentation layers render rows
// verbatim and never re-derive either.
package report

import (
	"strconv"
	"time"

	"github.com/sandeepkv93/reportd/internal/schedule"
)

// LatenessMode selects how ReportTyo interprets the task window.
type LatenessMode string

const (
	// ModeRange treats the task as due anywhere inside [start, due].
	ModeRange LatenessMode = "range"
	// ModeDueOnly treats only the due date itself as "today".
	ModeDueOnly LatenessMode = "dueOnly"
)

// TyoLabel is the "how late" label for an occurrence relative to today:
// "T" when it belongs to today (or was acted on today), "Y" when one day
// old, the day count when older, "-" otherwise. All comparisons are at
// calendar-day granularity.
func TyoLabel(base *time.Time, actedAt *time.Time, today time.Time) string {
	if actedAt != nil && schedule.SameDay(*actedAt, today) {
		return "T"
	}
	if base == nil {
		return "-"
	}
	if schedule.SameDay(*base, today) {
		return "T"
	}
	delta := schedule.WholeDays(*base, today)
	switch {
	case delta == 1:
		return "Y"
	case delta > 1:
		return strconv.Itoa(delta)
	default:
		return "-"
	}
}

// ReportTyo is the lateness label for a task on a report date. A task
// without a due date never becomes late.
func ReportTyo(reportDate time.Time, start, due *time.Time, mode LatenessMode) string {
	if due == nil {
		return "-"
	}
	late := schedule.WholeDays(*due, reportDate)
	switch mode {
	case ModeRange:
		if start != nil && schedule.WholeDays(*start, reportDate) < 0 {
			return "-"
		}
		if late <= 0 {
			return "T"
		}
	case ModeDueOnly:
		if late < 0 {
			return "-"
		}
		if late == 0 {
			return "T"
		}
	default:
		return "-"
	}
	if late == 1 {
		return "Y"
	}
	return strconv.Itoa(late)
}

// latenessRank maps a label onto a sortable (class, value) pair used by
// the snapshot-replay ordering: numeric labels outrank "Y", then "T",
// then "-"; numeric labels compare by value.
func latenessRank(label string) (int, int) {
	switch label {
	case "-", "":
		return 0, 0
	case "T":
		return 1, 0
	case "Y":
		return 2, 0
	}
	if n, err := strconv.Atoi(label); err == nil {
		return 3, n
	}
	return 0, 0
}

// laterThan orders labels most-late first.
func laterThan(a, b string) bool {
	ac, av := latenessRank(a)
	bc, bv := latenessRank(b)
	if ac != bc {
		return ac > bc
	}
	return av > bv
}
