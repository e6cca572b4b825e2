package report

import (
	"sort"
	"time"

	"github.com/sandeepkv93/reportd/internal/model"
)

// Snapshot is an already-assembled report kept for printing or export.
type Snapshot struct {
	Date time.Time
	Rows []ReportRow
}

// ReplaySnapshot rebuilds a snapshot for printing. Task inclusion is
// recomputed from the task lists themselves: a task active anywhere in
// its start..due window on the snapshot date is included even when the
// snapshot missed it, so nothing active silently drops off a printed
// sheet. Within each group rows are ordered most-late first (day counts,
// then "Y", then "T", then "-"), and the usual four-group ordering with
// five placeholder slots applies.
func ReplaySnapshot(snap Snapshot, fastTasks, projectTasks []model.Task, lookup Lookup) []ReportRow {
	present := make(map[string]bool, len(snap.Rows))
	for _, row := range snap.Rows {
		if row.CommentKey != "" {
			present[row.CommentKey] = true
		}
	}

	var fast, sysAM, project, sysPM []ReportRow
	for _, row := range snap.Rows {
		if row.Placeholder {
			continue
		}
		switch row.Category {
		case CategoryFast:
			fast = append(fast, row)
		case CategoryProject:
			project = append(project, row)
		case CategorySystem:
			if row.Period == model.PeriodPM {
				sysPM = append(sysPM, row)
			} else {
				sysAM = append(sysAM, row)
			}
		}
	}

	fast = append(fast, missingTaskRows(fastTasks, snap.Date, present, lookup)...)
	project = append(project, missingTaskRows(projectTasks, snap.Date, present, lookup)...)

	sortByLateness(fast)
	sortByLateness(sysAM)
	sortByLateness(project)
	sortByLateness(sysPM)

	return assemble(fast, sysAM, project, sysPM)
}

func missingTaskRows(tasks []model.Task, date time.Time, present map[string]bool, lookup Lookup) []ReportRow {
	var out []ReportRow
	for _, task := range tasks {
		if !task.ActiveOn(date) {
			continue
		}
		if present[TaskCommentKey(task.ID)] {
			continue
		}
		out = append(out, taskRow(task, date, lookup))
	}
	return out
}

func sortByLateness(rows []ReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return laterThan(rows[i].Lateness, rows[j].Lateness)
	})
}
