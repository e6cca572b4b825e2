package report

import (
	"sort"
	"time"

	"github.com/sandeepkv93/reportd/internal/model"
)

// Input is everything one aggregation call consumes. The caller fetches
// and realizes the entities; Aggregate itself performs no I/O.
type Input struct {
	TodayOccurrences   []SystemItem
	OverdueOccurrences []SystemItem
	FastTasks          []model.Task
	ProjectTasks       []model.Task
	ReferenceDate      time.Time
	TargetUserID       string // empty means no user filter
}

// Aggregate merges recurring-template occurrences with fast and project
// tasks into one ordered report. The order is fixed: fast tasks (blocking
// first, then by kind rank), AM system occurrences, project tasks, PM
// system occurrences. Empty slots come back as placeholder rows so every
// report exposes all five category slots. Identical inputs always produce
// identical row sequences.
func Aggregate(in Input, lookup Lookup) []ReportRow {
	today := filterSystem(in.TodayOccurrences, in.TargetUserID)
	overdue := dedupOverdue(filterSystem(in.OverdueOccurrences, in.TargetUserID), today)
	fastTasks := filterTasks(in.FastTasks, in.TargetUserID)
	projectTasks := filterTasks(in.ProjectTasks, in.TargetUserID)

	fast := make([]ReportRow, 0, len(fastTasks))
	for _, task := range fastTasks {
		fast = append(fast, taskRow(task, in.ReferenceDate, lookup))
	}
	sort.SliceStable(fast, func(i, j int) bool {
		return model.TaskKind(fast[i].Subtype).Rank() < model.TaskKind(fast[j].Subtype).Rank()
	})

	var sysAM, sysPM []ReportRow
	for _, item := range append(today, overdue...) {
		row := systemRow(item, in.ReferenceDate, lookup)
		if row.Period == model.PeriodPM {
			sysPM = append(sysPM, row)
		} else {
			sysAM = append(sysAM, row)
		}
	}

	project := make([]ReportRow, 0, len(projectTasks))
	for _, task := range projectTasks {
		project = append(project, taskRow(task, in.ReferenceDate, lookup))
	}

	return assemble(fast, sysAM, project, sysPM)
}

// assemble concatenates the four ordered groups, inserting a placeholder
// for each of the five slots that has no rows. The fast group spans two
// slots: blocking tasks (kind rank 0) and everything else.
func assemble(fast, sysAM, project, sysPM []ReportRow) []ReportRow {
	blocked, other := splitBlocked(fast)

	out := make([]ReportRow, 0, len(fast)+len(sysAM)+len(project)+len(sysPM)+5)
	out = appendSlot(out, blocked, CategoryFast, "")
	out = appendSlot(out, other, CategoryFast, "")
	out = appendSlot(out, sysAM, CategorySystem, model.PeriodAM)
	out = appendSlot(out, project, CategoryProject, "")
	out = appendSlot(out, sysPM, CategorySystem, model.PeriodPM)
	return out
}

func splitBlocked(fast []ReportRow) (blocked, other []ReportRow) {
	for _, row := range fast {
		if model.TaskKind(row.Subtype) == model.TaskKindBlocked {
			blocked = append(blocked, row)
		} else {
			other = append(other, row)
		}
	}
	return blocked, other
}

func appendSlot(out, rows []ReportRow, category Category, period model.Period) []ReportRow {
	if len(rows) == 0 {
		return append(out, placeholderRow(category, period))
	}
	return append(out, rows...)
}

// dedupOverdue keeps the most recent overdue occurrence per template and
// drops templates that already occur today.
func dedupOverdue(overdue, today []SystemItem) []SystemItem {
	seenToday := make(map[string]bool, len(today))
	for _, item := range today {
		seenToday[item.Template.ID] = true
	}

	latest := make(map[string]int, len(overdue))
	out := make([]SystemItem, 0, len(overdue))
	for _, item := range overdue {
		if seenToday[item.Template.ID] {
			continue
		}
		if idx, ok := latest[item.Template.ID]; ok {
			if item.Occurrence.Date.After(out[idx].Occurrence.Date) {
				out[idx] = item
			}
			continue
		}
		latest[item.Template.ID] = len(out)
		out = append(out, item)
	}
	return out
}

func filterSystem(items []SystemItem, userID string) []SystemItem {
	if userID == "" {
		return items
	}
	out := make([]SystemItem, 0, len(items))
	for _, item := range items {
		if item.Template.AssignedTo(userID) {
			out = append(out, item)
		}
	}
	return out
}

func filterTasks(tasks []model.Task, userID string) []model.Task {
	if userID == "" {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.AssignedTo(userID) {
			out = append(out, task)
		}
	}
	return out
}
