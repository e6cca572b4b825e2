package report

import (
	"reflect"
	"testing"

	"github.com/sandeepkv93/reportd/internal/model"
)

func TestReplaySnapshotAddsMissingActiveTasks(t *testing.T) {
	ref := day(2024, 1, 15)

	present := fastTask("ft-present", "already here", model.TaskKindNormal)
	present.StartDate = timePtr(day(2024, 1, 14))
	present.DueDate = timePtr(day(2024, 1, 16))

	missing := fastTask("ft-missing", "dropped from sheet", model.TaskKindNormal)
	missing.StartDate = timePtr(day(2024, 1, 10))
	missing.DueDate = timePtr(day(2024, 1, 20))

	outside := fastTask("ft-outside", "not yet started", model.TaskKindNormal)
	outside.StartDate = timePtr(day(2024, 2, 1))
	outside.DueDate = timePtr(day(2024, 2, 5))

	snap := Snapshot{
		Date: ref,
		Rows: Aggregate(Input{
			FastTasks:     []model.Task{present},
			ReferenceDate: ref,
		}, Lookup{}),
	}

	rows := ReplaySnapshot(snap, []model.Task{present, missing, outside}, nil, Lookup{})

	got := map[string]bool{}
	for _, row := range rows {
		if !row.Placeholder {
			got[row.Title] = true
		}
	}
	if !got["already here"] || !got["dropped from sheet"] {
		t.Fatalf("active tasks missing from replay: %v", got)
	}
	if got["not yet started"] {
		t.Fatal("task outside its window must not be replayed in")
	}
	// The pre-existing row must not be duplicated.
	count := 0
	for _, row := range rows {
		if row.CommentKey == TaskCommentKey("ft-present") {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one row for ft-present, got %d", count)
	}
}

func TestReplaySnapshotSortsGroupsByLateness(t *testing.T) {
	ref := day(2024, 1, 15)

	mk := func(id string, due int) model.Task {
		task := fastTask(id, id, model.TaskKindNormal)
		task.StartDate = timePtr(day(2024, 1, 1))
		task.DueDate = timePtr(day(2024, 1, due))
		return task
	}
	// Due the 10th -> "5", the 14th -> "Y", the 15th -> "T".
	tasks := []model.Task{mk("due-today", 15), mk("very-late", 10), mk("one-late", 14)}

	snap := Snapshot{Date: ref, Rows: Aggregate(Input{FastTasks: tasks, ReferenceDate: ref}, Lookup{})}
	rows := ReplaySnapshot(snap, tasks, nil, Lookup{})

	var fast []string
	for _, row := range rows {
		if row.Category == CategoryFast && !row.Placeholder {
			fast = append(fast, row.Title)
		}
	}
	want := []string{"very-late", "one-late", "due-today"}
	if !reflect.DeepEqual(fast, want) {
		t.Fatalf("lateness ordering mismatch:\n got %v\nwant %v", fast, want)
	}
}

func TestReplaySnapshotKeepsSystemRowsAndSlots(t *testing.T) {
	ref := day(2024, 1, 15)
	snap := Snapshot{
		Date: ref,
		Rows: Aggregate(Input{
			TodayOccurrences: []SystemItem{
				sysItem(dailyTemplate("tmpl-am", "Morning check", model.PeriodAM), ref),
			},
			ReferenceDate: ref,
		}, Lookup{}),
	}

	rows := ReplaySnapshot(snap, nil, nil, Lookup{})

	if len(rows) != 5 {
		t.Fatalf("expected 4 placeholders + 1 system row, got %d rows", len(rows))
	}
	if rows[2].Title != "Morning check" || rows[2].Category != CategorySystem {
		t.Fatalf("system row lost in replay: %+v", rows[2])
	}
}
