package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/reportd/internal/model"
)

func dailyTemplate(id, title string, period model.Period) model.Template {
	return model.Template{
		ID:           id,
		Title:        title,
		Rule:         model.RecurrenceRule{Frequency: model.FrequencyDaily, Active: true},
		FinishPeriod: period,
		AssigneeIDs:  []string{"u-alice"},
	}
}

func sysItem(tmpl model.Template, date time.Time) SystemItem {
	return SystemItem{
		Template:   tmpl,
		Occurrence: model.Occurrence{TemplateID: tmpl.ID, Date: date, Status: model.OccurrenceOpen},
	}
}

func fastTask(id, title string, kind model.TaskKind) model.Task {
	return model.Task{
		ID:        id,
		Title:     title,
		Kind:      kind,
		OwnerID:   "u-alice",
		CreatedAt: day(2024, 1, 2),
	}
}

func projectTask(id, projectID, title string) model.Task {
	task := fastTask(id, title, model.TaskKindNormal)
	task.ProjectID = projectID
	return task
}

func titles(rows []ReportRow) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Title)
	}
	return out
}

func TestAggregateFixedOrdering(t *testing.T) {
	ref := day(2024, 1, 15)
	in := Input{
		TodayOccurrences: []SystemItem{
			sysItem(dailyTemplate("tmpl-pm", "Evening close", model.PeriodPM), ref),
			sysItem(dailyTemplate("tmpl-am", "Morning check", model.PeriodAM), ref),
		},
		FastTasks: []model.Task{
			fastTask("ft-normal", "Normal chore", model.TaskKindNormal),
			fastTask("ft-blocked", "Blocked escalation", model.TaskKindBlocked),
		},
		ProjectTasks:  []model.Task{projectTask("pt-1", "prj-1", "Project milestone")},
		ReferenceDate: ref,
	}

	rows := Aggregate(in, Lookup{ProjectTitles: map[string]string{"prj-1": "Apollo"}})

	want := []string{
		"Blocked escalation",
		"Normal chore",
		"Morning check",
		"Project milestone",
		"Evening close",
	}
	if got := titles(rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("ordering mismatch:\n got %v\nwant %v", got, want)
	}
	if rows[3].Subtype != "Apollo" {
		t.Fatalf("project row should carry the project title, got %q", rows[3].Subtype)
	}
}

func TestAggregateFastTaskRankWithStableTies(t *testing.T) {
	ref := day(2024, 1, 15)
	in := Input{
		FastTasks: []model.Task{
			fastTask("ft-1", "first normal", model.TaskKindNormal),
			fastTask("ft-2", "hourly", model.TaskKindHourly),
			fastTask("ft-3", "second normal", model.TaskKindNormal),
			fastTask("ft-4", "personal", model.TaskKindPersonal),
			fastTask("ft-5", "first case", model.TaskKindFirstCase),
		},
		ReferenceDate: ref,
	}

	rows := Aggregate(in, Lookup{})

	// No blocking task: the first slot renders its placeholder.
	if !rows[0].Placeholder || rows[0].Category != CategoryFast {
		t.Fatalf("expected fast placeholder first, got %+v", rows[0])
	}
	want := []string{"hourly", "personal", "first case", "first normal", "second normal"}
	if got := titles(rows[1:6]); !reflect.DeepEqual(got, want) {
		t.Fatalf("rank ordering mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestAggregateDedupsOverduePerTemplate(t *testing.T) {
	ref := day(2024, 1, 15)
	tmpl := dailyTemplate("tmpl-1", "Ledger entry", model.PeriodAM)
	todayTmpl := dailyTemplate("tmpl-2", "Today too", model.PeriodAM)

	in := Input{
		TodayOccurrences: []SystemItem{sysItem(todayTmpl, ref)},
		OverdueOccurrences: []SystemItem{
			sysItem(tmpl, day(2024, 1, 10)),
			sysItem(tmpl, day(2024, 1, 12)),
			sysItem(tmpl, day(2024, 1, 11)),
			sysItem(todayTmpl, day(2024, 1, 12)),
		},
		ReferenceDate: ref,
	}

	rows := Aggregate(in, Lookup{})

	var sysRows []ReportRow
	for _, row := range rows {
		if row.Category == CategorySystem && !row.Placeholder {
			sysRows = append(sysRows, row)
		}
	}
	if len(sysRows) != 2 {
		t.Fatalf("expected today + one deduped overdue row, got %d", len(sysRows))
	}
	// The surviving overdue occurrence is the most recent (Jan 12 -> "3").
	if sysRows[1].Lateness != "3" {
		t.Fatalf("expected lateness 3 for Jan 12 overdue, got %q", sysRows[1].Lateness)
	}
	if sysRows[1].CommentKey != SystemCommentKey("tmpl-1", day(2024, 1, 12)) {
		t.Fatalf("unexpected comment key %q", sysRows[1].CommentKey)
	}
}

func TestAggregateUserFilter(t *testing.T) {
	ref := day(2024, 1, 15)
	mine := fastTask("ft-mine", "mine", model.TaskKindNormal)
	assigned := fastTask("ft-assigned", "assigned", model.TaskKindNormal)
	assigned.OwnerID = "u-bob"
	assigned.AssigneeIDs = []string{"u-alice"}
	other := fastTask("ft-other", "someone else", model.TaskKindNormal)
	other.OwnerID = "u-bob"

	otherTmpl := dailyTemplate("tmpl-other", "Not mine", model.PeriodAM)
	otherTmpl.AssigneeIDs = []string{"u-bob"}

	in := Input{
		TodayOccurrences: []SystemItem{
			sysItem(dailyTemplate("tmpl-mine", "Mine", model.PeriodAM), ref),
			sysItem(otherTmpl, ref),
		},
		FastTasks:     []model.Task{mine, assigned, other},
		ReferenceDate: ref,
		TargetUserID:  "u-alice",
	}

	rows := Aggregate(in, Lookup{})

	for _, row := range rows {
		if row.Placeholder {
			continue
		}
		switch row.Title {
		case "mine", "assigned", "Mine":
		default:
			t.Fatalf("row %q leaked through the user filter", row.Title)
		}
	}
}

func TestAggregateEmptyInputRendersFiveSlots(t *testing.T) {
	rows := Aggregate(Input{ReferenceDate: day(2024, 1, 15)}, Lookup{})
	if len(rows) != 5 {
		t.Fatalf("expected 5 placeholder rows, got %d", len(rows))
	}
	wantCategories := []Category{CategoryFast, CategoryFast, CategorySystem, CategoryProject, CategorySystem}
	for i, row := range rows {
		if !row.Placeholder || row.Title != PlaceholderTitle {
			t.Fatalf("row %d is not a placeholder: %+v", i, row)
		}
		if row.Category != wantCategories[i] {
			t.Fatalf("slot %d category: got %s want %s", i, row.Category, wantCategories[i])
		}
	}
	if rows[2].Period != model.PeriodAM || rows[4].Period != model.PeriodPM {
		t.Fatal("system placeholder slots must carry their half-day period")
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	ref := day(2024, 1, 15)
	in := Input{
		TodayOccurrences: []SystemItem{
			sysItem(dailyTemplate("tmpl-a", "A", model.PeriodAM), ref),
			sysItem(dailyTemplate("tmpl-b", "B", model.PeriodPM), ref),
		},
		FastTasks: []model.Task{
			fastTask("ft-1", "one", model.TaskKindNormal),
			fastTask("ft-2", "two", model.TaskKindBlocked),
		},
		ProjectTasks:  []model.Task{projectTask("pt-1", "prj-1", "P")},
		ReferenceDate: ref,
	}
	lookup := Lookup{ProjectTitles: map[string]string{"prj-1": "Apollo"}}

	first := Aggregate(in, lookup)
	second := Aggregate(in, lookup)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must produce identical row sequences")
	}
}

func TestResolvePeriodFromClockTime(t *testing.T) {
	tmpl := dailyTemplate("tmpl-1", "X", "")
	tmpl.FinishAt = "14:00"
	if got := resolvePeriod(tmpl); got != model.PeriodPM {
		t.Fatalf("14:00 should resolve PM, got %s", got)
	}
	tmpl.FinishAt = "09:30"
	if got := resolvePeriod(tmpl); got != model.PeriodAM {
		t.Fatalf("09:30 should resolve AM, got %s", got)
	}
	tmpl.FinishAt = ""
	if got := resolvePeriod(tmpl); got != model.PeriodAM {
		t.Fatalf("missing clock time should default AM, got %s", got)
	}
	tmpl.FinishPeriod = model.PeriodPM
	if got := resolvePeriod(tmpl); got != model.PeriodPM {
		t.Fatal("explicit finish period must win")
	}
}

func TestSystemRowSignOff(t *testing.T) {
	tmpl := dailyTemplate("tmpl-1", "X", model.PeriodAM)
	tmpl.SignOff = model.SignOff{ApproverID: "u-boss", At: "17:30"}
	item := sysItem(tmpl, day(2024, 1, 15))

	lookup := Lookup{UserNames: map[string]string{"u-boss": "Section Chief"}}
	row := systemRow(item, day(2024, 1, 15), lookup)
	if row.SignOff != "Section Chief@17:30" {
		t.Fatalf("sign-off label: got %q", row.SignOff)
	}
}
