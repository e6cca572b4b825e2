package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/reportd/internal/model"
)

// Category tags the origin of a report row.
type Category string

const (
	CategorySystem  Category = "SYS"  // recurring template occurrence
	CategoryFast    Category = "FT"   // ad-hoc task
	CategoryProject Category = "PRJK" // project-linked task
)

// PlaceholderTitle is rendered for an empty report slot so every report
// always shows all five category slots.
const PlaceholderTitle = "no data available"

// ReportRow is one line of an assembled daily report. Rows are derived,
// ephemeral and rebuilt on every aggregation; they are never persisted.
type ReportRow struct {
	Category    Category
	Subtype     string
	Period      model.Period // AM/PM, system rows only
	Title       string
	Description string
	Status      string
	SignOff     string
	Lateness    string
	CommentKey  string
	Placeholder bool
}

// SystemItem pairs a realized occurrence with its owning template; the
// aggregator needs both halves for titles, periods and assignees.
type SystemItem struct {
	Template   model.Template
	Occurrence model.Occurrence
}

// Lookup carries the display data the aggregator resolves against. It is
// built per request by the loader and passed in explicitly; the package
// keeps no module-level caches.
type Lookup struct {
	UserNames     map[string]string
	ProjectTitles map[string]string
}

func (l Lookup) userName(id string) string {
	if name, ok := l.UserNames[id]; ok {
		return name
	}
	return id
}

func (l Lookup) projectTitle(id string) string {
	if title, ok := l.ProjectTitles[id]; ok {
		return title
	}
	return id
}

// SystemCommentKey binds a comment to (template, occurrence date).
func SystemCommentKey(templateID string, date time.Time) string {
	return fmt.Sprintf("tmpl:%s:%s", templateID, date.Format("2006-01-02"))
}

// TaskCommentKey binds a comment to a task.
func TaskCommentKey(taskID string) string {
	return "task:" + taskID
}

// resolvePeriod picks the half-day a system row belongs to: the explicit
// finish period when configured, otherwise the hour of the template's
// finish clock time. Missing or malformed clock times default to AM.
func resolvePeriod(tmpl model.Template) model.Period {
	if tmpl.FinishPeriod.IsValid() {
		return tmpl.FinishPeriod
	}
	hh, _, ok := strings.Cut(tmpl.FinishAt, ":")
	if ok {
		if hour, err := strconv.Atoi(hh); err == nil && hour >= 12 {
			return model.PeriodPM
		}
	}
	return model.PeriodAM
}

func systemRow(item SystemItem, referenceDate time.Time, lookup Lookup) ReportRow {
	base := item.Occurrence.Date
	row := ReportRow{
		Category:    CategorySystem,
		Subtype:     item.Template.Rule.Frequency.Shorthand(),
		Period:      resolvePeriod(item.Template),
		Title:       item.Template.Title,
		Description: item.Template.Description,
		Status:      item.Occurrence.Status.Label(),
		Lateness:    TyoLabel(&base, item.Occurrence.ActedAt, referenceDate),
		CommentKey:  SystemCommentKey(item.Template.ID, item.Occurrence.Date),
	}
	if so := item.Template.SignOff; so.Required() {
		row.SignOff = lookup.userName(so.ApproverID)
		if so.At != "" {
			row.SignOff += "@" + so.At
		}
	}
	return row
}

func taskRow(task model.Task, referenceDate time.Time, lookup Lookup) ReportRow {
	row := ReportRow{
		Title:       task.Title,
		Description: task.Description,
		Status:      "open",
		CommentKey:  TaskCommentKey(task.ID),
	}
	if task.CompletedAt != nil {
		row.Status = "done"
	}

	mode := ModeDueOnly
	if task.StartDate != nil {
		mode = ModeRange
	}
	row.Lateness = ReportTyo(referenceDate, task.StartDate, task.DueDate, mode)

	if task.IsFast() {
		row.Category = CategoryFast
		row.Subtype = string(task.Kind)
	} else {
		row.Category = CategoryProject
		row.Subtype = lookup.projectTitle(task.ProjectID)
	}
	return row
}

func placeholderRow(category Category, period model.Period) ReportRow {
	return ReportRow{
		Category:    category,
		Subtype:     "-",
		Period:      period,
		Title:       PlaceholderTitle,
		Status:      "-",
		Lateness:    "-",
		Placeholder: true,
	}
}
