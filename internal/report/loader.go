package report

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/sandeepkv93/reportd/internal/model"
	"github.com/sandeepkv93/reportd/internal/schedule"
)

// DataSource is the fetch-by-filter surface the loader consumes. It
// supplies raw entities only; no scheduling logic lives behind it.
type DataSource interface {
	ActiveTemplates(ctx context.Context) ([]model.Template, error)
	OccurrencesOn(ctx context.Context, date time.Time) ([]model.Occurrence, error)
	OpenOccurrencesBefore(ctx context.Context, date time.Time) ([]model.Occurrence, error)
	OpenTasks(ctx context.Context) ([]model.Task, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
}

// Loader assembles the aggregation input for one report date. The
// distinct entity fetches run concurrently and are all awaited before
// anything is combined; a cancelled context discards the whole load so a
// superseded view never publishes partial data.
type Loader struct {
	src DataSource
	log *slog.Logger
	loc *time.Location
}

func NewLoader(src DataSource, log *slog.Logger, loc *time.Location) *Loader {
	if log == nil {
		log = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Loader{src: src, log: log, loc: loc}
}

// LoadDay fetches and realizes everything Aggregate needs for the given
// date. Individual fetch failures degrade to empty result sets (the
// report still renders all slots); only context cancellation aborts.
func (l *Loader) LoadDay(ctx context.Context, date time.Time, targetUserID string) (Input, Lookup, error) {
	date = schedule.Midnight(date, l.loc)

	var (
		wg        sync.WaitGroup
		templates []model.Template
		todayOcc  []model.Occurrence
		pastOcc   []model.Occurrence
		tasks     []model.Task
		users     []model.User
		projects  []model.Project
	)

	fetch := func(name string, run func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(); err != nil {
				l.log.Warn("report fetch failed, continuing with empty set",
					slog.String("entity", name), slog.String("err", err.Error()))
			}
		}()
	}

	fetch("templates", func() (err error) { templates, err = l.src.ActiveTemplates(ctx); return })
	fetch("occurrences", func() (err error) { todayOcc, err = l.src.OccurrencesOn(ctx, date); return })
	fetch("overdue", func() (err error) { pastOcc, err = l.src.OpenOccurrencesBefore(ctx, date); return })
	fetch("tasks", func() (err error) { tasks, err = l.src.OpenTasks(ctx); return })
	fetch("users", func() (err error) { users, err = l.src.ListUsers(ctx); return })
	fetch("projects", func() (err error) { projects, err = l.src.ListProjects(ctx); return })
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Input{}, Lookup{}, err
	}

	byTemplate := make(map[string]model.Template, len(templates))
	for _, tmpl := range templates {
		if !tmpl.Rule.Frequency.IsValid() {
			l.log.Warn("template has unrecognized frequency, skipping",
				slog.String("template", tmpl.ID), slog.String("frequency", string(tmpl.Rule.Frequency)))
			continue
		}
		byTemplate[tmpl.ID] = tmpl
	}

	in := Input{ReferenceDate: date, TargetUserID: targetUserID}
	in.TodayOccurrences = l.realizeToday(byTemplate, todayOcc, date)
	in.OverdueOccurrences = joinTemplates(byTemplate, pastOcc)

	for _, task := range tasks {
		if task.IsFast() {
			in.FastTasks = append(in.FastTasks, task)
		} else {
			in.ProjectTasks = append(in.ProjectTasks, task)
		}
	}

	lookup := Lookup{
		UserNames:     make(map[string]string, len(users)),
		ProjectTitles: make(map[string]string, len(projects)),
	}
	for _, u := range users {
		lookup.UserNames[u.ID] = u.DisplayName
	}
	for _, p := range projects {
		lookup.ProjectTitles[p.ID] = p.Title
	}

	return in, lookup, nil
}

// realizeToday pairs each template scheduled for the date with its
// persisted occurrence, or with a fresh OPEN one when the data source has
// not materialized it yet.
func (l *Loader) realizeToday(templates map[string]model.Template, persisted []model.Occurrence, date time.Time) []SystemItem {
	byID := make(map[string]model.Occurrence, len(persisted))
	for _, occ := range persisted {
		byID[occ.TemplateID] = occ
	}

	ids := sortedTemplateIDs(templates)
	out := make([]SystemItem, 0, len(ids))
	for _, id := range ids {
		tmpl := templates[id]
		if !schedule.IsOccurringOn(tmpl.Rule, date) {
			continue
		}
		occ, ok := byID[id]
		if !ok {
			occ = model.Occurrence{TemplateID: id, Date: date, Status: model.OccurrenceOpen}
		}
		out = append(out, SystemItem{Template: tmpl, Occurrence: occ})
	}
	return out
}

func joinTemplates(templates map[string]model.Template, occurrences []model.Occurrence) []SystemItem {
	out := make([]SystemItem, 0, len(occurrences))
	for _, occ := range occurrences {
		tmpl, ok := templates[occ.TemplateID]
		if !ok {
			continue
		}
		out = append(out, SystemItem{Template: tmpl, Occurrence: occ})
	}
	return out
}

func sortedTemplateIDs(templates map[string]model.Template) []string {
	ids := make([]string, 0, len(templates))
	for id := range templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
