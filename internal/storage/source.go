package storage

import (
	"context"
	"time"

	"github.com/sandeepkv93/reportd/internal/model"
)

// ReportSource adapts a Repository to the fetch surface the report loader
// consumes, converting stored rows into domain types on the way out.
type ReportSource struct {
	repo Repository
}

func NewReportSource(repo Repository) *ReportSource {
	return &ReportSource{repo: repo}
}

func (s *ReportSource) ActiveTemplates(ctx context.Context) ([]model.Template, error) {
	active := true
	stored, err := s.repo.ListTemplates(ctx, TemplateListFilter{Active: &active})
	if err != nil {
		return nil, err
	}
	out := make([]model.Template, 0, len(stored))
	for _, t := range stored {
		out = append(out, templateToModel(t))
	}
	return out, nil
}

func (s *ReportSource) OccurrencesOn(ctx context.Context, date time.Time) ([]model.Occurrence, error) {
	stored, err := s.repo.ListOccurrences(ctx, OccurrenceListFilter{On: &date})
	if err != nil {
		return nil, err
	}
	return occurrencesToModel(stored), nil
}

func (s *ReportSource) OpenOccurrencesBefore(ctx context.Context, date time.Time) ([]model.Occurrence, error) {
	stored, err := s.repo.ListOccurrences(ctx, OccurrenceListFilter{
		Before: &date,
		Status: string(model.OccurrenceOpen),
	})
	if err != nil {
		return nil, err
	}
	return occurrencesToModel(stored), nil
}

func (s *ReportSource) OpenTasks(ctx context.Context) ([]model.Task, error) {
	archived := false
	stored, err := s.repo.ListTasks(ctx, TaskListFilter{Archived: &archived})
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(stored))
	for _, t := range stored {
		out = append(out, taskToModel(t))
	}
	return out, nil
}

func (s *ReportSource) ListUsers(ctx context.Context) ([]model.User, error) {
	stored, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(stored))
	for _, u := range stored {
		out = append(out, model.User{
			ID:          u.ID,
			DisplayName: u.DisplayName,
			Department:  u.Department,
			CreatedAt:   u.CreatedAt,
		})
	}
	return out, nil
}

func (s *ReportSource) ListProjects(ctx context.Context) ([]model.Project, error) {
	stored, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Project, 0, len(stored))
	for _, p := range stored {
		out = append(out, model.Project{
			ID:        p.ID,
			Title:     p.Title,
			CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}

// SaveOccurrence persists a status/comment change made from the report
// view. Writes go through the same upsert the realization path relies on.
func (s *ReportSource) SaveOccurrence(ctx context.Context, occ model.Occurrence) error {
	return s.repo.UpsertOccurrence(ctx, occurrenceFromModel(occ))
}

// SaveTemplate inserts a template definition, stamping it with the given
// creation time.
func (s *ReportSource) SaveTemplate(ctx context.Context, tmpl model.Template, createdAt time.Time) error {
	return s.repo.CreateTemplate(ctx, templateFromModel(tmpl, createdAt))
}

func templateToModel(in Template) model.Template {
	return model.Template{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Rule: model.RecurrenceRule{
			Frequency:   model.Frequency(in.Frequency),
			DayOfWeek:   in.DayOfWeek,
			DaysOfWeek:  in.DaysOfWeek,
			DayOfMonth:  in.DayOfMonth,
			MonthOfYear: in.MonthOfYear,
			Active:      in.Active,
		},
		FinishPeriod: model.Period(in.FinishPeriod),
		FinishAt:     in.FinishAt,
		SignOff: model.SignOff{
			ApproverID: in.SignOffApprover,
			At:         in.SignOffAt,
		},
		AssigneeIDs: in.AssigneeIDs,
	}
}

func templateFromModel(in model.Template, createdAt time.Time) Template {
	return Template{
		ID:              in.ID,
		Title:           in.Title,
		Description:     in.Description,
		Frequency:       string(in.Rule.Frequency),
		DayOfWeek:       in.Rule.DayOfWeek,
		DaysOfWeek:      in.Rule.DaysOfWeek,
		DayOfMonth:      in.Rule.DayOfMonth,
		MonthOfYear:     in.Rule.MonthOfYear,
		Active:          in.Rule.Active,
		FinishPeriod:    string(in.FinishPeriod),
		FinishAt:        in.FinishAt,
		SignOffApprover: in.SignOff.ApproverID,
		SignOffAt:       in.SignOff.At,
		AssigneeIDs:     in.AssigneeIDs,
		CreatedAt:       createdAt,
	}
}

func occurrencesToModel(stored []Occurrence) []model.Occurrence {
	out := make([]model.Occurrence, 0, len(stored))
	for _, o := range stored {
		out = append(out, occurrenceToModel(o))
	}
	return out
}

func occurrenceToModel(in Occurrence) model.Occurrence {
	return model.Occurrence{
		TemplateID: in.TemplateID,
		Date:       in.Date,
		Status:     model.OccurrenceStatus(in.Status),
		Comment:    in.Comment,
		ActedAt:    in.ActedAt,
	}
}

func occurrenceFromModel(in model.Occurrence) Occurrence {
	return Occurrence{
		TemplateID: in.TemplateID,
		Date:       in.Date,
		Status:     string(in.Status),
		Comment:    in.Comment,
		ActedAt:    in.ActedAt,
	}
}

func taskToModel(in Task) model.Task {
	return model.Task{
		ID:          in.ID,
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Kind:        model.TaskKind(in.Kind),
		OwnerID:     in.OwnerID,
		AssigneeIDs: in.AssigneeIDs,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
		CompletedAt: in.CompletedAt,
		Archived:    in.Archived,
		CreatedAt:   in.CreatedAt,
	}
}
