package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateUser(ctx context.Context, in User) error
	ListUsers(ctx context.Context) ([]User, error)

	CreateProject(ctx context.Context, in Project) error
	ListProjects(ctx context.Context) ([]Project, error)

	CreateTemplate(ctx context.Context, in Template) error
	GetTemplate(ctx context.Context, id string) (Template, error)
	UpdateTemplate(ctx context.Context, in Template) error
	ListTemplates(ctx context.Context, filter TemplateListFilter) ([]Template, error)

	UpsertOccurrence(ctx context.Context, in Occurrence) error
	GetOccurrence(ctx context.Context, templateID string, date time.Time) (Occurrence, error)
	ListOccurrences(ctx context.Context, filter OccurrenceListFilter) ([]Occurrence, error)

	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)
}
