package storage

import "time"

type User struct {
	ID          string
	DisplayName string
	Department  string
	CreatedAt   time.Time
}

type Project struct {
	ID        string
	Title     string
	CreatedAt time.Time
}

type Template struct {
	ID              string
	Title           string
	Description     string
	Frequency       string
	DayOfWeek       *int
	DaysOfWeek      []int
	DayOfMonth      *int
	MonthOfYear     *int
	Active          bool
	FinishPeriod    string
	FinishAt        string
	SignOffApprover string
	SignOffAt       string
	AssigneeIDs     []string
	CreatedAt       time.Time
}

type Occurrence struct {
	TemplateID string
	Date       time.Time
	Status     string
	Comment    string
	ActedAt    *time.Time
}

type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Kind        string
	OwnerID     string
	AssigneeIDs []string
	StartDate   *time.Time
	DueDate     *time.Time
	CompletedAt *time.Time
	Archived    bool
	CreatedAt   time.Time
}

type TemplateListFilter struct {
	Active     *bool
	AssigneeID string
	Limit      int
	Offset     int
}

type OccurrenceListFilter struct {
	TemplateID string
	On         *time.Time
	Before     *time.Time
	Status     string
	Limit      int
	Offset     int
}

type TaskListFilter struct {
	ProjectID     string
	OwnerID       string
	Archived      *bool
	ProjectLinked *bool // true: project tasks only, false: fast tasks only
	Limit         int
	Offset        int
}
