package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTaskKind = errors.New("model: invalid task kind")

// TaskKind is the single classification a task receives when it enters
// the system. The rank doubles as the fixed sort key for fast-task rows.
type TaskKind string

const (
	TaskKindBlocked   TaskKind = "Blocked"
	TaskKindHourly    TaskKind = "Hourly"
	TaskKindPersonal  TaskKind = "Personal"
	TaskKindFirstCase TaskKind = "FirstCase"
	TaskKindNormal    TaskKind = "Normal"
	TaskKindOther     TaskKind = "Other"
)

func (k TaskKind) IsValid() bool {
	switch k {
	case TaskKindBlocked, TaskKindHourly, TaskKindPersonal, TaskKindFirstCase, TaskKindNormal, TaskKindOther:
		return true
	default:
		return false
	}
}

// Rank orders fast-task rows within their report group. Unknown kinds
// sort last together with TaskKindOther.
func (k TaskKind) Rank() int {
	switch k {
	case TaskKindBlocked:
		return 0
	case TaskKindHourly:
		return 1
	case TaskKindPersonal:
		return 2
	case TaskKindFirstCase:
		return 3
	case TaskKindNormal:
		return 4
	default:
		return 5
	}
}

// Task is an ad-hoc ("fast") task or, when ProjectID is set, a task
// linked to a project. Completed tasks are archived, never deleted.
type Task struct {
	ID          string
	ProjectID   string // empty for fast tasks
	Title       string
	Description string
	Kind        TaskKind
	OwnerID     string
	AssigneeIDs []string
	StartDate   *time.Time // local midnight
	DueDate     *time.Time // local midnight
	CompletedAt *time.Time
	Archived    bool
	CreatedAt   time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTaskKind, t.Kind)
	}
	if strings.TrimSpace(t.OwnerID) == "" {
		return errors.New("model: task owner_id is required")
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.StartDate != nil && t.DueDate != nil && t.DueDate.Before(*t.StartDate) {
		return errors.New("model: task due_date precedes start_date")
	}
	return nil
}

func (t Task) IsFast() bool {
	return t.ProjectID == ""
}

// AssignedTo reports whether the task appears on the given user's report,
// either through ownership or through the assignee set.
func (t Task) AssignedTo(userID string) bool {
	if t.OwnerID == userID {
		return true
	}
	for _, id := range t.AssigneeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ActiveOn reports whether the task's start/due window covers the given
// date. Tasks without a due date never enter the window-based paths.
// Window edges compare by calendar components only, so stored dates and
// the report date may carry different locations.
func (t Task) ActiveOn(date time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.StartDate != nil && dayBefore(date, *t.StartDate) {
		return false
	}
	return !dayBefore(*t.DueDate, date)
}

func dayBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
