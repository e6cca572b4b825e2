package model

import (
	"errors"
	"fmt"
	"strings"
)

type Period string

const (
	PeriodAM Period = "AM"
	PeriodPM Period = "PM"
)

func (p Period) IsValid() bool {
	return p == PeriodAM || p == PeriodPM
}

var ErrInvalidPeriod = errors.New("model: invalid finish period")

// SignOff is a configured requirement that a specific person acknowledges
// an occurrence at a specific clock time. Zero value means no sign-off.
type SignOff struct {
	ApproverID string
	At         string // "HH:MM", informational
}

func (s SignOff) Required() bool {
	return strings.TrimSpace(s.ApproverID) != ""
}

// Template is a recurring task definition governed by a RecurrenceRule.
type Template struct {
	ID          string
	Title       string
	Description string
	Rule        RecurrenceRule
	// FinishPeriod, when set, fixes the half-day a realized occurrence
	// belongs to. Otherwise the period is derived from FinishAt.
	FinishPeriod Period
	FinishAt     string // "HH:MM" deadline within the day, optional
	SignOff      SignOff
	AssigneeIDs  []string
}

func (t Template) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: template id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: template title is required")
	}
	if t.FinishPeriod != "" && !t.FinishPeriod.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, t.FinishPeriod)
	}
	if err := t.Rule.Validate(); err != nil {
		return err
	}
	return nil
}

// AssignedTo reports whether the template's occurrences belong to the
// given user's report.
func (t Template) AssignedTo(userID string) bool {
	for _, id := range t.AssigneeIDs {
		if id == userID {
			return true
		}
	}
	return false
}
