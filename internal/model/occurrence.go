package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidOccurrenceStatus = errors.New("model: invalid occurrence status")

type OccurrenceStatus string

const (
	OccurrenceOpen    OccurrenceStatus = "OPEN"
	OccurrenceDone    OccurrenceStatus = "DONE"
	OccurrenceNotDone OccurrenceStatus = "NOT_DONE"
	OccurrenceSkipped OccurrenceStatus = "SKIPPED"
)

func (s OccurrenceStatus) IsValid() bool {
	switch s {
	case OccurrenceOpen, OccurrenceDone, OccurrenceNotDone, OccurrenceSkipped:
		return true
	default:
		return false
	}
}

// Label is the human-facing status printed on a report row.
func (s OccurrenceStatus) Label() string {
	switch s {
	case OccurrenceOpen:
		return "open"
	case OccurrenceDone:
		return "done"
	case OccurrenceNotDone:
		return "not-done"
	case OccurrenceSkipped:
		return "skipped"
	default:
		return "-"
	}
}

// Occurrence is one concrete scheduled instance of a template on a
// specific calendar date. It is identified by (TemplateID, Date).
type Occurrence struct {
	TemplateID string
	Date       time.Time // local midnight
	Status     OccurrenceStatus
	Comment    string
	ActedAt    *time.Time
}

func (o Occurrence) Validate() error {
	if strings.TrimSpace(o.TemplateID) == "" {
		return errors.New("model: occurrence template_id is required")
	}
	if o.Date.IsZero() {
		return errors.New("model: occurrence date is required")
	}
	if !o.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidOccurrenceStatus, o.Status)
	}
	return nil
}

// Closed reports whether a user has already acted on the occurrence.
func (o Occurrence) Closed() bool {
	return o.Status != OccurrenceOpen
}
