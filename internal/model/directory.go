package model

import (
	"errors"
	"strings"
	"time"
)

// User is a member of the organization. The engine only needs identity
// and a display name for sign-off and filter resolution.
type User struct {
	ID          string
	DisplayName string
	Department  string
	CreatedAt   time.Time
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return errors.New("model: user id is required")
	}
	if strings.TrimSpace(u.DisplayName) == "" {
		return errors.New("model: user display_name is required")
	}
	return nil
}

// Project groups project-linked tasks under a display title.
type Project struct {
	ID        string
	Title     string
	CreatedAt time.Time
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("model: project id is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("model: project title is required")
	}
	return nil
}
