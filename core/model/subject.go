package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	// HighestPriority is the most urgent subject priority.
	HighestPriority = 1
	// LowestPriority is the least urgent subject priority.
	LowestPriority = 5
)

// Subject is a unit of study the student wants to cover before a deadline.
type Subject struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Priority       int       `json:"priority" yaml:"priority"`
	Deadline       Date      `json:"deadline" yaml:"deadline"`
	EstimatedHours float64   `json:"estimated_hours" yaml:"estimated_hours"`
	Topics         []string  `json:"topics" yaml:"topics"`
	CreatedAt      time.Time `json:"created_at,omitempty" yaml:"-"`
}

// Validate checks the fields required to schedule a subject.
func (s Subject) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("subject name is required: %w", ErrInvalid)
	}
	if s.Priority < HighestPriority || s.Priority > LowestPriority {
		return fmt.Errorf("subject %q: priority %d out of range %d-%d: %w",
			s.Name, s.Priority, HighestPriority, LowestPriority, ErrInvalid)
	}
	if s.Deadline.IsZero() {
		return fmt.Errorf("subject %q: deadline is required: %w", s.Name, ErrInvalid)
	}
	if s.EstimatedHours < 0 {
		return fmt.Errorf("subject %q: estimated hours must not be negative: %w", s.Name, ErrInvalid)
	}
	return nil
}

// Clone returns a copy that shares no slices with s.
func (s Subject) Clone() Subject {
	if s.Topics != nil {
		s.Topics = append([]string(nil), s.Topics...)
	}
	return s
}
