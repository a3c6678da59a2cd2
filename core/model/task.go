package model

import (
	"fmt"
	"strings"
	"time"
)

// TaskType classifies a task.
type TaskType string

const (
	TaskTest       TaskType = "test"
	TaskHomework   TaskType = "homework"
	TaskAssignment TaskType = "assignment"
	TaskProject    TaskType = "project"
	TaskOther      TaskType = "other"
)

// Valid reports whether t is a known task type.
func (t TaskType) Valid() bool {
	switch t {
	case TaskTest, TaskHomework, TaskAssignment, TaskProject, TaskOther:
		return true
	}
	return false
}

// Task is a dated item such as a test or homework, optionally tied to a subject.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      TaskType  `json:"type"`
	DueDate   Date      `json:"due_date"`
	SubjectID string    `json:"subject_id,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title is required: %w", ErrInvalid)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("task %q: unknown type %q: %w", t.Title, t.Type, ErrInvalid)
	}
	if t.DueDate.IsZero() {
		return fmt.Errorf("task %q: due date is required: %w", t.Title, ErrInvalid)
	}
	return nil
}
