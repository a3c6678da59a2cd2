package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/store"
)

// TaskPatch holds the fields of a task update. Nil fields are kept.
type TaskPatch struct {
	Title     *string         `json:"title"`
	Type      *model.TaskType `json:"type"`
	DueDate   *model.Date     `json:"due_date"`
	SubjectID *string         `json:"subject_id"`
	Notes     *string         `json:"notes"`
	Completed *bool           `json:"completed"`
}

func (p TaskPatch) apply(t *model.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.SubjectID != nil {
		t.SubjectID = *p.SubjectID
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

func (s *Service) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.store.ListTasks(ctx, userID)
}

// CreateTask validates t, assigns a new id and stores it. A missing type
// defaults to "other".
func (s *Service) CreateTask(ctx context.Context, userID string, t model.Task) (model.Task, error) {
	if err := requireUser(userID); err != nil {
		return model.Task{}, err
	}
	if t.Type == "" {
		t.Type = model.TaskOther
	}
	if err := s.validateTask(ctx, userID, t); err != nil {
		return model.Task{}, err
	}
	t.ID = newID()
	t.CreatedAt = s.now().UTC()
	if err := s.store.SaveTask(ctx, userID, t); err != nil {
		s.capture("create_task", userID, err)
		return model.Task{}, err
	}
	return t, nil
}

func (s *Service) UpdateTask(ctx context.Context, userID, id string, patch TaskPatch) (model.Task, error) {
	if err := requireUser(userID); err != nil {
		return model.Task{}, err
	}
	t, err := s.store.GetTask(ctx, userID, id)
	if err != nil {
		return model.Task{}, err
	}
	patch.apply(&t)
	if err := s.validateTask(ctx, userID, t); err != nil {
		return model.Task{}, err
	}
	if err := s.store.SaveTask(ctx, userID, t); err != nil {
		s.capture("update_task", userID, err)
		return model.Task{}, err
	}
	return t, nil
}

func (s *Service) DeleteTask(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.store.DeleteTask(ctx, userID, id)
}

// validateTask also checks that a linked subject exists.
func (s *Service) validateTask(ctx context.Context, userID string, t model.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.SubjectID == "" {
		return nil
	}
	_, err := s.store.GetSubject(ctx, userID, t.SubjectID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("task %q: unknown subject %s: %w", t.Title, t.SubjectID, model.ErrInvalid)
	}
	return err
}
