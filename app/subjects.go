package app

import (
	"context"
	"fmt"

	"github.com/kilianp07/studyplan/core/model"
)

// SubjectPatch holds the fields of a subject update. Nil fields are kept.
type SubjectPatch struct {
	Name           *string     `json:"name"`
	Priority       *int        `json:"priority"`
	Deadline       *model.Date `json:"deadline"`
	EstimatedHours *float64    `json:"estimated_hours"`
	Topics         *[]string   `json:"topics"`
}

func (p SubjectPatch) apply(s *model.Subject) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Priority != nil {
		s.Priority = *p.Priority
	}
	if p.Deadline != nil {
		s.Deadline = *p.Deadline
	}
	if p.EstimatedHours != nil {
		s.EstimatedHours = *p.EstimatedHours
	}
	if p.Topics != nil {
		s.Topics = append([]string(nil), (*p.Topics)...)
	}
}

func (s *Service) ListSubjects(ctx context.Context, userID string) ([]model.Subject, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.store.ListSubjects(ctx, userID)
}

// CreateSubject validates subj, assigns a new id and stores it.
func (s *Service) CreateSubject(ctx context.Context, userID string, subj model.Subject) (model.Subject, error) {
	if err := requireUser(userID); err != nil {
		return model.Subject{}, err
	}
	if err := subj.Validate(); err != nil {
		return model.Subject{}, err
	}
	subj.ID = newID()
	subj.CreatedAt = s.now().UTC()
	if subj.Topics == nil {
		subj.Topics = []string{}
	}
	if err := s.store.SaveSubject(ctx, userID, subj); err != nil {
		s.capture("create_subject", userID, err)
		return model.Subject{}, err
	}
	return subj, nil
}

// UpdateSubject applies patch to the stored subject. Existing plans keep the
// subject fields they copied when generated.
func (s *Service) UpdateSubject(ctx context.Context, userID, id string, patch SubjectPatch) (model.Subject, error) {
	if err := requireUser(userID); err != nil {
		return model.Subject{}, err
	}
	subj, err := s.store.GetSubject(ctx, userID, id)
	if err != nil {
		return model.Subject{}, err
	}
	patch.apply(&subj)
	if err := subj.Validate(); err != nil {
		return model.Subject{}, err
	}
	if err := s.store.SaveSubject(ctx, userID, subj); err != nil {
		s.capture("update_subject", userID, err)
		return model.Subject{}, err
	}
	return subj, nil
}

func (s *Service) DeleteSubject(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.store.DeleteSubject(ctx, userID, id)
}

// ImportSubjects creates every subject or none: all are validated before the
// first one is stored, and the stored ones are removed again when a later
// save fails.
func (s *Service) ImportSubjects(ctx context.Context, userID string, subjects []model.Subject) ([]model.Subject, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	for i, subj := range subjects {
		if err := subj.Validate(); err != nil {
			return nil, fmt.Errorf("subject %d: %w", i+1, err)
		}
	}
	out := make([]model.Subject, 0, len(subjects))
	for i, subj := range subjects {
		created, err := s.CreateSubject(ctx, userID, subj)
		if err != nil {
			s.undoImport(ctx, userID, out)
			return nil, fmt.Errorf("subject %d: %w", i+1, err)
		}
		out = append(out, created)
	}
	s.log.Infof("imported %d subjects for %s", len(out), userID)
	return out, nil
}

// undoImport removes the subjects saved before an import failed.
func (s *Service) undoImport(ctx context.Context, userID string, saved []model.Subject) {
	for _, subj := range saved {
		if err := s.store.DeleteSubject(ctx, userID, subj.ID); err != nil {
			s.log.Errorf("undo import of %s for %s: %v", subj.ID, userID, err)
		}
	}
}
