package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kilianp07/studyplan/core/events"
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/progress"
	"github.com/kilianp07/studyplan/core/store"
)

// Dashboard gathers the views shown on the student's home page.
type Dashboard struct {
	Today      model.Date           `json:"today"`
	Summary    progress.Summary     `json:"summary"`
	Suggestion *progress.Suggestion `json:"suggestion,omitempty"`
	Upcoming   []progress.Deadline  `json:"upcoming"`
	Reminder   progress.Reminder    `json:"reminder"`
}

func (s *Service) Progress(ctx context.Context, userID string) (model.Progress, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.store.LoadProgress(ctx, userID)
}

// SetProgress marks a session as completed or not.
func (s *Service) SetProgress(ctx context.Context, userID, sessionID string, completed bool) (model.ProgressEntry, error) {
	if err := requireUser(userID); err != nil {
		return model.ProgressEntry{}, err
	}
	if strings.TrimSpace(sessionID) == "" {
		return model.ProgressEntry{}, fmt.Errorf("session id is required: %w", model.ErrInvalid)
	}
	unlock := s.lock(userID)
	defer unlock()

	e := model.ProgressEntry{Completed: completed, UpdatedAt: s.now().UTC()}
	if err := s.store.SetProgress(ctx, userID, sessionID, e); err != nil {
		s.capture("set_progress", userID, err)
		return model.ProgressEntry{}, err
	}
	s.publish(events.ProgressEvent{UserID: userID, SessionID: sessionID, Completed: completed, Time: e.UpdatedAt})
	return e, nil
}

// HandleProgressCommand adapts SetProgress to handlers that only need an error.
func (s *Service) HandleProgressCommand(ctx context.Context, userID, sessionID string, completed bool) error {
	_, err := s.SetProgress(ctx, userID, sessionID, completed)
	return err
}

// Summary summarizes progress on the current plan. Without a plan the
// summary is empty.
func (s *Service) Summary(ctx context.Context, userID string) (progress.Summary, error) {
	if err := requireUser(userID); err != nil {
		return progress.Summary{}, err
	}
	plan, err := s.store.LoadPlan(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return progress.Summary{}, err
	}
	prog, err := s.store.LoadProgress(ctx, userID)
	if err != nil {
		return progress.Summary{}, err
	}
	return progress.Summarize(plan, prog), nil
}

// Dashboard returns the summary, the suggested focus subject, upcoming
// deadlines and the task reminder.
func (s *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	sum, err := s.Summary(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	subjects, err := s.store.ListSubjects(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	tasks, err := s.store.ListTasks(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	today := s.today()
	d := Dashboard{
		Today:    today,
		Summary:  sum,
		Upcoming: progress.Upcoming(subjects, tasks, today, progress.DefaultUpcomingLimit),
		Reminder: progress.Remind(tasks, today),
	}
	if sg, ok := progress.Suggest(subjects, today); ok {
		d.Suggestion = &sg
	}
	return d, nil
}
