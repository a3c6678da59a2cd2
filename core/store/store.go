// Package store declares the persistence ports of the study plan service.
// Every record is scoped to a user id; ids are unique per user only.
package store

import (
	"context"
	"errors"

	"github.com/kilianp07/studyplan/core/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// SubjectStore persists subjects.
type SubjectStore interface {
	// ListSubjects returns subjects in creation order.
	ListSubjects(ctx context.Context, userID string) ([]model.Subject, error)
	GetSubject(ctx context.Context, userID, id string) (model.Subject, error)
	// SaveSubject inserts or replaces the subject with the same id.
	SaveSubject(ctx context.Context, userID string, s model.Subject) error
	DeleteSubject(ctx context.Context, userID, id string) error
}

// PlanStore keeps the single live plan of each user.
type PlanStore interface {
	// LoadPlan returns ErrNotFound when the user has no plan.
	LoadPlan(ctx context.Context, userID string) (*model.Plan, error)
	// SavePlan replaces any previous plan of the user.
	SavePlan(ctx context.Context, userID string, p model.Plan) error
	// ListPlanUsers returns the ids of users that have a plan, sorted.
	ListPlanUsers(ctx context.Context) ([]string, error)
}

// ProgressStore persists session completion records.
type ProgressStore interface {
	// LoadProgress returns an empty map when nothing was recorded.
	LoadProgress(ctx context.Context, userID string) (model.Progress, error)
	SetProgress(ctx context.Context, userID, sessionID string, e model.ProgressEntry) error
}

// TaskStore persists tasks.
type TaskStore interface {
	// ListTasks returns tasks by due date, then id.
	ListTasks(ctx context.Context, userID string) ([]model.Task, error)
	GetTask(ctx context.Context, userID, id string) (model.Task, error)
	SaveTask(ctx context.Context, userID string, t model.Task) error
	DeleteTask(ctx context.Context, userID, id string) error
}

// Store groups every port behind one handle.
type Store interface {
	SubjectStore
	PlanStore
	ProgressStore
	TaskStore
	Close() error
}
