package events

import (
	"time"

	"github.com/kilianp07/studyplan/core/model"
)

// Event is any value published on the study plan bus.
type Event interface {
	User() string
}

// PlanKind tells how a plan was produced.
type PlanKind string

const (
	PlanGenerated  PlanKind = "generate"
	PlanRebalanced PlanKind = "rebalance"
)

// PlanEvent is published after a plan has been persisted.
type PlanEvent struct {
	UserID string
	Kind   PlanKind
	Plan   model.Plan
	Time   time.Time
}

func (e PlanEvent) User() string { return e.UserID }

// ProgressEvent is published after a progress record has been stored.
type ProgressEvent struct {
	UserID    string
	SessionID string
	Completed bool
	Time      time.Time
}

func (e ProgressEvent) User() string { return e.UserID }
