package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/kilianp07/studyplan/core/events"
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/scheduler"
	"github.com/kilianp07/studyplan/core/store"
)

// GenerateRequest carries optional overrides for a new plan. Nil fields take
// the configured defaults and the start date defaults to today.
type GenerateRequest struct {
	AvailableHours     *float64    `json:"available_hours"`
	MaxSessionDuration *float64    `json:"max_session_duration"`
	BreakDuration      *float64    `json:"break_duration"`
	StartDate          *model.Date `json:"start_date"`
}

// Settings merges the request over defaults.
func (r GenerateRequest) Settings(defaults model.Settings) model.Settings {
	s := defaults
	if r.AvailableHours != nil {
		s.AvailableHours = *r.AvailableHours
	}
	if r.MaxSessionDuration != nil {
		s.MaxSessionDuration = *r.MaxSessionDuration
	}
	if r.BreakDuration != nil {
		s.BreakDuration = *r.BreakDuration
	}
	return s
}

// Generate builds and stores a fresh plan from every subject of the user,
// replacing any previous plan.
func (s *Service) Generate(ctx context.Context, userID string, req GenerateRequest) (model.Plan, error) {
	if err := requireUser(userID); err != nil {
		return model.Plan{}, err
	}
	settings := req.Settings(s.defaults)
	if err := settings.Validate(s.sched.StartHour()); err != nil {
		return model.Plan{}, err
	}
	start := s.today()
	if req.StartDate != nil && !req.StartDate.IsZero() {
		start = *req.StartDate
	}

	unlock := s.lock(userID)
	defer unlock()

	subjects, err := s.store.ListSubjects(ctx, userID)
	if err != nil {
		s.capture("generate", userID, err)
		return model.Plan{}, err
	}
	plan, err := s.sched.Generate(subjects, settings, start)
	if err != nil {
		return model.Plan{}, err
	}
	if err := s.store.SavePlan(ctx, userID, plan); err != nil {
		s.capture("generate", userID, err)
		return model.Plan{}, fmt.Errorf("save plan: %w", err)
	}
	s.log.Infof("generated plan for %s: %d days, %.2f hours", userID, len(plan.Weekly), plan.TotalHours())
	s.publish(events.PlanEvent{UserID: userID, Kind: events.PlanGenerated, Plan: plan, Time: s.now()})
	return plan, nil
}

// CurrentPlan returns the stored plan, or store.ErrNotFound.
func (s *Service) CurrentPlan(ctx context.Context, userID string) (model.Plan, error) {
	if err := requireUser(userID); err != nil {
		return model.Plan{}, err
	}
	p, err := s.store.LoadPlan(ctx, userID)
	if err != nil {
		return model.Plan{}, err
	}
	return *p, nil
}

// Rebalance replans the remaining hours of every subject from today, using
// the completed sessions of the stored plan.
func (s *Service) Rebalance(ctx context.Context, userID string) (model.Plan, error) {
	if err := requireUser(userID); err != nil {
		return model.Plan{}, err
	}
	unlock := s.lock(userID)
	defer unlock()

	prior, err := s.store.LoadPlan(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return model.Plan{}, scheduler.ErrNoPlan
	}
	if err != nil {
		s.capture("rebalance", userID, err)
		return model.Plan{}, err
	}
	subjects, err := s.store.ListSubjects(ctx, userID)
	if err != nil {
		s.capture("rebalance", userID, err)
		return model.Plan{}, err
	}
	prog, err := s.store.LoadProgress(ctx, userID)
	if err != nil {
		s.capture("rebalance", userID, err)
		return model.Plan{}, err
	}
	plan, err := s.sched.Rebalance(prior, subjects, prog, s.today())
	if err != nil {
		return model.Plan{}, err
	}
	if err := s.store.SavePlan(ctx, userID, plan); err != nil {
		s.capture("rebalance", userID, err)
		return model.Plan{}, fmt.Errorf("save plan: %w", err)
	}
	s.log.Infof("rebalanced plan for %s: %d days, %.2f hours", userID, len(plan.Weekly), plan.TotalHours())
	s.publish(events.PlanEvent{UserID: userID, Kind: events.PlanRebalanced, Plan: plan, Time: s.now()})
	return plan, nil
}

// RebalanceAll rebalances the plan of every user that has one and returns
// how many plans were replaced. Users with nothing left to schedule are
// skipped; other failures are joined into the returned error.
func (s *Service) RebalanceAll(ctx context.Context) (int, error) {
	users, err := s.store.ListPlanUsers(ctx)
	if err != nil {
		return 0, err
	}
	var (
		n    int
		errs []error
	)
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		_, err := s.Rebalance(ctx, u)
		switch {
		case err == nil:
			n++
		case errors.Is(err, scheduler.ErrUsage):
			s.log.Debugw("rebalance skipped", map[string]any{"user": u, "reason": err.Error()})
		default:
			errs = append(errs, fmt.Errorf("user %s: %w", u, err))
		}
	}
	return n, errors.Join(errs...)
}
