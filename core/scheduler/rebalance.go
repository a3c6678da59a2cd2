package scheduler

import (
	"math"

	"github.com/kilianp07/studyplan/core/model"
)

// CompletedHours sums the duration of completed sessions in plan per subject id.
func CompletedHours(plan model.Plan, progress model.Progress) map[string]float64 {
	done := make(map[string]float64)
	for _, day := range plan.Weekly {
		for _, s := range day.Sessions {
			if progress.Completed(s.ID) {
				done[s.SubjectID] += s.Duration
			}
		}
	}
	return done
}

// Rebalance regenerates a plan starting today that covers only the hours not
// yet completed in prior. Subjects already finished are left out. The result
// is meant to replace prior.
func (s *Scheduler) Rebalance(prior *model.Plan, subjects []model.Subject, progress model.Progress, today model.Date) (model.Plan, error) {
	if prior == nil || len(prior.Weekly) == 0 {
		return model.Plan{}, ErrNoPlan
	}
	if len(subjects) == 0 {
		return model.Plan{}, ErrNoSubjects
	}

	done := CompletedHours(*prior, progress)
	adjusted := make([]model.Subject, 0, len(subjects))
	for _, subj := range subjects {
		left := math.Max(0, subj.EstimatedHours-done[subj.ID])
		if isZero(left) {
			continue
		}
		subj = subj.Clone()
		subj.EstimatedHours = left
		adjusted = append(adjusted, subj)
	}
	if len(adjusted) == 0 {
		return model.Plan{}, ErrNothingLeft
	}
	settings := model.DefaultSettings()
	if prior.Settings != (model.Settings{}) {
		settings = prior.Settings.WithDefaults()
	}
	return s.Generate(adjusted, settings, today)
}
