package scenarios

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/scheduler"
)

// Run generates the plan of sc, applies the optional rebalance step and
// returns the final plan.
func Run(sc *Scenario) (model.Plan, error) {
	s := scheduler.New()
	s.NewID = scheduler.PositionalIDs
	s.Now = func() time.Time { return time.Unix(0, 0).UTC() }

	in := sc.Input
	in.Subjects = slices.Clone(in.Subjects)
	settings, err := in.Validate(s.StartHour(), model.DefaultSettings())
	if err != nil {
		return model.Plan{}, err
	}
	plan, err := s.Generate(in.Subjects, settings, in.StartDate)
	if err != nil || sc.Rebalance == nil {
		return plan, err
	}

	progress := model.Progress{}
	for _, label := range sc.Rebalance.Complete {
		progress[label] = model.ProgressEntry{Completed: true}
	}
	return s.Rebalance(&plan, in.Subjects, progress, sc.Rebalance.On)
}

// Check compares the outcome of Run with the expectation of sc.
func Check(sc *Scenario, plan model.Plan, err error) error {
	exp := sc.Expected
	if exp.Error != "" {
		if err == nil || !strings.Contains(err.Error(), exp.Error) {
			return fmt.Errorf("expected error containing %q, got %v", exp.Error, err)
		}
		return nil
	}
	if err != nil {
		return err
	}
	if got := len(plan.Weekly); got != exp.Days {
		return fmt.Errorf("expected %d days, got %d", exp.Days, got)
	}
	if got := len(plan.Sessions()); got != exp.Sessions {
		return fmt.Errorf("expected %d sessions, got %d", exp.Sessions, got)
	}
	if got := plan.TotalHours(); math.Abs(got-exp.TotalHours) > 1e-6 {
		return fmt.Errorf("expected %.2f hours, got %.2f", exp.TotalHours, got)
	}
	if exp.FirstDay != nil {
		got := make([]string, 0, len(plan.Daily.Sessions))
		for _, s := range plan.Daily.Sessions {
			got = append(got, fmt.Sprintf("%s %s-%s", s.SubjectName, s.StartTime, s.EndTime))
		}
		if !slices.Equal(got, exp.FirstDay) {
			return fmt.Errorf("first day mismatch:\n got  %q\n want %q", got, exp.FirstDay)
		}
	}
	return nil
}
