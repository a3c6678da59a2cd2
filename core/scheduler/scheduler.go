package scheduler

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/studyplan/core/model"
)

const (
	// DefaultDayStart is the first session start, in hours after midnight.
	DefaultDayStart = 9.0
	// DefaultDays caps how many days a plan spans.
	DefaultDays = 7
)

// IDFunc names the session at position slot of day index day.
type IDFunc func(day, slot int) string

// RandomIDs gives every session a fresh UUID so ids stay unique across
// successive plans.
func RandomIDs(int, int) string { return uuid.NewString() }

// PositionalIDs names sessions "{day}-{slot}". Such ids repeat between plans
// and make progress records ambiguous after a rebalance.
func PositionalIDs(day, slot int) string {
	return model.Session{Day: day, Slot: slot}.Label()
}

// Scheduler generates study plans. The zero value starts days at midnight
// and otherwise uses the defaults above; New starts them at DefaultDayStart.
type Scheduler struct {
	// DayStart is the clock time of the first session of each day. Negative
	// values select DefaultDayStart.
	DayStart float64
	// Days is the maximum number of days in a plan.
	Days int
	// NewID names sessions. Defaults to RandomIDs.
	NewID IDFunc
	// Now stamps GeneratedAt. Defaults to time.Now.
	Now func() time.Time
}

// New returns a Scheduler with default settings.
func New() *Scheduler {
	return &Scheduler{DayStart: DefaultDayStart, Days: DefaultDays, NewID: RandomIDs, Now: time.Now}
}

// Generate lays out study sessions for subjects starting on start. Settings
// are used as given; callers apply defaults and validation beforehand.
func (s *Scheduler) Generate(subjects []model.Subject, settings model.Settings, start model.Date) (model.Plan, error) {
	if len(subjects) == 0 {
		return model.Plan{}, ErrNoSubjects
	}
	a := newAllocator(sortSubjects(subjects), settings, s.StartHour(), s.idFunc())

	var weekly []model.DaySchedule
	for day := 0; day < s.days(); day++ {
		weekly = append(weekly, a.fillDay(day, start.AddDays(day)))
		if isZero(a.remaining) {
			break
		}
	}

	plan := model.Plan{
		Weekly:      weekly,
		GeneratedAt: s.now(),
		Settings:    settings,
	}
	if len(weekly) > 0 {
		plan.Daily = weekly[0]
	} else {
		plan.Daily = model.DaySchedule{Date: start, Sessions: []model.Session{}}
	}
	return plan, nil
}

// sortSubjects orders a copy of subjects by priority, then earliest deadline.
// Equal keys keep their input order.
func sortSubjects(subjects []model.Subject) []model.Subject {
	out := make([]model.Subject, len(subjects))
	copy(out, subjects)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Deadline.Before(out[j].Deadline)
	})
	return out
}

// StartHour returns the clock time sessions start at each day.
func (s *Scheduler) StartHour() float64 {
	if s.DayStart < 0 {
		return DefaultDayStart
	}
	return s.DayStart
}

func (s *Scheduler) days() int {
	if s.Days <= 0 {
		return DefaultDays
	}
	return s.Days
}

func (s *Scheduler) idFunc() IDFunc {
	if s.NewID == nil {
		return RandomIDs
	}
	return s.NewID
}

func (s *Scheduler) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
