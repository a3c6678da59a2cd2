package scheduler

import (
	"math"

	"github.com/kilianp07/studyplan/core/model"
)

// allocator carries the state of one generation run across days.
type allocator struct {
	subjects  []model.Subject
	left      []float64 // hours left per subject, indexed like subjects
	cursor    int
	remaining float64

	settings model.Settings
	dayStart float64
	newID    IDFunc
}

func newAllocator(sorted []model.Subject, settings model.Settings, dayStart float64, newID IDFunc) *allocator {
	a := &allocator{
		subjects: sorted,
		left:     make([]float64, len(sorted)),
		settings: settings,
		dayStart: dayStart,
		newID:    newID,
	}
	for i, s := range sorted {
		a.left[i] = s.EstimatedHours
		a.remaining += s.EstimatedHours
	}
	return a
}

// fillDay packs sessions into one day until capacity or work runs out.
func (a *allocator) fillDay(day int, date model.Date) model.DaySchedule {
	ds := model.DaySchedule{Date: date, Sessions: []model.Session{}}
	used := 0.0
	clock := a.dayStart

	for used < a.settings.AvailableHours && !isZero(a.remaining) {
		for a.cursor < len(a.subjects) && isZero(a.left[a.cursor]) {
			a.cursor++
		}
		if a.cursor >= len(a.subjects) {
			break
		}
		subj := a.subjects[a.cursor]
		d := math.Min(
			math.Min(a.settings.MaxSessionDuration, a.settings.AvailableHours-used),
			math.Min(a.left[a.cursor], a.remaining),
		)
		if d <= 0 {
			break
		}

		ds.Sessions = append(ds.Sessions, model.Session{
			ID:          a.newID(day, len(ds.Sessions)),
			Day:         day,
			Slot:        len(ds.Sessions),
			SubjectID:   subj.ID,
			SubjectName: subj.Name,
			StartTime:   FormatClock(clock),
			EndTime:     FormatClock(clock + d),
			Duration:    d,
			Topics:      topics(subj.Topics),
			Priority:    subj.Priority,
		})
		ds.TotalHours += d
		used += d
		a.remaining -= d
		a.left[a.cursor] -= d
		clock += d

		if used < a.settings.AvailableHours && !isZero(a.remaining) {
			clock += a.settings.BreakDuration
		}
	}
	return ds
}

func topics(t []string) []string {
	if len(t) == 0 {
		return []string{}
	}
	return append([]string(nil), t...)
}
