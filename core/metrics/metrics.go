package metrics

import (
	"time"

	"github.com/kilianp07/studyplan/core/events"
)

// PlanRecord summarizes a stored plan.
type PlanRecord struct {
	UserID   string
	Kind     string
	Days     int
	Sessions int
	Subjects int
	Hours    float64
	Time     time.Time
}

// PlanRecordFrom builds the record for a plan event.
func PlanRecordFrom(ev events.PlanEvent) PlanRecord {
	rec := PlanRecord{
		UserID: ev.UserID,
		Kind:   string(ev.Kind),
		Days:   len(ev.Plan.Weekly),
		Hours:  ev.Plan.TotalHours(),
		Time:   ev.Time,
	}
	subjects := make(map[string]struct{})
	for _, s := range ev.Plan.Sessions() {
		rec.Sessions++
		subjects[s.SubjectID] = struct{}{}
	}
	rec.Subjects = len(subjects)
	return rec
}

// MetricsSink records generated and rebalanced plans.
type MetricsSink interface {
	RecordPlan(rec PlanRecord) error
}

// ProgressRecord captures a session completion update.
type ProgressRecord struct {
	UserID    string
	SessionID string
	Completed bool
	Time      time.Time
}

// ProgressRecorder is implemented by sinks able to record progress updates.
type ProgressRecorder interface {
	RecordProgress(rec ProgressRecord) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(PlanRecord) error         { return nil }
func (NopSink) RecordProgress(ProgressRecord) error { return nil }

// MultiSink forwards records to several sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlan forwards the record to all sinks, returning the first error.
func (m *MultiSink) RecordPlan(rec PlanRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlan(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordProgress forwards to the sinks that support progress records.
func (m *MultiSink) RecordProgress(rec ProgressRecord) error {
	for _, s := range m.Sinks {
		if pr, ok := s.(ProgressRecorder); ok {
			if err := pr.RecordProgress(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
