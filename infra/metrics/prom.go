package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/studyplan/core/metrics"
)

// PromSink exposes plan and progress activity as Prometheus metrics.
type PromSink struct {
	plans    *prometheus.CounterVec
	hours    *prometheus.HistogramVec
	sessions *prometheus.HistogramVec
	progress *prometheus.CounterVec
}

// NewPromSink registers the study plan metrics on the default registerer.
// The /metrics endpoint is served separately by StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "study_plans_generated_total",
		Help: "Number of stored plans by how they were produced",
	}, []string{"kind"})
	hours := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "study_plan_scheduled_hours",
		Help:    "Hours of study scheduled per plan",
		Buckets: []float64{1, 2, 4, 8, 12, 16, 20, 28, 40, 56},
	}, []string{"kind"})
	sessions := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "study_plan_sessions",
		Help:    "Number of sessions per plan",
		Buckets: prometheus.LinearBuckets(0, 4, 10),
	}, []string{"kind"})
	progress := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "study_progress_updates_total",
		Help: "Number of session progress updates",
	}, []string{"completed"})

	var err error
	if plans, err = register(reg, plans); err != nil {
		return nil, err
	}
	if hours, err = register(reg, hours); err != nil {
		return nil, err
	}
	if sessions, err = register(reg, sessions); err != nil {
		return nil, err
	}
	if progress, err = register(reg, progress); err != nil {
		return nil, err
	}
	return &PromSink{plans: plans, hours: hours, sessions: sessions, progress: progress}, nil
}

// register reuses an already registered collector of the same shape.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPlan counts the plan and observes its size.
func (s *PromSink) RecordPlan(rec coremetrics.PlanRecord) error {
	s.plans.WithLabelValues(rec.Kind).Inc()
	s.hours.WithLabelValues(rec.Kind).Observe(rec.Hours)
	s.sessions.WithLabelValues(rec.Kind).Observe(float64(rec.Sessions))
	return nil
}

// RecordProgress counts a progress update.
func (s *PromSink) RecordProgress(rec coremetrics.ProgressRecord) error {
	s.progress.WithLabelValues(strconv.FormatBool(rec.Completed)).Inc()
	return nil
}
