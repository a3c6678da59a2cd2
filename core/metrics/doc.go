// Package metrics defines the sinks that record study plan activity. Sinks
// like the Prometheus and InfluxDB implementations in infra/metrics receive a
// PlanRecord whenever a plan is stored and, when they implement
// ProgressRecorder, every progress update. Several sinks can be combined with
// NewMultiSink; NewMetricsSink does so automatically when more than one sink
// is configured.
package metrics
