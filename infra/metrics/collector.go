package metrics

import (
	"context"

	"github.com/kilianp07/studyplan/core/events"
	coremetrics "github.com/kilianp07/studyplan/core/metrics"
	"github.com/kilianp07/studyplan/infra/logger"
	"github.com/kilianp07/studyplan/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records every event in
// sink. It stops when the context is canceled or the bus is closed.
func StartEventCollector(ctx context.Context, bus *eventbus.Bus[events.Event], sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	log := logger.New("metrics-collector")
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := record(sink, ev); err != nil {
					log.Warnf("record %T for %s: %v", ev, ev.User(), err)
				}
			}
		}
	}()
}

func record(sink coremetrics.MetricsSink, ev events.Event) error {
	switch e := ev.(type) {
	case events.PlanEvent:
		return sink.RecordPlan(coremetrics.PlanRecordFrom(e))
	case events.ProgressEvent:
		if r, ok := sink.(coremetrics.ProgressRecorder); ok {
			return r.RecordProgress(coremetrics.ProgressRecord{
				UserID:    e.UserID,
				SessionID: e.SessionID,
				Completed: e.Completed,
				Time:      e.Time,
			})
		}
	}
	return nil
}
