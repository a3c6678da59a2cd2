// Package rebalance replans every stored study plan on a cron schedule so
// plans follow the completed sessions without user action.
package rebalance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	coremon "github.com/kilianp07/studyplan/core/monitoring"
	"github.com/kilianp07/studyplan/infra/logger"
)

// Rebalancer rebalances every plan and reports how many were replaced.
type Rebalancer interface {
	RebalanceAll(ctx context.Context) (int, error)
}

// Job runs Rebalancer.RebalanceAll on a cron expression evaluated in UTC.
type Job struct {
	ctx       context.Context
	scheduler *gocron.Scheduler
	r         Rebalancer
	log       logger.Logger
}

// New schedules the job. ctx is passed to every run.
func New(ctx context.Context, r Rebalancer, cron string) (*Job, error) {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	j := &Job{ctx: ctx, scheduler: s, r: r, log: logger.New("rebalance-job")}
	if _, err := s.Cron(cron).Do(j.Run); err != nil {
		return nil, fmt.Errorf("schedule rebalance %q: %w", cron, err)
	}
	return j, nil
}

// Start runs the scheduler in the background.
func (j *Job) Start() { j.scheduler.StartAsync() }

// Stop waits for a running rebalance and stops the scheduler.
func (j *Job) Stop() { j.scheduler.Stop() }

// Run performs one rebalance pass.
func (j *Job) Run() {
	if j.ctx.Err() != nil {
		return
	}
	start := time.Now()
	n, err := j.r.RebalanceAll(j.ctx)
	if err != nil {
		j.log.Errorf("rebalance: %v", err)
		coremon.CaptureException(err, map[string]string{"job": "rebalance"})
	}
	j.log.Infof("rebalanced %d plans in %s", n, time.Since(start).Round(time.Millisecond))
}
