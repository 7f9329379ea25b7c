// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package executor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/actz/errors"
	"github.com/tochemey/actz/log"
)

// Scheduler produces delays from a quartz scheduler.
// Every delay is a run-once job; a delay abandoned before its deadline
// removes its job.
type Scheduler struct {
	mu          sync.Mutex
	quartz      quartz.Scheduler
	started     *atomic.Bool
	logger      log.Logger
	stopTimeout time.Duration
}

// SchedulerOption configures a Scheduler
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger sets the scheduler logger
func WithSchedulerLogger(logger log.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithStopTimeout sets how long Stop waits for running jobs
func WithStopTimeout(timeout time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.stopTimeout = timeout
	}
}

// NewScheduler creates a Scheduler. Call Start before requesting delays.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	// quartz logs are off, the scheduler logs through its own logger
	quartzScheduler, _ := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))
	scheduler := &Scheduler{
		quartz:      quartzScheduler,
		started:     atomic.NewBool(false),
		logger:      log.DiscardLogger,
		stopTimeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(scheduler)
	}
	return scheduler
}

// Start starts the scheduler
func (x *Scheduler) Start(ctx context.Context) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.logger.Info("starting delay scheduler...")
	x.quartz.Start(ctx)
	x.started.Store(x.quartz.IsStarted())
	x.logger.Info("delay scheduler started")
}

// Stop drops every pending delay and stops the scheduler.
// Delays waiting at that point only return when their context is done.
func (x *Scheduler) Stop(ctx context.Context) {
	if !x.started.Load() {
		return
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.logger.Info("stopping delay scheduler...")
	_ = x.quartz.Clear()
	x.quartz.Stop()
	x.started.Store(x.quartz.IsStarted())

	ctx, cancel := context.WithTimeout(ctx, x.stopTimeout)
	defer cancel()
	x.quartz.Wait(ctx)
	x.logger.Info("delay scheduler stopped")
}

// Delay blocks until the deadline fires or the context is done
func (x *Scheduler) Delay(ctx context.Context, deadline time.Time) error {
	if !x.started.Load() {
		return gerrors.ErrSchedulerNotStarted
	}

	fired := make(chan struct{})
	fn := job.NewFunctionJob[bool](func(context.Context) (bool, error) {
		close(fired)
		return true, nil
	})

	key := quartz.NewJobKey(uuid.NewString())
	detail := quartz.NewJobDetail(fn, key)
	if err := x.quartz.ScheduleJob(detail, quartz.NewRunOnceTrigger(max(time.Until(deadline), 0))); err != nil {
		return err
	}

	select {
	case <-fired:
		return nil
	case <-ctx.Done():
		_ = x.quartz.DeleteJob(key)
		return ctx.Err()
	}
}
