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

package actor

import (
	"context"
	"sync"
	"time"

	goset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"

	"github.com/tochemey/actz/internal/queue"
	"github.com/tochemey/actz/log"
)

// cell is the mailbox of an actor with state S.
//
// A single goroutine, the one running run, owns the state. It alternates
// between acquiring the next exclusive item and executing it. While an item
// executes, the goroutine keeps starting newly submitted background tasks and
// collecting the finished ones.
type cell[S any] struct {
	uid ID

	// strong references
	refs *atomic.Int64
	// false once the mailbox started stopping
	alive *atomic.Bool

	mailbox    *queue.Mpsc[mutItem[S]]
	background *queue.Mpsc[func(context.Context)]

	// closed when refs drops to zero
	orphaned   chan struct{}
	orphanOnce sync.Once
	// closed once the state is gone and background tasks are canceled
	stopped chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	logger  log.Logger
	metrics *mailboxMetrics
}

// enforce compilation error
var _ resource = (*cell[any])(nil)

// newCell creates a mailbox holding one strong reference
func newCell[S any](config *spawnConfig, kind string) *cell[S] {
	uid := newID()
	logger := config.logger.With("actor.id", uid.String(), "actor.type", kind)
	ctx, cancel := context.WithCancel(withLogger(context.WithoutCancel(config.ctx), logger))
	return &cell[S]{
		uid:        uid,
		refs:       atomic.NewInt64(1),
		alive:      atomic.NewBool(true),
		mailbox:    queue.NewMpsc[mutItem[S]](),
		background: queue.NewMpsc[func(context.Context)](),
		orphaned:   make(chan struct{}),
		stopped:    make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
		metrics:    newMailboxMetrics(config.meterProvider, kind, logger),
	}
}

func (c *cell[S]) id() ID {
	return c.uid
}

func (c *cell[S]) acquire() bool {
	for {
		current := c.refs.Load()
		if current <= 0 || !c.alive.Load() {
			return false
		}
		if c.refs.CompareAndSwap(current, current+1) {
			return true
		}
	}
}

func (c *cell[S]) retain() {
	c.refs.Inc()
}

func (c *cell[S]) release() {
	if c.refs.Dec() == 0 {
		c.orphanOnce.Do(func() {
			close(c.orphaned)
		})
	}
}

func (c *cell[S]) pushMut(item mutItem[S]) bool {
	return c.mailbox.Push(item)
}

func (c *cell[S]) pushFut(task func(context.Context)) bool {
	return c.background.Push(task)
}

// tasks tracks the background tasks started by the mailbox goroutine
type tasks struct {
	inflight  goset.Set[uint64]
	completed chan uint64
	sequence  uint64
}

// run is the mailbox loop. It returns once the actor has stopped.
func (c *cell[S]) run(state S) {
	c.logger.Debug("actor started")
	c.metrics.spawned(c.ctx)

	running := &tasks{
		inflight:  goset.NewThreadUnsafeSet[uint64](),
		completed: make(chan uint64),
	}

	for {
		// finished background tasks go first
		c.reap(running)

		// popping before starting background tasks ensures that any task
		// submitted before the item is started by the time the item runs
		item, ok := c.mailbox.Pop()
		c.startBackground(running)
		if ok {
			if c.execute(state, item, running) {
				c.shutdown(state, running)
				return
			}
			continue
		}

		select {
		case <-c.orphaned:
			// nobody can enqueue anymore, drain what is left
			if c.mailbox.IsEmpty() {
				c.shutdown(state, running)
				return
			}
		case id := <-running.completed:
			running.inflight.Remove(id)
		case <-c.mailbox.Signal():
		case <-c.background.Signal():
		}
	}
}

// execute runs an exclusive item to completion while still serving
// background tasks. It returns whether the actor must stop.
func (c *cell[S]) execute(state S, item mutItem[S], running *tasks) bool {
	start := time.Now()
	result := make(chan bool, 1)
	// a panic in the item is not recovered
	go func() {
		result <- item.run(c.ctx, state)
	}()

	for {
		select {
		case stop := <-result:
			c.metrics.processed(c.ctx, time.Since(start))
			return stop
		case id := <-running.completed:
			running.inflight.Remove(id)
		case <-c.background.Signal():
			c.startBackground(running)
		}
	}
}

// startBackground starts every queued background task
func (c *cell[S]) startBackground(running *tasks) {
	for {
		task, ok := c.background.Pop()
		if !ok {
			return
		}

		running.sequence++
		id := running.sequence
		running.inflight.Add(id)
		c.metrics.backgroundStarted(c.ctx)

		go func() {
			task(c.ctx)
			c.metrics.backgroundDone(c.ctx)
			select {
			case running.completed <- id:
			case <-c.stopped:
			}
		}()
	}
}

// reap collects finished background tasks without blocking
func (c *cell[S]) reap(running *tasks) {
	for {
		select {
		case id := <-running.completed:
			running.inflight.Remove(id)
		default:
			return
		}
	}
}

// shutdown drops queued items, lets the state clean up and cancels
// whatever background work remains.
func (c *cell[S]) shutdown(state S, running *tasks) {
	c.alive.Store(false)

	dropped := c.mailbox.Close()
	for _, item := range dropped {
		if item.discard != nil {
			item.discard()
		}
	}
	c.metrics.discarded(c.ctx, len(dropped))

	if stopper, ok := any(state).(Stopper); ok {
		stopper.Stopped(c.ctx)
	}

	// tasks that finished while the state was cleaned up are not canceled
	c.reap(running)
	c.cancel()
	close(c.stopped)

	// tasks that never started run with the canceled context
	// so that whatever they hold gets released
	pending := c.background.Close()
	for _, task := range pending {
		go task(c.ctx)
	}

	canceled := running.inflight.Cardinality() + len(pending)
	c.metrics.canceled(c.ctx, canceled)
	c.metrics.stopped(c.ctx)
	c.logger.Debugf("actor stopped (dropped items=%d, canceled tasks=%d)", len(dropped), canceled)
}
