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

// Package timer provides a timer owned by an actor state.
//
// A Timer never touches the actor state itself. When it elapses it sends
// Tick to the actor, which is then expected to call Timer.Tick to find out
// whether the timer really elapsed. Ticks may be spurious, for instance after
// a timer was cleared or re-armed, and an actor owning several timers asks
// each of them.
//
// Every method of Timer must be called from the actor owning it, typically
// from within an exclusive item.
package timer

import (
	"context"
	"time"

	"github.com/tochemey/actz/actor"
	"github.com/tochemey/actz/executor"
)

// Ticker is implemented by actor states using timers
type Ticker interface {
	// Tick is called whenever a timer might have elapsed
	Tick(ctx context.Context) error
}

// Delayer waits until a deadline. Delay returns an error, typically the
// context error, when the deadline was not reached.
type Delayer interface {
	Delay(ctx context.Context, deadline time.Time) error
}

// Strong returns a strong handle viewing the actor as a Ticker.
// The returned handle shares the reference of addr.
func Strong[T Ticker](addr actor.Addr[T]) actor.Addr[Ticker] {
	return actor.Upcast(addr, func(state T) Ticker { return state })
}

// Weak returns a weak handle viewing the actor as a Ticker
func Weak[T Ticker](addr actor.WeakAddr[T]) actor.WeakAddr[Ticker] {
	return actor.UpcastWeak(addr, func(state T) Ticker { return state })
}

// Timer is a one shot or repeating timer.
// The zero value is an inactive timer waiting with executor.Goroutine.
type Timer struct {
	delayer  Delayer
	kind     Kind
	deadline time.Time
	interval time.Duration

	// set for intervals only, one of them
	weak   actor.WeakAddr[Ticker]
	strong actor.Addr[Ticker]
}

// New creates an inactive Timer waiting with delayer.
// A nil delayer falls back to executor.Goroutine.
func New(delayer Delayer) *Timer {
	return &Timer{delayer: delayer}
}

// State returns the current state of the timer
func (t *Timer) State() State {
	switch t.kind {
	case Timeout:
		return State{Kind: Timeout, Deadline: t.deadline}
	case Interval:
		return State{Kind: Interval, Deadline: t.deadline, Interval: t.interval}
	default:
		return State{}
	}
}

// IsActive reports whether the timer is expected to tick in the future
func (t *Timer) IsActive() bool {
	return t.kind != Inactive
}

// Clear makes the timer inactive. A tick already on its way is still
// delivered and Tick will report it as not elapsed.
func (t *Timer) Clear() {
	t.strong.Release()
	t.kind = Inactive
	t.deadline = time.Time{}
	t.interval = 0
	t.weak = actor.WeakAddr[Ticker]{}
	t.strong = actor.Addr[Ticker]{}
}

// Tick reports whether the timer has elapsed. An elapsed timeout becomes
// inactive while an elapsed interval is re-armed for its next deadline.
func (t *Timer) Tick() bool {
	if t.kind == Inactive || time.Now().Before(t.deadline) {
		return false
	}

	if t.kind == Timeout {
		t.Clear()
		return true
	}

	t.deadline = t.deadline.Add(t.interval)
	t.armInterval()
	return true
}

// SetTimeoutWeak makes the timer tick once at deadline.
// The timer does not keep the actor alive.
func (t *Timer) SetTimeoutWeak(addr actor.WeakAddr[Ticker], deadline time.Time) {
	t.Clear()
	t.schedule(addr, deadline, nil)
	t.kind = Timeout
	t.deadline = deadline
}

// SetTimeoutStrong makes the timer tick once at deadline.
// It takes ownership of addr and keeps the actor alive until the tick is sent.
func (t *Timer) SetTimeoutStrong(addr actor.Addr[Ticker], deadline time.Time) {
	t.Clear()
	t.schedule(addr, deadline, addr.Release)
	t.kind = Timeout
	t.deadline = deadline
}

// SetTimeoutForWeak makes the timer tick once after duration.
// The timer does not keep the actor alive.
func (t *Timer) SetTimeoutForWeak(addr actor.WeakAddr[Ticker], duration time.Duration) {
	t.SetTimeoutWeak(addr, time.Now().Add(duration))
}

// SetTimeoutForStrong makes the timer tick once after duration.
// It takes ownership of addr and keeps the actor alive until the tick is sent.
func (t *Timer) SetTimeoutForStrong(addr actor.Addr[Ticker], duration time.Duration) {
	t.SetTimeoutStrong(addr, time.Now().Add(duration))
}

// SetIntervalAtWeak makes the timer tick at start and then every interval.
// The timer does not keep the actor alive.
func (t *Timer) SetIntervalAtWeak(addr actor.WeakAddr[Ticker], start time.Time, interval time.Duration) {
	t.Clear()
	t.kind = Interval
	t.deadline = start
	t.interval = interval
	t.weak = addr
	t.armInterval()
}

// SetIntervalAtStrong makes the timer tick at start and then every interval.
// It takes ownership of addr and keeps the actor alive until cleared.
func (t *Timer) SetIntervalAtStrong(addr actor.Addr[Ticker], start time.Time, interval time.Duration) {
	t.Clear()
	t.kind = Interval
	t.deadline = start
	t.interval = interval
	t.strong = addr
	t.armInterval()
}

// SetIntervalWeak makes the timer tick now and then every interval.
// The timer does not keep the actor alive.
func (t *Timer) SetIntervalWeak(addr actor.WeakAddr[Ticker], interval time.Duration) {
	t.SetIntervalAtWeak(addr, time.Now(), interval)
}

// SetIntervalStrong makes the timer tick now and then every interval.
// It takes ownership of addr and keeps the actor alive until cleared.
func (t *Timer) SetIntervalStrong(addr actor.Addr[Ticker], interval time.Duration) {
	t.SetIntervalAtStrong(addr, time.Now(), interval)
}

// RunWithTimeoutWeak runs f as a background task of the actor and makes the
// timer tick once at deadline. When f returns first the tick still waits for
// the deadline. When the deadline comes first the context given to f is
// canceled and the tick is sent right away, without waiting for f to return.
// The timer does not keep the actor alive.
func (t *Timer) RunWithTimeoutWeak(addr actor.WeakAddr[Ticker], deadline time.Time, f func(ctx context.Context)) {
	t.Clear()
	t.run(addr, deadline, f, nil)
	t.kind = Timeout
	t.deadline = deadline
}

// RunWithTimeoutStrong is RunWithTimeoutWeak keeping the actor alive until
// the tick is sent. It takes ownership of addr.
func (t *Timer) RunWithTimeoutStrong(addr actor.Addr[Ticker], deadline time.Time, f func(ctx context.Context)) {
	t.Clear()
	t.run(addr, deadline, f, addr.Release)
	t.kind = Timeout
	t.deadline = deadline
}

// RunWithTimeoutForWeak is RunWithTimeoutWeak with a deadline duration from now
func (t *Timer) RunWithTimeoutForWeak(addr actor.WeakAddr[Ticker], duration time.Duration, f func(ctx context.Context)) {
	t.RunWithTimeoutWeak(addr, time.Now().Add(duration), f)
}

// RunWithTimeoutForStrong is RunWithTimeoutStrong with a deadline duration from now
func (t *Timer) RunWithTimeoutForStrong(addr actor.Addr[Ticker], duration time.Duration, f func(ctx context.Context)) {
	t.RunWithTimeoutStrong(addr, time.Now().Add(duration), f)
}

// armInterval schedules the next tick of an interval
func (t *Timer) armInterval() {
	if !t.strong.IsDetached() {
		clone := t.strong.Clone()
		t.schedule(clone, t.deadline, clone.Release)
		return
	}
	t.schedule(t.weak, t.deadline, nil)
}

// schedule submits a background task sending Tick once deadline is reached.
// release, when set, runs once the task is done with addr.
func (t *Timer) schedule(addr actor.AddrLike[Ticker], deadline time.Time, release func()) {
	delayer := t.delayerOrDefault()
	addr.SendFut(func(ctx context.Context) {
		if release != nil {
			defer release()
		}

		if err := delayer.Delay(ctx, deadline); err != nil {
			actor.LoggerFrom(ctx).Debugf("timer canceled before %s: %v", deadline.Format(time.RFC3339Nano), err)
			return
		}
		actor.Send(addr, tick)
	})
}

// run is schedule racing f against the deadline
func (t *Timer) run(addr actor.AddrLike[Ticker], deadline time.Time, f func(ctx context.Context), release func()) {
	delayer := t.delayerOrDefault()
	addr.SendFut(func(ctx context.Context) {
		if release != nil {
			defer release()
		}

		// f is abandoned at the deadline, only its context tells it so
		runCtx, cancel := context.WithCancel(ctx)
		go f(runCtx)

		err := delayer.Delay(ctx, deadline)
		cancel()

		if err != nil {
			actor.LoggerFrom(ctx).Debugf("timer canceled before %s: %v", deadline.Format(time.RFC3339Nano), err)
			return
		}
		actor.Send(addr, tick)
	})
}

func (t *Timer) delayerOrDefault() Delayer {
	if t.delayer == nil {
		return executor.Goroutine{}
	}
	return t.delayer
}

func tick(ctx context.Context, ticker Ticker) error {
	return ticker.Tick(ctx)
}
