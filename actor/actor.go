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

// Package actor implements in-process actors.
//
// An actor is a state value owned by a single mailbox goroutine. Nothing
// outside the mailbox ever touches the state: callers submit work through
// handles and the mailbox runs it one item at a time, in the order it was
// enqueued. Handles come in two flavours:
//
//   - Addr is a strong handle. The actor lives as long as at least one strong
//     handle has not been released.
//   - WeakAddr observes the actor without keeping it alive.
//
// Work comes in two flavours as well. Exclusive items receive the state and
// are serialized. Background tasks receive no state; they run concurrently with
// the exclusive items and are canceled when the actor stops.
//
// Example usage:
//
//	type Echo struct{}
//
//	addr, err := actor.Spawn(&Echo{})
//	if err != nil {
//	    return err
//	}
//	defer addr.Release()
//
//	reply := actor.Call(addr, func(ctx context.Context, e *Echo) (string, error) {
//	    return "test", nil
//	})
//
//	value, err := reply.Await(ctx)
package actor

import "context"

// Starter is implemented by states that need to run something before any
// other item. Started runs as the very first exclusive item.
//
// self is only valid for the duration of the call: Clone it to keep a strong
// handle, or better Downgrade it so the actor can still stop once every
// external handle has been released.
type Starter[S any] interface {
	Started(ctx context.Context, self Addr[S]) error
}

// ErrorHandler is implemented by states that decide themselves what a failing
// method means. OnError returns true to stop the actor.
// Without it the error is logged and the actor stops.
type ErrorHandler interface {
	OnError(ctx context.Context, err error) bool
}

// Stopper is implemented by states holding resources to free once the actor
// is done. Stopped runs exactly once, after the last exclusive item and
// before background tasks are canceled.
type Stopper interface {
	Stopped(ctx context.Context)
}

// Spawner runs the mailbox task of a new actor
type Spawner interface {
	Spawn(task func()) error
}
