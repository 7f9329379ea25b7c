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

	"github.com/tochemey/actz/future"
)

// Send enqueues a method call and forgets about it.
// When the method fails the actor error handler decides whether to stop.
func Send[T any](addr AddrLike[T], method func(ctx context.Context, state T) error) {
	addr.submitMut(mutItem[T]{
		run: func(ctx context.Context, state T) bool {
			if err := method(ctx, state); err != nil {
				return handleError(ctx, state, err)
			}
			return false
		},
	})
}

// Call enqueues a method call and returns its eventual result.
//
// When the method fails, the actor error handler decides whether to stop and
// the result resolves to errors.ErrCanceled. It resolves the same way when
// the actor stops before running the call or when addr is detached.
func Call[T, R any](addr AddrLike[T], method func(ctx context.Context, state T) (R, error)) future.Deferred[R] {
	promise, result := future.New[R]()
	if !addr.submitMut(mutItem[T]{
		run: func(ctx context.Context, state T) bool {
			defer promise.Close()
			value, err := method(ctx, state)
			if err != nil {
				return handleError(ctx, state, err)
			}
			promise.Resolve(value)
			return false
		},
		discard: promise.Close,
	}) {
		promise.Close()
	}
	return result
}

// CallDeferred is like Call for methods whose result is itself produced later,
// typically by another actor. Awaiting the returned value waits for both.
func CallDeferred[T, R any](addr AddrLike[T], method func(ctx context.Context, state T) (future.Deferred[R], error)) future.Deferred[R] {
	promise, result := future.New[R]()
	if !addr.submitMut(mutItem[T]{
		run: func(ctx context.Context, state T) bool {
			defer promise.Close()
			value, err := method(ctx, state)
			if err != nil {
				return handleError(ctx, state, err)
			}
			promise.Forward(value)
			return false
		},
		discard: promise.Close,
	}) {
		promise.Close()
	}
	return result
}

// CallFut runs fut as a background task of the actor and returns its result.
//
// Canceling the returned Deferred cancels the context given to fut.
// When the actor stops first, fut sees its context canceled as well and the
// result resolves to errors.ErrCanceled unless fut already produced a value.
func CallFut[R any](addr Handle, fut func(ctx context.Context) future.Deferred[R]) future.Deferred[R] {
	return callFut(addr.submitFut, fut)
}

func callFut[R any](submit func(func(context.Context)) bool, fut func(ctx context.Context) future.Deferred[R]) future.Deferred[R] {
	promise, result := future.New[R]()
	task := func(ctx context.Context) {
		defer promise.Close()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		go func() {
			select {
			case <-promise.Canceled():
				cancel()
			case <-ctx.Done():
			}
		}()

		promise.Forward(fut(ctx))
	}

	if !submit(task) {
		promise.Close()
	}
	return result
}

// handleError hands a method error to the actor and returns whether to stop
func handleError(ctx context.Context, state any, err error) bool {
	if handler, ok := state.(ErrorHandler); ok {
		return handler.OnError(ctx, err)
	}

	LoggerFrom(ctx).Errorf("actor stopping after error: %v", err)
	return true
}
