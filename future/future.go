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

package future

import (
	"context"

	gerrors "github.com/tochemey/actz/errors"
)

type kind int

const (
	empty kind = iota
	ready
	deferred
)

// Deferred represents a value which may already be available, may never
// arrive, or will be supplied later by a Promise. A Deferred produced by a
// Promise may itself resolve to another Deferred; Await follows such chains
// until it reaches a value.
//
// The zero value is empty: awaiting it returns errors.ErrCanceled.
//
// A Deferred waiting on a Promise can be consumed once. Copies share the
// same underlying channel, so only one of them observes the value.
//
// Example usage:
//
//	promise, result := future.New[string]()
//	go func() {
//	    promise.Resolve("done")
//	}()
//
//	value, err := result.Await(ctx)
type Deferred[T any] struct {
	kind  kind
	value T
	link  *link[T]
}

// Empty returns a Deferred that never produces a value
func Empty[T any]() Deferred[T] {
	return Deferred[T]{}
}

// Ready returns a Deferred that already holds the given value
func Ready[T any](value T) Deferred[T] {
	return Deferred[T]{kind: ready, value: value}
}

// New returns a connected Promise and Deferred pair
func New[T any]() (*Promise[T], Deferred[T]) {
	l := newLink[T]()
	return &Promise[T]{link: l}, Deferred[T]{kind: deferred, link: l}
}

// Await blocks until a value is available or the context is done.
// It returns errors.ErrCanceled when the Deferred is empty or when the
// Promise was closed without a value.
func (d Deferred[T]) Await(ctx context.Context) (T, error) {
	var zero T
	current := d
	for {
		switch current.kind {
		case ready:
			return current.value, nil
		case deferred:
			select {
			case next, ok := <-current.link.values:
				if !ok {
					return zero, gerrors.ErrCanceled
				}
				current = next
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		default:
			return zero, gerrors.ErrCanceled
		}
	}
}

// Cancel tells the producer that nobody is interested in the value anymore.
// The producer observes it through Promise.Canceled.
// Cancel is a no-op on empty and ready values.
func (d Deferred[T]) Cancel() {
	if d.kind == deferred {
		d.link.cancel()
	}
}

// IsReady reports whether the value is available without waiting
func (d Deferred[T]) IsReady() bool {
	return d.kind == ready
}

// IsEmpty reports whether the Deferred will never produce a value
func (d Deferred[T]) IsEmpty() bool {
	return d.kind == empty
}
