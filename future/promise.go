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

import "sync"

// link is the one-shot channel shared by a Promise and its Deferred
type link[T any] struct {
	values     chan Deferred[T]
	completion sync.Once
	canceled   chan struct{}
	cancelOnce sync.Once
}

func newLink[T any]() *link[T] {
	return &link[T]{
		values:   make(chan Deferred[T], 1),
		canceled: make(chan struct{}),
	}
}

func (l *link[T]) complete(next *Deferred[T]) {
	l.completion.Do(func() {
		if next != nil {
			l.values <- *next
		}
		close(l.values)
	})
}

func (l *link[T]) cancel() {
	l.cancelOnce.Do(func() {
		close(l.canceled)
	})
}

// Promise is the producing side of a Deferred.
// Only the first call to Resolve, Forward or Close has an effect.
// All methods are safe for concurrent use.
type Promise[T any] struct {
	link *link[T]
}

// Resolve completes the Deferred with the given value
func (p *Promise[T]) Resolve(value T) {
	next := Ready(value)
	p.link.complete(&next)
}

// Forward completes the Deferred with another Deferred.
// Awaiting the original then waits on next.
func (p *Promise[T]) Forward(next Deferred[T]) {
	p.link.complete(&next)
}

// Close completes the Deferred without a value.
// Awaiting it then returns errors.ErrCanceled.
func (p *Promise[T]) Close() {
	p.link.complete(nil)
}

// Canceled returns a channel closed once the consumer called Deferred.Cancel
func (p *Promise[T]) Canceled() <-chan struct{} {
	return p.link.canceled
}
