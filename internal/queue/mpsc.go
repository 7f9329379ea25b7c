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

package queue

import (
	"sync"

	"go.uber.org/atomic"
)

type node[T any] struct {
	value T
	next  *atomic.Pointer[node[T]]
}

func newNode[T any](value T) *node[T] {
	return &node[T]{
		value: value,
		next:  atomic.NewPointer[node[T]](nil),
	}
}

// Mpsc is an unbounded Multi-Producer-Single-Consumer FIFO queue.
// reference: https://concurrencyfreaks.blogspot.com/2014/04/multi-producer-single-consumer-queue.html
//
// Producers never block each other on the hot path. Every successful Push
// leaves a token in Signal so that a consumer parked in a select wakes up.
// Once closed, Push rejects new values.
type Mpsc[T any] struct {
	head   *atomic.Pointer[node[T]]
	tail   *node[T]
	length *atomic.Int64
	signal chan struct{}

	// pushes hold the read side, Close takes the write side
	// so that no push is half linked when the queue is drained
	mu     sync.RWMutex
	closed bool
}

// NewMpsc creates an instance of Mpsc
func NewMpsc[T any]() *Mpsc[T] {
	var zero T
	stub := newNode(zero)
	return &Mpsc[T]{
		head:   atomic.NewPointer(stub),
		tail:   stub,
		length: atomic.NewInt64(0),
		signal: make(chan struct{}, 1),
	}
}

// Push appends the value to the queue. It returns false when the queue is closed,
// in which case the value is dropped.
func (q *Mpsc[T]) Push(value T) bool {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return false
	}

	item := newNode(value)
	previous := q.head.Swap(item)
	previous.next.Store(item)
	q.length.Inc()
	q.mu.RUnlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// Pop removes the oldest value from the queue.
// Returns false if the queue is empty. Can be used in a single consumer (goroutine) only.
func (q *Mpsc[T]) Pop() (T, bool) {
	var zero T
	next := q.tail.next.Load()
	if next == nil {
		return zero, false
	}

	q.tail = next
	value := next.value
	next.value = zero
	q.length.Dec()
	return value, true
}

// Signal returns a channel that receives a token after values are pushed.
// A token does not guarantee that a value is still available.
func (q *Mpsc[T]) Signal() <-chan struct{} {
	return q.signal
}

// Close rejects further pushes and returns the values still queued, oldest first.
// Like Pop it must be called by the consumer. Closing twice returns nil.
func (q *Mpsc[T]) Close() []T {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	var remaining []T
	for {
		value, ok := q.Pop()
		if !ok {
			return remaining
		}
		remaining = append(remaining, value)
	}
}

// IsClosed reports whether Close has been called
func (q *Mpsc[T]) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Len returns queue length
func (q *Mpsc[T]) Len() int64 {
	return q.length.Load()
}

// IsEmpty returns true when the queue is empty
// must be called from a single, consumer goroutine
func (q *Mpsc[T]) IsEmpty() bool {
	return q.tail.next.Load() == nil
}
