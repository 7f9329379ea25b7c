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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrCanceled is returned when a deferred result will never be produced:
	// the producer went away without a value, the actor stopped before the call
	// ran or the handle was detached.
	ErrCanceled = errors.New("deferred result canceled")

	// ErrSpawnRejected is returned by a spawner that has no capacity left.
	ErrSpawnRejected = errors.New("spawn rejected")

	// ErrNoRuntime is returned by a runtime that cannot spawn tasks nor produce delays.
	ErrNoRuntime = errors.New("no runtime available")

	// ErrSchedulerNotStarted is returned when a delay is requested from a scheduler that is not running.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")

	// ErrInvalidLimit is returned when a concurrency limit is not strictly positive.
	ErrInvalidLimit = errors.New("invalid concurrency limit")
)

// SpawnError defines an error when the underlying runtime refuses
// to run the task backing a new actor
type SpawnError struct {
	err error
}

var _ error = (*SpawnError)(nil)

// NewSpawnError returns an instance of SpawnError
func NewSpawnError(err error) *SpawnError {
	return &SpawnError{
		err: fmt.Errorf("spawn error: %w", err),
	}
}

// Error implements the standard error interface
func (s *SpawnError) Error() string {
	return s.err.Error()
}

func (s *SpawnError) Unwrap() error {
	return s.err
}
