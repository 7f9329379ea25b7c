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
	"errors"

	gerrors "github.com/tochemey/actz/errors"
)

// Termination resolves once an actor has stopped
type Termination struct {
	done Deferred[struct{}]
}

// NewTermination wraps a Deferred that is closed when an actor stops
func NewTermination(done Deferred[struct{}]) Termination {
	return Termination{done: done}
}

// Await blocks until the actor has stopped or the context is done.
// It returns nil when the actor is gone, whatever the reason.
func (t Termination) Await(ctx context.Context) error {
	if _, err := t.done.Await(ctx); err != nil && !errors.Is(err, gerrors.ErrCanceled) {
		return err
	}
	return nil
}

// Cancel stops watching the actor.
func (t Termination) Cancel() {
	t.done.Cancel()
}
