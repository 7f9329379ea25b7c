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
	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/actz/errors"
)

// Group runs tasks on goroutines with an upper bound on how many can be
// alive at once. Since a mailbox task lives as long as its actor, the bound
// caps the number of running actors.
type Group struct {
	group *errgroup.Group
}

// NewGroup creates a Group accepting at most limit concurrent tasks
func NewGroup(limit int) (*Group, error) {
	if limit <= 0 {
		return nil, gerrors.ErrInvalidLimit
	}

	group := new(errgroup.Group)
	group.SetLimit(limit)
	return &Group{group: group}, nil
}

// Spawn starts the task when a slot is free and fails with
// errors.ErrSpawnRejected otherwise. It never blocks.
func (x *Group) Spawn(task func()) error {
	if !x.group.TryGo(func() error {
		task()
		return nil
	}) {
		return gerrors.ErrSpawnRejected
	}
	return nil
}

// Wait blocks until every spawned task has returned
func (x *Group) Wait() {
	_ = x.group.Wait()
}
