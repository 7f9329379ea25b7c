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
	"fmt"

	gerrors "github.com/tochemey/actz/errors"
)

// Spawn starts an actor owning state and returns a strong handle to it.
//
// When state implements Starter, Started is enqueued before Spawn returns,
// so it runs before anything the caller sends.
// Spawn fails with a *errors.SpawnError when the spawner rejects the mailbox
// task, in which case nothing runs.
func Spawn[S any](state S, opts ...SpawnOption) (Addr[S], error) {
	config := newSpawnConfig(opts...)
	c := newCell[S](config, fmt.Sprintf("%T", state))
	addr := Addr[S]{
		res:      c,
		ref:      new(reference),
		dispatch: c.pushMut,
	}

	if _, ok := any(state).(Starter[S]); ok {
		self := addr.Clone()
		Send[S](addr, func(ctx context.Context, state S) error {
			defer self.Release()
			return any(state).(Starter[S]).Started(ctx, self)
		})
	}

	if err := config.spawner.Spawn(func() { c.run(state) }); err != nil {
		c.alive.Store(false)
		c.mailbox.Close()
		c.cancel()
		c.logger.Errorf("failed to spawn actor: %v", err)
		return Addr[S]{}, gerrors.NewSpawnError(err)
	}
	return addr, nil
}
