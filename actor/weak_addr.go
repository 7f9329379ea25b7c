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

	"github.com/tochemey/actz/future"
)

// WeakAddr is a handle that does not keep the actor alive.
// Sending through it once every strong handle is released is a no-op.
// The zero value is detached.
type WeakAddr[T any] struct {
	res      resource
	dispatch func(mutItem[T]) bool
}

// enforce compilation error
var _ AddrLike[any] = WeakAddr[any]{}

// DetachedWeak returns a weak handle pointing nowhere
func DetachedWeak[T any]() WeakAddr[T] {
	return WeakAddr[T]{}
}

// IsDetached reports whether the handle points nowhere
func (w WeakAddr[T]) IsDetached() bool {
	return w.res == nil
}

// ID returns the identity of the actor
func (w WeakAddr[T]) ID() ID {
	if w.res == nil {
		return ID{}
	}
	return w.res.id()
}

// Upgrade returns a strong handle, or a detached one when the actor is gone.
// The returned handle must be released.
func (w WeakAddr[T]) Upgrade() Addr[T] {
	if w.res == nil || !w.res.acquire() {
		return Addr[T]{}
	}

	return Addr[T]{
		res:      w.res,
		ref:      new(reference),
		dispatch: w.dispatch,
	}
}

// SendMut enqueues an exclusive item while the actor is alive
func (w WeakAddr[T]) SendMut(item func(ctx context.Context, state T) bool) {
	w.submitMut(mutItem[T]{run: item})
}

// SendFut enqueues a background task while the actor is alive
func (w WeakAddr[T]) SendFut(task func(ctx context.Context)) {
	w.submitFut(task)
}

// Termination returns a value resolving once the actor has stopped
func (w WeakAddr[T]) Termination() future.Termination {
	return termination(w.res)
}

// Equal reports whether both handles point at the same actor
func (w WeakAddr[T]) Equal(other Identified) bool {
	return w.ID() == other.ID()
}

// Compare orders handles by actor identity
func (w WeakAddr[T]) Compare(other Identified) int {
	return w.ID().Compare(other.ID())
}

// Hash returns a hash of the actor identity
func (w WeakAddr[T]) Hash() uint64 {
	return w.ID().Hash()
}

func (w WeakAddr[T]) String() string {
	return fmt.Sprintf("WeakAddr(%s)", w.ID())
}

func (w WeakAddr[T]) submitMut(item mutItem[T]) bool {
	if w.res == nil || !w.res.acquire() {
		return false
	}
	defer w.res.release()
	return w.dispatch(item)
}

func (w WeakAddr[T]) submitFut(task func(ctx context.Context)) bool {
	if w.res == nil || !w.res.acquire() {
		return false
	}
	defer w.res.release()
	return w.res.pushFut(task)
}
