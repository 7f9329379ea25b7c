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

	"go.uber.org/atomic"

	"github.com/tochemey/actz/future"
)

// mutItem is an exclusive item. run returns true to stop the actor.
// discard, when set, is called instead of run if the actor stops first.
type mutItem[T any] struct {
	run     func(ctx context.Context, state T) bool
	discard func()
}

// resource is the type erased side of a mailbox shared by every handle
type resource interface {
	id() ID
	// acquire takes a strong reference unless the actor is gone
	acquire() bool
	// retain takes a strong reference on behalf of a live one
	retain()
	release()
	pushFut(task func(ctx context.Context)) bool
}

// reference is the strong reference owned by one Addr.
// Copies of an Addr share it, so it is released once.
type reference struct {
	released atomic.Bool
}

// Handle is the part of Addr and WeakAddr that does not depend on the state view
type Handle interface {
	Identified
	IsDetached() bool
	SendFut(task func(ctx context.Context))
	Termination() future.Termination

	submitFut(task func(ctx context.Context)) bool
}

// AddrLike is implemented by Addr and WeakAddr.
// The invocation helpers of this package accept either.
type AddrLike[T any] interface {
	Handle
	SendMut(item func(ctx context.Context, state T) bool)

	submitMut(item mutItem[T]) bool
}

// Addr is a strong handle to an actor whose state is viewed as T.
//
// The zero value is detached: everything sent through it is dropped.
// A handle whose actor has stopped behaves the same way.
//
// Strong handles are counted. Clone takes a new reference and Release gives
// it back; once every strong reference is released the actor finishes the
// items already queued and stops. Addr values may be copied freely, copies
// share the same reference.
type Addr[T any] struct {
	res      resource
	ref      *reference
	dispatch func(mutItem[T]) bool
}

// enforce compilation error
var _ AddrLike[any] = Addr[any]{}

// Detached returns a strong handle pointing nowhere
func Detached[T any]() Addr[T] {
	return Addr[T]{}
}

func (a Addr[T]) live() bool {
	return a.res != nil && !a.ref.released.Load()
}

// IsDetached reports whether the handle points nowhere
func (a Addr[T]) IsDetached() bool {
	return a.res == nil
}

// ID returns the identity of the actor
func (a Addr[T]) ID() ID {
	if a.res == nil {
		return ID{}
	}
	return a.res.id()
}

// SendMut enqueues an exclusive item. The item runs after every item
// enqueued before it; returning true stops the actor.
func (a Addr[T]) SendMut(item func(ctx context.Context, state T) bool) {
	a.submitMut(mutItem[T]{run: item})
}

// SendFut enqueues a background task. The context given to the task is
// canceled when the actor stops.
func (a Addr[T]) SendFut(task func(ctx context.Context)) {
	a.submitFut(task)
}

// Termination returns a value resolving once the actor has stopped
func (a Addr[T]) Termination() future.Termination {
	return termination(a.res)
}

// Clone returns a new strong handle to the same actor.
// Cloning a released or detached handle returns a detached handle.
func (a Addr[T]) Clone() Addr[T] {
	if !a.live() {
		return Addr[T]{}
	}

	a.res.retain()
	return Addr[T]{
		res:      a.res,
		ref:      new(reference),
		dispatch: a.dispatch,
	}
}

// Release gives the strong reference back. Further sends through this handle,
// or any copy of it, are dropped. Releasing twice is a no-op.
func (a Addr[T]) Release() {
	if a.res != nil && a.ref.released.CompareAndSwap(false, true) {
		a.res.release()
	}
}

// Downgrade returns a weak handle to the same actor
func (a Addr[T]) Downgrade() WeakAddr[T] {
	if !a.live() {
		return WeakAddr[T]{}
	}
	return WeakAddr[T]{res: a.res, dispatch: a.dispatch}
}

// Equal reports whether both handles point at the same actor
func (a Addr[T]) Equal(other Identified) bool {
	return a.ID() == other.ID()
}

// Compare orders handles by actor identity
func (a Addr[T]) Compare(other Identified) int {
	return a.ID().Compare(other.ID())
}

// Hash returns a hash of the actor identity
func (a Addr[T]) Hash() uint64 {
	return a.ID().Hash()
}

func (a Addr[T]) String() string {
	return fmt.Sprintf("Addr(%s)", a.ID())
}

func (a Addr[T]) submitMut(item mutItem[T]) bool {
	if !a.live() {
		return false
	}
	return a.dispatch(item)
}

func (a Addr[T]) submitFut(task func(ctx context.Context)) bool {
	if !a.live() {
		return false
	}
	return a.res.pushFut(task)
}

// termination watches the actor with a background task that only returns
// once the actor context is canceled. It bypasses reference counting so that
// it also works from released and weak handles.
func termination(res resource) future.Termination {
	if res == nil {
		return future.NewTermination(future.Empty[struct{}]())
	}

	return future.NewTermination(callFut(res.pushFut, func(ctx context.Context) future.Deferred[struct{}] {
		<-ctx.Done()
		return future.Empty[struct{}]()
	}))
}
