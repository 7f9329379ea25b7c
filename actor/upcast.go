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

import "context"

// Upcast returns a handle viewing the actor state through project, typically
// a conversion from a concrete type to an interface it implements:
//
//	ticker := actor.Upcast(addr, func(c *Clock) Ticker { return c })
//
// The returned handle shares the queue of addr, so items sent through either
// keep their relative order, and it shares the strong reference of addr:
// releasing one releases the other.
func Upcast[T, U any](addr Addr[T], project func(T) U) Addr[U] {
	if addr.res == nil {
		return Addr[U]{}
	}

	return Addr[U]{
		res:      addr.res,
		ref:      addr.ref,
		dispatch: projectDispatch(addr.dispatch, project),
	}
}

// UpcastWeak is Upcast for weak handles
func UpcastWeak[T, U any](addr WeakAddr[T], project func(T) U) WeakAddr[U] {
	if addr.res == nil {
		return WeakAddr[U]{}
	}

	return WeakAddr[U]{
		res:      addr.res,
		dispatch: projectDispatch(addr.dispatch, project),
	}
}

// Downcast recovers a handle on the concrete state type S.
// It returns false, leaving addr untouched, when the actor state is not an S.
// A detached handle always downcasts to a detached handle.
// On success the returned handle shares the strong reference of addr.
func Downcast[S, T any](addr Addr[T]) (Addr[S], bool) {
	if addr.res == nil {
		return Addr[S]{}, true
	}

	c, ok := addr.res.(*cell[S])
	if !ok {
		return Addr[S]{}, false
	}

	return Addr[S]{
		res:      c,
		ref:      addr.ref,
		dispatch: c.pushMut,
	}, true
}

// DowncastWeak is Downcast for weak handles
func DowncastWeak[S, T any](addr WeakAddr[T]) (WeakAddr[S], bool) {
	if addr.res == nil {
		return WeakAddr[S]{}, true
	}

	c, ok := addr.res.(*cell[S])
	if !ok {
		return WeakAddr[S]{}, false
	}

	return WeakAddr[S]{
		res:      c,
		dispatch: c.pushMut,
	}, true
}

// projectDispatch narrows the state before handing items to dispatch
func projectDispatch[T, U any](dispatch func(mutItem[T]) bool, project func(T) U) func(mutItem[U]) bool {
	return func(item mutItem[U]) bool {
		return dispatch(mutItem[T]{
			run: func(ctx context.Context, state T) bool {
				return item.run(ctx, project(state))
			},
			discard: item.discard,
		})
	}
}
