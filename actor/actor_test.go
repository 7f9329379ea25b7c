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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/actz/errors"
	"github.com/tochemey/actz/executor"
	"github.com/tochemey/actz/future"
	"github.com/tochemey/actz/log"
)

func TestSpawn(t *testing.T) {
	ctx := context.TODO()
	t.Run("With echo call", func(t *testing.T) {
		addr, err := Spawn(&echo{}, WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		require.False(t, addr.IsDetached())
		require.False(t, addr.ID().IsZero())

		reply := Call(addr, func(_ context.Context, e *echo) (string, error) {
			return e.Echo("test")
		})

		value, err := reply.Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, "test", value)

		stopAndWait(t, addr)
	})
	t.Run("With unavailable runtime", func(t *testing.T) {
		addr, err := Spawn(newRecorder(), WithSpawner(executor.Unavailable{}), WithLogger(log.DiscardLogger))
		require.Error(t, err)
		assert.True(t, addr.IsDetached())

		var spawnErr *gerrors.SpawnError
		require.ErrorAs(t, err, &spawnErr)
		assert.ErrorIs(t, err, gerrors.ErrNoRuntime)
	})
	t.Run("With bounded runtime", func(t *testing.T) {
		group, err := executor.NewGroup(1)
		require.NoError(t, err)

		first, err := Spawn(newRecorder(), WithSpawner(group), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		_, err = Spawn(newRecorder(), WithSpawner(group), WithLogger(log.DiscardLogger))
		require.ErrorIs(t, err, gerrors.ErrSpawnRejected)

		stopAndWait(t, first)
		group.Wait()

		// the slot is free again once the first actor is gone
		second, err := Spawn(newRecorder(), WithSpawner(group), WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		stopAndWait(t, second)
		group.Wait()
	})
	t.Run("With retrying runtime", func(t *testing.T) {
		group, err := executor.NewGroup(1)
		require.NoError(t, err)

		first, err := Spawn(newRecorder(), WithSpawner(group), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		// frees the only slot while the second spawn is retrying
		go func() {
			time.Sleep(20 * time.Millisecond)
			first.Release()
		}()

		spawner := executor.NewRetrying(group, 50, 5*time.Millisecond, 20*time.Millisecond)
		second, err := Spawn(newRecorder(), WithSpawner(spawner), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		stopAndWait(t, second)
		group.Wait()
	})
	t.Run("With context values", func(t *testing.T) {
		type key struct{}
		parent, cancel := context.WithCancel(context.WithValue(ctx, key{}, "value"))
		addr, err := Spawn(&echo{}, WithContext(parent), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		// canceling the parent does not stop the actor
		cancel()

		reply := Call(addr, func(ctx context.Context, _ *echo) (any, error) {
			return ctx.Value(key{}), ctx.Err()
		})
		value, err := reply.Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, "value", value)

		stopAndWait(t, addr)
	})
	t.Run("With logger in context", func(t *testing.T) {
		logger := log.NewZap(log.ErrorLevel, new(safeBuffer))
		addr, err := Spawn(&echo{}, WithLogger(logger))
		require.NoError(t, err)

		reply := Call(addr, func(ctx context.Context, _ *echo) (log.Level, error) {
			return LoggerFrom(ctx).LogLevel(), nil
		})
		level, err := reply.Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, log.ErrorLevel, level)
		assert.Equal(t, log.DefaultLogger, LoggerFrom(ctx))

		stopAndWait(t, addr)
	})
}

func TestSerialization(t *testing.T) {
	ctx := context.TODO()
	t.Run("With single sender", func(t *testing.T) {
		state := newRecorder()
		addr, err := Spawn(state, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		const count = 50
		for i := 0; i < count; i++ {
			Send(addr, func(context.Context, *recorder) error {
				// items taking longer must not be overtaken
				if i%7 == 0 {
					time.Sleep(2 * time.Millisecond)
				}
				state.values = append(state.values, i)
				return nil
			})
		}

		values, err := Call(addr, func(_ context.Context, r *recorder) ([]int, error) {
			return r.Values(), nil
		}).Await(ctx)
		require.NoError(t, err)

		expected := make([]int, count)
		for i := range expected {
			expected[i] = i
		}
		assert.Equal(t, expected, values)

		stopAndWait(t, addr)
	})
	t.Run("With concurrent senders", func(t *testing.T) {
		addr, err := Spawn(newRecorder(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		const senders = 4
		const perSender = 100
		var wg sync.WaitGroup
		wg.Add(senders)
		for s := 0; s < senders; s++ {
			sender := addr.Clone()
			go func(s int) {
				defer wg.Done()
				defer sender.Release()
				for i := 0; i < perSender; i++ {
					value := s*perSender + i
					Send(sender, func(_ context.Context, r *recorder) error {
						r.values = append(r.values, value)
						return nil
					})
				}
			}(s)
		}
		wg.Wait()

		values, err := Call(addr, func(_ context.Context, r *recorder) ([]int, error) {
			return r.Values(), nil
		}).Await(ctx)
		require.NoError(t, err)
		require.Len(t, values, senders*perSender)

		last := make(map[int]int)
		for _, value := range values {
			sender := value / perSender
			if previous, ok := last[sender]; ok {
				require.Greater(t, value, previous)
			}
			last[sender] = value
		}

		stopAndWait(t, addr)
	})
}

func TestShutdown(t *testing.T) {
	ctx := context.TODO()
	t.Run("With all handles released", func(t *testing.T) {
		state := newRecorder()
		addr, err := Spawn(state, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			Send(addr, func(_ context.Context, r *recorder) error {
				time.Sleep(time.Millisecond)
				r.values = append(r.values, i)
				return nil
			})
		}

		termination := addr.Termination()
		addr.Release()
		require.NoError(t, termination.Await(ctx))

		// the state was cleaned up once, after every queued item
		assert.EqualValues(t, 1, state.stops.Load())
		values := <-state.stopped
		assert.Len(t, values, 10)
	})
	t.Run("With termination waiting for the cleanup", func(t *testing.T) {
		counter := atomic.NewInt32(0)
		addr, err := Spawn(&slowStopper{counter: counter}, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		termination := addr.Termination()
		addr.Release()
		require.NoError(t, termination.Await(ctx))
		assert.EqualValues(t, 5, counter.Load())
	})
	t.Run("With stop requested by an item", func(t *testing.T) {
		state := newRecorder()
		addr, err := Spawn(state, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		gate := make(chan struct{})
		Send(addr, func(context.Context, *recorder) error {
			<-gate
			return nil
		})
		addr.SendMut(func(_ context.Context, r *recorder) bool {
			r.values = append(r.values, 1)
			return true
		})
		// already queued when the actor decides to stop
		after := Call(addr, func(_ context.Context, r *recorder) (int, error) {
			r.values = append(r.values, 2)
			return 2, nil
		})
		Send(addr, func(_ context.Context, r *recorder) error {
			r.values = append(r.values, 3)
			return nil
		})
		close(gate)

		_, err = after.Await(ctx)
		require.ErrorIs(t, err, gerrors.ErrCanceled)
		require.NoError(t, addr.Termination().Await(ctx))

		assert.Equal(t, []int{1}, <-state.stopped)
		assert.EqualValues(t, 1, state.stops.Load())

		// sending to a stopped actor is silently dropped
		Send(addr, func(context.Context, *recorder) error {
			t.Error("must not run")
			return nil
		})
		_, err = Call(addr, func(context.Context, *recorder) (int, error) { return 0, nil }).Await(ctx)
		require.ErrorIs(t, err, gerrors.ErrCanceled)
		addr.Release()
	})
	t.Run("With weak handles only", func(t *testing.T) {
		state := newRecorder()
		addr, err := Spawn(state, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		weak := addr.Downgrade()
		stopAndWait(t, addr)
		<-state.stopped

		assert.True(t, weak.Upgrade().IsDetached())
		weak.SendMut(func(context.Context, *recorder) bool {
			t.Error("must not run")
			return false
		})
		require.NoError(t, weak.Termination().Await(ctx))
	})
}

func TestErrorHandling(t *testing.T) {
	ctx := context.TODO()
	t.Run("With default handler", func(t *testing.T) {
		state := newRecorder()
		addr, err := Spawn(state, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		reply := Call(addr, func(context.Context, *recorder) (int, error) {
			return 0, errBoom
		})
		_, err = reply.Await(ctx)
		require.ErrorIs(t, err, gerrors.ErrCanceled)

		// the default handler stops the actor
		require.NoError(t, addr.Termination().Await(ctx))
		assert.EqualValues(t, 1, state.stops.Load())
		addr.Release()
	})
	t.Run("With custom handler", func(t *testing.T) {
		state := new(resilient)
		addr, err := Spawn(state, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		Send(addr, func(_ context.Context, r *resilient) error {
			return r.Fail()
		})
		_, err = Call(addr, func(_ context.Context, r *resilient) (int, error) {
			return 0, r.Fail()
		}).Await(ctx)
		require.ErrorIs(t, err, gerrors.ErrCanceled)

		// still alive
		count, err := Call(addr, func(_ context.Context, r *resilient) (int, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			return len(r.errors), nil
		}).Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		stopAndWait(t, addr)
	})
}

func TestStarter(t *testing.T) {
	ctx := context.TODO()
	t.Run("With started running first", func(t *testing.T) {
		addr, err := Spawn(&starter{}, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		events, err := Call(addr, func(_ context.Context, s *starter) ([]string, error) {
			s.events = append(s.events, "called")
			return s.events, nil
		}).Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"started", "called"}, events)

		self, err := Call(addr, func(_ context.Context, s *starter) (WeakAddr[*starter], error) {
			return s.self, nil
		}).Await(ctx)
		require.NoError(t, err)
		assert.True(t, self.Equal(addr))

		// the weak self handle does not keep the actor alive
		stopAndWait(t, addr)
		assert.True(t, self.Upgrade().IsDetached())
	})
	t.Run("With started failing", func(t *testing.T) {
		state := &failingStarter{stopped: atomic.NewBool(false)}
		addr, err := Spawn(state, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		require.NoError(t, addr.Termination().Await(ctx))
		assert.True(t, state.stopped.Load())
		addr.Release()
	})
}

func TestDetached(t *testing.T) {
	ctx := context.TODO()
	t.Run("With strong handle", func(t *testing.T) {
		addr := Detached[*recorder]()
		require.True(t, addr.IsDetached())
		require.True(t, addr.ID().IsZero())

		addr.SendMut(func(context.Context, *recorder) bool {
			t.Error("must not run")
			return false
		})
		addr.SendFut(func(context.Context) {
			t.Error("must not run")
		})
		Send(addr, func(context.Context, *recorder) error { return nil })

		_, err := CallFut(addr, func(context.Context) future.Deferred[int] {
			return future.Ready(1)
		}).Await(ctx)
		require.ErrorIs(t, err, gerrors.ErrCanceled)

		_, err = Call(addr, func(context.Context, *recorder) (int, error) { return 1, nil }).Await(ctx)
		require.ErrorIs(t, err, gerrors.ErrCanceled)

		require.NoError(t, addr.Termination().Await(ctx))
		assert.True(t, addr.Clone().IsDetached())
		assert.True(t, addr.Downgrade().IsDetached())
		addr.Release()
		assert.Equal(t, "Addr(detached)", addr.String())
	})
	t.Run("With weak handle", func(t *testing.T) {
		var weak WeakAddr[*recorder]
		require.True(t, weak.IsDetached())
		assert.True(t, weak.Equal(DetachedWeak[*recorder]()))

		weak.SendMut(func(context.Context, *recorder) bool {
			t.Error("must not run")
			return false
		})
		weak.SendFut(func(context.Context) {
			t.Error("must not run")
		})

		_, err := CallFut(weak, func(context.Context) future.Deferred[int] {
			return future.Ready(1)
		}).Await(ctx)
		require.ErrorIs(t, err, gerrors.ErrCanceled)
		require.NoError(t, weak.Termination().Await(ctx))
		assert.True(t, weak.Upgrade().IsDetached())
	})
}

func TestHandles(t *testing.T) {
	ctx := context.TODO()
	t.Run("With downgrade and upgrade", func(t *testing.T) {
		addr, err := Spawn(newRecorder(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		weak := addr.Downgrade()
		strong := weak.Upgrade()
		require.False(t, strong.IsDetached())
		assert.True(t, strong.Equal(addr))
		assert.True(t, weak.Equal(addr))
		assert.Equal(t, addr.Hash(), strong.Hash())
		assert.Zero(t, addr.Compare(weak))

		strong.Release()
		stopAndWait(t, addr)
		assert.True(t, weak.Upgrade().IsDetached())
	})
	t.Run("With clones keeping the actor alive", func(t *testing.T) {
		state := newRecorder()
		addr, err := Spawn(state, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		clone := addr.Clone()
		copied := addr
		addr.Release()
		// copies share the released reference
		copied.Release()
		copied.SendMut(func(context.Context, *recorder) bool {
			t.Error("must not run")
			return false
		})

		value, err := Call(clone, func(context.Context, *recorder) (int, error) {
			return 7, nil
		}).Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7, value)
		assert.Zero(t, state.stops.Load())

		stopAndWait(t, clone)
		assert.EqualValues(t, 1, state.stops.Load())
	})
	t.Run("With clone taken after release", func(t *testing.T) {
		addr, err := Spawn(newRecorder(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		before := addr.Clone()
		termination := addr.Termination()
		addr.Release()

		// copies of the released handle share its reference
		copied := addr
		assert.True(t, copied.Clone().IsDetached())
		assert.True(t, copied.Downgrade().IsDetached())

		cloned, err := Call(before, func(context.Context, *recorder) (bool, error) {
			return addr.Clone().IsDetached(), nil
		}).Await(ctx)
		require.NoError(t, err)
		assert.True(t, cloned)

		// the clone taken earlier still keeps the actor alive
		later := before.Clone()
		require.False(t, later.IsDetached())
		before.Release()
		later.Release()
		require.NoError(t, termination.Await(ctx))
	})
	t.Run("With weak sends while alive", func(t *testing.T) {
		addr, err := Spawn(newRecorder(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		weak := addr.Downgrade()
		Send(weak, func(_ context.Context, r *recorder) error {
			r.values = append(r.values, 1)
			return nil
		})
		values, err := Call(weak, func(_ context.Context, r *recorder) ([]int, error) {
			return r.Values(), nil
		}).Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, values)

		stopAndWait(t, addr)
	})
	t.Run("With identity", func(t *testing.T) {
		first, err := Spawn(newRecorder(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		second, err := Spawn(newRecorder(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		assert.False(t, first.Equal(second))
		assert.NotZero(t, first.Compare(second))
		assert.Equal(t, -first.Compare(second), second.Compare(first))
		assert.False(t, first.Equal(Detached[*recorder]()))
		assert.Equal(t, fmt.Sprintf("Addr(%s)", first.ID()), first.String())
		assert.Equal(t, fmt.Sprintf("WeakAddr(%s)", first.ID()), first.Downgrade().String())

		index := map[ID]string{first.ID(): "first", second.ID(): "second"}
		assert.Equal(t, "second", index[second.Downgrade().ID()])

		stopAndWait(t, first)
		stopAndWait(t, second)
	})
}

func TestUpcast(t *testing.T) {
	ctx := context.TODO()
	t.Run("With round trip", func(t *testing.T) {
		addr, err := Spawn(&greeter{}, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		view := Upcast(addr.Clone(), func(g *greeter) Greeter { return g })
		assert.True(t, view.Equal(addr))
		assert.Equal(t, addr.Hash(), view.Hash())

		reply, err := Call(view, func(_ context.Context, g Greeter) (string, error) {
			return g.Greet("actor"), nil
		}).Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, "hello actor", reply)

		concrete, ok := Downcast[*greeter](view)
		require.True(t, ok)
		assert.True(t, concrete.Equal(addr))

		greeted, err := Call(concrete, func(_ context.Context, g *greeter) ([]string, error) {
			return g.greeted, nil
		}).Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"actor"}, greeted)

		_, ok = Downcast[*recorder](view)
		assert.False(t, ok)

		// view and concrete share the clone reference
		concrete.Release()
		view.SendMut(func(context.Context, Greeter) bool {
			t.Error("must not run")
			return false
		})

		stopAndWait(t, addr)
	})
	t.Run("With shared ordering", func(t *testing.T) {
		addr, err := Spawn(&greeter{}, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		view := Upcast(addr.Clone(), func(g *greeter) Greeter { return g })
		for i := 0; i < 20; i++ {
			name := fmt.Sprintf("%d", i)
			if i%2 == 0 {
				Send(view, func(_ context.Context, g Greeter) error {
					g.Greet(name)
					return nil
				})
				continue
			}
			Send(addr, func(_ context.Context, g *greeter) error {
				g.Greet(name)
				return nil
			})
		}

		greeted, err := Call(addr, func(_ context.Context, g *greeter) ([]string, error) {
			return g.greeted, nil
		}).Await(ctx)
		require.NoError(t, err)
		for i, name := range greeted {
			assert.Equal(t, fmt.Sprintf("%d", i), name)
		}

		view.Release()
		stopAndWait(t, addr)
	})
	t.Run("With weak handles", func(t *testing.T) {
		addr, err := Spawn(&greeter{}, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		view := UpcastWeak(addr.Downgrade(), func(g *greeter) Greeter { return g })
		assert.True(t, view.Equal(addr))

		reply, err := Call(view, func(_ context.Context, g Greeter) (string, error) {
			return g.Greet("weak"), nil
		}).Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, "hello weak", reply)

		concrete, ok := DowncastWeak[*greeter](view)
		require.True(t, ok)
		assert.True(t, concrete.Equal(addr))
		_, ok = DowncastWeak[*recorder](view)
		assert.False(t, ok)

		stopAndWait(t, addr)
	})
	t.Run("With detached handles", func(t *testing.T) {
		view := Upcast(Detached[*greeter](), func(g *greeter) Greeter { return g })
		assert.True(t, view.IsDetached())

		concrete, ok := Downcast[*recorder](view)
		assert.True(t, ok)
		assert.True(t, concrete.IsDetached())

		weak, ok := DowncastWeak[*recorder](UpcastWeak(DetachedWeak[*greeter](), func(g *greeter) Greeter { return g }))
		assert.True(t, ok)
		assert.True(t, weak.IsDetached())
	})
}

func TestBackground(t *testing.T) {
	ctx := context.TODO()
	t.Run("With tasks running during an exclusive item", func(t *testing.T) {
		addr, err := Spawn(newRecorder(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		taskDone := make(chan struct{})
		reply := Call(addr, func(ctx context.Context, _ *recorder) (bool, error) {
			// the task is submitted while this item holds the state
			addr.SendFut(func(context.Context) {
				close(taskDone)
			})
			select {
			case <-taskDone:
				return true, nil
			case <-time.After(time.Second):
				return false, nil
			}
		})

		ran, err := reply.Await(ctx)
		require.NoError(t, err)
		assert.True(t, ran)

		stopAndWait(t, addr)
	})
	t.Run("With task submitted before an item", func(t *testing.T) {
		addr, err := Spawn(newRecorder(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		started := atomic.NewBool(false)
		addr.SendFut(func(context.Context) {
			started.Store(true)
		})
		Send(addr, func(context.Context, *recorder) error {
			// the task has at least been started
			assert.Eventually(t, started.Load, time.Second, time.Millisecond)
			return nil
		})

		stopAndWait(t, addr)
	})
	t.Run("With CallFut", func(t *testing.T) {
		addr, err := Spawn(newRecorder(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		value, err := CallFut(addr, func(context.Context) future.Deferred[string] {
			return future.Ready("done")
		}).Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, "done", value)

		// a task can wait on another actor
		other, err := Spawn(&echo{}, WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		value, err = CallFut(addr, func(context.Context) future.Deferred[string] {
			return Call(other, func(_ context.Context, e *echo) (string, error) {
				return e.Echo("chained")
			})
		}).Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, "chained", value)

		stopAndWait(t, other)
		stopAndWait(t, addr)
	})
	t.Run("With CallFut canceled by the caller", func(t *testing.T) {
		addr, err := Spawn(newRecorder(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		observed := make(chan error, 1)
		result := CallFut(addr, func(ctx context.Context) future.Deferred[int] {
			<-ctx.Done()
			observed <- ctx.Err()
			return future.Ready(1)
		})
		result.Cancel()

		select {
		case err := <-observed:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("task was not canceled")
		}

		stopAndWait(t, addr)
	})
	t.Run("With tasks canceled when the actor stops", func(t *testing.T) {
		addr, err := Spawn(newRecorder(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		result := CallFut(addr, func(ctx context.Context) future.Deferred[int] {
			<-ctx.Done()
			return future.Empty[int]()
		})

		stopAndWait(t, addr)
		_, err = result.Await(ctx)
		require.ErrorIs(t, err, gerrors.ErrCanceled)
	})
	t.Run("With tasks not keeping the actor alive", func(t *testing.T) {
		addr, err := Spawn(newRecorder(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		canceled := make(chan struct{})
		addr.SendFut(func(ctx context.Context) {
			<-ctx.Done()
			close(canceled)
		})

		stopAndWait(t, addr)
		select {
		case <-canceled:
		case <-time.After(time.Second):
			t.Fatal("task was not canceled")
		}
	})
}

func TestMetrics(t *testing.T) {
	ctx := context.TODO()
	provider := newRecordingProvider()
	addr, err := Spawn(newRecorder(), WithMeterProvider(provider), WithLogger(log.DiscardLogger))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		Send(addr, func(context.Context, *recorder) error { return nil })
	}
	_, err = Call(addr, func(context.Context, *recorder) (int, error) { return 0, nil }).Await(ctx)
	require.NoError(t, err)

	stopAndWait(t, addr)

	assert.EqualValues(t, 1, provider.total("actor_spawn_count"))
	// recorded after the termination resolves
	assert.Eventually(t, func() bool {
		return provider.total("actor_stop_count") == 1
	}, time.Second, 5*time.Millisecond)
	assert.EqualValues(t, 4, provider.total("actor_processed_count"))
}

func TestCanceledTasksMetric(t *testing.T) {
	ctx := context.TODO()
	provider := newRecordingProvider()
	addr, err := Spawn(newRecorder(), WithMeterProvider(provider), WithLogger(log.DiscardLogger))
	require.NoError(t, err)

	// still running when the actor stops
	addr.SendFut(func(ctx context.Context) {
		<-ctx.Done()
	})
	_, err = Call(addr, func(context.Context, *recorder) (int, error) { return 0, nil }).Await(ctx)
	require.NoError(t, err)

	// the termination watcher is canceled as well
	stopAndWait(t, addr)

	assert.Eventually(t, func() bool {
		return provider.total("actor_stop_count") == 1
	}, time.Second, 5*time.Millisecond)
	assert.EqualValues(t, 2, provider.total("actor_canceled_task_count"))
}

// safeBuffer is a bytes buffer safe for concurrent writes
type safeBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}
