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
	"context"
	"time"

	"github.com/flowchartsman/retry"
)

// Spawner is the capability decorated by Retrying
type Spawner interface {
	Spawn(task func()) error
}

// Retrying decorates a Spawner and retries rejected spawns
// with an exponential backoff.
type Retrying struct {
	spawner      Spawner
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
}

// enforce compilation error
var _ Spawner = (*Retrying)(nil)

// NewRetrying creates a Retrying spawner. The task is handed to spawner at
// most maxRetries times, waiting between initialDelay and maxDelay between attempts.
func NewRetrying(spawner Spawner, maxRetries int, initialDelay, maxDelay time.Duration) *Retrying {
	return &Retrying{
		spawner:      spawner,
		maxRetries:   maxRetries,
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
	}
}

// Spawn hands the task to the underlying spawner until it is accepted or the
// attempts are exhausted. The last error is returned in that case.
func (x *Retrying) Spawn(task func()) error {
	return x.SpawnContext(context.Background(), task)
}

// SpawnContext is like Spawn but stops retrying once the context is done
func (x *Retrying) SpawnContext(ctx context.Context, task func()) error {
	retrier := retry.NewRetrier(x.maxRetries, x.initialDelay, x.maxDelay)
	return retrier.RunContext(ctx, func(context.Context) error {
		return x.spawner.Spawn(task)
	})
}
