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

	"go.opentelemetry.io/otel"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/actz/executor"
	"github.com/tochemey/actz/log"
)

type spawnConfig struct {
	spawner       Spawner
	logger        log.Logger
	meterProvider otelmetric.MeterProvider
	ctx           context.Context
}

func newSpawnConfig(opts ...SpawnOption) *spawnConfig {
	config := &spawnConfig{
		spawner:       executor.Goroutine{},
		logger:        log.DefaultLogger,
		meterProvider: otel.GetMeterProvider(),
		ctx:           context.Background(),
	}

	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// SpawnOption is the interface that applies a spawn option.
type SpawnOption interface {
	// Apply sets the Option value of a config.
	Apply(config *spawnConfig)
}

// enforce compilation error
var _ SpawnOption = SpawnOptionFunc(nil)

// SpawnOptionFunc implements the SpawnOption interface.
type SpawnOptionFunc func(config *spawnConfig)

// Apply applies the option
func (f SpawnOptionFunc) Apply(c *spawnConfig) {
	f(c)
}

// WithSpawner sets the runtime running the mailbox task.
// The default runs it on a plain goroutine.
func WithSpawner(spawner Spawner) SpawnOption {
	return SpawnOptionFunc(func(config *spawnConfig) {
		if spawner != nil {
			config.spawner = spawner
		}
	})
}

// WithLogger sets the actor logger
func WithLogger(logger log.Logger) SpawnOption {
	return SpawnOptionFunc(func(config *spawnConfig) {
		if logger != nil {
			config.logger = logger
		}
	})
}

// WithMeterProvider sets the MeterProvider the mailbox instruments are created from.
// The global MeterProvider is used by default.
func WithMeterProvider(meterProvider otelmetric.MeterProvider) SpawnOption {
	return SpawnOptionFunc(func(config *spawnConfig) {
		if meterProvider != nil {
			config.meterProvider = meterProvider
		}
	})
}

// WithContext sets the context whose values are visible to the actor items.
// Its cancellation does not affect the actor.
func WithContext(ctx context.Context) SpawnOption {
	return SpawnOptionFunc(func(config *spawnConfig) {
		if ctx != nil {
			config.ctx = ctx
		}
	})
}
