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
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/actz/internal/metric"
	"github.com/tochemey/actz/log"
)

// mailboxMetrics records the mailbox instruments for one actor.
// A nil value records nothing.
type mailboxMetrics struct {
	instruments *metric.MailboxMetric
	attributes  otelmetric.MeasurementOption
}

func newMailboxMetrics(meterProvider otelmetric.MeterProvider, kind string, logger log.Logger) *mailboxMetrics {
	provider := metric.New(metric.WithMeterProvider(meterProvider))
	instruments, err := metric.NewMailboxMetric(provider.Meter())
	if err != nil {
		logger.Warnf("mailbox metrics disabled: %v", err)
		return nil
	}

	return &mailboxMetrics{
		instruments: instruments,
		attributes:  otelmetric.WithAttributes(attribute.String("actor.type", kind)),
	}
}

func (m *mailboxMetrics) spawned(ctx context.Context) {
	if m != nil {
		m.instruments.SpawnCount().Add(ctx, 1, m.attributes)
	}
}

func (m *mailboxMetrics) stopped(ctx context.Context) {
	if m != nil {
		m.instruments.StopCount().Add(ctx, 1, m.attributes)
	}
}

func (m *mailboxMetrics) processed(ctx context.Context, duration time.Duration) {
	if m != nil {
		m.instruments.ProcessedCount().Add(ctx, 1, m.attributes)
		m.instruments.ProcessingDuration().Record(ctx, float64(duration)/float64(time.Millisecond), m.attributes)
	}
}

func (m *mailboxMetrics) discarded(ctx context.Context, count int) {
	if m != nil && count > 0 {
		m.instruments.DiscardedCount().Add(ctx, int64(count), m.attributes)
	}
}

func (m *mailboxMetrics) canceled(ctx context.Context, count int) {
	if m != nil && count > 0 {
		m.instruments.CanceledTasks().Add(ctx, int64(count), m.attributes)
	}
}

func (m *mailboxMetrics) backgroundStarted(ctx context.Context) {
	if m != nil {
		m.instruments.BackgroundTasks().Add(ctx, 1, m.attributes)
	}
}

func (m *mailboxMetrics) backgroundDone(ctx context.Context) {
	if m != nil {
		m.instruments.BackgroundTasks().Add(ctx, -1, m.attributes)
	}
}
