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

package metric

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// MailboxMetric defines the mailbox instrumentation
type MailboxMetric struct {
	// Specifies the total number of actors spawned
	spawnCount metric.Int64Counter
	// Specifies the total number of actors stopped
	stopCount metric.Int64Counter
	// Specifies the total number of exclusive items executed
	processedCount metric.Int64Counter
	// Specifies the total number of exclusive items dropped at shutdown
	discardedCount metric.Int64Counter
	// Specifies how long exclusive items take to run, in milliseconds
	processingDuration metric.Float64Histogram
	// Specifies the number of background tasks currently running
	backgroundTasks metric.Int64UpDownCounter
	// Specifies the total number of background tasks canceled at shutdown
	canceledTasks metric.Int64Counter
}

// NewMailboxMetric creates an instance of MailboxMetric
func NewMailboxMetric(meter metric.Meter) (*MailboxMetric, error) {
	mailboxMetric := new(MailboxMetric)
	var err error

	if mailboxMetric.spawnCount, err = meter.Int64Counter(
		"actor_spawn_count",
		metric.WithDescription("Total number of actors spawned"),
	); err != nil {
		return nil, fmt.Errorf("failed to create spawnCount instrument, %w", err)
	}

	if mailboxMetric.stopCount, err = meter.Int64Counter(
		"actor_stop_count",
		metric.WithDescription("Total number of actors stopped"),
	); err != nil {
		return nil, fmt.Errorf("failed to create stopCount instrument, %w", err)
	}

	if mailboxMetric.processedCount, err = meter.Int64Counter(
		"actor_processed_count",
		metric.WithDescription("Total number of exclusive items executed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processedCount instrument, %w", err)
	}

	if mailboxMetric.discardedCount, err = meter.Int64Counter(
		"actor_discarded_count",
		metric.WithDescription("Total number of exclusive items dropped without running"),
	); err != nil {
		return nil, fmt.Errorf("failed to create discardedCount instrument, %w", err)
	}

	if mailboxMetric.processingDuration, err = meter.Float64Histogram(
		"actor_processing_duration",
		metric.WithDescription("The latency of exclusive items in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processingDuration instrument, %w", err)
	}

	if mailboxMetric.backgroundTasks, err = meter.Int64UpDownCounter(
		"actor_background_tasks",
		metric.WithDescription("Number of background tasks in flight"),
	); err != nil {
		return nil, fmt.Errorf("failed to create backgroundTasks instrument, %w", err)
	}

	if mailboxMetric.canceledTasks, err = meter.Int64Counter(
		"actor_canceled_task_count",
		metric.WithDescription("Total number of background tasks still running or pending when their actor stopped"),
	); err != nil {
		return nil, fmt.Errorf("failed to create canceledTasks instrument, %w", err)
	}

	return mailboxMetric, nil
}

// SpawnCount returns the spawned actors counter
func (x *MailboxMetric) SpawnCount() metric.Int64Counter {
	return x.spawnCount
}

// StopCount returns the stopped actors counter
func (x *MailboxMetric) StopCount() metric.Int64Counter {
	return x.stopCount
}

// ProcessedCount returns the executed exclusive items counter
func (x *MailboxMetric) ProcessedCount() metric.Int64Counter {
	return x.processedCount
}

// DiscardedCount returns the dropped exclusive items counter
func (x *MailboxMetric) DiscardedCount() metric.Int64Counter {
	return x.discardedCount
}

// ProcessingDuration returns the exclusive item latency histogram
func (x *MailboxMetric) ProcessingDuration() metric.Float64Histogram {
	return x.processingDuration
}

// BackgroundTasks returns the in-flight background tasks gauge
func (x *MailboxMetric) BackgroundTasks() metric.Int64UpDownCounter {
	return x.backgroundTasks
}

// CanceledTasks returns the counter of background tasks canceled at shutdown
func (x *MailboxMetric) CanceledTasks() metric.Int64Counter {
	return x.canceledTasks
}
