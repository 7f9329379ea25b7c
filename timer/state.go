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

package timer

import "time"

// Kind is the kind of state a Timer is in
type Kind int

const (
	// Inactive timers never tick. This is the zero Kind.
	Inactive Kind = iota
	// Timeout timers tick once
	Timeout
	// Interval timers tick repeatedly
	Interval
)

func (k Kind) String() string {
	switch k {
	case Inactive:
		return "inactive"
	case Timeout:
		return "timeout"
	case Interval:
		return "interval"
	default:
		return "unknown"
	}
}

// State describes a Timer
type State struct {
	Kind Kind
	// Deadline is when the timer next ticks, zero when inactive
	Deadline time.Time
	// Interval is the period of an interval timer
	Interval time.Duration
}

// IsActive reports whether the timer is expected to tick
func (s State) IsActive() bool {
	return s.Kind != Inactive
}
