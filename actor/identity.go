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
	"bytes"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
)

// ID identifies an actor. Every handle of an actor, whatever its view,
// carries the same ID. The zero ID belongs to detached handles.
type ID struct {
	value uuid.UUID
}

func newID() ID {
	return ID{value: uuid.New()}
}

// IsZero reports whether the ID is the detached sentinel
func (x ID) IsZero() bool {
	return x.value == uuid.Nil
}

// Compare orders IDs by their bytes
func (x ID) Compare(other ID) int {
	return bytes.Compare(x.value[:], other.value[:])
}

// Hash returns the xxh3 hash of the ID
func (x ID) Hash() uint64 {
	return xxh3.Hash(x.value[:])
}

func (x ID) String() string {
	if x.IsZero() {
		return "detached"
	}
	return x.value.String()
}

// Identified is implemented by anything pointing at an actor
type Identified interface {
	ID() ID
}
