// Copyright 2020 DataStax
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package session

import (
	"sync"
	"time"
)

// TimestampGenerator produces the microsecond-resolution default timestamp attached to statements that do not
// carry one of their own (QueryOptions.DefaultTimestamp).
type TimestampGenerator interface {
	Next() int64
}

// MonotonicTimestampGenerator guarantees each call returns a strictly greater microsecond timestamp than the
// previous one, even if called faster than the system clock's resolution, by borrowing from the future exactly as
// the original driver's default generator does.
type MonotonicTimestampGenerator struct {
	mu   sync.Mutex
	last int64
}

func NewMonotonicTimestampGenerator() *MonotonicTimestampGenerator {
	return &MonotonicTimestampGenerator{}
}

func (g *MonotonicTimestampGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now().UnixNano() / int64(time.Microsecond)
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now
	return now
}
