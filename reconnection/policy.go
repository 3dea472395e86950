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

// Package reconnection schedules the backoff delays topology.Registry's background reconnection loop uses when
// retrying a down host.
package reconnection

import "time"

// Schedule produces successive reconnection delays for one down host. Each call to Next returns the delay before
// the next attempt; a Schedule is stateful and is meant to be discarded once the host comes back up.
type Schedule interface {
	Next() time.Duration
}

// Policy creates a new Schedule every time a host goes down.
type Policy interface {
	NewSchedule() Schedule
}
