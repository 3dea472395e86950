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

package loadbalancing

// DefaultMaxHostsPerRemoteDc matches the original driver's default of not routing to remote datacenters at all
// unless explicitly configured.
const DefaultMaxHostsPerRemoteDc = 0

// NewDefault builds the policy stack the session uses when the caller does not configure one explicitly:
// token-aware routing over DC-aware ordering over round-robin, matching the original driver's own default stack.
func NewDefault(localDC string) Policy {
	return NewTokenAware(NewDCAware(localDC, DefaultMaxHostsPerRemoteDc, NewRoundRobin()), true, 1)
}
