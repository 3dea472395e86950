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

import "github.com/nativecql/driver/topology"

// AllowList wraps a child Policy and restricts its plan to hosts whose endpoint appears in the allowed set,
// useful for pinning a session to a subset of a cluster (e.g. a single rack under test).
type AllowList struct {
	allowed map[string]bool
	child   Policy
}

func NewAllowList(endpoints []string, child Policy) *AllowList {
	if child == nil {
		child = NewRoundRobin()
	}
	allowed := make(map[string]bool, len(endpoints))
	for _, e := range endpoints {
		allowed[e] = true
	}
	return &AllowList{allowed: allowed, child: child}
}

func (p *AllowList) NewQueryPlan(keyspace string, routingKey []byte, hosts []*topology.Host) []*topology.Host {
	filtered := make([]*topology.Host, 0, len(hosts))
	for _, h := range hosts {
		if p.allowed[h.Endpoint()] {
			filtered = append(filtered, h)
		}
	}
	return p.child.NewQueryPlan(keyspace, routingKey, filtered)
}
