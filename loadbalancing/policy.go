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

// Package loadbalancing turns a topology.Registry snapshot into an ordered query plan of hosts to try, one
// statement at a time.
package loadbalancing

import "github.com/nativecql/driver/topology"

// Policy produces a query plan: an ordered list of hosts to try, in order, for one statement execution.
// routingKey may be nil if the statement carries no partition key information.
type Policy interface {
	NewQueryPlan(keyspace string, routingKey []byte, hosts []*topology.Host) []*topology.Host
}

func upHosts(hosts []*topology.Host) []*topology.Host {
	up := make([]*topology.Host, 0, len(hosts))
	for _, h := range hosts {
		if h.IsUp() {
			up = append(up, h)
		}
	}
	return up
}
