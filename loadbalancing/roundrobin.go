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

import (
	"sync/atomic"

	"github.com/nativecql/driver/topology"
)

// RoundRobin cycles through all up hosts, starting at a different offset on each call so that concurrent
// statements spread evenly across the cluster.
type RoundRobin struct {
	counter int64
}

func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

func (p *RoundRobin) NewQueryPlan(_ string, _ []byte, hosts []*topology.Host) []*topology.Host {
	up := upHosts(hosts)
	if len(up) == 0 {
		return nil
	}
	offset := int(atomic.AddInt64(&p.counter, 1)-1) % len(up)
	plan := make([]*topology.Host, len(up))
	for i := range up {
		plan[i] = up[(offset+i)%len(up)]
	}
	return plan
}
