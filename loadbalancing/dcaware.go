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

// DCAware wraps a child Policy and reorders its plan so that all hosts in localDC come first, followed by up to
// maxHostsPerRemoteDc hosts from each other datacenter, preserving the child's relative ordering within each group.
type DCAware struct {
	localDC             string
	maxHostsPerRemoteDc int
	child               Policy
}

func NewDCAware(localDC string, maxHostsPerRemoteDc int, child Policy) *DCAware {
	if child == nil {
		child = NewRoundRobin()
	}
	return &DCAware{localDC: localDC, maxHostsPerRemoteDc: maxHostsPerRemoteDc, child: child}
}

// LocalDatacenter returns the datacenter this policy prefers, letting session.NewSession seed its topology.Registry
// without duplicating the value in Config.
func (p *DCAware) LocalDatacenter() string {
	return p.localDC
}

func (p *DCAware) NewQueryPlan(keyspace string, routingKey []byte, hosts []*topology.Host) []*topology.Host {
	childPlan := p.child.NewQueryPlan(keyspace, routingKey, hosts)
	local := make([]*topology.Host, 0, len(childPlan))
	remote := make([]*topology.Host, 0, len(childPlan))
	remoteCount := make(map[string]int)
	for _, h := range childPlan {
		if h.Datacenter == p.localDC || p.localDC == "" {
			local = append(local, h)
			continue
		}
		if remoteCount[h.Datacenter] >= p.maxHostsPerRemoteDc {
			continue
		}
		remoteCount[h.Datacenter]++
		remote = append(remote, h)
	}
	return append(local, remote...)
}
