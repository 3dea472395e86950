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
	"math/rand"

	"github.com/nativecql/driver/token"
	"github.com/nativecql/driver/topology"
)

// TokenAware wraps a child Policy. When the statement carries a routing key, the hosts owning that key's token
// are moved to the front of the plan (optionally shuffled, matching enableShufflingReplicas); the remaining hosts
// keep the order the child policy produced for them. Without a routing key, it simply delegates to the child.
type TokenAware struct {
	child            Policy
	shuffleReplicas  bool
	rand             *rand.Rand
}

func NewTokenAware(child Policy, shuffleReplicas bool, seed int64) *TokenAware {
	if child == nil {
		child = NewRoundRobin()
	}
	return &TokenAware{child: child, shuffleReplicas: shuffleReplicas, rand: rand.New(rand.NewSource(seed))}
}

// LocalDatacenter delegates to the child policy when it exposes one, so wrapping a DCAware policy (the usual case,
// see NewDefault) still lets session.NewSession recover the configured local datacenter.
func (p *TokenAware) LocalDatacenter() string {
	if dc, ok := p.child.(interface{ LocalDatacenter() string }); ok {
		return dc.LocalDatacenter()
	}
	return ""
}

func (p *TokenAware) NewQueryPlan(keyspace string, routingKey []byte, hosts []*topology.Host) []*topology.Host {
	childPlan := p.child.NewQueryPlan(keyspace, routingKey, hosts)
	if routingKey == nil {
		return childPlan
	}
	t := token.Murmur3(routingKey)
	replicas := make([]*topology.Host, 0, len(childPlan))
	rest := make([]*topology.Host, 0, len(childPlan))
	for _, h := range childPlan {
		if h.HasToken(t) {
			replicas = append(replicas, h)
		} else {
			rest = append(rest, h)
		}
	}
	if len(replicas) == 0 {
		return childPlan
	}
	if p.shuffleReplicas {
		p.rand.Shuffle(len(replicas), func(i, j int) {
			replicas[i], replicas[j] = replicas[j], replicas[i]
		})
	}
	return append(replicas, rest...)
}
