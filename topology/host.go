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

// Package topology maintains the set of known cluster members by polling the control connection's
// system.local/system.peers tables.
package topology

import (
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/nativecql/driver/token"
)

// Host represents a single cluster member, as discovered from system.local/system.peers.
type Host struct {
	Address    net.IP
	Port       int32
	Datacenter string
	Rack       string
	HostId     uuid.UUID
	Tokens     []token.Token
	Release    string

	// upSince is nil while the host is considered down.
	upSince atomic.Value // time.Time

	inFlight  int64
	responses int64
}

func NewHost(address net.IP, port int32) *Host {
	h := &Host{Address: address, Port: port}
	h.upSince.Store(time.Time{})
	return h
}

func (h *Host) String() string {
	return fmt.Sprintf("%v:%v (dc=%v, rack=%v)", h.Address, h.Port, h.Datacenter, h.Rack)
}

// Endpoint returns the dialable "host:port" form of this host's address.
func (h *Host) Endpoint() string {
	return net.JoinHostPort(h.Address.String(), fmt.Sprintf("%d", h.Port))
}

// IsUp reports whether the host is currently considered reachable.
func (h *Host) IsUp() bool {
	t, _ := h.upSince.Load().(time.Time)
	return !t.IsZero()
}

func (h *Host) markUp() {
	h.upSince.Store(time.Now())
}

func (h *Host) markDown() {
	h.upSince.Store(time.Time{})
}

// InFlight returns the number of currently in-flight requests routed to this host, as tracked by the session.
func (h *Host) InFlight() int64 {
	return atomic.LoadInt64(&h.inFlight)
}

func (h *Host) IncrementInFlight() int64 {
	return atomic.AddInt64(&h.inFlight, 1)
}

func (h *Host) DecrementInFlight() int64 {
	return atomic.AddInt64(&h.inFlight, -1)
}

// Responses returns the lifetime count of responses received from this host.
func (h *Host) Responses() int64 {
	return atomic.LoadInt64(&h.responses)
}

func (h *Host) IncrementResponses() int64 {
	return atomic.AddInt64(&h.responses, 1)
}

// HasToken reports whether t belongs to this host's token set.
func (h *Host) HasToken(t token.Token) bool {
	for _, owned := range h.Tokens {
		if owned == t {
			return true
		}
	}
	return false
}
