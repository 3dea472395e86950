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

package topology

import (
	"sync"

	"github.com/nativecql/driver/client"
	"github.com/nativecql/driver/policies"
	"github.com/nativecql/driver/primitive"
)

// Registry is the driver's view of the cluster: a set of Host records indexed by endpoint, kept current by
// periodic calls to Refresh against a control connection, and a fan-out channel of ChangeEvent values that the
// session and the reconnection policy subscribe to.
type Registry struct {
	mu       sync.RWMutex
	hosts    map[string]*Host
	localDC  string
	events   chan ChangeEvent
}

// NewRegistry creates an empty Registry. localDC, if non-empty, is used by DCAware load balancing to prefer hosts
// in the given datacenter; it does not otherwise affect discovery.
func NewRegistry(localDC string) *Registry {
	return &Registry{
		hosts:   make(map[string]*Host),
		localDC: localDC,
		events:  make(chan ChangeEvent, 64),
	}
}

func (r *Registry) LocalDatacenter() string {
	return r.localDC
}

// Events returns the registry's fan-out channel of topology changes.
func (r *Registry) Events() <-chan ChangeEvent {
	return r.events
}

// Hosts returns a snapshot of all currently known hosts, up or down.
func (r *Registry) Hosts() []*Host {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hosts := make([]*Host, 0, len(r.hosts))
	for _, h := range r.hosts {
		hosts = append(hosts, h)
	}
	return hosts
}

// Host looks up a known host by its dialable endpoint.
func (r *Registry) Host(endpoint string) (*Host, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hosts[endpoint]
	return h, ok
}

func (r *Registry) emit(kind ChangeKind, host *Host) {
	select {
	case r.events <- ChangeEvent{Kind: kind, Host: host}:
	default:
	}
}

// MarkUp flips host to up (if it was down) and emits HostUp.
func (r *Registry) MarkUp(host *Host) {
	if !host.IsUp() {
		host.markUp()
		r.emit(HostUp, host)
	}
}

// MarkDown flips host to down (if it was up) and emits HostDown.
func (r *Registry) MarkDown(host *Host) {
	if host.IsUp() {
		host.markDown()
		r.emit(HostDown, host)
	}
}

// Refresh re-queries the control connection's system.local and system.peers tables and reconciles the registry:
// new hosts are added (and marked up), hosts no longer reported by system.peers are removed, and the control
// connection's own host is merged from system.local. translator rewrites discovered broadcast addresses before
// they become Hosts; pass policies.IdentityTranslator{} when no translation is needed.
func (r *Registry) Refresh(conn *client.CqlClientConnection, version primitive.ProtocolVersion, localPort int32, peerPort int32, translator policies.AddressTranslator) error {
	local, err := discoverRow(conn, version, localQuery, localPort, translator)
	if err != nil {
		return err
	}
	peers, err := discoverRow(conn, version, peersQuery, peerPort, translator)
	if err != nil {
		return err
	}
	discovered := append(local, peers...)

	r.mu.Lock()
	seen := make(map[string]bool, len(discovered))
	var added, refreshed []*Host
	for _, host := range discovered {
		endpoint := host.Endpoint()
		seen[endpoint] = true
		if existing, ok := r.hosts[endpoint]; ok {
			existing.Datacenter = host.Datacenter
			existing.Rack = host.Rack
			existing.Tokens = host.Tokens
			existing.Release = host.Release
			existing.HostId = host.HostId
			refreshed = append(refreshed, existing)
		} else {
			r.hosts[endpoint] = host
			added = append(added, host)
		}
	}
	var removed []*Host
	for endpoint, host := range r.hosts {
		if !seen[endpoint] {
			delete(r.hosts, endpoint)
			removed = append(removed, host)
		}
	}
	r.mu.Unlock()

	for _, host := range added {
		r.emit(HostAdded, host)
		r.MarkUp(host)
	}
	for _, host := range refreshed {
		r.MarkUp(host)
	}
	for _, host := range removed {
		r.emit(HostRemoved, host)
	}
	return nil
}

// Add registers a host directly, bypassing discovery. Used for the initial contact points, before the first
// Refresh populates the registry from the control connection.
func (r *Registry) Add(host *Host) {
	r.mu.Lock()
	_, exists := r.hosts[host.Endpoint()]
	if !exists {
		r.hosts[host.Endpoint()] = host
	}
	r.mu.Unlock()
	if !exists {
		r.emit(HostAdded, host)
	}
}

// Remove deregisters a host by endpoint.
func (r *Registry) Remove(endpoint string) {
	r.mu.Lock()
	host, ok := r.hosts[endpoint]
	if ok {
		delete(r.hosts, endpoint)
	}
	r.mu.Unlock()
	if ok {
		r.emit(HostRemoved, host)
	}
}
