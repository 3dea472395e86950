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
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/nativecql/driver/client"
	"github.com/nativecql/driver/frame"
	"github.com/nativecql/driver/message"
	"github.com/nativecql/driver/primitive"
	"github.com/nativecql/driver/topology"
)

// connection is the subset of *client.CqlClientConnection this package relies on. Depending on the interface
// rather than the concrete type lets tests substitute a fake connection in place of a real dialed socket.
type connection interface {
	SendAndReceive(request *frame.Frame) (*frame.Frame, error)
	IsClosed() bool
	Close() error
	RemoteAddr() net.Addr
}

// hostPool owns every connection opened to a single host and hands them out round-robin, the same way
// CqlClient.ConnectAndInit produces one ready-to-use connection per call; a Session simply keeps more than one
// of them alive per host.
type hostPool struct {
	host        *topology.Host
	connections []connection
	next        int64
}

// dial opens one connection to host; overridden by tests to avoid dialing a real socket.
var dial = dialHost

func newHostPool(ctx context.Context, host *topology.Host, cfg *Config, size int, onDefunct client.DefunctListener) (*hostPool, error) {
	pool := &hostPool{host: host}
	for i := 0; i < size; i++ {
		conn, err := dial(ctx, host, cfg, onDefunct)
		if err != nil {
			pool.closeAll()
			return nil, fmt.Errorf("cannot connect to %v: %w", host, err)
		}
		pool.connections = append(pool.connections, conn)
	}
	return pool, nil
}

// dialHost opens and initializes one connection to host. onDefunct, if non-nil, is wired as the connection's
// client.DefunctListener so a defuncted connection can report its host down through the caller's topology.Registry.
func dialHost(ctx context.Context, host *topology.Host, cfg *Config, onDefunct client.DefunctListener) (connection, error) {
	c := client.NewCqlClient(host.Endpoint(), cfg.Credentials)
	c.Compression = cfg.Compression
	c.MaxInFlight = cfg.MaxRequestsPerConnection
	c.DefunctListener = onDefunct
	conn, err := c.ConnectAndInit(ctx, cfg.ProtocolVersion, client.ManagedStreamId)
	if err != nil {
		return nil, err
	}
	if cfg.Keyspace != "" {
		useFrame, err := frame.NewRequestFrame(
			cfg.ProtocolVersion,
			client.ManagedStreamId,
			false,
			nil,
			&message.Query{Query: "USE " + cfg.Keyspace, Options: &message.QueryOptions{Consistency: primitive.ConsistencyLevelOne}},
		)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		if _, err := conn.SendAndReceive(useFrame); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("cannot set keyspace %q: %w", cfg.Keyspace, err)
		}
	}
	return conn, nil
}

// nextConn returns the next connection in round-robin order, or an error if the pool has no live connections left.
func (p *hostPool) nextConn() (connection, error) {
	n := len(p.connections)
	if n == 0 {
		return nil, fmt.Errorf("%v: no connections available", p.host)
	}
	for i := 0; i < n; i++ {
		idx := int(atomic.AddInt64(&p.next, 1)-1) % n
		conn := p.connections[idx]
		if !conn.IsClosed() {
			return conn, nil
		}
	}
	return nil, fmt.Errorf("%v: all connections closed", p.host)
}

func (p *hostPool) closeAll() {
	for _, conn := range p.connections {
		if err := conn.Close(); err != nil {
			log.Debug().Err(err).Msgf("%v: error closing connection", p.host)
		}
	}
}

// pools tracks one hostPool per live host, keyed by endpoint, and is safe for concurrent use by the query-plan
// iteration in execute.go.
type pools struct {
	mu       sync.RWMutex
	byHost   map[string]*hostPool
	cfg      *Config
	poolSize int
	registry *topology.Registry
}

func newPools(cfg *Config, registry *topology.Registry) *pools {
	return &pools{byHost: make(map[string]*hostPool), cfg: cfg, poolSize: cfg.ConnectionsPerHost, registry: registry}
}

func (p *pools) get(ctx context.Context, host *topology.Host) (*hostPool, error) {
	p.mu.RLock()
	existing, ok := p.byHost[host.Endpoint()]
	p.mu.RUnlock()
	if ok {
		return existing, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.byHost[host.Endpoint()]; ok {
		return existing, nil
	}
	pool, err := newHostPool(ctx, host, p.cfg, p.poolSize, p.onDefunct)
	if err != nil {
		return nil, err
	}
	p.byHost[host.Endpoint()] = pool
	return pool, nil
}

// onDefunct marks a connection's host down in the registry once its connection defuncts, the same signal
// Registry.ReconnectDown watches for to start retrying it in the background.
func (p *pools) onDefunct(conn *client.CqlClientConnection, cause error) {
	endpoint := conn.RemoteAddr().String()
	if host, ok := p.registry.Host(endpoint); ok {
		log.Warn().Err(cause).Msgf("%v: connection defuncted, marking host down", host)
		p.registry.MarkDown(host)
		p.remove(host)
	}
}

func (p *pools) remove(host *topology.Host) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pool, ok := p.byHost[host.Endpoint()]; ok {
		pool.closeAll()
		delete(p.byHost, host.Endpoint())
	}
}

func (p *pools) closeAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for endpoint, pool := range p.byHost {
		pool.closeAll()
		delete(p.byHost, endpoint)
	}
}
