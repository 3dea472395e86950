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
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/nativecql/driver/topology"
)

// Session is a client to a Cassandra-compatible cluster: it discovers cluster topology from the contact points,
// keeps a connection pool per host, prepares and caches statements, and executes them through the load-balancing,
// retry and reconnection policies configured on its Config.
type Session struct {
	cfg       *Config
	registry  *topology.Registry
	pools     *pools
	prepared  *preparedCache
	timestamp TimestampGenerator
	cancel    context.CancelFunc
}

// NewSession builds a Session from cfg: it registers each contact point, connects to the first reachable one to
// run topology discovery once and populate the host registry, then starts a background reconnection loop for hosts that go down, the same
// sequence CqlClient.ConnectAndInit followed by a manual system.local/system.peers query would run by hand.
func NewSession(ctx context.Context, cfg *Config) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	sessionCtx, cancel := context.WithCancel(ctx)
	registry := topology.NewRegistry(localDatacenterOf(cfg))
	s := &Session{
		cfg:       cfg,
		registry:  registry,
		pools:     newPools(cfg, registry),
		prepared:  newPreparedCache(cfg.PreparedCacheCapacity),
		timestamp: NewMonotonicTimestampGenerator(),
		cancel:    cancel,
	}
	for _, contactPoint := range cfg.ContactPoints {
		host, err := hostFromContactPoint(contactPoint)
		if err != nil {
			cancel()
			return nil, err
		}
		registry.Add(host)
	}
	if err := s.discoverTopology(sessionCtx); err != nil {
		cancel()
		s.pools.closeAll()
		return nil, err
	}
	registry.ReconnectDown(sessionCtx, cfg.Reconnection, s.probe)
	return s, nil
}

func localDatacenterOf(cfg *Config) string {
	if dc, ok := cfg.LoadBalancing.(interface{ LocalDatacenter() string }); ok {
		return dc.LocalDatacenter()
	}
	return ""
}

func hostFromContactPoint(contactPoint string) (*topology.Host, error) {
	host, portStr, err := net.SplitHostPort(contactPoint)
	if err != nil {
		return nil, fmt.Errorf("invalid contact point %q: %w", contactPoint, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid contact point port %q: %w", contactPoint, err)
	}
	ip := net.ParseIP(host)
	if ip == nil {
		addrs, err := net.LookupIP(host)
		if err != nil || len(addrs) == 0 {
			return nil, fmt.Errorf("cannot resolve contact point %q", contactPoint)
		}
		ip = addrs[0]
	}
	return topology.NewHost(ip, int32(port)), nil
}

// discoverTopology connects to the first reachable registered host and refreshes the registry from
// system.local/system.peers.
func (s *Session) discoverTopology(ctx context.Context) error {
	var lastErr error
	for _, host := range s.registry.Hosts() {
		pool, err := s.pools.get(ctx, host)
		if err != nil {
			lastErr = err
			log.Warn().Err(err).Msgf("%v: cannot connect for topology discovery", host)
			continue
		}
		conn, err := pool.nextConn()
		if err != nil {
			lastErr = err
			continue
		}
		if err := s.registry.Refresh(conn, s.cfg.ProtocolVersion, host.Port, host.Port, s.cfg.AddressTranslator); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("cannot discover cluster topology: %w", lastErr)
	}
	return fmt.Errorf("cannot discover cluster topology: no contact points configured")
}

// probe is the topology.Probe used by Registry.ReconnectDown: a host is considered back up once a pool can be
// opened to it again.
func (s *Session) probe(host *topology.Host) error {
	conn, err := dial(context.Background(), host, s.cfg, nil)
	if err != nil {
		return err
	}
	return conn.Close()
}

// Close closes every pooled connection and stops the background reconnection loop.
func (s *Session) Close() error {
	s.cancel()
	s.pools.closeAll()
	return nil
}

// connectionFor picks a query plan from the load-balancing policy and returns the first host it can still reach,
// along with a live connection to it.
func (s *Session) connectionFor(ctx context.Context, keyspace string, routingKey []byte) (*topology.Host, connection, error) {
	plan := s.cfg.LoadBalancing.NewQueryPlan(keyspace, routingKey, s.registry.Hosts())
	var lastErr error
	for _, host := range plan {
		pool, err := s.pools.get(ctx, host)
		if err != nil {
			lastErr = err
			continue
		}
		conn, err := pool.nextConn()
		if err != nil {
			lastErr = err
			continue
		}
		return host, conn, nil
	}
	if lastErr != nil {
		return nil, nil, fmt.Errorf("no host available: %w", lastErr)
	}
	return nil, nil, fmt.Errorf("no host available")
}
