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

package client

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nativecql/driver/frame"
	"github.com/nativecql/driver/message"
)

// heartbeatMonitor sends an OPTIONS probe on a connection that has gone quiet for longer than its configured
// interval, and defuncts the connection if no SUPPORTED arrives before the read timeout.
type heartbeatMonitor struct {
	conn     *CqlClientConnection
	interval time.Duration
	timeout  time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func newHeartbeatMonitor(conn *CqlClientConnection, interval, timeout time.Duration) *heartbeatMonitor {
	return &heartbeatMonitor{
		conn:     conn,
		interval: interval,
		timeout:  timeout,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (m *heartbeatMonitor) start() {
	go m.run()
}

func (m *heartbeatMonitor) run() {
	defer close(m.done)
	// poll at a finer grain than the interval itself, so idleness is detected promptly after it's crossed.
	tick := m.interval / 4
	if tick <= 0 {
		tick = m.interval
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-m.conn.ctx.Done():
			return
		case <-ticker.C:
			idle := time.Since(time.Unix(0, atomic.LoadInt64(&m.conn.lastActivity)))
			if idle >= m.interval {
				m.probe()
			}
		}
	}
}

func (m *heartbeatMonitor) probe() {
	if m.conn.IsClosed() {
		return
	}
	log.Debug().Msgf("%v: sending idle heartbeat", m.conn)
	req := frame.NewFrame(m.conn.version, ManagedStreamId, &message.Options{})
	inFlight, err := m.conn.Send(req)
	if err != nil {
		log.Error().Err(err).Msgf("%v: failed to send heartbeat probe", m.conn)
		m.conn.defunctTracker.onFailure(fmt.Errorf("heartbeat probe: %w", err))
		return
	}
	select {
	case response, ok := <-inFlight.Incoming():
		if !ok {
			m.conn.defunctTracker.onFailure(fmt.Errorf("heartbeat probe: %w", inFlight.Err()))
			return
		}
		if _, ok := response.Body.Message.(*message.Supported); !ok {
			m.conn.defunctTracker.onFailure(fmt.Errorf("heartbeat probe: expected SUPPORTED, got %v", response.Body.Message))
			return
		}
		atomic.StoreInt64(&m.conn.lastActivity, time.Now().UnixNano())
		m.conn.defunctTracker.onSuccess()
	case <-time.After(m.timeout):
		m.conn.defunctTracker.onFailure(fmt.Errorf("heartbeat probe: timed out waiting for SUPPORTED"))
	}
}

func (m *heartbeatMonitor) close() {
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
	<-m.done
}
