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

	"github.com/rs/zerolog/log"
)

// ErrOperationTimedOut is the error surfaced to in-flight callers whose request was abandoned because the
// connection was defuncted.
var ErrOperationTimedOut = fmt.Errorf("operation timed out: connection defuncted")

// defunctTracker counts consecutive read timeouts on a connection (individual request timeouts, and unanswered
// idle heartbeats) and forcibly closes the connection once the configured threshold is exceeded. A single
// successful round trip resets the count, since the threshold targets a connection that has stopped responding
// at all, not one that occasionally times out under load.
type defunctTracker struct {
	conn      *CqlClientConnection
	threshold int
	count     int32
	listener  DefunctListener
}

func newDefunctTracker(conn *CqlClientConnection, threshold int, listener DefunctListener) *defunctTracker {
	if threshold < 1 {
		threshold = DefaultDefunctReadTimeoutThreshold
	}
	return &defunctTracker{conn: conn, threshold: threshold, listener: listener}
}

// onReadTimeout is invoked whenever a single in-flight request times out waiting for a response.
func (t *defunctTracker) onReadTimeout() {
	if n := atomic.AddInt32(&t.count, 1); int(n) > t.threshold {
		t.defunct(fmt.Errorf("%v: %d consecutive read timeouts, exceeding threshold of %d", t.conn, n, t.threshold))
	}
}

// onFailure is invoked by the heartbeat monitor when an idle probe goes unanswered or fails outright.
func (t *defunctTracker) onFailure(cause error) {
	t.defunct(cause)
}

// onSuccess resets the consecutive-timeout count after any successful round trip (a response, or an answered
// heartbeat probe).
func (t *defunctTracker) onSuccess() {
	atomic.StoreInt32(&t.count, 0)
}

func (t *defunctTracker) defunct(cause error) {
	if t.conn.IsClosed() {
		return
	}
	log.Error().Err(cause).Msgf("%v: defuncting connection", t.conn)
	atomic.StoreInt32(&t.conn.defuncted, 1)
	// Close asynchronously: defunct can be invoked from the heartbeat monitor's own goroutine (an unanswered
	// probe), and CqlClientConnection.Close waits for heartbeatMonitor.close to return, which would deadlock
	// against itself if run synchronously here.
	go func() {
		if err := t.conn.Close(); err != nil {
			log.Error().Err(err).Msgf("%v: error closing defuncted connection", t.conn)
		}
		if t.listener != nil {
			t.listener(t.conn, cause)
		}
	}()
}
