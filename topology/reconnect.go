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
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nativecql/driver/reconnection"
)

// Probe opens a throwaway connection to host to check whether it has come back up. The session supplies the real
// implementation (dial + handshake); returning nil means the host is reachable again.
type Probe func(host *Host) error

// ReconnectDown watches the registry for hosts going down (via Events) and, for each one, starts a background
// loop that retries probe on the schedule policy produces, marking the host back up as soon as probe succeeds.
// The whole mechanism stops when ctx is cancelled.
func (r *Registry) ReconnectDown(ctx context.Context, policy reconnection.Policy, probe Probe) {
	for _, host := range r.Hosts() {
		if !host.IsUp() {
			go r.reconnectLoop(ctx, host, policy.NewSchedule(), probe)
		}
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-r.Events():
				if !ok {
					return
				}
				if event.Kind == HostDown {
					go r.reconnectLoop(ctx, event.Host, policy.NewSchedule(), probe)
				}
			}
		}
	}()
}

func (r *Registry) reconnectLoop(ctx context.Context, host *Host, schedule reconnection.Schedule, probe Probe) {
	for {
		if host.IsUp() {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(schedule.Next()):
		}
		if host.IsUp() {
			return
		}
		if err := probe(host); err != nil {
			log.Debug().Err(err).Msgf("reconnection attempt to %v failed", host)
			continue
		}
		r.MarkUp(host)
		return
	}
}
