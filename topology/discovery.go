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
	"fmt"
	"net"

	"github.com/google/uuid"

	"github.com/nativecql/driver/client"
	"github.com/nativecql/driver/datacodec"
	"github.com/nativecql/driver/datatype"
	"github.com/nativecql/driver/frame"
	"github.com/nativecql/driver/message"
	"github.com/nativecql/driver/policies"
	"github.com/nativecql/driver/primitive"
	"github.com/nativecql/driver/token"
)

// localQuery is the column list fetched from system.local to build the local Host entry.
const localQuery = "SELECT data_center, rack, tokens, host_id, rpc_address, release_version FROM system.local"

// peersQuery is the column list fetched from system.peers to build every other cluster member's Host entry.
const peersQuery = "SELECT data_center, rack, tokens, host_id, rpc_address, release_version FROM system.peers"

var discoveryColumns = []string{"data_center", "rack", "tokens", "host_id", "rpc_address", "release_version"}

var setOfVarcharCodec, _ = datacodec.NewSet(datatype.NewSetType(datatype.Varchar))

// discoverRow runs the given query over conn and decodes each returned row into a *Host. translator rewrites each
// row's broadcast address before it becomes part of a Host, so NAT'd/multi-region deployments resolve to a
// dialable address; pass policies.IdentityTranslator{} to leave addresses unchanged.
func discoverRow(conn *client.CqlClientConnection, version primitive.ProtocolVersion, query string, port int32, translator policies.AddressTranslator) ([]*Host, error) {
	req, err := frame.NewRequestFrame(
		version,
		client.ManagedStreamId,
		false,
		nil,
		&message.Query{Query: query, Options: message.NewQueryOptions()},
	)
	if err != nil {
		return nil, fmt.Errorf("cannot build discovery query frame: %w", err)
	}
	resp, err := conn.SendAndReceive(req)
	if err != nil {
		return nil, fmt.Errorf("cannot send discovery query %q: %w", query, err)
	}
	rows, ok := resp.Body.Message.(*message.RowsResult)
	if !ok {
		return nil, fmt.Errorf("discovery query %q: expected ROWS result, got %v", query, resp.Body.Message)
	}
	columnIndex := make(map[string]int, len(rows.Metadata.Columns))
	for i, c := range rows.Metadata.Columns {
		columnIndex[c.Name] = i
	}
	hosts := make([]*Host, 0, len(rows.Data))
	for _, row := range rows.Data {
		host, err := decodeHostRow(row, columnIndex, version, port, translator)
		if err != nil {
			return nil, fmt.Errorf("discovery query %q: %w", query, err)
		}
		hosts = append(hosts, host)
	}
	return hosts, nil
}

func decodeHostRow(row message.Row, columnIndex map[string]int, version primitive.ProtocolVersion, port int32, translator policies.AddressTranslator) (*Host, error) {
	var addr net.IP
	if idx, ok := columnIndex["rpc_address"]; ok {
		if _, err := datacodec.Inet.Decode(row[idx], &addr, version); err != nil {
			return nil, fmt.Errorf("cannot decode rpc_address: %w", err)
		}
	}
	if translator != nil && addr != nil {
		translated, translatedPort, err := translator.Translate(addr, port)
		if err != nil {
			return nil, fmt.Errorf("cannot translate address %v: %w", addr, err)
		}
		addr, port = translated, translatedPort
	}
	host := NewHost(addr, port)
	if idx, ok := columnIndex["data_center"]; ok {
		var dc string
		if _, err := datacodec.Varchar.Decode(row[idx], &dc, version); err != nil {
			return nil, fmt.Errorf("cannot decode data_center: %w", err)
		}
		host.Datacenter = dc
	}
	if idx, ok := columnIndex["rack"]; ok {
		var rack string
		if _, err := datacodec.Varchar.Decode(row[idx], &rack, version); err != nil {
			return nil, fmt.Errorf("cannot decode rack: %w", err)
		}
		host.Rack = rack
	}
	if idx, ok := columnIndex["release_version"]; ok {
		var release string
		if _, err := datacodec.Varchar.Decode(row[idx], &release, version); err != nil {
			return nil, fmt.Errorf("cannot decode release_version: %w", err)
		}
		host.Release = release
	}
	if idx, ok := columnIndex["host_id"]; ok {
		var raw primitive.UUID
		if _, err := datacodec.Uuid.Decode(row[idx], &raw, version); err != nil {
			return nil, fmt.Errorf("cannot decode host_id: %w", err)
		}
		if parsed, err := uuid.Parse(raw.String()); err == nil {
			host.HostId = parsed
		}
	}
	if idx, ok := columnIndex["tokens"]; ok {
		var tokenStrings []string
		if setOfVarcharCodec != nil {
			if _, err := setOfVarcharCodec.Decode(row[idx], &tokenStrings, version); err != nil {
				return nil, fmt.Errorf("cannot decode tokens: %w", err)
			}
		}
		for _, s := range tokenStrings {
			host.Tokens = append(host.Tokens, token.Murmur3([]byte(s)))
		}
	}
	return host, nil
}
