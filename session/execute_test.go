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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nativecql/driver/frame"
	"github.com/nativecql/driver/message"
	"github.com/nativecql/driver/primitive"
)

func rowsResultFrame(t *testing.T, pagingState []byte, rows message.RowSet) *frame.Frame {
	t.Helper()
	return frame.NewFrame(primitive.ProtocolVersion4, 0, &message.RowsResult{
		Metadata: &message.RowsMetadata{ColumnCount: 1, PagingState: pagingState},
		Data:     rows,
	})
}

func TestExecuteReturnsResultSetFromFirstHost(t *testing.T) {
	host := testHost("10.0.0.1:9042")
	conn := newFakeConn(host.Endpoint(), fakeResponse{frame: rowsResultFrame(t, nil, message.RowSet{{[]byte("a")}})})
	stubDial(t, map[string][]connection{host.Endpoint(): {conn}})

	s := newTestSession(DefaultConfig(host.Endpoint()), host)
	rs, err := s.Execute(context.Background(), NewStatement("SELECT * FROM t"))
	require.NoError(t, err)
	require.Len(t, rs.Rows, 1)
	assert.Equal(t, 1, conn.sentCount)
}

// TestExecuteRetriesOnNextHostAfterUnavailable exercises the mandatory retry-to-next-host scenario: host 1
// answers UNAVAILABLE, DefaultPolicy.OnUnavailable declines a same-host retry, and executeSequentially must move
// on to host 2 in the query plan rather than surfacing the error.
func TestExecuteRetriesOnNextHostAfterUnavailable(t *testing.T) {
	host1 := testHost("10.0.0.1:9042")
	host2 := testHost("10.0.0.2:9042")
	unavailableFrame := frame.NewFrame(primitive.ProtocolVersion4, 0, &message.Unavailable{
		ErrorMessage: "not enough replicas",
		Consistency:  primitive.ConsistencyLevelQuorum,
		Required:     2,
		Alive:        1,
	})
	conn1 := newFakeConn(host1.Endpoint(), fakeResponse{frame: unavailableFrame})
	conn2 := newFakeConn(host2.Endpoint(), fakeResponse{frame: rowsResultFrame(t, nil, message.RowSet{{[]byte("a")}})})
	stubDial(t, map[string][]connection{
		host1.Endpoint(): {conn1},
		host2.Endpoint(): {conn2},
	})

	s := newTestSession(DefaultConfig(host1.Endpoint(), host2.Endpoint()), host1, host2)
	rs, err := s.Execute(context.Background(), NewStatement("SELECT * FROM t"))
	require.NoError(t, err)
	require.NotNil(t, rs)
	assert.Equal(t, 1, conn1.sentCount)
	assert.Equal(t, 1, conn2.sentCount)
}

func TestExecuteFailsWhenEveryHostReturnsUnavailable(t *testing.T) {
	host1 := testHost("10.0.0.1:9042")
	host2 := testHost("10.0.0.2:9042")
	unavailableFrame := func() *frame.Frame {
		return frame.NewFrame(primitive.ProtocolVersion4, 0, &message.Unavailable{ErrorMessage: "not enough replicas"})
	}
	conn1 := newFakeConn(host1.Endpoint(), fakeResponse{frame: unavailableFrame()})
	conn2 := newFakeConn(host2.Endpoint(), fakeResponse{frame: unavailableFrame()})
	stubDial(t, map[string][]connection{
		host1.Endpoint(): {conn1},
		host2.Endpoint(): {conn2},
	})

	s := newTestSession(DefaultConfig(host1.Endpoint(), host2.Endpoint()), host1, host2)
	_, err := s.Execute(context.Background(), NewStatement("SELECT * FROM t"))
	assert.Error(t, err)
}

// TestExecuteBoundRepreparesAndRetriesAfterUnprepared exercises the UNPREPARED recovery path: the host has
// forgotten the prepared statement, so executeOnHost re-prepares it on the same connection and retries the
// EXECUTE once with the freshly returned query id.
func TestExecuteBoundRepreparesAndRetriesAfterUnprepared(t *testing.T) {
	host := testHost("10.0.0.1:9042")
	unpreparedFrame := frame.NewFrame(primitive.ProtocolVersion4, 0, &message.Unprepared{
		ErrorMessage: "unknown prepared query id",
		Id:           []byte{1, 2, 3},
	})
	preparedFrame := frame.NewFrame(primitive.ProtocolVersion4, 0, &message.PreparedResult{
		PreparedQueryId:   []byte{9, 9, 9},
		VariablesMetadata: &message.VariablesMetadata{},
		ResultMetadata:    &message.RowsMetadata{},
	})
	rowsFrame := rowsResultFrame(t, nil, message.RowSet{{[]byte("a")}})
	conn := newFakeConn(host.Endpoint(),
		fakeResponse{frame: unpreparedFrame},
		fakeResponse{frame: preparedFrame},
		fakeResponse{frame: rowsFrame},
	)
	stubDial(t, map[string][]connection{host.Endpoint(): {conn}})

	s := newTestSession(DefaultConfig(host.Endpoint()), host)
	prepared := &PreparedStatement{Query: "SELECT * FROM t", Id: []byte{1, 2, 3}}
	bound := prepared.Bind()
	rs, err := s.ExecuteBound(context.Background(), bound)
	require.NoError(t, err)
	require.Len(t, rs.Rows, 1)
	assert.Equal(t, 3, conn.sentCount)
	assert.Equal(t, []byte{1, 2, 3}, prepared.Id, "the original BoundStatement.Prepared is left untouched; re-preparing produces a new cached copy")
	cached, ok := s.prepared.get("", "SELECT * FROM t")
	require.True(t, ok)
	assert.Equal(t, []byte{9, 9, 9}, cached.Id, "the re-prepared statement replaces the stale one in the cache")
}
