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

	"github.com/nativecql/driver/client"
	"github.com/nativecql/driver/frame"
	"github.com/nativecql/driver/message"
	"github.com/nativecql/driver/primitive"
)

// BatchStatement groups simple and prepared statements into a single BATCH request. Mixing the two is allowed,
// exactly as the wire protocol's BatchChild.QueryOrId (string or prepared id) permits.
type BatchStatement struct {
	Type        primitive.BatchType
	Consistency primitive.ConsistencyLevel
	Keyspace    string
	children    []*message.BatchChild
	err         error // first encode error encountered by AddStatement/AddBoundStatement, if any
}

func NewBatchStatement(batchType primitive.BatchType) *BatchStatement {
	return &BatchStatement{Type: batchType, Consistency: primitive.ConsistencyLevelLocalOne}
}

// Err reports the first parameter-encoding error recorded by AddStatement/AddBoundStatement, if any, without
// requiring a Session to surface it.
func (b *BatchStatement) Err() error {
	return b.err
}

// AddStatement appends a simple statement to the batch. If encoding one of values fails, the error is recorded
// and later surfaced by ExecuteBatch instead of silently sending a child with missing values.
func (b *BatchStatement) AddStatement(query string, values ...interface{}) *BatchStatement {
	params := make([]ParamValue, len(values))
	for i, v := range values {
		params[i] = ParamValue{Value: v}
	}
	encoded, _, err := encodeParams(params, nil, primitive.ProtocolVersion4, true)
	if err != nil {
		if b.err == nil {
			b.err = fmt.Errorf("cannot encode parameters for %q: %w", query, err)
		}
		return b
	}
	b.children = append(b.children, &message.BatchChild{QueryOrId: query, Values: encoded})
	return b
}

// AddBoundStatement appends a prepared statement, already bound to its values, to the batch. If encoding one of
// its values fails, the error is recorded and later surfaced by ExecuteBatch instead of silently sending a child
// with missing values.
func (b *BatchStatement) AddBoundStatement(bound *BoundStatement) *BatchStatement {
	lookup := columnTypesOf(bound.Prepared.Variables)
	encoded, _, err := encodeParams(bound.Params, lookup, primitive.ProtocolVersion4, true)
	if err != nil {
		if b.err == nil {
			b.err = fmt.Errorf("cannot encode parameters for %q: %w", bound.Prepared.Query, err)
		}
		return b
	}
	b.children = append(b.children, &message.BatchChild{QueryOrId: bound.Prepared.Id, Values: encoded})
	return b
}

// ExecuteBatch sends a BATCH request to the first reachable host in the load-balancing plan and, on a connection
// failure or any server error, tries the next host in the plan; the retry policy is not consulted. If a prior AddStatement/AddBoundStatement call failed to encode its
// arguments, that error is returned immediately without attempting to send the batch.
func (s *Session) ExecuteBatch(ctx context.Context, batch *BatchStatement) error {
	if batch.err != nil {
		return batch.err
	}
	plan := s.cfg.LoadBalancing.NewQueryPlan(batch.Keyspace, nil, s.registry.Hosts())
	if len(plan) == 0 {
		return fmt.Errorf("no host available to execute batch")
	}
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
		batchFrame, err := frame.NewRequestFrame(s.cfg.ProtocolVersion, client.ManagedStreamId, false, nil, &message.Batch{
			Type:        batch.Type,
			Children:    batch.children,
			Consistency: batch.Consistency,
			Keyspace:    batch.Keyspace,
		})
		if err != nil {
			return err
		}
		response, err := conn.SendAndReceive(batchFrame)
		if err != nil {
			lastErr = err
			continue
		}
		if errMsg, ok := response.Body.Message.(message.Error); ok {
			lastErr = fmt.Errorf("batch failed: %v", errMsg)
			continue
		}
		return nil
	}
	return fmt.Errorf("batch failed on every host in the query plan: %w", lastErr)
}
