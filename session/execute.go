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
	"time"

	"github.com/nativecql/driver/client"
	"github.com/nativecql/driver/datatype"
	"github.com/nativecql/driver/frame"
	"github.com/nativecql/driver/message"
	"github.com/nativecql/driver/primitive"
	"github.com/nativecql/driver/retry"
	"github.com/nativecql/driver/token"
	"github.com/nativecql/driver/topology"
)

// Prepare sends a PREPARE request for query, or returns the cached PreparedStatement if the identical
// keyspace-qualified query has already been prepared. Concurrent Prepare calls for the same query collapse onto a
// single round trip, per preparedCache's claim/complete protocol.
func (s *Session) Prepare(ctx context.Context, query string) (*PreparedStatement, error) {
	keyspace := s.cfg.Keyspace
	if stmt, ok := s.prepared.get(keyspace, query); ok {
		return stmt, nil
	}
	call, owner := s.prepared.claim(keyspace, query)
	if !owner {
		<-call.done
		return call.stmt, call.err
	}
	stmt, err := s.doPrepare(ctx, query, keyspace)
	s.prepared.complete(keyspace, query, call, stmt, err)
	return stmt, err
}

func (s *Session) doPrepare(ctx context.Context, query string, keyspace string) (*PreparedStatement, error) {
	_, conn, err := s.connectionFor(ctx, keyspace, nil)
	if err != nil {
		return nil, err
	}
	return s.prepareOnConn(conn, query, keyspace)
}

// prepareOnConn sends a PREPARE request over an already-acquired connection, used both by doPrepare (a fresh
// connection from the load-balancing plan) and by executeOnHost's UNPREPARED recovery (the same connection that
// just rejected a stale query id, so the re-prepare lands on the host that forgot it).
func (s *Session) prepareOnConn(conn connection, query string, keyspace string) (*PreparedStatement, error) {
	prepareFrame, err := frame.NewRequestFrame(
		s.cfg.ProtocolVersion, client.ManagedStreamId, false, nil,
		&message.Prepare{Query: query, Keyspace: keyspace},
	)
	if err != nil {
		return nil, err
	}
	response, err := conn.SendAndReceive(prepareFrame)
	if err != nil {
		return nil, fmt.Errorf("cannot prepare %q: %w", query, err)
	}
	switch msg := response.Body.Message.(type) {
	case *message.PreparedResult:
		return &PreparedStatement{
			Query:            query,
			Keyspace:         keyspace,
			Id:               msg.PreparedQueryId,
			ResultMetadataId: msg.ResultMetadataId,
			Variables:        msg.VariablesMetadata,
			ResultMetadata:   msg.ResultMetadata,
		}, nil
	case message.Error:
		return nil, fmt.Errorf("cannot prepare %q: %v", query, msg)
	default:
		return nil, fmt.Errorf("cannot prepare %q: unexpected response %T", query, msg)
	}
}

// Execute runs a simple (unprepared) statement and returns its first page of results.
func (s *Session) Execute(ctx context.Context, stmt *Statement) (*ResultSet, error) {
	return s.executeWithRetry(ctx, stmt, nil)
}

// ExecuteBound runs a BoundStatement (a PreparedStatement with values attached) and returns its first page of
// results.
func (s *Session) ExecuteBound(ctx context.Context, bound *BoundStatement) (*ResultSet, error) {
	return s.executeWithRetry(ctx, bound.Statement, bound.Prepared)
}

// executeWithRetry runs the send/receive/retry loop described by the execute pipeline: pick a query plan, try
// hosts in order, and on a recoverable server error or connection failure consult the retry policy for what to
// do next (retry on the same host, retry on the next host, or give up). Idempotent statements are instead handed
// to executeSpeculatively, which may run the statement against more than one host at once per
// Config.SpeculativeExecution: a statement that mutates state can't safely be sent twice, so only statements the
// caller has marked Idempotent are eligible.
func (s *Session) executeWithRetry(ctx context.Context, stmt *Statement, prepared *PreparedStatement) (*ResultSet, error) {
	routingKey := stmt.routingKey(prepared)
	plan := s.cfg.LoadBalancing.NewQueryPlan(stmt.Keyspace, routingKey, s.registry.Hosts())
	if len(plan) == 0 {
		return nil, fmt.Errorf("no host available to execute statement")
	}
	if stmt.Idempotent {
		return s.executeSpeculatively(ctx, plan, stmt, prepared)
	}
	return s.executeSequentially(ctx, plan, stmt, prepared)
}

func (s *Session) executeSequentially(ctx context.Context, plan []*topology.Host, stmt *Statement, prepared *PreparedStatement) (*ResultSet, error) {
	var lastErr error
	for _, host := range plan {
		result, err := s.executeOnHost(ctx, host, stmt, prepared)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !s.shouldTryNextHost(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("statement failed on every host in the query plan: %w", lastErr)
}

type speculativeResult struct {
	result *ResultSet
	err    error
}

// executeSpeculatively runs stmt against the first host in plan, then, for as long as
// Config.SpeculativeExecution's plan keeps offering another delay, starts an additional parallel execution
// against the next host in plan once that delay elapses without a response. The first execution to succeed wins;
// the rest are abandoned (their context is cancelled, but any response already in flight on the wire is not
// retracted, matching the original driver's speculative execution semantics).
func (s *Session) executeSpeculatively(ctx context.Context, plan []*topology.Host, stmt *Statement, prepared *PreparedStatement) (*ResultSet, error) {
	execCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan speculativeResult, len(plan))
	nextHost := 0
	launch := func() bool {
		if nextHost >= len(plan) {
			return false
		}
		host := plan[nextHost]
		nextHost++
		go func() {
			result, err := s.executeOnHost(execCtx, host, stmt, prepared)
			select {
			case results <- speculativeResult{result: result, err: err}:
			case <-execCtx.Done():
			}
		}()
		return true
	}

	speculativePlan := s.cfg.SpeculativeExecution.NewPlan(stmt.Keyspace, stmt.Query)
	launch()
	inFlight := 1
	var lastErr error
	for inFlight > 0 {
		delay, ok := speculativePlan.NextExecution()
		var timer *time.Timer
		var timerC <-chan time.Time
		if ok {
			timer = time.NewTimer(delay)
			timerC = timer.C
		}
		select {
		case res := <-results:
			if timer != nil {
				timer.Stop()
			}
			inFlight--
			if res.err == nil {
				return res.result, nil
			}
			lastErr = res.err
			if s.shouldTryNextHost(res.err) && launch() {
				inFlight++
			}
		case <-timerC:
			if launch() {
				inFlight++
			}
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("statement failed on every host in the query plan: %w", lastErr)
}

// executeOnHost sends the statement to host, retrying on the same host per the retry policy's verdict for
// recoverable server errors, up to one retry per attempt as tracked by retryCount. An UNPREPARED response is
// handled specially: the host has forgotten the prepared statement (e.g. after a schema change or because it
// evicted it from its own cache), so the statement is re-prepared on the same connection and the EXECUTE is
// retried once with the freshly returned query id, rather than being handed to the generic retry-policy path.
func (s *Session) executeOnHost(ctx context.Context, host *topology.Host, stmt *Statement, prepared *PreparedStatement) (*ResultSet, error) {
	pool, err := s.pools.get(ctx, host)
	if err != nil {
		return nil, err
	}
	retryCount := 0
	for {
		conn, err := pool.nextConn()
		if err != nil {
			return nil, err
		}
		host.IncrementInFlight()
		response, err := conn.SendAndReceive(s.buildFrame(stmt, prepared))
		host.DecrementInFlight()
		if err != nil {
			decision := s.cfg.Retry.OnRequestAborted(err, retryCount)
			if decision == retry.RetrySameHost {
				retryCount++
				continue
			}
			if decision == retry.Ignore {
				return &ResultSet{}, nil
			}
			return nil, err
		}
		host.IncrementResponses()
		result, decision, retryErr := s.handleResponse(response, retryCount)
		if retryErr == nil {
			return result, nil
		}
		if unprepared, ok := retryErr.(*unpreparedError); ok {
			if decision != retry.RetrySameHost || prepared == nil {
				return nil, unprepared
			}
			reprepared, err := s.prepareOnConn(conn, prepared.Query, prepared.Keyspace)
			if err != nil {
				return nil, fmt.Errorf("cannot re-prepare %q after UNPREPARED response: %w", prepared.Query, err)
			}
			s.prepared.put(reprepared.Keyspace, reprepared.Query, reprepared)
			prepared = reprepared
			retryCount++
			continue
		}
		if decision == retry.RetrySameHost {
			retryCount++
			continue
		}
		if decision == retry.Ignore {
			return &ResultSet{}, nil
		}
		return nil, retryErr
	}
}

func (s *Session) buildFrame(stmt *Statement, prepared *PreparedStatement) *frame.Frame {
	options := s.buildOptions(stmt, prepared)
	var msg message.Message
	if prepared != nil {
		msg = &message.Execute{QueryId: prepared.Id, ResultMetadataId: prepared.ResultMetadataId, Options: options}
	} else {
		msg = &message.Query{Query: stmt.Query, Options: options}
	}
	f, err := frame.NewRequestFrame(s.cfg.ProtocolVersion, client.ManagedStreamId, false, nil, msg)
	if err != nil {
		// Options/values were already validated by encodeParams; a construction error here would be a bug in
		// this package, not a runtime condition callers need to recover from.
		panic(err)
	}
	return f
}

func (s *Session) buildOptions(stmt *Statement, prepared *PreparedStatement) *message.QueryOptions {
	var lookup *columnTypeLookup
	if prepared != nil {
		lookup = columnTypesOf(prepared.Variables)
	}
	positional, named, err := encodeParams(stmt.Params, lookup, s.cfg.ProtocolVersion, s.cfg.UseUndefinedAsUnset)
	if err != nil {
		panic(err)
	}
	pageSize := stmt.PageSize
	if pageSize == 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	timestamp := stmt.DefaultTimestamp
	if timestamp == nil {
		ts := s.timestamp.Next()
		timestamp = &ts
	}
	return &message.QueryOptions{
		Consistency:       stmt.Consistency,
		PositionalValues:  positional,
		NamedValues:       named,
		SkipMetadata:      stmt.SkipMetadata,
		PageSize:          pageSize,
		PagingState:       stmt.PagingState,
		SerialConsistency: stmt.SerialConsistency,
		DefaultTimestamp:  timestamp,
		Keyspace:          stmt.Keyspace,
	}
}

// responseError wraps a message.Error so it can be returned as a plain Go error while still letting
// shouldTryNextHost recover the original server message.
type responseError struct {
	msg message.Error
}

func (e *responseError) Error() string {
	return e.msg.GetErrorMessage()
}

// unpreparedError wraps a message.Unprepared so executeOnHost can recognize it and drive the re-prepare-and-retry
// path instead of the generic responseError handling every other message.Error subkind goes through.
type unpreparedError struct {
	msg *message.Unprepared
}

func (e *unpreparedError) Error() string {
	return e.msg.GetErrorMessage()
}

func (s *Session) handleResponse(response *frame.Frame, retryCount int) (*ResultSet, retry.Decision, error) {
	switch msg := response.Body.Message.(type) {
	case *message.RowsResult:
		return newResultSet(msg.Metadata, msg.Data, response.Header.Version), retry.Rethrow, nil
	case *message.VoidResult, *message.SetKeyspaceResult, *message.SchemaChangeResult:
		return nil, retry.Rethrow, nil
	case *message.ReadTimeout:
		return nil, s.cfg.Retry.OnReadTimeout(msg, retryCount), &responseError{msg: msg}
	case *message.WriteTimeout:
		return nil, s.cfg.Retry.OnWriteTimeout(msg, retryCount), &responseError{msg: msg}
	case *message.Unavailable:
		return nil, s.cfg.Retry.OnUnavailable(msg, retryCount), &responseError{msg: msg}
	case *message.Unprepared:
		return nil, s.cfg.Retry.OnUnprepared(msg, retryCount), &unpreparedError{msg: msg}
	case message.Error:
		return nil, s.cfg.Retry.OnErrorResponse(msg, retryCount), &responseError{msg: msg}
	default:
		return nil, retry.Rethrow, fmt.Errorf("unexpected response message %T", msg)
	}
}

// shouldTryNextHost reports whether an error that escaped executeOnHost (after the retry policy already declined
// a same-host retry) should be tried against the next host in the plan rather than surfaced to the caller.
func (s *Session) shouldTryNextHost(err error) bool {
	respErr, ok := err.(*responseError)
	if !ok {
		return false
	}
	_, unavailable := respErr.msg.(*message.Unavailable)
	return unavailable
}

func columnTypesOf(vars *message.VariablesMetadata) *columnTypeLookup {
	if vars == nil {
		return nil
	}
	lookup := &columnTypeLookup{byName: make(map[string]datatype.DataType, len(vars.Columns))}
	for _, col := range vars.Columns {
		lookup.byPosition = append(lookup.byPosition, col.Type)
		lookup.byName[col.Name] = col.Type
	}
	return lookup
}

// routingKey computes the partition-key routing key for a statement bound to a prepared statement, using the
// prepared statement's VariablesMetadata.PkIndices to identify which bound values form the partition key.
func (stmt *Statement) routingKey(prepared *PreparedStatement) []byte {
	if prepared == nil || prepared.Variables == nil || len(prepared.Variables.PkIndices) == 0 {
		return nil
	}
	components := make([][]byte, 0, len(prepared.Variables.PkIndices))
	for _, idx := range prepared.Variables.PkIndices {
		if int(idx) >= len(stmt.Params) {
			return nil
		}
		columnType := prepared.Variables.Columns[idx].Type
		value, err := encodeParam(stmt.Params[idx], columnType, primitive.ProtocolVersion4, false)
		if err != nil || value == nil || value.Contents == nil {
			return nil
		}
		components = append(components, value.Contents)
	}
	key, err := token.RoutingKey(components...)
	if err != nil {
		return nil
	}
	return key
}
