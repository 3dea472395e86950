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
	"github.com/nativecql/driver/message"
	"github.com/nativecql/driver/primitive"
)

// ParamValue is a tagged union carrying a bound statement parameter together with enough information for
// session/guess.go to infer its CQL type when the statement has not been prepared (and therefore carries no
// server-supplied column metadata).
type ParamValue struct {
	Name  string // empty for positional parameters
	Value interface{}
}

// Unset marks a bound parameter as "do not bind this column", the CQL v4+ equivalent of leaving it out of an
// UPDATE statement entirely. It is distinct from a Go nil, which encodes as CQL NULL.
type Unset struct{}

// Statement is a single, possibly-parameterized CQL statement to execute. The zero value is a valid unprepared,
// unparameterized statement once Query is set.
type Statement struct {
	Query       string
	Params      []ParamValue
	Keyspace    string
	Consistency primitive.ConsistencyLevel

	SerialConsistency *primitive.ConsistencyLevel
	PageSize          int32
	PagingState       []byte
	DefaultTimestamp  *int64
	Idempotent        bool

	// SkipMetadata asks the server to omit result set metadata on RowsResult responses when the statement has
	// been prepared before (metadata is then taken from the PreparedResult returned by PREPARE).
	SkipMetadata bool
}

func NewStatement(query string) *Statement {
	return &Statement{Query: query, Consistency: primitive.ConsistencyLevelLocalOne}
}

// Bind appends a positional parameter.
func (s *Statement) Bind(values ...interface{}) *Statement {
	for _, v := range values {
		s.Params = append(s.Params, ParamValue{Value: v})
	}
	return s
}

// BindNamed appends a named parameter (protocol version 3+ only).
func (s *Statement) BindNamed(name string, value interface{}) *Statement {
	s.Params = append(s.Params, ParamValue{Name: name, Value: value})
	return s
}

func (s *Statement) isNamed() bool {
	for _, p := range s.Params {
		if p.Name != "" {
			return true
		}
	}
	return false
}

// PreparedStatement is the client-side handle returned by Session.Prepare; it carries the server-assigned query
// id plus the bound-variable and result-set metadata needed to bind parameters and decode rows without asking
// the server again.
type PreparedStatement struct {
	Query             string
	Keyspace          string
	Id                []byte
	ResultMetadataId  []byte
	Variables         *message.VariablesMetadata
	ResultMetadata    *message.RowsMetadata
}

// Bind turns a prepared statement into a BoundStatement carrying the prepared id instead of the raw query
// text, so Session.ExecuteBound knows to send an EXECUTE instead of a QUERY.
func (ps *PreparedStatement) Bind(values ...interface{}) *BoundStatement {
	bound := &BoundStatement{Prepared: ps, Statement: NewStatement(ps.Query)}
	bound.Bind(values...)
	return bound
}

// BoundStatement is a Statement bound to a PreparedStatement; Session recognizes it and issues an EXECUTE with
// the prepared query id rather than re-sending the query text.
type BoundStatement struct {
	*Statement
	Prepared *PreparedStatement
}

// PagingState is the opaque, server-issued cursor a caller can persist and later feed back into Statement.PagingState
// to resume a paged query from the same point, matching the RowsMetadata.PagingState wire field.
type PagingState []byte
