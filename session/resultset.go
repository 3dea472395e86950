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
	"fmt"
	"reflect"

	"github.com/nativecql/driver/datacodec"
	"github.com/nativecql/driver/message"
	"github.com/nativecql/driver/primitive"
)

// ResultSet is one page of rows returned by an execute, decoded lazily, column by column, using
// datacodec.PreferredGoType to pick a Go representation for each CQL column type.
type ResultSet struct {
	Columns     []*message.ColumnMetadata
	Rows        []message.Row
	PagingState []byte

	index map[string]int
	version primitive.ProtocolVersion
}

func newResultSet(metadata *message.RowsMetadata, data message.RowSet, version primitive.ProtocolVersion) *ResultSet {
	rs := &ResultSet{
		Columns:     metadata.Columns,
		Rows:        data,
		PagingState: metadata.PagingState,
		index:       make(map[string]int, len(metadata.Columns)),
		version:     version,
	}
	for i, col := range metadata.Columns {
		rs.index[col.Name] = i
	}
	return rs
}

// HasMorePages reports whether PagingState is non-empty, meaning a follow-up execute with it set will return more
// rows.
func (rs *ResultSet) HasMorePages() bool {
	return len(rs.PagingState) > 0
}

// Scan decodes row[columnName] into dest, a pointer to a Go value compatible with the column's CQL type, the same
// contract datacodec.Codec.Decode exposes.
func (rs *ResultSet) Scan(row message.Row, columnName string, dest interface{}) (wasNull bool, err error) {
	idx, ok := rs.index[columnName]
	if !ok {
		return false, fmt.Errorf("no such column: %q", columnName)
	}
	return rs.ScanIndex(row, idx, dest)
}

// ScanIndex decodes row[index] into dest.
func (rs *ResultSet) ScanIndex(row message.Row, index int, dest interface{}) (wasNull bool, err error) {
	if index < 0 || index >= len(rs.Columns) {
		return false, fmt.Errorf("column index out of range: %d", index)
	}
	codec, err := datacodec.NewCodec(rs.Columns[index].Type)
	if err != nil {
		return false, err
	}
	return codec.Decode(row[index], dest, rs.version)
}

// Row decodes an entire row into a column-name-keyed map, using the preferred Go type for each column.
func (rs *ResultSet) Row(row message.Row) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(rs.Columns))
	for i, col := range rs.Columns {
		goType, err := datacodec.PreferredGoType(col.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		ptr := reflect.New(goType)
		if _, err := rs.ScanIndex(row, i, ptr.Interface()); err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		values[col.Name] = ptr.Elem().Interface()
	}
	return values, nil
}

// All decodes every row into a slice of column-name-keyed maps.
func (rs *ResultSet) All() ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		decoded, err := rs.Row(row)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}
