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

	"github.com/nativecql/driver/datacodec"
	"github.com/nativecql/driver/datatype"
	"github.com/nativecql/driver/primitive"
)

// encodeParam converts a single ParamValue into a wire [value], guessing its CQL type from the Go value when
// columnType is nil (the statement was not prepared), or using columnType otherwise. The Unset sentinel always
// encodes as the "not set" marker introduced in protocol version 4 (and is rejected below v4). An untyped nil,
// prepared or not, encodes as that marker when useUndefinedAsUnset is true and the version is 4 or higher, and
// as CQL NULL otherwise; it never reaches guessDataType.
func encodeParam(p ParamValue, columnType datatype.DataType, version primitive.ProtocolVersion, useUndefinedAsUnset bool) (*primitive.Value, error) {
	if _, isUnset := p.Value.(Unset); isUnset {
		if version < primitive.ProtocolVersion4 {
			return nil, fmt.Errorf("cannot bind unset parameter %q: requires protocol version 4 or higher", p.Name)
		}
		return primitive.UnsetValue, nil
	}
	if p.Value == nil {
		if useUndefinedAsUnset && version >= primitive.ProtocolVersion4 {
			return primitive.UnsetValue, nil
		}
		return primitive.NullValue, nil
	}
	dt := columnType
	if dt == nil {
		guessed, err := guessDataType(p.Value)
		if err != nil {
			return nil, fmt.Errorf("cannot bind parameter %q: %w", p.Name, err)
		}
		dt = guessed
	}
	codec, err := datacodec.NewCodec(dt)
	if err != nil {
		return nil, fmt.Errorf("cannot bind parameter %q: %w", p.Name, err)
	}
	encoded, err := codec.Encode(p.Value, version)
	if err != nil {
		return nil, fmt.Errorf("cannot bind parameter %q: %w", p.Name, err)
	}
	return primitive.NewValue(encoded), nil
}

// encodeParams builds either PositionalValues or NamedValues for a QueryOptions, depending on whether the
// statement used Bind or BindNamed. columnTypes is nil for unprepared statements, or the prepared statement's
// bound-variable lookup (matched by position or name) for prepared ones.
func encodeParams(params []ParamValue, columnTypes *columnTypeLookup, version primitive.ProtocolVersion, useUndefinedAsUnset bool) (positional []*primitive.Value, named map[string]*primitive.Value, err error) {
	if len(params) == 0 {
		return nil, nil, nil
	}
	named = make(map[string]*primitive.Value)
	for i, p := range params {
		columnType := columnTypes.lookup(i, p.Name)
		var value *primitive.Value
		if value, err = encodeParam(p, columnType, version, useUndefinedAsUnset); err != nil {
			return nil, nil, err
		}
		if p.Name != "" {
			named[p.Name] = value
		} else {
			positional = append(positional, value)
		}
	}
	if len(named) > 0 && len(positional) > 0 {
		return nil, nil, fmt.Errorf("cannot mix positional and named parameters in the same statement")
	}
	if len(positional) > 0 {
		return positional, nil, nil
	}
	return nil, named, nil
}

// columnTypeLookup resolves a prepared statement's bound-variable type by position or by name.
type columnTypeLookup struct {
	byPosition []datatype.DataType
	byName     map[string]datatype.DataType
}

func (l *columnTypeLookup) lookup(position int, name string) datatype.DataType {
	if l == nil {
		return nil
	}
	if name != "" {
		return l.byName[name]
	}
	if position < len(l.byPosition) {
		return l.byPosition[position]
	}
	return nil
}
