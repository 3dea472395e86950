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

package primitive

import (
	"fmt"
	"io"
)

// ValueType qualifies the [value] encoding used by a bound variable: a regular value carries its contents, while
// null and "not set" values carry no contents at all on the wire.
type ValueType int32

const (
	// ValueTypeRegular denotes a regular, non-null value; its length is the length of Value.Contents.
	ValueTypeRegular = ValueType(0)
	// ValueTypeNull denotes a CQL NULL; encoded as a [value] with length -1.
	ValueTypeNull = ValueType(-1)
	// ValueTypeUnset denotes the CQL "not set" marker, meaning "do not bind this column". Only valid starting with
	// protocol version 4; encoded as a [value] with length -2.
	ValueTypeUnset = ValueType(-2)
)

// Value is the generic representation of a single bound variable, as used by QUERY, EXECUTE and BATCH messages.
type Value struct {
	Type     ValueType
	Contents []byte
}

func (v *Value) String() string {
	switch v.Type {
	case ValueTypeNull:
		return "NULL"
	case ValueTypeUnset:
		return "UNSET"
	default:
		return fmt.Sprintf("%v", v.Contents)
	}
}

// NewValue wraps the given raw bytes as a regular, non-null [value].
func NewValue(contents []byte) *Value {
	return &Value{Type: ValueTypeRegular, Contents: contents}
}

var NullValue = &Value{Type: ValueTypeNull}
var UnsetValue = &Value{Type: ValueTypeUnset}

func ReadValue(source io.Reader, version ProtocolVersion) (*Value, error) {
	if length, err := ReadInt(source); err != nil {
		return nil, fmt.Errorf("cannot read [value] length: %w", err)
	} else if length == int32(ValueTypeNull) {
		return NullValue, nil
	} else if length == int32(ValueTypeUnset) {
		if !version.SupportsQueryFlag(QueryFlagValues) {
			return nil, fmt.Errorf("protocol version %v does not support unset values", version)
		}
		return UnsetValue, nil
	} else if length < 0 {
		return nil, fmt.Errorf("invalid [value] length: %d", length)
	} else {
		contents := make([]byte, length)
		if length > 0 {
			if _, err := io.ReadFull(source, contents); err != nil {
				return nil, fmt.Errorf("cannot read [value] content: %w", err)
			}
		}
		return &Value{Type: ValueTypeRegular, Contents: contents}, nil
	}
}

func WriteValue(v *Value, dest io.Writer, version ProtocolVersion) error {
	if v == nil {
		v = NullValue
	}
	switch v.Type {
	case ValueTypeNull:
		return WriteInt(int32(ValueTypeNull), dest)
	case ValueTypeUnset:
		if !version.SupportsQueryFlag(QueryFlagValues) {
			return fmt.Errorf("protocol version %v does not support unset values", version)
		}
		return WriteInt(int32(ValueTypeUnset), dest)
	default:
		if err := WriteInt(int32(len(v.Contents)), dest); err != nil {
			return fmt.Errorf("cannot write [value] length: %w", err)
		} else if _, err := dest.Write(v.Contents); err != nil {
			return fmt.Errorf("cannot write [value] content: %w", err)
		}
		return nil
	}
}

func LengthOfValue(v *Value) int {
	if v == nil || v.Type != ValueTypeRegular {
		return LengthOfInt
	}
	return LengthOfInt + len(v.Contents)
}

// [positional value]s

func ReadPositionalValues(source io.Reader, version ProtocolVersion) ([]*Value, error) {
	if length, err := ReadShort(source); err != nil {
		return nil, fmt.Errorf("cannot read [positional value]s length: %w", err)
	} else {
		values := make([]*Value, length)
		for i := uint16(0); i < length; i++ {
			if values[i], err = ReadValue(source, version); err != nil {
				return nil, fmt.Errorf("cannot read [positional value] %d: %w", i, err)
			}
		}
		return values, nil
	}
}

func WritePositionalValues(values []*Value, dest io.Writer, version ProtocolVersion) error {
	if err := WriteShort(uint16(len(values)), dest); err != nil {
		return fmt.Errorf("cannot write [positional value]s length: %w", err)
	}
	for i, v := range values {
		if err := WriteValue(v, dest, version); err != nil {
			return fmt.Errorf("cannot write [positional value] %d: %w", i, err)
		}
	}
	return nil
}

func LengthOfPositionalValues(values []*Value) (int, error) {
	length := LengthOfShort
	for _, v := range values {
		length += LengthOfValue(v)
	}
	return length, nil
}

// [named value]s

func ReadNamedValues(source io.Reader, version ProtocolVersion) (map[string]*Value, error) {
	if length, err := ReadShort(source); err != nil {
		return nil, fmt.Errorf("cannot read [named value]s length: %w", err)
	} else {
		values := make(map[string]*Value, length)
		for i := uint16(0); i < length; i++ {
			name, err := ReadString(source)
			if err != nil {
				return nil, fmt.Errorf("cannot read [named value] %d name: %w", i, err)
			}
			value, err := ReadValue(source, version)
			if err != nil {
				return nil, fmt.Errorf("cannot read [named value] %d: %w", i, err)
			}
			values[name] = value
		}
		return values, nil
	}
}

func WriteNamedValues(values map[string]*Value, dest io.Writer, version ProtocolVersion) error {
	if err := WriteShort(uint16(len(values)), dest); err != nil {
		return fmt.Errorf("cannot write [named value]s length: %w", err)
	}
	for name, v := range values {
		if err := WriteString(name, dest); err != nil {
			return fmt.Errorf("cannot write [named value] '%v' name: %w", name, err)
		} else if err = WriteValue(v, dest, version); err != nil {
			return fmt.Errorf("cannot write [named value] '%v': %w", name, err)
		}
	}
	return nil
}

func LengthOfNamedValues(values map[string]*Value) (int, error) {
	length := LengthOfShort
	for name, v := range values {
		length += LengthOfString(name) + LengthOfValue(v)
	}
	return length, nil
}
