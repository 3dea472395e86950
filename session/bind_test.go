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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nativecql/driver/primitive"
)

func TestEncodeParamGuessesTypeWhenUnprepared(t *testing.T) {
	value, err := encodeParam(ParamValue{Value: "hello"}, nil, primitive.ProtocolVersion4, false)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), value.Contents)
}

func TestEncodeParamUnsetRequiresV4(t *testing.T) {
	_, err := encodeParam(ParamValue{Value: Unset{}}, nil, primitive.ProtocolVersion3, false)
	assert.Error(t, err)

	value, err := encodeParam(ParamValue{Value: Unset{}}, nil, primitive.ProtocolVersion4, false)
	require.NoError(t, err)
	assert.Equal(t, primitive.UnsetValue, value)
}

func TestEncodeParamNilUsesConfiguredBehavior(t *testing.T) {
	value, err := encodeParam(ParamValue{Value: nil}, nil, primitive.ProtocolVersion4, false)
	require.NoError(t, err)
	assert.Equal(t, primitive.NullValue, value)

	value, err = encodeParam(ParamValue{Value: nil}, nil, primitive.ProtocolVersion4, true)
	require.NoError(t, err)
	assert.Equal(t, primitive.UnsetValue, value)
}

func TestEncodeParamsRejectsMixedPositionalAndNamed(t *testing.T) {
	params := []ParamValue{{Value: "a"}, {Name: "b", Value: "c"}}
	_, _, err := encodeParams(params, nil, primitive.ProtocolVersion4, false)
	assert.Error(t, err)
}

func TestEncodeParamsPositional(t *testing.T) {
	params := []ParamValue{{Value: int32(1)}, {Value: int32(2)}}
	positional, named, err := encodeParams(params, nil, primitive.ProtocolVersion4, false)
	require.NoError(t, err)
	assert.Nil(t, named)
	assert.Len(t, positional, 2)
}
