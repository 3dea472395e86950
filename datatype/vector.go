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

package datatype

import (
	"fmt"
	"github.com/nativecql/driver/primitive"
	"io"
)

// VectorType is the CEP-30 fixed-dimension vector type: a sequence of exactly Dimension elements of the same
// subtype, serialized without the length prefix that List/Set always carry.
type VectorType interface {
	DataType
	GetElementType() DataType
	GetDimension() int
}

type vectorType struct {
	elementType DataType
	dimension   int
}

func (t *vectorType) GetElementType() DataType {
	return t.elementType
}

func (t *vectorType) GetDimension() int {
	return t.dimension
}

// NewVectorType creates a VectorType of the given element type and dimension. The dimension must be positive.
func NewVectorType(elementType DataType, dimension int) VectorType {
	return &vectorType{elementType: elementType, dimension: dimension}
}

func (t *vectorType) GetDataTypeCode() primitive.DataTypeCode {
	return primitive.DataTypeCodeVector
}

func (t *vectorType) Clone() DataType {
	return &vectorType{
		elementType: t.elementType.Clone(),
		dimension:   t.dimension,
	}
}

func (t *vectorType) String() string {
	return fmt.Sprintf("vector<%v, %d>", t.elementType, t.dimension)
}

func (t *vectorType) MarshalJSON() ([]byte, error) {
	return []byte("\"" + t.String() + "\""), nil
}

func writeVectorType(t DataType, dest io.Writer, version primitive.ProtocolVersion) (err error) {
	vectorType, ok := t.(VectorType)
	if !ok {
		return fmt.Errorf("expected VectorType, got %T", t)
	}
	if err = WriteDataType(vectorType.GetElementType(), dest, version); err != nil {
		return fmt.Errorf("cannot write vector element type: %w", err)
	}
	if vectorType.GetDimension() <= 0 {
		return fmt.Errorf("vector dimension must be positive, got %d", vectorType.GetDimension())
	}
	if _, err = primitive.WriteUnsignedVint(uint64(vectorType.GetDimension()), dest); err != nil {
		return fmt.Errorf("cannot write vector dimension: %w", err)
	}
	return nil
}

func lengthOfVectorType(t DataType, version primitive.ProtocolVersion) (length int, err error) {
	vectorType, ok := t.(VectorType)
	if !ok {
		return -1, fmt.Errorf("expected VectorType, got %T", t)
	}
	elementLength, err := LengthOfDataType(vectorType.GetElementType(), version)
	if err != nil {
		return -1, fmt.Errorf("cannot compute length of vector element type: %w", err)
	}
	return length + elementLength + primitive.LengthOfUnsignedVint(uint64(vectorType.GetDimension())), nil
}

func readVectorType(source io.Reader, version primitive.ProtocolVersion) (decoded DataType, err error) {
	vectorType := &vectorType{}
	if vectorType.elementType, err = ReadDataType(source, version); err != nil {
		return nil, fmt.Errorf("cannot read vector element type: %w", err)
	}
	dimension, _, err := primitive.ReadUnsignedVint(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read vector dimension: %w", err)
	}
	vectorType.dimension = int(dimension)
	return vectorType, nil
}

type vectorTypeCodec struct{}

func (c *vectorTypeCodec) encode(t DataType, dest io.Writer, version primitive.ProtocolVersion) error {
	return writeVectorType(t, dest, version)
}

func (c *vectorTypeCodec) encodedLength(t DataType, version primitive.ProtocolVersion) (int, error) {
	return lengthOfVectorType(t, version)
}

func (c *vectorTypeCodec) decode(source io.Reader, version primitive.ProtocolVersion) (DataType, error) {
	return readVectorType(source, version)
}
