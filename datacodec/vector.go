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

package datacodec

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/nativecql/driver/datatype"
	"github.com/nativecql/driver/primitive"
)

// NewVector creates a codec for the CEP-30 fixed-dimension vector type. Unlike NewList/NewSet, a vector carries
// no element count on the wire: its dimension is part of the type itself, and elements of a fixed-size subtype
// (int, float, uuid, ...) are packed back to back with no per-element length prefix at all.
func NewVector(dataType datatype.VectorType) (Codec, error) {
	if dataType == nil {
		return nil, ErrNilDataType
	}
	elementCodec, err := NewCodec(dataType.GetElementType())
	if err != nil {
		return nil, fmt.Errorf("cannot create codec for vector elements: %w", err)
	}
	fixedSize, isFixedSize := fixedElementSize(dataType.GetElementType().GetDataTypeCode())
	return &vectorCodec{dataType, elementCodec, fixedSize, isFixedSize}, nil
}

// fixedElementSize reports the encoded size of the primitive CQL types the wire serializes at a constant width,
// matching Cassandra's own vector serializer: those elements are packed with no length prefix, while every other
// subtype (collections, UDTs, tuples, variable-length primitives) keeps a [bytes] length prefix per element.
func fixedElementSize(code primitive.DataTypeCode) (size int, ok bool) {
	switch code {
	case primitive.DataTypeCodeBoolean, primitive.DataTypeCodeTinyint:
		return 1, true
	case primitive.DataTypeCodeSmallint:
		return 2, true
	case primitive.DataTypeCodeInt, primitive.DataTypeCodeFloat, primitive.DataTypeCodeDate:
		return 4, true
	case primitive.DataTypeCodeBigint, primitive.DataTypeCodeCounter, primitive.DataTypeCodeDouble,
		primitive.DataTypeCodeTimestamp, primitive.DataTypeCodeTime:
		return 8, true
	case primitive.DataTypeCodeUuid, primitive.DataTypeCodeTimeuuid:
		return 16, true
	default:
		return 0, false
	}
}

type vectorCodec struct {
	dataType     datatype.DataType
	elementCodec Codec
	fixedSize    int
	isFixedSize  bool
}

func (c *vectorCodec) DataType() datatype.DataType {
	return c.dataType
}

func (c *vectorCodec) dimension() int {
	return c.dataType.(datatype.VectorType).GetDimension()
}

func (c *vectorCodec) Encode(source interface{}, version primitive.ProtocolVersion) (dest []byte, err error) {
	ext, size, err := c.createExtractor(source)
	if err == nil && ext != nil {
		if size != c.dimension() {
			err = fmt.Errorf("expected %d elements, got %d", c.dimension(), size)
		} else {
			dest, err = c.writeVector(ext, version)
		}
	}
	if err != nil {
		err = errCannotEncode(source, c.DataType(), version, err)
	}
	return
}

func (c *vectorCodec) Decode(source []byte, dest interface{}, version primitive.ProtocolVersion) (wasNull bool, err error) {
	wasNull = len(source) == 0
	var injectorFactory func(int) (injector, error)
	if injectorFactory, err = c.createInjector(dest, wasNull); err == nil && injectorFactory != nil {
		err = c.readVector(source, injectorFactory, version)
	}
	if err != nil {
		err = errCannotDecode(dest, c.DataType(), version, err)
	}
	return
}

func (c *vectorCodec) createExtractor(source interface{}) (ext extractor, size int, err error) {
	sourceValue, sourceType, wasNil := reflectSource(source)
	if sourceType != nil {
		switch sourceType.Kind() {
		case reflect.Slice, reflect.Array:
			if !wasNil {
				ext, err = newSliceExtractor(sourceValue)
				size = sourceValue.Len()
			}
		default:
			err = ErrSourceTypeNotSupported
		}
	}
	return
}

func (c *vectorCodec) createInjector(dest interface{}, wasNull bool) (injectorFactory func(int) (injector, error), err error) {
	destValue, err := reflectDest(dest, wasNull)
	if err == nil {
		switch destValue.Kind() {
		case reflect.Slice:
			if !wasNull {
				injectorFactory = func(size int) (injector, error) {
					adjustSliceLength(destValue, size)
					return newSliceInjector(destValue)
				}
			}
		case reflect.Array:
			if !wasNull {
				injectorFactory = func(size int) (injector, error) {
					return newSliceInjector(destValue)
				}
			}
		case reflect.Interface:
			if !wasNull {
				var targetType reflect.Type
				if targetType, err = PreferredVectorGoType(c.dataType.(datatype.VectorType)); err == nil {
					injectorFactory = func(size int) (injector, error) {
						destValue.Set(reflect.MakeSlice(targetType, size, size))
						return newSliceInjector(destValue.Elem())
					}
				}
			}
		default:
			err = ErrDestinationTypeNotSupported
		}
	}
	return
}

func (c *vectorCodec) writeVector(ext extractor, version primitive.ProtocolVersion) ([]byte, error) {
	buf := &bytes.Buffer{}
	dim := c.dimension()
	for i := 0; i < dim; i++ {
		elem, err := ext.getElem(i, i)
		if err != nil {
			return nil, errCannotExtractElement(i, err)
		}
		encodedElem, err := c.elementCodec.Encode(elem, version)
		if err != nil {
			return nil, errCannotEncodeElement(i, err)
		}
		if c.isFixedSize {
			if len(encodedElem) != c.fixedSize {
				return nil, errCannotEncodeElement(i, errWrongFixedLength(c.fixedSize, len(encodedElem)))
			}
			buf.Write(encodedElem)
		} else {
			_ = primitive.WriteBytes(encodedElem, buf)
		}
	}
	return buf.Bytes(), nil
}

func (c *vectorCodec) readVector(source []byte, injectorFactory func(int) (injector, error), version primitive.ProtocolVersion) error {
	dim := c.dimension()
	inj, err := injectorFactory(dim)
	if err != nil {
		return err
	}
	reader := bytes.NewReader(source)
	total := len(source)
	for i := 0; i < dim; i++ {
		var encodedElem []byte
		if c.isFixedSize {
			encodedElem = make([]byte, c.fixedSize)
			if _, err := io.ReadFull(reader, encodedElem); err != nil {
				return errCannotReadElement(i, err)
			}
		} else {
			if encodedElem, err = primitive.ReadBytes(reader); err != nil {
				return errCannotReadElement(i, err)
			}
		}
		decodedElem, err := inj.zeroElem(i, i)
		if err != nil {
			return errCannotCreateElement(i, err)
		}
		elementWasNull, err := c.elementCodec.Decode(encodedElem, decodedElem, version)
		if err != nil {
			return errCannotDecodeElement(i, err)
		}
		if err = inj.setElem(i, i, decodedElem, false, elementWasNull); err != nil {
			return errCannotInjectElement(i, err)
		}
	}
	if remaining := reader.Len(); remaining != 0 {
		return errBytesRemaining(total, remaining)
	}
	return nil
}

// PreferredVectorGoType returns the best matching Go type for a vector data type: a slice of the element type's
// preferred Go type, the same shape PreferredGoType returns for List/Set.
func PreferredVectorGoType(dt datatype.VectorType) (reflect.Type, error) {
	elemType, err := PreferredGoType(dt.GetElementType())
	if err != nil {
		return nil, err
	}
	return reflect.SliceOf(ensureNillable(elemType)), nil
}
