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
	"math/big"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/nativecql/driver/datatype"
)

// guessDataType infers a CQL type for a Go value bound to a simple (unprepared) statement, the same job the
// original driver's client-side type guesser does when no server-supplied column metadata is available.
// Pointer types guess the same as their pointee; untyped nil cannot be guessed and is rejected, matching the
// original driver's behavior of requiring either a prepared statement or a concrete value for type inference.
func guessDataType(value interface{}) (datatype.DataType, error) {
	switch value.(type) {
	case bool, *bool:
		return datatype.Boolean, nil
	case int8, *int8:
		return datatype.Tinyint, nil
	case int16, *int16:
		return datatype.Smallint, nil
	case int32, *int32:
		return datatype.Int, nil
	case int64, *int64:
		return datatype.Bigint, nil
	case int, *int:
		return datatype.Bigint, nil
	case float32, *float32:
		return datatype.Float, nil
	case float64, *float64:
		return datatype.Double, nil
	case string, *string:
		return datatype.Varchar, nil
	case []byte:
		return datatype.Blob, nil
	case net.IP:
		return datatype.Inet, nil
	case time.Time, *time.Time:
		return datatype.Timestamp, nil
	case time.Duration, *time.Duration:
		return datatype.Duration, nil
	case uuid.UUID, *uuid.UUID:
		return datatype.Uuid, nil
	case *big.Int:
		return datatype.Varint, nil
	case Unset:
		return nil, fmt.Errorf("cannot guess CQL type for an unset value without prepared metadata")
	case nil:
		return nil, fmt.Errorf("cannot guess CQL type for a nil value without prepared metadata")
	default:
		return nil, fmt.Errorf("cannot guess CQL type for Go value of type %T", value)
	}
}
