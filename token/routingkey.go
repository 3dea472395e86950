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

package token

import (
	"bytes"
	"fmt"
)

// RoutingKey assembles a single byte slice suitable for Murmur3 from the encoded bytes of one or more partition key
// components, matching the server-side composite-key encoding: a single component is used as-is, while two or more
// components are each framed as [2-byte length][component bytes][0x00], mirroring how primitive.Bytes-family values
// are length-prefixed elsewhere in this codebase.
func RoutingKey(components ...[]byte) ([]byte, error) {
	switch len(components) {
	case 0:
		return nil, fmt.Errorf("routing key requires at least one component")
	case 1:
		return components[0], nil
	default:
		buf := &bytes.Buffer{}
		for _, component := range components {
			if len(component) > 0xFFFF {
				return nil, fmt.Errorf("routing key component too long: %v bytes", len(component))
			}
			length := len(component)
			buf.WriteByte(byte(length >> 8))
			buf.WriteByte(byte(length))
			buf.Write(component)
			buf.WriteByte(0)
		}
		return buf.Bytes(), nil
	}
}
