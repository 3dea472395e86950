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

package message

import (
	"errors"
	"fmt"
	"io"

	"github.com/nativecql/driver/primitive"
)

const (
	StartupOptionCqlVersion  = "CQL_VERSION"
	StartupOptionCompression = "COMPRESSION"

	defaultCqlVersion = "3.0.0"
)

// Startup is the first request a client must send to initiate the connection handshake.
// +k8s:deepcopy-gen=true
// +k8s:deepcopy-gen:interfaces=github.com/nativecql/driver/message.Message
type Startup struct {
	Options map[string]string
}

// NewStartup creates a new Startup message with the mandatory CQL_VERSION option set to its default value, unless
// overridden by one of the given key-value pairs. The variadic arguments are interpreted in pairs: key1, value1,
// key2, value2, etc.
func NewStartup(keyValuePairs ...string) *Startup {
	options := map[string]string{StartupOptionCqlVersion: defaultCqlVersion}
	for i := 0; i+1 < len(keyValuePairs); i += 2 {
		options[keyValuePairs[i]] = keyValuePairs[i+1]
	}
	return &Startup{Options: options}
}

func (m *Startup) IsResponse() bool {
	return false
}

func (m *Startup) GetOpCode() primitive.OpCode {
	return primitive.OpCodeStartup
}

func (m *Startup) String() string {
	return fmt.Sprintf("STARTUP %v", m.Options)
}

type startupCodec struct{}

func (c *startupCodec) Encode(msg Message, dest io.Writer, _ primitive.ProtocolVersion) error {
	startup, ok := msg.(*Startup)
	if !ok {
		return errors.New(fmt.Sprintf("expected *message.Startup, got %T", msg))
	}
	return primitive.WriteStringMap(startup.Options, dest)
}

func (c *startupCodec) EncodedLength(msg Message, _ primitive.ProtocolVersion) (int, error) {
	startup, ok := msg.(*Startup)
	if !ok {
		return -1, errors.New(fmt.Sprintf("expected *message.Startup, got %T", msg))
	}
	return primitive.LengthOfStringMap(startup.Options), nil
}

func (c *startupCodec) Decode(source io.Reader, _ primitive.ProtocolVersion) (Message, error) {
	options, err := primitive.ReadStringMap(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read STARTUP options: %w", err)
	}
	return &Startup{Options: options}, nil
}

func (c *startupCodec) GetOpCode() primitive.OpCode {
	return primitive.OpCodeStartup
}
