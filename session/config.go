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

// Package session implements the driver's execution engine: the prepared-statement cache, the execute pipeline,
// paging, batches, row streaming and executeConcurrent, on top of client.CqlClientConnection and the
// topology/loadbalancing/retry/reconnection policy packages.
package session

import (
	"fmt"
	"time"

	"github.com/nativecql/driver/client"
	"github.com/nativecql/driver/loadbalancing"
	"github.com/nativecql/driver/policies"
	"github.com/nativecql/driver/primitive"
	"github.com/nativecql/driver/reconnection"
	"github.com/nativecql/driver/retry"
)

const (
	DefaultConnectionsPerHost       = 1
	DefaultMaxRequestsPerConnection = 2048
	DefaultPreparedCacheCapacity    = 512
	DefaultPageSize                 = 5000
	DefaultControlConnectionTimeout = time.Second * 10
)

// Config configures a Session. Build one with DefaultConfig and override fields or use the With* functional
// options, the same way client.CqlClient is built and configured: a plain struct, no config-file format.
type Config struct {
	ContactPoints   []string
	Keyspace        string
	Credentials     *client.AuthCredentials
	Compression     primitive.Compression
	ProtocolVersion primitive.ProtocolVersion

	ConnectionsPerHost       int
	MaxRequestsPerConnection int
	PreparedCacheCapacity    int
	DefaultPageSize          int32

	LoadBalancing        loadbalancing.Policy
	Retry                retry.Policy
	Reconnection         reconnection.Policy
	AddressTranslator    policies.AddressTranslator
	SpeculativeExecution policies.SpeculativeExecutionPolicy

	// UseUndefinedAsUnset makes the type-guessing encoder treat an untyped nil the same as primitive.UnsetValue
	// instead of primitive.NullValue, matching the original driver's useUndefinedAsUnset option.
	UseUndefinedAsUnset bool
}

// DefaultConfig builds a Config with the same defaults the original driver ships: protocol v4,
// DefaultMaxRequestsPerConnection=2048, a 512-entry prepared cache, and the default load-balancing/retry/
// reconnection policy stack.
func DefaultConfig(contactPoints ...string) *Config {
	return &Config{
		ContactPoints:            contactPoints,
		ProtocolVersion:          primitive.ProtocolVersion4,
		ConnectionsPerHost:       DefaultConnectionsPerHost,
		MaxRequestsPerConnection: DefaultMaxRequestsPerConnection,
		PreparedCacheCapacity:    DefaultPreparedCacheCapacity,
		DefaultPageSize:          DefaultPageSize,
		LoadBalancing:            loadbalancing.NewDefault(""),
		Retry:                    retry.NewDefaultPolicy(),
		Reconnection:             reconnection.NewExponentialPolicy(time.Second, time.Minute),
		AddressTranslator:        policies.IdentityTranslator{},
		SpeculativeExecution:     policies.NoSpeculativeExecutionPolicy{},
		UseUndefinedAsUnset:      true,
	}
}

func (c *Config) WithKeyspace(keyspace string) *Config {
	c.Keyspace = keyspace
	return c
}

func (c *Config) WithCredentials(credentials *client.AuthCredentials) *Config {
	c.Credentials = credentials
	return c
}

func (c *Config) WithCompression(compression primitive.Compression) *Config {
	c.Compression = compression
	return c
}

func (c *Config) WithLoadBalancing(policy loadbalancing.Policy) *Config {
	c.LoadBalancing = policy
	return c
}

func (c *Config) WithRetry(policy retry.Policy) *Config {
	c.Retry = policy
	return c
}

func (c *Config) WithReconnection(policy reconnection.Policy) *Config {
	c.Reconnection = policy
	return c
}

func (c *Config) WithAddressTranslator(translator policies.AddressTranslator) *Config {
	c.AddressTranslator = translator
	return c
}

func (c *Config) WithSpeculativeExecution(policy policies.SpeculativeExecutionPolicy) *Config {
	c.SpeculativeExecution = policy
	return c
}

func (c *Config) validate() error {
	if len(c.ContactPoints) == 0 {
		return fmt.Errorf("at least one contact point is required")
	}
	if err := primitive.CheckSupportedProtocolVersion(c.ProtocolVersion); err != nil {
		return err
	}
	if c.ProtocolVersion.SupportsModernFramingLayout() {
		return fmt.Errorf(
			"protocol version %v requires the segment-based modern framing layout, which this driver does not implement: use protocol version 4 or lower",
			c.ProtocolVersion,
		)
	}
	if c.ConnectionsPerHost < 1 {
		return fmt.Errorf("connections per host: expecting positive, got: %v", c.ConnectionsPerHost)
	}
	if c.MaxRequestsPerConnection < 1 {
		return fmt.Errorf("max requests per connection: expecting positive, got: %v", c.MaxRequestsPerConnection)
	}
	if c.AddressTranslator == nil {
		c.AddressTranslator = policies.IdentityTranslator{}
	}
	if c.SpeculativeExecution == nil {
		c.SpeculativeExecution = policies.NoSpeculativeExecutionPolicy{}
	}
	return nil
}
