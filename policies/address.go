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

package policies

import "net"

// AddressTranslator rewrites a broadcast address/port discovered through topology events before the driver ever
// dials it, matching the original driver's address-translation feature for NAT'd/multi-region deployments where
// the address a node broadcasts to its peers is not reachable by a client.
type AddressTranslator interface {
	Translate(addr net.IP, port int32) (net.IP, int32, error)
}

// IdentityTranslator returns every address unchanged. It is the default.
type IdentityTranslator struct{}

func (IdentityTranslator) Translate(addr net.IP, port int32) (net.IP, int32, error) {
	return addr, port, nil
}

// EC2MultiRegionTranslator is a hook point for the original driver's EC2MultiRegionAddressTranslator: it delegates
// to a caller-supplied Resolver (e.g. backed by an EC2 metadata service or a DNS lookup of the public hostname)
// instead of embedding a cloud SDK. A nil Resolver behaves like IdentityTranslator.
type EC2MultiRegionTranslator struct {
	Resolver func(addr net.IP) (net.IP, error)
}

func (t *EC2MultiRegionTranslator) Translate(addr net.IP, port int32) (net.IP, int32, error) {
	if t.Resolver == nil {
		return addr, port, nil
	}
	translated, err := t.Resolver(addr)
	if err != nil {
		return nil, 0, err
	}
	return translated, port, nil
}
