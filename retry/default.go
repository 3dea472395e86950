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

package retry

import (
	"github.com/nativecql/driver/message"
	"github.com/nativecql/driver/primitive"
)

// DefaultPolicy retries at most once: on the same host for a read timeout where enough replicas answered but no
// data was returned, or a write timeout of a BATCH_LOG write, and on the next host for an unavailable error or an
// aborted request. Everything else (and any retry beyond the first) is rethrown.
type DefaultPolicy struct {
	MaxRetries int
}

func NewDefaultPolicy() *DefaultPolicy {
	return &DefaultPolicy{MaxRetries: 1}
}

func (p *DefaultPolicy) OnReadTimeout(err *message.ReadTimeout, retryCount int) Decision {
	if retryCount >= p.MaxRetries {
		return Rethrow
	}
	if err.Received >= err.BlockFor && !err.DataPresent {
		return RetrySameHost
	}
	return Rethrow
}

func (p *DefaultPolicy) OnWriteTimeout(err *message.WriteTimeout, retryCount int) Decision {
	if retryCount >= p.MaxRetries {
		return Rethrow
	}
	if err.WriteType == primitive.WriteTypeBatchLog {
		return RetrySameHost
	}
	return Rethrow
}

func (p *DefaultPolicy) OnUnavailable(_ *message.Unavailable, retryCount int) Decision {
	if retryCount >= p.MaxRetries {
		return Rethrow
	}
	return RetryNextHost
}

func (p *DefaultPolicy) OnRequestAborted(_ error, retryCount int) Decision {
	if retryCount >= p.MaxRetries {
		return Rethrow
	}
	return RetryNextHost
}

// OnUnprepared always retries once on the same host: the query id is only ever meaningful to the host that
// returned it, so there is no "next host" fallback to fall through to, matching the original driver's behavior
// of always re-preparing and retrying on an UNPREPARED response.
func (p *DefaultPolicy) OnUnprepared(_ *message.Unprepared, retryCount int) Decision {
	if retryCount >= p.MaxRetries {
		return Rethrow
	}
	return RetrySameHost
}

func (p *DefaultPolicy) OnErrorResponse(_ message.Error, _ int) Decision {
	return Rethrow
}

// FallthroughPolicy never retries: every error, of every kind, is rethrown to the caller. Matches the original
// driver's FallthroughRetryPolicy, used by callers that want full control over retry behavior themselves.
type FallthroughPolicy struct{}

func NewFallthroughPolicy() *FallthroughPolicy {
	return &FallthroughPolicy{}
}

func (*FallthroughPolicy) OnReadTimeout(*message.ReadTimeout, int) Decision   { return Rethrow }
func (*FallthroughPolicy) OnWriteTimeout(*message.WriteTimeout, int) Decision { return Rethrow }
func (*FallthroughPolicy) OnUnavailable(*message.Unavailable, int) Decision   { return Rethrow }
func (*FallthroughPolicy) OnUnprepared(*message.Unprepared, int) Decision     { return Rethrow }
func (*FallthroughPolicy) OnRequestAborted(error, int) Decision               { return Rethrow }
func (*FallthroughPolicy) OnErrorResponse(message.Error, int) Decision        { return Rethrow }
