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

// Package retry decides, for a given failed request, whether the session should retry it (on the same host or a
// different one), rethrow the error to the caller, or ignore it, reusing message.Error's existing subkinds
// (message.ReadTimeout, message.WriteTimeout, message.Unavailable, message.Unprepared, ...) as the source of
// truth for what went wrong, instead of redeclaring that taxonomy.
package retry

import "github.com/nativecql/driver/message"

// Decision is what the session should do after a request fails.
type Decision int

const (
	// Rethrow propagates the error to the caller; no retry is attempted.
	Rethrow Decision = iota
	// RetrySameHost retries the statement against the same host that produced the error.
	RetrySameHost
	// RetryNextHost retries the statement against the next host in the load-balancing plan.
	RetryNextHost
	// Ignore swallows the error and returns an empty result to the caller (used for writes where the caller has
	// indicated the failure does not need to surface, mirroring the original driver's "ignore" verdict).
	Ignore
)

// Policy decides what to do after a statement execution fails, either because the server replied with a
// recoverable error, or because the request itself could not be completed (a connection-level error).
type Policy interface {
	// OnReadTimeout is invoked when the server replies with message.ReadTimeout.
	OnReadTimeout(err *message.ReadTimeout, retryCount int) Decision
	// OnWriteTimeout is invoked when the server replies with message.WriteTimeout.
	OnWriteTimeout(err *message.WriteTimeout, retryCount int) Decision
	// OnUnavailable is invoked when the server replies with message.Unavailable.
	OnUnavailable(err *message.Unavailable, retryCount int) Decision
	// OnUnprepared is invoked when the server replies with message.Unprepared, meaning it has forgotten the
	// prepared statement the caller tried to EXECUTE. Only RetrySameHost is meaningful here: the session always
	// re-prepares on the same connection that returned the error before retrying, since there is no other host
	// that could know the query id in the first place.
	OnUnprepared(err *message.Unprepared, retryCount int) Decision
	// OnRequestAborted is invoked when the request could not be completed because of a connection-level error
	// (the connection closed, timed out, or was defunct) rather than a server-side error response.
	OnRequestAborted(err error, retryCount int) Decision
	// OnErrorResponse is invoked for any other message.Error not covered by a more specific method above.
	OnErrorResponse(err message.Error, retryCount int) Decision
}
