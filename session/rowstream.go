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
	"context"
	"sync/atomic"

	"github.com/nativecql/driver/message"
)

// RowStream pushes decoded rows to a consumer one at a time as pages arrive, applying backpressure: the engine
// does not fetch the next page until the consumer has drained the current one, since the channel is unbuffered.
type RowStream struct {
	rows <-chan message.Row
	errc <-chan error
	cols atomic.Value // *ResultSet
}

// Next blocks until the next row is available, the stream ends, ctx is cancelled, or an error occurs fetching a
// later page. ok is false once the stream is exhausted; err is non-nil only if a page fetch failed.
func (rs *RowStream) Next(ctx context.Context) (row message.Row, ok bool, err error) {
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case row, ok = <-rs.rows:
		if ok {
			return row, true, nil
		}
		select {
		case err = <-rs.errc:
		default:
		}
		return nil, false, err
	}
}

// Columns exposes the column metadata of the most recently fetched page, for use with ResultSet.Scan-style decoding.
func (rs *RowStream) Columns() *ResultSet {
	cols, _ := rs.cols.Load().(*ResultSet)
	return cols
}

// Stream runs an auto-paging fetch loop in the background and returns a RowStream that yields rows as pages
// arrive; fetching the next page waits for the consumer to drain the current one (the rows channel is
// unbuffered), and stops early if ctx is cancelled — the in-flight page fetch, if any, is allowed to complete and
// its result is discarded.
func (s *Session) Stream(ctx context.Context, stmt *Statement) *RowStream {
	rows := make(chan message.Row)
	errc := make(chan error, 1)
	stream := &RowStream{rows: rows, errc: errc}
	go func() {
		defer close(rows)
		current := *stmt
		for {
			result, err := s.Execute(ctx, &current)
			if err != nil {
				errc <- err
				return
			}
			stream.cols.Store(result)
			for _, row := range result.Rows {
				select {
				case rows <- row:
				case <-ctx.Done():
					return
				}
			}
			if !result.HasMorePages() {
				return
			}
			current.PagingState = result.PagingState
		}
	}()
	return stream
}
