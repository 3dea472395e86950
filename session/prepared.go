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
	"container/list"
	"sync"
)

// preparedCache is a fixed-capacity LRU cache of PreparedStatement, keyed by keyspace-qualified query text.
// Concurrent Prepare calls for the identical key collapse onto a single in-flight PREPARE round trip: the first
// caller owns a *prepareCall and does the work, later callers wait on it instead of sending their own PREPARE.
type preparedCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
	inFlight map[string]*prepareCall
}

type cacheEntry struct {
	key     string
	stmt    *PreparedStatement
}

type prepareCall struct {
	done chan struct{}
	stmt *PreparedStatement
	err  error
}

func newPreparedCache(capacity int) *preparedCache {
	return &preparedCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		inFlight: make(map[string]*prepareCall),
	}
}

func cacheKey(keyspace, query string) string {
	return keyspace + "\x00" + query
}

func (c *preparedCache) get(keyspace, query string) (*PreparedStatement, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(keyspace, query)
	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).stmt, true
}

func (c *preparedCache) put(keyspace, query string, stmt *PreparedStatement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(keyspace, query)
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).stmt = stmt
		c.order.MoveToFront(elem)
		return
	}
	elem := c.order.PushFront(&cacheEntry{key: key, stmt: stmt})
	c.entries[key] = elem
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// claim registers the calling goroutine as the one responsible for preparing key, or, if another goroutine is
// already preparing it, returns the in-flight call to wait on instead.
func (c *preparedCache) claim(keyspace, query string) (call *prepareCall, owner bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(keyspace, query)
	if existing, ok := c.inFlight[key]; ok {
		return existing, false
	}
	call = &prepareCall{done: make(chan struct{})}
	c.inFlight[key] = call
	return call, true
}

func (c *preparedCache) complete(keyspace, query string, call *prepareCall, stmt *PreparedStatement, err error) {
	call.stmt, call.err = stmt, err
	close(call.done)
	c.mu.Lock()
	delete(c.inFlight, cacheKey(keyspace, query))
	c.mu.Unlock()
	if err == nil {
		c.put(keyspace, query, stmt)
	}
}
