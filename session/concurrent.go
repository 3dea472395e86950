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
	"sync"
)

const DefaultConcurrency = 32

// ConcurrentResult is the outcome of one statement submitted to ExecuteConcurrent.
type ConcurrentResult struct {
	Index  int
	Result *ResultSet
	Err    error
}

// ConcurrentSummary aggregates the outcome of an ExecuteConcurrent run.
type ConcurrentSummary struct {
	Succeeded int
	Failed    int
	Results   []ConcurrentResult // nil unless collectResults is true
}

// ExecuteConcurrent schedules up to concurrency statements in flight at once, drawn from stmts in order, and
// returns aggregate success/failure counts. When collectResults is true, per-statement results are also
// collected and returned in stmts' original order; when false, only the counts are produced, avoiding holding
// every ResultSet in memory at once for large fan-outs.
func (s *Session) ExecuteConcurrent(ctx context.Context, stmts []*Statement, concurrency int, collectResults bool) ConcurrentSummary {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	var results []ConcurrentResult
	if collectResults {
		results = make([]ConcurrentResult, len(stmts))
	}
	sem := make(chan struct{}, concurrency)
	var mu sync.Mutex
	var wg sync.WaitGroup
	summary := ConcurrentSummary{}
	for i, stmt := range stmts {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, stmt *Statement) {
			defer wg.Done()
			defer func() { <-sem }()
			result, err := s.Execute(ctx, stmt)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
			} else {
				summary.Succeeded++
			}
			if collectResults {
				results[i] = ConcurrentResult{Index: i, Result: result, Err: err}
			}
		}(i, stmt)
	}
	wg.Wait()
	summary.Results = results
	return summary
}
