// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/medcode/core"
)

const (
	// DefaultPerQueryK is the per-query fetch count used when a caller does
	// not specify one. Small on purpose: it keeps the merged ranking diverse
	// across queries instead of dominated by whichever query matches best.
	DefaultPerQueryK = 3

	// DefaultMinConfidence is the confidence floor used when a caller does
	// not specify one.
	DefaultMinConfidence = 0.5

	// minAggregateResults is the floor of the merged result cap.
	minAggregateResults = 5
)

// Aggregator fans a set of query strings out across a worker pool, running
// the retrieval pipeline once per query, then merges the per-query results
// into a single deduplicated ranking. When the same code is returned for
// more than one query only its best-scoring candidate survives.
type Aggregator struct {
	pipeline *Pipeline
	pool     *ants.Pool
	logger   *slog.Logger
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator) error

// WithAggregatorPoolSize sets the worker pool size for concurrent
// per-query retrieval. Default is runtime.NumCPU() / 2, with a minimum
// of 1.
func WithAggregatorPoolSize(size int) AggregatorOption {
	return func(a *Aggregator) error {
		if size < 1 {
			size = 1
		}

		if a.pool != nil {
			a.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		a.pool = pool
		return nil
	}
}

// WithAggregatorLogger sets a custom logger.
// Default is slog.Default().
func WithAggregatorLogger(logger *slog.Logger) AggregatorOption {
	return func(a *Aggregator) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAggregator creates a new multi-query aggregator.
func NewAggregator(pipeline *Pipeline, opts ...AggregatorOption) (*Aggregator, error) {
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	a := &Aggregator{
		pipeline: pipeline,
		pool:     pool,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			a.Release()
			return nil, err
		}
	}

	return a, nil
}

// Release releases the worker pool.
// The aggregator should not be used after calling Release.
func (a *Aggregator) Release() {
	if a.pool != nil {
		a.pool.Release()
	}
}

// Aggregate retrieves perQueryK candidates for every non-empty query,
// merges them keeping the best-scoring candidate per code, drops anything
// below minConfidence, and returns the survivors sorted by confidence
// descending, capped at max(5, 2×non-empty queries).
//
// Retrieval runs concurrently but the merge is sequential in query order,
// so the output is deterministic for a given input. If any query fails the
// whole call fails; partial results are never returned.
func (a *Aggregator) Aggregate(ctx context.Context, queries []string, perQueryK int, minConfidence float64) ([]*core.Candidate, error) {
	if err := core.ValidateTopK(perQueryK); err != nil {
		return nil, err
	}
	if err := core.ValidateMinConfidence(minConfidence); err != nil {
		return nil, err
	}

	nonEmpty := make([]string, 0, len(queries))
	for _, query := range queries {
		if strings.TrimSpace(query) == "" {
			continue
		}
		nonEmpty = append(nonEmpty, query)
	}

	if len(nonEmpty) == 0 {
		return []*core.Candidate{}, nil
	}

	// Fan out, collecting into per-query slots so merge order is stable.
	perQuery := make([][]*core.Candidate, len(nonEmpty))
	errs := make([]error, len(nonEmpty))

	var wg sync.WaitGroup
	for i := range nonEmpty {
		i := i
		wg.Add(1)
		if err := a.pool.Submit(func() {
			defer wg.Done()
			perQuery[i], errs[i] = a.pipeline.Retrieve(ctx, nonEmpty[i], perQueryK)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			a.logger.Error("error retrieving candidates for query", "query", nonEmpty[i], "err", err)
			return nil, err
		}
	}

	// Merge in query order: first appearance fixes a code's slot, a
	// strictly higher confidence replaces the held candidate. Ties keep
	// the earlier query's candidate and explanation.
	positions := make(map[string]int)
	merged := make([]*core.Candidate, 0)
	for _, candidates := range perQuery {
		for _, candidate := range candidates {
			pos, seen := positions[candidate.Code.Id]
			if !seen {
				positions[candidate.Code.Id] = len(merged)
				merged = append(merged, candidate)
				continue
			}
			if candidate.Confidence > merged[pos].Confidence {
				merged[pos] = candidate
			}
		}
	}

	filtered := merged[:0]
	for _, candidate := range merged {
		if candidate.Confidence >= minConfidence {
			filtered = append(filtered, candidate)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Confidence > filtered[j].Confidence
	})

	maxResults := 2 * len(nonEmpty)
	if maxResults < minAggregateResults {
		maxResults = minAggregateResults
	}
	if len(filtered) > maxResults {
		filtered = filtered[:maxResults]
	}

	a.logger.Debug("aggregation complete",
		"queries", len(nonEmpty), "perQueryK", perQueryK,
		"minConfidence", minConfidence, "returned", len(filtered))

	return filtered, nil
}
