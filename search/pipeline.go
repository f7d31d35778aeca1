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

	"github.com/poiesic/medcode/core"
)

// Pipeline composes semantic search and hierarchy reranking into a single
// retrieval call. It over-fetches twice the requested count before
// reranking so that candidates boosted into the top ranks are not lost to
// an early cutoff, then truncates to the requested count.
type Pipeline struct {
	searcher *Searcher
	reranker *Reranker
	logger   *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline) error

// WithPipelineLogger sets a custom logger.
// Default is slog.Default().
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new retrieval pipeline.
func NewPipeline(searcher *Searcher, reranker *Reranker, opts ...PipelineOption) (*Pipeline, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if reranker == nil {
		return nil, ErrRerankerRequired
	}

	p := &Pipeline{
		searcher: searcher,
		reranker: reranker,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Retrieve returns up to topK candidates for the query text, ranked by
// confidence descending after hierarchy reranking. An empty result is not
// an error; it simply means the catalog produced no neighbours.
func (p *Pipeline) Retrieve(ctx context.Context, query string, topK int) ([]*core.Candidate, error) {
	if err := core.ValidateTopK(topK); err != nil {
		return nil, err
	}

	candidates, err := p.searcher.Search(ctx, query, 2*topK)
	if err != nil {
		return nil, err
	}

	ranked := p.reranker.Rerank(query, candidates)
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	p.logger.Debug("retrieval complete", "query", query, "topK", topK, "returned", len(ranked))

	return ranked, nil
}
