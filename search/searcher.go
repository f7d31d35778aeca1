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
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/medcode/ai"
	"github.com/poiesic/medcode/core"
	"github.com/poiesic/medcode/index"
	"github.com/poiesic/medcode/storage"
)

// semanticMatchExplanation is the starting explanation every candidate
// carries before reranking.
const semanticMatchExplanation = "Semantic match with query terms"

// Searcher performs pure semantic retrieval: embed the query once, find
// the nearest catalog codes by vector distance, and turn distances into
// confidence scores. It applies no hierarchy knowledge; that is the
// Reranker's job.
type Searcher struct {
	repository storage.CodeRepository
	index      index.Index
	embedder   ai.Embedder
	logger     *slog.Logger
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher) error

// WithSearcherLogger sets a custom logger.
// Default is slog.Default().
func WithSearcherLogger(logger *slog.Logger) SearcherOption {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new semantic searcher.
func NewSearcher(
	repository storage.CodeRepository,
	idx index.Index,
	embedder ai.Embedder,
	opts ...SearcherOption,
) (*Searcher, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		repository: repository,
		index:      idx,
		embedder:   embedder,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search returns up to k candidates nearest to the query text, ordered by
// distance ascending. Each candidate's confidence is 1/(1+distance), so a
// zero-distance match scores 1.0 and confidence decays toward 0 as distance
// grows. Arguments are validated before the embedder or index is touched.
func (s *Searcher) Search(ctx context.Context, query string, k int) ([]*core.Candidate, error) {
	if err := core.ValidateTopK(k); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidArgument, core.ErrEmptyQuery)
	}

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	entries, err := s.index.Search(ctx, embedding, k)
	if err != nil {
		s.logger.Error("error querying vector index", "err", err)
		return nil, err
	}

	if len(entries) == 0 {
		return []*core.Candidate{}, nil
	}

	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.CodeId
	}

	codes, err := s.repository.GetCodes(ctx, ids...)
	if err != nil {
		s.logger.Error("error retrieving codes", "codeCount", len(ids), "err", err)
		return nil, err
	}

	byId := make(map[string]*core.Code, len(codes))
	for _, code := range codes {
		byId[code.Id] = code
	}

	candidates := make([]*core.Candidate, 0, len(entries))
	for _, entry := range entries {
		code, ok := byId[entry.CodeId]
		if !ok {
			// The index only holds identifiers loaded from the catalog,
			// so a miss here means index and storage have diverged.
			return nil, fmt.Errorf("code %q returned by index is missing from the catalog", entry.CodeId)
		}

		candidates = append(candidates, &core.Candidate{
			Code:        code,
			Distance:    entry.Distance,
			Confidence:  1.0 / (1.0 + float64(entry.Distance)),
			Explanation: semanticMatchExplanation,
		})
	}

	s.logger.Debug("semantic search complete", "query", query, "hits", len(candidates))

	return candidates, nil
}
