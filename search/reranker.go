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
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/medcode/core"
	"github.com/poiesic/medcode/hierarchy"
)

// DefaultBoostFactor is the confidence multiplier applied to candidates
// whose chapter matches the one detected from the query text.
const DefaultBoostFactor = 1.2

// Reranker adjusts candidate confidences using chapter hierarchy signals.
// When the detector finds a chapter in the query text, candidates in that
// chapter are boosted; all confidences are then clamped to [0, 1] and the
// slice re-sorted descending. Candidates are modified in place.
type Reranker struct {
	detector    *hierarchy.Detector
	boostFactor float64
	logger      *slog.Logger
}

// RerankerOption configures a Reranker.
type RerankerOption func(*Reranker) error

// WithBoostFactor sets the confidence multiplier for chapter matches.
// The factor must be greater than 1.0. Default is DefaultBoostFactor.
func WithBoostFactor(factor float64) RerankerOption {
	return func(r *Reranker) error {
		if factor <= 1.0 {
			return fmt.Errorf("%w: boost factor must be > 1.0, got %g", core.ErrInvalidArgument, factor)
		}
		r.boostFactor = factor
		return nil
	}
}

// WithRerankerLogger sets a custom logger.
// Default is slog.Default().
func WithRerankerLogger(logger *slog.Logger) RerankerOption {
	return func(r *Reranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewReranker creates a new hierarchy-aware reranker.
func NewReranker(detector *hierarchy.Detector, opts ...RerankerOption) (*Reranker, error) {
	if detector == nil {
		return nil, ErrDetectorRequired
	}

	r := &Reranker{
		detector:    detector,
		boostFactor: DefaultBoostFactor,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Rerank boosts candidates whose chapter matches the chapter detected from
// the query, clamps every confidence to [0, 1], and stably sorts the slice
// by confidence descending. When no chapter is detected only the clamp and
// sort apply. The input slice is modified and returned.
func (r *Reranker) Rerank(query string, candidates []*core.Candidate) []*core.Candidate {
	chapter, detected := r.detector.Detect(query)

	if detected {
		suffix := " Matches " + chapter + " hierarchy."
		boosted := 0
		for _, candidate := range candidates {
			if candidate.Code == nil || candidate.Code.Chapter != chapter {
				continue
			}
			candidate.Confidence *= r.boostFactor
			candidate.Explanation += suffix
			boosted++
		}
		r.logger.Debug("hierarchy boost applied", "chapter", chapter, "boosted", boosted, "total", len(candidates))
	}

	for _, candidate := range candidates {
		candidate.Confidence = core.ClampConfidence(candidate.Confidence)
	}

	// Stable sort keeps the closer vector match first on confidence ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	return candidates
}
