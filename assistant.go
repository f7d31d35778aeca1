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


package medcode

import (
	"context"
	"log/slog"

	"github.com/poiesic/medcode/ai"
	"github.com/poiesic/medcode/ai/openai"
	"github.com/poiesic/medcode/hierarchy"
	"github.com/poiesic/medcode/index"
	"github.com/poiesic/medcode/ingestion"
	"github.com/poiesic/medcode/search"
	"github.com/poiesic/medcode/storage"
	"github.com/poiesic/medcode/storage/badger"
)

// Assistant is the top-level facade: it owns the storage backend, the AI
// provider, the chapter detector, and the in-memory vector index, and
// hands out the retrieval components built on them.
type Assistant struct {
	backend     *badger.Backend
	codeRepo    storage.CodeRepository
	provider    ai.Provider
	detector    *hierarchy.Detector
	index       *index.Memory
	boostFactor float64
	logger      *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig    *ai.Config
	inMemory    bool
	boostFactor float64
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithInMemoryStorage keeps the catalog in memory instead of on disk.
// Useful for tests and throwaway environments.
func WithInMemoryStorage() AssistantOption {
	return func(o *assistantOptions) {
		o.inMemory = true
	}
}

// WithBoostFactor sets the hierarchy boost factor used by pipelines the
// assistant builds. Default is search.DefaultBoostFactor.
func WithBoostFactor(factor float64) AssistantOption {
	return func(o *assistantOptions) {
		o.boostFactor = factor
	}
}

// NewAssistant opens the catalog at filePath and wires the AI provider.
// The vector index is not built here; call LoadIndex once the catalog has
// been ingested.
func NewAssistant(filePath string, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig:    ai.DefaultConfig(),
		boostFactor: search.DefaultBoostFactor,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	codeRepo, err := badger.NewCodeRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		codeRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Assistant{
		backend:     backend,
		codeRepo:    codeRepo,
		provider:    provider,
		detector:    hierarchy.NewDetector(),
		boostFactor: options.boostFactor,
		logger:      slog.Default(),
	}, nil
}

func (a *Assistant) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.codeRepo.Close(); err != nil {
		a.logger.Error("error closing code repository", "err", err)
		return err
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (a *Assistant) CodeRepository() storage.CodeRepository {
	return a.codeRepo
}

func (a *Assistant) Provider() ai.Provider {
	return a.provider
}

func (a *Assistant) Detector() *hierarchy.Detector {
	return a.detector
}

// Index returns the loaded vector index, or nil before LoadIndex.
func (a *Assistant) Index() index.Index {
	if a.index == nil {
		return nil
	}
	return a.index
}

// LoadIndex builds the in-memory vector index from the stored catalog.
// It must be called after ingestion and before building pipelines.
func (a *Assistant) LoadIndex(ctx context.Context) error {
	idx, err := index.Load(ctx, a.codeRepo)
	if err != nil {
		return err
	}
	a.index = idx
	a.logger.Info("vector index loaded", "vectors", idx.Size())
	return nil
}

// NewLoader builds an ingestion loader over the assistant's catalog.
func (a *Assistant) NewLoader(opts ...ingestion.Option) (*ingestion.Loader, error) {
	return ingestion.NewLoader(a.codeRepo, a.provider.Embedder(), opts...)
}

// NewPipeline builds a retrieval pipeline over the loaded index.
// Returns search.ErrIndexRequired until LoadIndex has run.
func (a *Assistant) NewPipeline() (*search.Pipeline, error) {
	if a.index == nil {
		return nil, search.ErrIndexRequired
	}

	searcher, err := search.NewSearcher(a.codeRepo, a.index, a.provider.Embedder())
	if err != nil {
		return nil, err
	}

	rerankOpts := []search.RerankerOption{}
	if a.boostFactor != search.DefaultBoostFactor {
		rerankOpts = append(rerankOpts, search.WithBoostFactor(a.boostFactor))
	}
	reranker, err := search.NewReranker(a.detector, rerankOpts...)
	if err != nil {
		return nil, err
	}

	return search.NewPipeline(searcher, reranker)
}

// NewAggregator builds a multi-query aggregator over a fresh pipeline.
func (a *Assistant) NewAggregator(opts ...search.AggregatorOption) (*search.Aggregator, error) {
	pipeline, err := a.NewPipeline()
	if err != nil {
		return nil, err
	}
	return search.NewAggregator(pipeline, opts...)
}
