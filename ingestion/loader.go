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

package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/medcode/ai"
	"github.com/poiesic/medcode/core"
	"github.com/poiesic/medcode/hierarchy"
	"github.com/poiesic/medcode/storage"
)

const (
	// DefaultBatchSize is the number of entries embedded per API call.
	DefaultBatchSize = 64

	defaultMaxRetries     = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
)

// Loader ingests a JSONL catalog dataset: it embeds every entry in
// batches across a worker pool, derives each code's chapter, and persists
// the result together with a dataset fingerprint. An unchanged dataset
// embedded with the same model is skipped entirely.
type Loader struct {
	repository     storage.CodeRepository
	embedder       ai.Embedder
	pool           *ants.Pool
	batchSize      int
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithBatchSize sets the number of entries embedded per API call.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			return fmt.Errorf("%w: batch size must be >= 1, got %d", core.ErrInvalidArgument, size)
		}
		l.batchSize = size
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}

		if l.pool != nil {
			l.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		l.pool = pool
		return nil
	}
}

// WithRetryPolicy sets how embedding calls are retried on failure.
func WithRetryPolicy(maxAttempts int, baseDelay time.Duration) Option {
	return func(l *Loader) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		l.maxRetries = maxAttempts
		l.retryBaseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a new dataset loader.
func NewLoader(repository storage.CodeRepository, embedder ai.Embedder, opts ...Option) (*Loader, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		repository:     repository,
		embedder:       embedder,
		pool:           pool,
		batchSize:      DefaultBatchSize,
		maxRetries:     defaultMaxRetries,
		retryBaseDelay: defaultRetryBaseDelay,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			l.Release()
			return nil, err
		}
	}

	return l, nil
}

// Release releases the worker pool.
// The loader should not be used after calling Release.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}

// Report summarizes an ingestion run.
type Report struct {
	CodeCount   int
	Dimension   int
	Fingerprint string
	Skipped     bool // dataset unchanged, nothing written
}

// Ingest loads the dataset at path, embeds it with the given model, and
// replaces the stored catalog. When the stored fingerprint and model match
// the dataset the catalog is left untouched and Skipped is set.
func (l *Loader) Ingest(ctx context.Context, path string, model string) (*Report, error) {
	entries, fingerprint, err := ReadDataset(path)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmptyDataset
	}

	info, err := l.repository.DatasetInfo(ctx)
	if err == nil && info.Fingerprint == fingerprint && info.EmbeddingModel == model {
		l.logger.Info("dataset unchanged, skipping ingestion",
			"path", path, "fingerprint", fingerprint, "codes", info.CodeCount)
		return &Report{
			CodeCount:   info.CodeCount,
			Dimension:   info.Dimension,
			Fingerprint: fingerprint,
			Skipped:     true,
		}, nil
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	l.logger.Info("ingesting dataset", "path", path, "entries", len(entries), "model", model)

	codes, err := l.embedEntries(ctx, entries)
	if err != nil {
		return nil, err
	}

	if err := l.repository.Clear(ctx); err != nil {
		return nil, err
	}
	if err := l.repository.AddCodes(ctx, codes...); err != nil {
		return nil, err
	}

	dimension := len(codes[0].Vector)
	if err := l.repository.SetDatasetInfo(ctx, &core.DatasetInfo{
		Fingerprint:    fingerprint,
		EmbeddingModel: model,
		Dimension:      dimension,
		CodeCount:      len(codes),
		CreatedAt:      time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	l.logger.Info("ingestion complete", "codes", len(codes), "dimension", dimension)

	return &Report{
		CodeCount:   len(codes),
		Dimension:   dimension,
		Fingerprint: fingerprint,
	}, nil
}

// embedEntries embeds the dataset in batches across the worker pool and
// returns fully populated catalog codes in dataset order.
func (l *Loader) embedEntries(ctx context.Context, entries []DatasetEntry) ([]*core.Code, error) {
	batches := make([][]DatasetEntry, 0, (len(entries)+l.batchSize-1)/l.batchSize)
	for start := 0; start < len(entries); start += l.batchSize {
		end := start + l.batchSize
		if end > len(entries) {
			end = len(entries)
		}
		batches = append(batches, entries[start:end])
	}

	vectors := make([][][]float32, len(batches))
	errs := make([]error, len(batches))

	var wg sync.WaitGroup
	for i := range batches {
		i := i
		wg.Add(1)
		if err := l.pool.Submit(func() {
			defer wg.Done()
			vectors[i], errs[i] = l.embedBatch(ctx, batches[i])
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	codes := make([]*core.Code, 0, len(entries))
	for i, batch := range batches {
		for j, entry := range batch {
			id := hierarchy.NormalizeCode(entry.Code)
			codes = append(codes, &core.Code{
				Id:          id,
				Description: entry.Description,
				Chapter:     hierarchy.ChapterForCode(id),
				Synonyms:    entry.Synonyms,
				Vector:      vectors[i][j],
			})
		}
	}
	return codes, nil
}

func (l *Loader) embedBatch(ctx context.Context, batch []DatasetEntry) ([][]float32, error) {
	texts := make([]string, len(batch))
	for i := range batch {
		texts[i] = batch[i].EmbeddingText()
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = l.embedder.EmbedTexts(ctx, texts)
		return err
	}, l.maxRetries, l.retryBaseDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings after %d attempts: %w", l.maxRetries, err)
	}

	if len(embeddings) != len(batch) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(embeddings))
	}

	return embeddings, nil
}
