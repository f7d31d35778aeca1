package ingestion

import (
	"context"
	"testing"

	"github.com/poiesic/medcode/ai/mock"
	"github.com/poiesic/medcode/core"
	"github.com/poiesic/medcode/hierarchy"
	"github.com/poiesic/medcode/storage"
	"github.com/poiesic/medcode/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T, opts ...Option) (*Loader, storage.CodeRepository, *mock.MockEmbedder) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	embedder := mock.NewMockEmbedder()
	loader, err := NewLoader(repo, embedder, opts...)
	require.NoError(t, err)
	t.Cleanup(loader.Release)

	return loader, repo, embedder
}

func TestNewLoader(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()
	embedder := mock.NewMockEmbedder()

	t.Run("valid configuration", func(t *testing.T) {
		loader, err := NewLoader(repo, embedder)
		require.NoError(t, err)
		assert.NotNil(t, loader)
		loader.Release()
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewLoader(nil, embedder)
		assert.Equal(t, ErrRepositoryRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewLoader(repo, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})

	t.Run("invalid batch size", func(t *testing.T) {
		_, err := NewLoader(repo, embedder, WithBatchSize(0))
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})

	t.Run("invalid retry policy", func(t *testing.T) {
		_, err := NewLoader(repo, embedder, WithRetryPolicy(0, 0))
		assert.Equal(t, ErrInvalidMaxAttempts, err)
	})
}

func TestIngest(t *testing.T) {
	path := writeDataset(t, `{"code": "e119", "description": "Type 2 diabetes mellitus without complications"}
{"code": "I10", "description": "Essential (primary) hypertension", "synonyms": ["high blood pressure"]}
{"code": "J45.909", "description": "Unspecified asthma, uncomplicated"}
`)

	loader, repo, _ := newTestLoader(t, WithBatchSize(2))
	ctx := context.Background()

	report, err := loader.Ingest(ctx, path, "all-minilm")
	require.NoError(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, 3, report.CodeCount)
	assert.Equal(t, 384, report.Dimension)
	assert.NotEmpty(t, report.Fingerprint)

	count, err := repo.CodeCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Identifier normalized to dotted canonical form, chapter derived.
	code, err := repo.GetCode(ctx, "E11.9")
	require.NoError(t, err)
	assert.Equal(t, hierarchy.ChapterEndocrine, code.Chapter)
	assert.Len(t, code.Vector, 384)

	code, err = repo.GetCode(ctx, "J45.909")
	require.NoError(t, err)
	assert.Equal(t, hierarchy.ChapterRespiratory, code.Chapter)

	info, err := repo.DatasetInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.Fingerprint, info.Fingerprint)
	assert.Equal(t, "all-minilm", info.EmbeddingModel)
	assert.Equal(t, 3, info.CodeCount)
	assert.Equal(t, 384, info.Dimension)
	assert.False(t, info.CreatedAt.IsZero())
}

func TestIngest_SkipsUnchangedDataset(t *testing.T) {
	path := writeDataset(t, `{"code": "I10", "description": "Essential hypertension"}
`)

	loader, _, embedder := newTestLoader(t)
	ctx := context.Background()

	first, err := loader.Ingest(ctx, path, "all-minilm")
	require.NoError(t, err)
	assert.False(t, first.Skipped)

	callsAfterFirst := embedder.CallCount()

	second, err := loader.Ingest(ctx, path, "all-minilm")
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first.CodeCount, second.CodeCount)

	// No embedding work on the skipped run.
	assert.Equal(t, callsAfterFirst, embedder.CallCount())
}

func TestIngest_ReingestsOnModelChange(t *testing.T) {
	path := writeDataset(t, `{"code": "I10", "description": "Essential hypertension"}
`)

	loader, _, _ := newTestLoader(t)
	ctx := context.Background()

	first, err := loader.Ingest(ctx, path, "all-minilm")
	require.NoError(t, err)
	assert.False(t, first.Skipped)

	second, err := loader.Ingest(ctx, path, "nomic-embed-text")
	require.NoError(t, err)
	assert.False(t, second.Skipped)
}

func TestIngest_ReplacesChangedCatalog(t *testing.T) {
	loader, repo, _ := newTestLoader(t)
	ctx := context.Background()

	path := writeDataset(t, `{"code": "I10", "description": "Essential hypertension"}
`)
	_, err := loader.Ingest(ctx, path, "all-minilm")
	require.NoError(t, err)

	path = writeDataset(t, `{"code": "E11.9", "description": "Type 2 diabetes mellitus"}
{"code": "E10.9", "description": "Type 1 diabetes mellitus"}
`)
	report, err := loader.Ingest(ctx, path, "all-minilm")
	require.NoError(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, 2, report.CodeCount)

	// The old catalog is gone.
	_, err = repo.GetCode(ctx, "I10")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	count, err := repo.CodeCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIngest_EmptyDataset(t *testing.T) {
	path := writeDataset(t, "\n\n")

	loader, _, _ := newTestLoader(t)
	_, err := loader.Ingest(context.Background(), path, "all-minilm")
	assert.ErrorIs(t, err, ErrEmptyDataset)
}
