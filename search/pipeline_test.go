package search

import (
	"context"
	"testing"

	"github.com/poiesic/medcode/core"
	"github.com/poiesic/medcode/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, codes []*core.Code, vectors map[string][]float32) *Pipeline {
	t.Helper()

	repo, idx, embedder, cleanup := newCatalogFixture(t, codes, vectors)
	t.Cleanup(cleanup)

	searcher, err := NewSearcher(repo, idx, embedder)
	require.NoError(t, err)

	reranker, err := NewReranker(hierarchy.NewDetector())
	require.NoError(t, err)

	pipeline, err := NewPipeline(searcher, reranker)
	require.NoError(t, err)
	return pipeline
}

func TestNewPipeline(t *testing.T) {
	codes := []*core.Code{
		{Id: "E11.9", Description: "Type 2 diabetes mellitus", Chapter: hierarchy.ChapterEndocrine, Vector: []float32{0, 0, 0}},
	}
	repo, idx, embedder, cleanup := newCatalogFixture(t, codes, nil)
	defer cleanup()

	searcher, err := NewSearcher(repo, idx, embedder)
	require.NoError(t, err)
	reranker, err := NewReranker(hierarchy.NewDetector())
	require.NoError(t, err)

	t.Run("valid configuration", func(t *testing.T) {
		pipeline, err := NewPipeline(searcher, reranker)
		require.NoError(t, err)
		assert.NotNil(t, pipeline)
	})

	t.Run("nil searcher", func(t *testing.T) {
		_, err := NewPipeline(nil, reranker)
		assert.Equal(t, ErrSearcherRequired, err)
	})

	t.Run("nil reranker", func(t *testing.T) {
		_, err := NewPipeline(searcher, nil)
		assert.Equal(t, ErrRerankerRequired, err)
	})
}

func TestRetrieve_OverfetchSurfacesBoostedCandidate(t *testing.T) {
	// The endocrine code is the second-nearest neighbour; with topK=1 it
	// only survives because the pipeline fetches 2*topK before reranking.
	// Distances from the query vector: I10 at 0.5, E11.9 at 0.7.
	// Confidences: I10 = 1/1.5 ≈ 0.667, E11.9 = (1/1.7) * 1.2 ≈ 0.706.
	codes := []*core.Code{
		{Id: "I10", Description: "Essential hypertension", Chapter: hierarchy.ChapterCirculatory, Vector: []float32{0.5, 0, 0}},
		{Id: "E11.9", Description: "Type 2 diabetes mellitus", Chapter: hierarchy.ChapterEndocrine, Vector: []float32{0, 0.7, 0}},
	}
	vectors := map[string][]float32{
		"diabetes symptoms": {0, 0, 0},
	}
	pipeline := newTestPipeline(t, codes, vectors)

	candidates, err := pipeline.Retrieve(context.Background(), "diabetes symptoms", 1)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.Equal(t, "E11.9", candidates[0].Code.Id)
	assert.InDelta(t, 1.2/1.7, candidates[0].Confidence, 1e-6)
}

func TestRetrieve_TruncatesToTopK(t *testing.T) {
	codes := []*core.Code{
		{Id: "A00", Description: "Cholera", Chapter: hierarchy.ChapterInfectious, Vector: []float32{0.1, 0, 0}},
		{Id: "A01.0", Description: "Typhoid fever", Chapter: hierarchy.ChapterInfectious, Vector: []float32{0.2, 0, 0}},
		{Id: "A02.0", Description: "Salmonella enteritis", Chapter: hierarchy.ChapterInfectious, Vector: []float32{0.3, 0, 0}},
		{Id: "A03.9", Description: "Shigellosis", Chapter: hierarchy.ChapterInfectious, Vector: []float32{0.4, 0, 0}},
	}
	vectors := map[string][]float32{
		"query": {0, 0, 0},
	}
	pipeline := newTestPipeline(t, codes, vectors)

	candidates, err := pipeline.Retrieve(context.Background(), "query", 2)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "A00", candidates[0].Code.Id)
	assert.Equal(t, "A01.0", candidates[1].Code.Id)
}

func TestRetrieve_EmptyCatalogIsNotAnError(t *testing.T) {
	vectors := map[string][]float32{"query": {0, 0, 0}}
	pipeline := newTestPipeline(t, nil, vectors)

	candidates, err := pipeline.Retrieve(context.Background(), "query", 5)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRetrieve_InvalidTopK(t *testing.T) {
	vectors := map[string][]float32{"query": {0, 0, 0}}
	pipeline := newTestPipeline(t, nil, vectors)

	_, err := pipeline.Retrieve(context.Background(), "query", 0)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
