package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/medcode/core"
	"github.com/poiesic/medcode/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregator(t *testing.T, codes []*core.Code, vectors map[string][]float32, opts ...AggregatorOption) *Aggregator {
	t.Helper()

	pipeline := newTestPipeline(t, codes, vectors)
	aggregator, err := NewAggregator(pipeline, opts...)
	require.NoError(t, err)
	t.Cleanup(aggregator.Release)
	return aggregator
}

func TestNewAggregator(t *testing.T) {
	pipeline := newTestPipeline(t, nil, nil)

	t.Run("valid configuration", func(t *testing.T) {
		aggregator, err := NewAggregator(pipeline)
		require.NoError(t, err)
		assert.NotNil(t, aggregator)
		aggregator.Release()
	})

	t.Run("nil pipeline", func(t *testing.T) {
		_, err := NewAggregator(nil)
		assert.Equal(t, ErrPipelineRequired, err)
	})

	t.Run("with pool size", func(t *testing.T) {
		aggregator, err := NewAggregator(pipeline, WithAggregatorPoolSize(4))
		require.NoError(t, err)
		assert.NotNil(t, aggregator)
		aggregator.Release()
	})
}

func TestAggregate_MergeKeepsBestScorePerCode(t *testing.T) {
	// Both queries resolve the same code. Query "alpha" hits it at distance
	// 0 (confidence 1.0), query "beta" at distance 1 (confidence 0.5). The
	// merged ranking holds the code once, at the better score.
	codes := []*core.Code{
		{Id: "E11.9", Description: "Type 2 diabetes mellitus", Chapter: hierarchy.ChapterEndocrine, Vector: []float32{0, 0, 0}},
	}
	vectors := map[string][]float32{
		"alpha": {0, 0, 0},
		"beta":  {0, 1, 0},
	}
	aggregator := newTestAggregator(t, codes, vectors)

	candidates, err := aggregator.Aggregate(context.Background(), []string{"alpha", "beta"}, 3, 0.5)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.Equal(t, "E11.9", candidates[0].Code.Id)
	assert.InDelta(t, 1.0, candidates[0].Confidence, 1e-9)
}

func TestAggregate_TieKeepsEarlierQueryCandidate(t *testing.T) {
	// Both queries embed onto the code's vector, so each retrieves it at
	// distance 0. The diabetes query detects the Endocrine chapter and its
	// candidate is boosted then clamped back to 1.0, while "alpha" detects
	// nothing and scores a plain 1.0. Equal confidence must not replace the
	// candidate already held, so whichever query ran first decides the
	// surviving explanation.
	codes := []*core.Code{
		{Id: "E11.9", Description: "Type 2 diabetes mellitus", Chapter: hierarchy.ChapterEndocrine, Vector: []float32{0, 0, 0}},
	}
	vectors := map[string][]float32{
		"type 2 diabetes follow up": {0, 0, 0},
		"alpha":                     {0, 0, 0},
	}
	boostedSuffix := " Matches " + hierarchy.ChapterEndocrine + " hierarchy."

	t.Run("boosted candidate first", func(t *testing.T) {
		aggregator := newTestAggregator(t, codes, vectors)

		candidates, err := aggregator.Aggregate(context.Background(), []string{"type 2 diabetes follow up", "alpha"}, 3, 0.5)
		require.NoError(t, err)
		require.Len(t, candidates, 1)

		assert.InDelta(t, 1.0, candidates[0].Confidence, 1e-9)
		assert.Contains(t, candidates[0].Explanation, boostedSuffix)
	})

	t.Run("plain candidate first", func(t *testing.T) {
		aggregator := newTestAggregator(t, codes, vectors)

		candidates, err := aggregator.Aggregate(context.Background(), []string{"alpha", "type 2 diabetes follow up"}, 3, 0.5)
		require.NoError(t, err)
		require.Len(t, candidates, 1)

		assert.InDelta(t, 1.0, candidates[0].Confidence, 1e-9)
		assert.NotContains(t, candidates[0].Explanation, boostedSuffix)
	})
}

func TestAggregate_FiltersBelowMinConfidence(t *testing.T) {
	// Distances 0, 1 and 3 give confidences 1.0, 0.5 and 0.25.
	codes := []*core.Code{
		{Id: "A00", Description: "Cholera", Chapter: hierarchy.ChapterInfectious, Vector: []float32{0, 0, 0}},
		{Id: "A01.0", Description: "Typhoid fever", Chapter: hierarchy.ChapterInfectious, Vector: []float32{1, 0, 0}},
		{Id: "A02.0", Description: "Salmonella enteritis", Chapter: hierarchy.ChapterInfectious, Vector: []float32{3, 0, 0}},
	}
	vectors := map[string][]float32{
		"query": {0, 0, 0},
	}
	aggregator := newTestAggregator(t, codes, vectors)

	candidates, err := aggregator.Aggregate(context.Background(), []string{"query"}, 3, 0.5)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	// A candidate exactly at the floor survives; only strictly lower is cut.
	assert.Equal(t, "A00", candidates[0].Code.Id)
	assert.Equal(t, "A01.0", candidates[1].Code.Id)
	assert.InDelta(t, 0.5, candidates[1].Confidence, 1e-9)
}

func TestAggregate_CapsResults(t *testing.T) {
	// A single query caps the merged ranking at max(5, 2*1) = 5 even when
	// more candidates clear the confidence floor.
	codes := make([]*core.Code, 7)
	vectors := map[string][]float32{"query": {0, 0, 0}}
	for i := range codes {
		codes[i] = &core.Code{
			Id:          fmt.Sprintf("A0%d", i),
			Description: fmt.Sprintf("Condition %d", i),
			Chapter:     hierarchy.ChapterInfectious,
			Vector:      []float32{float32(i) * 0.1, 0, 0},
		}
	}
	aggregator := newTestAggregator(t, codes, vectors)

	candidates, err := aggregator.Aggregate(context.Background(), []string{"query"}, 7, 0.0)
	require.NoError(t, err)
	assert.Len(t, candidates, 5)

	// Descending confidence after the cap.
	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Confidence, candidates[i].Confidence)
	}
}

func TestAggregate_SkipsEmptyQueries(t *testing.T) {
	codes := []*core.Code{
		{Id: "A00", Description: "Cholera", Chapter: hierarchy.ChapterInfectious, Vector: []float32{0, 0, 0}},
	}
	vectors := map[string][]float32{
		"query": {0, 0, 0},
	}
	aggregator := newTestAggregator(t, codes, vectors)

	// Blank entries never reach the embedder facade.
	candidates, err := aggregator.Aggregate(context.Background(), []string{"", "  ", "query"}, 3, 0.5)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "A00", candidates[0].Code.Id)
}

func TestAggregate_AllQueriesEmpty(t *testing.T) {
	aggregator := newTestAggregator(t, nil, nil)

	candidates, err := aggregator.Aggregate(context.Background(), []string{"", "   "}, 3, 0.5)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestAggregate_InvalidArguments(t *testing.T) {
	aggregator := newTestAggregator(t, nil, nil)
	ctx := context.Background()

	t.Run("zero perQueryK", func(t *testing.T) {
		_, err := aggregator.Aggregate(ctx, []string{"query"}, 0, 0.5)
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})

	t.Run("negative minConfidence", func(t *testing.T) {
		_, err := aggregator.Aggregate(ctx, []string{"query"}, 3, -0.1)
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})

	t.Run("minConfidence above one", func(t *testing.T) {
		_, err := aggregator.Aggregate(ctx, []string{"query"}, 3, 1.5)
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})
}

func TestAggregate_FailingQueryFailsTheCall(t *testing.T) {
	// "known" has a registered vector, "unknown" does not, so its embedding
	// call errors. Partial results must not be returned.
	codes := []*core.Code{
		{Id: "A00", Description: "Cholera", Chapter: hierarchy.ChapterInfectious, Vector: []float32{0, 0, 0}},
	}
	vectors := map[string][]float32{
		"known": {0, 0, 0},
	}
	aggregator := newTestAggregator(t, codes, vectors)

	candidates, err := aggregator.Aggregate(context.Background(), []string{"known", "unknown"}, 3, 0.5)
	require.Error(t, err)
	assert.Nil(t, candidates)
}
