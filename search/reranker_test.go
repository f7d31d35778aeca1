package search

import (
	"testing"

	"github.com/poiesic/medcode/core"
	"github.com/poiesic/medcode/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(id, chapter string, confidence float64) *core.Candidate {
	return &core.Candidate{
		Code:        &core.Code{Id: id, Description: id, Chapter: chapter},
		Confidence:  confidence,
		Explanation: "Semantic match with query terms",
	}
}

func TestNewReranker(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		reranker, err := NewReranker(hierarchy.NewDetector())
		require.NoError(t, err)
		assert.NotNil(t, reranker)
	})

	t.Run("nil detector", func(t *testing.T) {
		_, err := NewReranker(nil)
		assert.Equal(t, ErrDetectorRequired, err)
	})

	t.Run("boost factor must exceed one", func(t *testing.T) {
		_, err := NewReranker(hierarchy.NewDetector(), WithBoostFactor(1.0))
		assert.ErrorIs(t, err, core.ErrInvalidArgument)

		_, err = NewReranker(hierarchy.NewDetector(), WithBoostFactor(0.5))
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})

	t.Run("custom boost factor", func(t *testing.T) {
		reranker, err := NewReranker(hierarchy.NewDetector(), WithBoostFactor(1.5))
		require.NoError(t, err)
		assert.Equal(t, 1.5, reranker.boostFactor)
	})
}

func TestRerank_BoostFlipsOrder(t *testing.T) {
	reranker, err := NewReranker(hierarchy.NewDetector())
	require.NoError(t, err)

	// Hypertension leads on raw similarity, but the query names diabetes so
	// the endocrine candidate is boosted past it: 0.60 * 1.2 = 0.72.
	candidates := []*core.Candidate{
		candidate("I10", hierarchy.ChapterCirculatory, 0.65),
		candidate("E11.9", hierarchy.ChapterEndocrine, 0.60),
	}

	ranked := reranker.Rerank("type 2 diabetes with complications", candidates)
	require.Len(t, ranked, 2)

	assert.Equal(t, "E11.9", ranked[0].Code.Id)
	assert.InDelta(t, 0.72, ranked[0].Confidence, 1e-9)
	assert.Equal(t, "I10", ranked[1].Code.Id)
	assert.InDelta(t, 0.65, ranked[1].Confidence, 1e-9)
}

func TestRerank_ExplanationSuffix(t *testing.T) {
	reranker, err := NewReranker(hierarchy.NewDetector())
	require.NoError(t, err)

	candidates := []*core.Candidate{
		candidate("E11.9", hierarchy.ChapterEndocrine, 0.6),
		candidate("I10", hierarchy.ChapterCirculatory, 0.5),
	}

	ranked := reranker.Rerank("diabetes mellitus", candidates)

	assert.Equal(t, "Semantic match with query terms Matches "+hierarchy.ChapterEndocrine+" hierarchy.", ranked[0].Explanation)
	assert.Equal(t, "Semantic match with query terms", ranked[1].Explanation)
}

func TestRerank_NoChapterDetected(t *testing.T) {
	reranker, err := NewReranker(hierarchy.NewDetector())
	require.NoError(t, err)

	candidates := []*core.Candidate{
		candidate("E11.9", hierarchy.ChapterEndocrine, 0.4),
		candidate("I10", hierarchy.ChapterCirculatory, 0.7),
	}

	ranked := reranker.Rerank("zzz qqq xxx", candidates)
	require.Len(t, ranked, 2)

	// No boost, but the slice still comes back sorted descending.
	assert.Equal(t, "I10", ranked[0].Code.Id)
	assert.InDelta(t, 0.7, ranked[0].Confidence, 1e-9)
	assert.InDelta(t, 0.4, ranked[1].Confidence, 1e-9)
	assert.Equal(t, "Semantic match with query terms", ranked[0].Explanation)
}

func TestRerank_BoostClampsToOne(t *testing.T) {
	reranker, err := NewReranker(hierarchy.NewDetector())
	require.NoError(t, err)

	candidates := []*core.Candidate{
		candidate("E11.9", hierarchy.ChapterEndocrine, 0.95),
	}

	ranked := reranker.Rerank("diabetes", candidates)
	require.Len(t, ranked, 1)
	assert.Equal(t, 1.0, ranked[0].Confidence)
}

func TestRerank_StableOnTies(t *testing.T) {
	reranker, err := NewReranker(hierarchy.NewDetector())
	require.NoError(t, err)

	candidates := []*core.Candidate{
		candidate("I10", hierarchy.ChapterCirculatory, 0.5),
		candidate("I11.0", hierarchy.ChapterCirculatory, 0.5),
		candidate("I12.9", hierarchy.ChapterCirculatory, 0.5),
	}

	ranked := reranker.Rerank("zzz", candidates)
	require.Len(t, ranked, 3)
	assert.Equal(t, "I10", ranked[0].Code.Id)
	assert.Equal(t, "I11.0", ranked[1].Code.Id)
	assert.Equal(t, "I12.9", ranked[2].Code.Id)
}

func TestRerank_EmptyInput(t *testing.T) {
	reranker, err := NewReranker(hierarchy.NewDetector())
	require.NoError(t, err)

	ranked := reranker.Rerank("diabetes", []*core.Candidate{})
	assert.Empty(t, ranked)
}
