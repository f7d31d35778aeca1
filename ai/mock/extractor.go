package mock

import (
	"context"
	"strings"

	"github.com/poiesic/medcode/ai"
)

// MockEntityExtractor is a test double for ai.EntityExtractor.
// It allows custom behavior injection via function fields.
type MockEntityExtractor struct {
	// ExtractEntitiesFunc is called by ExtractEntities if set.
	// If nil, uses default deterministic behavior.
	ExtractEntitiesFunc func(ctx context.Context, text string) (*ai.ExtractedEntities, error)

	callCount int
}

// NewMockEntityExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockEntityExtractor() *MockEntityExtractor {
	return &MockEntityExtractor{}
}

// ExtractEntities produces simple deterministic entities from text.
// Default behavior: the first line (or sentence) becomes the primary
// diagnosis, remaining lines become comorbidities, and the full text is the
// enriched query.
func (m *MockEntityExtractor) ExtractEntities(ctx context.Context, text string) (*ai.ExtractedEntities, error) {
	m.callCount++

	if m.ExtractEntitiesFunc != nil {
		return m.ExtractEntitiesFunc(ctx, text)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &ai.ExtractedEntities{
			PrimaryDiagnosis: ai.PrimaryDiagnosisUnknown,
			EnrichedQuery:    text,
		}, nil
	}

	lines := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '\n' || r == '.' || r == ';'
	})

	entities := &ai.ExtractedEntities{
		PrimaryDiagnosis: strings.TrimSpace(lines[0]),
		EnrichedQuery:    trimmed,
	}
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line != "" {
			entities.Comorbidities = append(entities.Comorbidities, line)
		}
	}
	return entities, nil
}

// CallCount returns the number of times ExtractEntities was called.
func (m *MockEntityExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockEntityExtractor) Reset() {
	m.callCount = 0
	m.ExtractEntitiesFunc = nil
}
