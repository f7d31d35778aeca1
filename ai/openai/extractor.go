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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/medcode/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// EntityExtractor implements ai.EntityExtractor using OpenAI-compatible chat APIs.
type EntityExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// extraction is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type extraction struct {
	PrimaryDiagnosis  string   `json:"primary_diagnosis"`
	Symptoms          []string `json:"symptoms"`
	AnatomicalSites   []string `json:"anatomical_sites"`
	Laterality        *string  `json:"laterality"`
	Severity          *string  `json:"severity"`
	Chronicity        *string  `json:"chronicity"`
	Comorbidities     []string `json:"comorbidities"`
	Procedures        []string `json:"procedures"`
	Exclusions        []string `json:"exclusions"`
	EnrichedQuery     string   `json:"enriched_query"`
	DocumentationGaps []string `json:"documentation_gaps"`
}

// newEntityExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEntityExtractor(config *ai.Config) (*EntityExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Local OpenAI-compatible endpoints ignore the token, but the client
	// requires one to be set.
	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &EntityExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewEntityExtractor creates a new entity extractor using the provided configuration.
//
// Returns ai.EntityExtractor interface to enforce abstraction.
func NewEntityExtractor(config *ai.Config) (ai.EntityExtractor, error) {
	return newEntityExtractor(config)
}

// ExtractEntities extracts structured clinical entities from a note using an LLM.
// When the model response cannot be parsed after retries, it falls back to a
// minimal result carrying the raw text as the enriched query, so retrieval can
// proceed with unstructured input.
func (e *EntityExtractor) ExtractEntities(ctx context.Context, text string) (*ai.ExtractedEntities, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart("Clinical Text:\n" + text + "\n\nExtract clinical entities and generate an enriched query for diagnostic coding."),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result extraction
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return fallbackEntities(text), nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extractor response after retries, falling back to raw text", "err", lastErr)
		return fallbackEntities(text), nil
	}

	entities := &ai.ExtractedEntities{
		PrimaryDiagnosis:  result.PrimaryDiagnosis,
		Symptoms:          result.Symptoms,
		AnatomicalSites:   result.AnatomicalSites,
		Laterality:        deref(result.Laterality),
		Severity:          deref(result.Severity),
		Chronicity:        deref(result.Chronicity),
		Comorbidities:     result.Comorbidities,
		Procedures:        result.Procedures,
		Exclusions:        result.Exclusions,
		EnrichedQuery:     result.EnrichedQuery,
		DocumentationGaps: result.DocumentationGaps,
	}
	if entities.PrimaryDiagnosis == "" {
		entities.PrimaryDiagnosis = ai.PrimaryDiagnosisUnknown
	}
	if entities.EnrichedQuery == "" {
		entities.EnrichedQuery = text
	}

	e.logger.Debug("extracted entities",
		"primaryDiagnosis", entities.PrimaryDiagnosis,
		"comorbidities", len(entities.Comorbidities),
		"gaps", len(entities.DocumentationGaps))

	return entities, nil
}

// fallbackEntities builds the minimal extraction result used when the model
// produced nothing parseable: the raw note becomes the search query.
func fallbackEntities(text string) *ai.ExtractedEntities {
	return &ai.ExtractedEntities{
		PrimaryDiagnosis:  ai.PrimaryDiagnosisUnknown,
		EnrichedQuery:     text,
		DocumentationGaps: []string{"Entity extraction failed - using raw text"},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
