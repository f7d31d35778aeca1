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

package server

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/medcode/ai"
	"github.com/poiesic/medcode/core"
	"github.com/poiesic/medcode/hierarchy"
	"github.com/poiesic/medcode/index"
	"github.com/poiesic/medcode/search"
	"github.com/poiesic/medcode/storage"
)

const (
	minSuggestTextLen  = 3
	maxSuggestTextLen  = 500
	minClinicalTextLen = 10
	maxClinicalTextLen = 5000
)

var (
	// ErrPipelineRequired is returned when a retrieval pipeline is not provided.
	ErrPipelineRequired = errors.New("retrieval pipeline required")

	// ErrAggregatorRequired is returned when an aggregator is not provided.
	ErrAggregatorRequired = errors.New("aggregator required")

	// ErrDetectorRequired is returned when a chapter detector is not provided.
	ErrDetectorRequired = errors.New("chapter detector required")

	// ErrRepositoryRequired is returned when a code repository is not provided.
	ErrRepositoryRequired = errors.New("code repository required")
)

// Deps holds the retrieval components the server serves.
// Extractor may be nil; the clinical endpoint then always uses raw text.
type Deps struct {
	Pipeline   *search.Pipeline
	Aggregator *search.Aggregator
	Extractor  ai.EntityExtractor
	Detector   *hierarchy.Detector
	Repository storage.CodeRepository
	Index      index.Index
}

// Server handles HTTP requests for code suggestions.
type Server struct {
	deps              Deps
	topK              int
	perQueryK         int
	minConfidence     float64
	extractionEnabled bool
	logger            *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithTopK sets the number of suggestions returned by POST /suggest.
func WithTopK(topK int) Option {
	return func(s *Server) error {
		if err := core.ValidateTopK(topK); err != nil {
			return err
		}
		s.topK = topK
		return nil
	}
}

// WithPerQueryK sets the per-query fetch count used by the clinical
// endpoint. Default is search.DefaultPerQueryK.
func WithPerQueryK(perQueryK int) Option {
	return func(s *Server) error {
		if err := core.ValidateTopK(perQueryK); err != nil {
			return err
		}
		s.perQueryK = perQueryK
		return nil
	}
}

// WithMinConfidence sets the confidence floor used when a request does not
// carry one. Default is search.DefaultMinConfidence.
func WithMinConfidence(minConfidence float64) Option {
	return func(s *Server) error {
		if err := core.ValidateMinConfidence(minConfidence); err != nil {
			return err
		}
		s.minConfidence = minConfidence
		return nil
	}
}

// WithExtractionEnabled toggles LLM entity extraction on the clinical
// endpoint. Default is true when an extractor is supplied.
func WithExtractionEnabled(enabled bool) Option {
	return func(s *Server) error {
		s.extractionEnabled = enabled
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a new suggestion server.
func New(deps Deps, opts ...Option) (*Server, error) {
	if deps.Pipeline == nil {
		return nil, ErrPipelineRequired
	}
	if deps.Aggregator == nil {
		return nil, ErrAggregatorRequired
	}
	if deps.Detector == nil {
		return nil, ErrDetectorRequired
	}
	if deps.Repository == nil {
		return nil, ErrRepositoryRequired
	}

	s := &Server{
		deps:              deps,
		topK:              5,
		perQueryK:         search.DefaultPerQueryK,
		minConfidence:     search.DefaultMinConfidence,
		extractionEnabled: deps.Extractor != nil,
		logger:            slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SetupRouter builds the gin engine with all routes and middleware.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), requestLogger(s.logger), gin.Recovery())

	r.POST("/suggest", s.Suggest)
	r.POST("/suggest/clinical", s.SuggestClinical)
	r.GET("/detect", s.Detect)
	r.GET("/chapters", s.Chapters)
	r.GET("/health", s.Health)

	return r
}

// Suggest returns ranked code suggestions for a short clinical phrase.
func (s *Server) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if len(req.Text) < minSuggestTextLen || len(req.Text) > maxSuggestTextLen {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "text must be between 3 and 500 characters"})
		return
	}

	minConfidence := s.minConfidence
	if req.MinConfidence != nil {
		minConfidence = *req.MinConfidence
	}
	if err := core.ValidateMinConfidence(minConfidence); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	candidates, err := s.deps.Pipeline.Retrieve(c.Request.Context(), req.Text, s.topK)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	results := make([]CodeResult, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Confidence < minConfidence {
			continue
		}
		results = append(results, s.formatResult(c, candidate))
	}

	c.JSON(http.StatusOK, SuggestResponse{Results: results})
}

// SuggestClinical runs entity extraction over a full clinical note, then
// retrieves and merges suggestions per extracted query. When extraction is
// disabled or fails the raw note text is the single query.
func (s *Server) SuggestClinical(c *gin.Context) {
	var req ClinicalSuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if len(req.ClinicalNotes) < minClinicalTextLen || len(req.ClinicalNotes) > maxClinicalTextLen {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "clinical_notes must be between 10 and 5000 characters"})
		return
	}

	minConfidence := s.minConfidence
	if req.MinConfidence != nil {
		minConfidence = *req.MinConfidence
	}
	if err := core.ValidateMinConfidence(minConfidence); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	extractionEnabled := s.extractionEnabled && s.deps.Extractor != nil
	if req.EnableExtraction != nil {
		extractionEnabled = extractionEnabled && *req.EnableExtraction
	}

	var entities *ai.ExtractedEntities
	if extractionEnabled {
		extracted, err := s.deps.Extractor.ExtractEntities(c.Request.Context(), req.ClinicalNotes)
		if err != nil {
			s.logger.Error("entity extraction failed, falling back to raw text",
				"requestID", c.GetString("requestID"), "err", err)
		} else {
			entities = extracted
		}
	}

	queries := []string{req.ClinicalNotes}
	if entities != nil {
		if focused := entities.SearchQueries(); len(focused) > 0 {
			queries = focused
		}
	}

	candidates, err := s.deps.Aggregator.Aggregate(c.Request.Context(), queries, s.perQueryK, minConfidence)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	results := make([]CodeResult, 0, len(candidates))
	for _, candidate := range candidates {
		results = append(results, s.formatResult(c, candidate))
	}

	resp := ClinicalSuggestResponse{
		Results:           results,
		DocumentationGaps: []string{},
	}
	if entities != nil {
		resp.DocumentationGaps = entities.DocumentationGaps
		resp.ExtractedEntities = &ExtractedEntitySummary{
			PrimaryDiagnosis: entities.PrimaryDiagnosis,
			Symptoms:         entities.Symptoms,
			AnatomicalSites:  entities.AnatomicalSites,
			Laterality:       entities.Laterality,
			Severity:         entities.Severity,
			Chronicity:       entities.Chronicity,
			Comorbidities:    entities.Comorbidities,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Detect returns the chapter detected from the text query parameter.
func (s *Server) Detect(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "text query parameter required"})
		return
	}

	chapter, detected := s.deps.Detector.Detect(text)
	c.JSON(http.StatusOK, DetectResponse{Chapter: chapter, Detected: detected})
}

// Chapters returns the full chapter list.
func (s *Server) Chapters(c *gin.Context) {
	c.JSON(http.StatusOK, ChaptersResponse{Chapters: hierarchy.Chapters()})
}

// Health reports readiness and catalog statistics.
func (s *Server) Health(c *gin.Context) {
	resp := HealthResponse{Status: "healthy"}

	if count, err := s.deps.Repository.CodeCount(c.Request.Context()); err == nil {
		resp.CodeCount = count
	}
	if s.deps.Index != nil {
		resp.IndexSize = s.deps.Index.Size()
	}
	if info, err := s.deps.Repository.DatasetInfo(c.Request.Context()); err == nil {
		resp.EmbeddingModel = info.EmbeddingModel
		resp.Dimension = info.Dimension
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) formatResult(c *gin.Context, candidate *core.Candidate) CodeResult {
	code := candidate.Code
	synonyms := code.Synonyms
	if synonyms == nil {
		synonyms = []string{}
	}

	return CodeResult{
		Code:             code.Id,
		Description:      code.Description,
		Chapter:          code.Chapter,
		ConfidenceScore:  math.Round(candidate.Confidence*100) / 100,
		Explanation:      candidate.Explanation,
		Synonyms:         synonyms,
		ValidationStatus: validateCode(c.Request.Context(), s.deps.Repository, code.Id),
	}
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	requestID := c.GetString("requestID")

	switch {
	case errors.Is(err, core.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrNotReady):
		s.logger.Error("retrieval dependencies not ready", "requestID", requestID, "err", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", "requestID", requestID, "err", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
