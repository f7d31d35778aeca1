package server

// SuggestRequest is the body of POST /suggest.
type SuggestRequest struct {
	Text          string   `json:"text" binding:"required"`
	MinConfidence *float64 `json:"min_confidence,omitempty"`
}

// ValidationStatus reports whether a code is a known catalog member.
type ValidationStatus struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// CodeResult is a single suggestion in a response.
type CodeResult struct {
	Code             string           `json:"code"`
	Description      string           `json:"description"`
	Chapter          string           `json:"chapter"`
	ConfidenceScore  float64          `json:"confidence_score"`
	Explanation      string           `json:"explanation"`
	Synonyms         []string         `json:"synonyms"`
	ValidationStatus ValidationStatus `json:"validation_status"`
}

// SuggestResponse is the body returned by POST /suggest.
type SuggestResponse struct {
	Results []CodeResult `json:"results"`
}

// ClinicalSuggestRequest is the body of POST /suggest/clinical.
type ClinicalSuggestRequest struct {
	ClinicalNotes    string   `json:"clinical_notes" binding:"required"`
	MinConfidence    *float64 `json:"min_confidence,omitempty"`
	EnableExtraction *bool    `json:"enable_extraction,omitempty"`
}

// ExtractedEntitySummary carries the clinical entities surfaced alongside
// clinical suggestions.
type ExtractedEntitySummary struct {
	PrimaryDiagnosis string   `json:"primary_diagnosis,omitempty"`
	Symptoms         []string `json:"symptoms,omitempty"`
	AnatomicalSites  []string `json:"anatomical_sites,omitempty"`
	Laterality       string   `json:"laterality,omitempty"`
	Severity         string   `json:"severity,omitempty"`
	Chronicity       string   `json:"chronicity,omitempty"`
	Comorbidities    []string `json:"comorbidities,omitempty"`
}

// ClinicalSuggestResponse is the body returned by POST /suggest/clinical.
type ClinicalSuggestResponse struct {
	Results           []CodeResult            `json:"results"`
	DocumentationGaps []string                `json:"documentation_gaps"`
	ExtractedEntities *ExtractedEntitySummary `json:"extracted_entities,omitempty"`
}

// DetectResponse is the body returned by GET /detect.
type DetectResponse struct {
	Chapter  string `json:"chapter,omitempty"`
	Detected bool   `json:"detected"`
}

// ChaptersResponse is the body returned by GET /chapters.
type ChaptersResponse struct {
	Chapters []string `json:"chapters"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status         string `json:"status"`
	CodeCount      int    `json:"code_count"`
	IndexSize      int    `json:"index_size"`
	EmbeddingModel string `json:"embedding_model,omitempty"`
	Dimension      int    `json:"dimension,omitempty"`
}

// ErrorResponse carries an error message to the client.
type ErrorResponse struct {
	Error string `json:"error"`
}
