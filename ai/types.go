package ai

import "strings"

// ExtractedEntities is the structured result of clinical entity extraction.
// Field values are free text produced by the extractor; empty slices and
// empty strings mean "not found".
type ExtractedEntities struct {
	// PrimaryDiagnosis is the main condition stated in the note, or
	// "Unknown" when the extractor could not identify one.
	PrimaryDiagnosis string

	Symptoms        []string
	AnatomicalSites []string

	// Laterality is "left", "right", "bilateral", or empty.
	Laterality string
	// Severity is "mild", "moderate", "severe", or empty.
	Severity string
	// Chronicity is "acute", "chronic", "recurrent", or empty.
	Chronicity string

	Comorbidities []string
	Procedures    []string
	Exclusions    []string

	// EnrichedQuery combines the diagnosis with its modifiers into a single
	// expanded search query.
	EnrichedQuery string

	// DocumentationGaps lists missing specificity the extractor noticed,
	// e.g. "Missing laterality".
	DocumentationGaps []string
}

// PrimaryDiagnosisUnknown is the sentinel diagnosis value the extractor
// returns when it cannot identify a primary condition.
const PrimaryDiagnosisUnknown = "Unknown"

// SearchQueries builds the focused retrieval queries for these entities:
// the primary diagnosis followed by comorbidities and procedures, with empty
// entries skipped. Returns nil when no primary diagnosis was identified, in
// which case the caller should search with the raw note instead.
func (e *ExtractedEntities) SearchQueries() []string {
	if e == nil || e.PrimaryDiagnosis == "" || e.PrimaryDiagnosis == PrimaryDiagnosisUnknown {
		return nil
	}

	queries := make([]string, 0, 1+len(e.Comorbidities)+len(e.Procedures))
	queries = append(queries, e.PrimaryDiagnosis)
	for _, q := range e.Comorbidities {
		if strings.TrimSpace(q) != "" {
			queries = append(queries, q)
		}
	}
	for _, q := range e.Procedures {
		if strings.TrimSpace(q) != "" {
			queries = append(queries, q)
		}
	}
	return queries
}
