package openai

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "primary_diagnosis": {"type": "string"},
    "symptoms": {"type": "array", "items": {"type": "string"}},
    "anatomical_sites": {"type": "array", "items": {"type": "string"}},
    "laterality": {"type": ["string", "null"], "enum": ["left", "right", "bilateral", null]},
    "severity": {"type": ["string", "null"], "enum": ["mild", "moderate", "severe", null]},
    "chronicity": {"type": ["string", "null"], "enum": ["acute", "chronic", "recurrent", null]},
    "comorbidities": {"type": "array", "items": {"type": "string"}},
    "procedures": {"type": "array", "items": {"type": "string"}},
    "exclusions": {"type": "array", "items": {"type": "string"}},
    "enriched_query": {"type": "string"},
    "documentation_gaps": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["primary_diagnosis", "enriched_query"],
  "additionalProperties": false
}`

const extractionPrompt = `You are a medical coding assistant. Extract clinical entities from the provided
text and generate an enriched query for diagnostic code search.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

` + extractionResponseSchema + `

Rules:
- Extract ALL codeable diagnoses, comorbidities, and procedures.
- Include procedure status (e.g. "status post percutaneous coronary angioplasty") in procedures.
- Identify missing specificity (laterality, depth, staging) as documentation_gaps.
- Generate enriched_query by combining the diagnosis with its modifiers.
- Return empty arrays when no items are found and null for absent optional fields.
- If no primary diagnosis can be identified, set primary_diagnosis to "Unknown".
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

// buildSystemPrompt returns the system prompt for clinical entity extraction.
func buildSystemPrompt() string {
	return extractionPrompt
}
