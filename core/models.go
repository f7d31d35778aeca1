package core

//go:generate go run ../cmd/musgen

import (
	"time"
)

// Code is a single entry in the diagnostic code catalog.
// Codes are loaded once at startup and are read-only afterwards.
type Code struct {
	Id          string    // Canonical dotted form, e.g. "E11.621"
	Description string    // Human-readable description
	Chapter     string    // Hierarchy chapter the code belongs to
	Synonyms    []string  // Alternate descriptions, may be empty
	Vector      []float32 // Embedding vector (populated during ingestion)
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// Candidate is a scored, transient reference to a catalog Code produced by
// one retrieval call. It is owned by the invocation that produced it and is
// never shared across requests.
type Candidate struct {
	Code        *Code
	Distance    float32 // Raw vector distance, non-negative, smaller = closer
	Confidence  float64 // Derived score in [0, 1]
	Explanation string  // Built incrementally during reranking
}

// DatasetInfo describes the ingested dataset. It is stored alongside the
// catalog so a restart can tell whether the source dataset changed.
type DatasetInfo struct {
	Fingerprint    string // blake2b hash of the source dataset file
	EmbeddingModel string
	Dimension      int
	CodeCount      int
	CreatedAt      time.Time
}
