// Package ingestion loads a diagnostic code catalog from a JSONL dataset,
// generates embeddings for every entry, and persists the result.
//
// Datasets are fingerprinted with BLAKE2b so that re-running ingestion
// against an unchanged dataset and embedding model is a no-op. Embedding
// happens in batches across a worker pool since the embedding endpoint is
// the bottleneck for large catalogs.
package ingestion
