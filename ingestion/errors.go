package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when a code repository is not provided.
	ErrRepositoryRequired = errors.New("code repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrEmptyDataset is returned when the dataset file contains no entries.
	ErrEmptyDataset = errors.New("dataset contains no entries")

	// ErrInvalidMaxAttempts is returned when retry attempts is not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")
)
