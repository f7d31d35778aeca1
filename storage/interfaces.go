package storage

import (
	"context"

	"github.com/poiesic/medcode/core"
)

// CodeRepository provides operations for the diagnostic code catalog.
// Implementations must be thread-safe and support concurrent read access;
// writes happen only during ingestion, before the catalog is served.
type CodeRepository interface {
	// AddCodes adds one or more codes to the catalog.
	// Sets InsertedAt/UpdatedAt timestamps if not already set.
	// Existing codes with the same identifier are overwritten.
	AddCodes(ctx context.Context, codes ...*core.Code) error

	// GetCode retrieves a single code by its canonical identifier.
	// Returns ErrNotFound if the code doesn't exist.
	GetCode(ctx context.Context, id string) (*core.Code, error)

	// GetCodes retrieves multiple codes by their identifiers.
	// Returns only the codes that exist (no error for missing codes).
	GetCodes(ctx context.Context, ids ...string) ([]*core.Code, error)

	// CodeCount returns the number of codes in the catalog.
	CodeCount(ctx context.Context) (int, error)

	// ForEachCode iterates over every code in the catalog.
	// Iteration stops at the first error returned by fn.
	ForEachCode(ctx context.Context, fn func(code *core.Code) error) error

	// DatasetInfo retrieves metadata about the ingested dataset.
	// Returns ErrNotFound if no dataset has been ingested.
	DatasetInfo(ctx context.Context) (*core.DatasetInfo, error)

	// SetDatasetInfo stores metadata about the ingested dataset.
	SetDatasetInfo(ctx context.Context, info *core.DatasetInfo) error

	// Clear removes all codes and dataset metadata.
	// Used before re-ingesting a changed dataset.
	Clear(ctx context.Context) error

	// Close closes the repository and releases resources.
	Close() error
}
