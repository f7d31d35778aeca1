package index

import "context"

// Entry is a single nearest-neighbour hit: a catalog code identifier and its
// raw vector distance from the query (non-negative, smaller = closer).
type Entry struct {
	CodeId   string
	Distance float32
}

// Index is the k-nearest-neighbour oracle consumed by semantic search.
// Implementations hold pre-loaded vectors and must be safe for concurrent
// read access.
type Index interface {
	// Search returns up to k entries nearest to vector, ordered by distance
	// ascending. When the collection holds fewer than k vectors it returns
	// fewer entries rather than erroring.
	Search(ctx context.Context, vector []float32, k int) ([]Entry, error)

	// Size returns the number of vectors in the index.
	Size() int
}
