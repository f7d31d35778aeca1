package index

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/poiesic/medcode/core"
	"github.com/poiesic/medcode/storage"
)

// Memory is a brute-force in-memory index over Euclidean distance.
// Vectors are loaded once at startup; Search only reads, so concurrent
// queries need no coordination beyond the read lock guarding load order.
type Memory struct {
	mu        sync.RWMutex
	dimension int
	ids       []string
	vectors   [][]float32
}

var _ Index = (*Memory)(nil)

// NewMemory creates an empty in-memory index.
func NewMemory() *Memory { return &Memory{} }

// Add inserts a vector under the given code identifier.
// The first vector fixes the index dimension; later vectors must match it.
func (m *Memory) Add(id string, vector []float32) error {
	if len(vector) == 0 {
		return errors.New("index: empty vector")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dimension == 0 {
		m.dimension = len(vector)
	} else if len(vector) != m.dimension {
		return errors.New("index: vector dimension mismatch")
	}

	m.ids = append(m.ids, id)
	m.vectors = append(m.vectors, vector)
	return nil
}

// Search returns up to k entries nearest to vector, distance-ascending.
// Equal distances keep insertion order.
func (m *Memory) Search(ctx context.Context, vector []float32, k int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if k <= 0 || len(m.vectors) == 0 {
		return []Entry{}, nil
	}

	entries := make([]Entry, len(m.vectors))
	for i, v := range m.vectors {
		entries[i] = Entry{
			CodeId:   m.ids[i],
			Distance: euclideanDistance(vector, v),
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Distance < entries[j].Distance
	})

	if len(entries) > k {
		entries = entries[:k]
	}
	return entries, nil
}

// Size returns the number of vectors in the index.
func (m *Memory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vectors)
}

// Load builds an in-memory index from every embedded code in the repository.
// Codes without vectors are skipped.
func Load(ctx context.Context, repo storage.CodeRepository) (*Memory, error) {
	m := NewMemory()
	err := repo.ForEachCode(ctx, func(code *core.Code) error {
		if len(code.Vector) == 0 {
			return nil
		}
		return m.Add(code.Id, code.Vector)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// euclideanDistance computes the L2 distance between two vectors.
// Mismatched lengths compare only the shared prefix; the loader guarantees
// uniform dimensions so this only matters for malformed queries.
func euclideanDistance(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}
