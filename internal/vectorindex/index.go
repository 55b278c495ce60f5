// Package vectorindex provides an in-memory flat nearest-neighbor index.
package vectorindex

import (
	"errors"
	"fmt"
	"sort"

	"papertutor/internal/models"
)

// Index holds every chunk embedding and performs exhaustive nearest-neighbor
// search. It owns both the vector matrix and the parallel chunk sequence in
// one structure, so row i can never drift from chunk i: the two are built
// together and replaced together.
type Index struct {
	dimension int
	vectors   [][]float32
	chunks    []models.Chunk
}

// Hit is one search result: a row of the index and its distance to the query.
type Hit struct {
	Row      int
	Distance float64
}

var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Build constructs a fresh index from a chunk sequence and its parallel
// embedding matrix. All vectors must share one dimension. There is no
// incremental insert; a new document means a new index.
func Build(chunks []models.Chunk, vectors [][]float32) (*Index, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("%d chunks but %d vectors", len(chunks), len(vectors))
	}
	if len(vectors) == 0 {
		return nil, errors.New("cannot build an empty index")
	}
	dimension := len(vectors[0])
	if dimension == 0 {
		return nil, errors.New("zero-dimension embedding")
	}
	for _, v := range vectors {
		if len(v) != dimension {
			return nil, ErrDimensionMismatch
		}
	}

	index := &Index{
		dimension: dimension,
		vectors:   make([][]float32, len(vectors)),
		chunks:    make([]models.Chunk, len(chunks)),
	}
	copy(index.vectors, vectors)
	copy(index.chunks, chunks)
	return index, nil
}

func (ix *Index) Len() int       { return len(ix.vectors) }
func (ix *Index) Dimension() int { return ix.dimension }

// Chunk returns the chunk stored at the given row.
func (ix *Index) Chunk(row int) models.Chunk { return ix.chunks[row] }

// Chunks returns the chunk sequence in row order.
func (ix *Index) Chunks() []models.Chunk { return ix.chunks }

// Search returns the k rows nearest to the query by squared Euclidean
// distance, ascending. A k larger than the corpus returns every row.
func (ix *Index) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			ErrDimensionMismatch, len(query), ix.dimension)
	}
	if k <= 0 {
		return nil, fmt.Errorf("invalid result count: %d", k)
	}

	hits := make([]Hit, len(ix.vectors))
	for i, v := range ix.vectors {
		hits[i] = Hit{Row: i, Distance: squaredDistance(query, v)}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Distance < hits[b].Distance })

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func squaredDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
