package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"research-api/internal/domain/entity"
	"research-api/internal/domain/repository"
)

// chunkIndex is a brute-force cosine-similarity index with one collection
// per project. Useful for development and tests; the pgvector index is the
// production backend.
type chunkIndex struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

type collection struct {
	dimension int
	chunks    map[string]entity.DocumentChunk // by chunk id
}

func NewChunkIndex() repository.ChunkIndex {
	return &chunkIndex{collections: make(map[string]*collection)}
}

func (s *chunkIndex) Upsert(_ context.Context, projectID string, chunks []entity.DocumentChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[projectID]
	if !ok {
		col = &collection{chunks: make(map[string]entity.DocumentChunk)}
		s.collections[projectID] = col
	}

	for i := range chunks {
		dim := len(chunks[i].Embedding.Slice())
		if col.dimension == 0 {
			col.dimension = dim
		}
		if dim != col.dimension {
			return fmt.Errorf("%w: got %d, collection dimension %d",
				entity.ErrDimensionMismatch, dim, col.dimension)
		}
	}
	for i := range chunks {
		col.chunks[chunks[i].ID] = chunks[i]
	}
	return nil
}

func (s *chunkIndex) Search(_ context.Context, projectID string, vector []float32, k int) ([]entity.SimilarChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[projectID]
	if !ok || len(col.chunks) == 0 {
		return nil, nil
	}
	if len(vector) != col.dimension {
		return nil, fmt.Errorf("%w: got %d, collection dimension %d",
			entity.ErrDimensionMismatch, len(vector), col.dimension)
	}

	results := make([]entity.SimilarChunk, 0, len(col.chunks))
	for _, ch := range col.chunks {
		results = append(results, entity.SimilarChunk{
			DocumentChunk: ch,
			Similarity:    cosine(vector, ch.Embedding.Slice()),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		if results[i].ChunkIndex != results[j].ChunkIndex {
			return results[i].ChunkIndex < results[j].ChunkIndex
		}
		return results[i].ID < results[j].ID
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (s *chunkIndex) DeleteByDocument(_ context.Context, projectID, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[projectID]
	if !ok {
		return nil
	}
	for id, ch := range col.chunks {
		if ch.DocumentID == documentID {
			delete(col.chunks, id)
		}
	}
	return nil
}

func (s *chunkIndex) ListByDocument(_ context.Context, documentID string) ([]entity.DocumentChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var chunks []entity.DocumentChunk
	for _, col := range s.collections {
		for _, ch := range col.chunks {
			if ch.DocumentID == documentID {
				chunks = append(chunks, ch)
			}
		}
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].ChunkIndex < chunks[j].ChunkIndex })
	return chunks, nil
}

func (s *chunkIndex) EmbeddingModels(_ context.Context, projectID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[projectID]
	if !ok {
		return nil, nil
	}
	seen := make(map[string]bool)
	var models []string
	for _, ch := range col.chunks {
		if !seen[ch.EmbeddingModel] {
			seen[ch.EmbeddingModel] = true
			models = append(models, ch.EmbeddingModel)
		}
	}
	sort.Strings(models)
	return models, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
