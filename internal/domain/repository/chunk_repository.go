package repository

import (
	"context"

	"research-api/internal/domain/entity"
)

// ChunkIndex stores chunk vectors per project collection and supports
// nearest-neighbor search. Search never crosses project boundaries.
type ChunkIndex interface {
	// Upsert replaces any existing entry with the same chunk id.
	Upsert(ctx context.Context, projectID string, chunks []entity.DocumentChunk) error
	// Search returns up to k chunks ordered by cosine similarity descending,
	// ties broken by chunk index ascending.
	Search(ctx context.Context, projectID string, vector []float32, k int) ([]entity.SimilarChunk, error)
	DeleteByDocument(ctx context.Context, projectID, documentID string) error
	ListByDocument(ctx context.Context, documentID string) ([]entity.DocumentChunk, error)
	// EmbeddingModels reports the distinct embedding model ids present in a
	// project collection, so stale vectors are detectable before querying.
	EmbeddingModels(ctx context.Context, projectID string) ([]string, error)
}
