package memory

import (
	"context"
	"testing"

	"research-api/internal/domain/entity"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(id, docID string, idx int, vec []float32) entity.DocumentChunk {
	return entity.DocumentChunk{
		ID:             id,
		DocumentID:     docID,
		ChunkIndex:     idx,
		Content:        "content of " + id,
		Embedding:      pgvector.NewVector(vec),
		EmbeddingModel: "text-embedding-3-small",
	}
}

func TestSearchRanksByCosineSimilarity(t *testing.T) {
	ctx := context.Background()
	idx := NewChunkIndex()

	require.NoError(t, idx.Upsert(ctx, "p1", []entity.DocumentChunk{
		chunk("a", "doc1", 0, []float32{1, 0, 0}),
		chunk("b", "doc1", 1, []float32{0.9, 0.1, 0}),
		chunk("c", "doc1", 2, []float32{0, 1, 0}),
	}))

	got, err := idx.Search(ctx, "p1", []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Greater(t, got[0].Similarity, got[1].Similarity)
}

func TestSearchTieBreaksOnChunkIndex(t *testing.T) {
	ctx := context.Background()
	idx := NewChunkIndex()

	// identical vectors, identical similarity
	require.NoError(t, idx.Upsert(ctx, "p1", []entity.DocumentChunk{
		chunk("later", "doc1", 5, []float32{1, 0}),
		chunk("earlier", "doc1", 2, []float32{1, 0}),
	}))

	got, err := idx.Search(ctx, "p1", []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "earlier", got[0].ID)
	assert.Equal(t, "later", got[1].ID)
}

func TestSearchIsScopedToProject(t *testing.T) {
	ctx := context.Background()
	idx := NewChunkIndex()

	require.NoError(t, idx.Upsert(ctx, "p1", []entity.DocumentChunk{chunk("a", "doc1", 0, []float32{1, 0})}))
	require.NoError(t, idx.Upsert(ctx, "p2", []entity.DocumentChunk{chunk("b", "doc2", 0, []float32{1, 0})}))

	got, err := idx.Search(ctx, "p1", []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	got, err = idx.Search(ctx, "unknown", []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpsertReplacesByID(t *testing.T) {
	ctx := context.Background()
	idx := NewChunkIndex()

	require.NoError(t, idx.Upsert(ctx, "p1", []entity.DocumentChunk{chunk("a", "doc1", 0, []float32{1, 0})}))

	updated := chunk("a", "doc1", 0, []float32{0, 1})
	updated.Content = "replaced"
	require.NoError(t, idx.Upsert(ctx, "p1", []entity.DocumentChunk{updated}))

	got, err := idx.Search(ctx, "p1", []float32{0, 1}, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "replaced", got[0].Content)
}

func TestDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx := NewChunkIndex()

	require.NoError(t, idx.Upsert(ctx, "p1", []entity.DocumentChunk{chunk("a", "doc1", 0, []float32{1, 0, 0})}))

	err := idx.Upsert(ctx, "p1", []entity.DocumentChunk{chunk("b", "doc1", 1, []float32{1, 0})})
	assert.ErrorIs(t, err, entity.ErrDimensionMismatch)

	_, err = idx.Search(ctx, "p1", []float32{1, 0}, 10)
	assert.ErrorIs(t, err, entity.ErrDimensionMismatch)
}

func TestDeleteByDocument(t *testing.T) {
	ctx := context.Background()
	idx := NewChunkIndex()

	require.NoError(t, idx.Upsert(ctx, "p1", []entity.DocumentChunk{
		chunk("a", "doc1", 0, []float32{1, 0}),
		chunk("b", "doc1", 1, []float32{0, 1}),
		chunk("c", "doc2", 0, []float32{1, 1}),
	}))

	require.NoError(t, idx.DeleteByDocument(ctx, "p1", "doc1"))

	remaining, err := idx.ListByDocument(ctx, "doc1")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	kept, err := idx.ListByDocument(ctx, "doc2")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestListByDocumentOrdersByChunkIndex(t *testing.T) {
	ctx := context.Background()
	idx := NewChunkIndex()

	require.NoError(t, idx.Upsert(ctx, "p1", []entity.DocumentChunk{
		chunk("b", "doc1", 1, []float32{0, 1}),
		chunk("a", "doc1", 0, []float32{1, 0}),
		chunk("c", "doc1", 2, []float32{1, 1}),
	}))

	got, err := idx.ListByDocument(ctx, "doc1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, ch := range got {
		assert.Equal(t, i, ch.ChunkIndex)
	}
}

func TestEmbeddingModels(t *testing.T) {
	ctx := context.Background()
	idx := NewChunkIndex()

	a := chunk("a", "doc1", 0, []float32{1, 0})
	b := chunk("b", "doc1", 1, []float32{0, 1})
	b.EmbeddingModel = "text-embedding-ada-002"
	require.NoError(t, idx.Upsert(ctx, "p1", []entity.DocumentChunk{a, b}))

	models, err := idx.EmbeddingModels(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"text-embedding-3-small", "text-embedding-ada-002"}, models)

	models, err = idx.EmbeddingModels(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, models)
}
