package postgres

import (
	"context"
	"fmt"

	"research-api/internal/domain/entity"
	"research-api/internal/domain/repository"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
)

type chunkIndex struct {
	db        *sqlx.DB
	dimension int
}

// NewChunkIndex creates a pgvector-backed chunk index. All vectors must
// match the configured dimension; collections are scoped by project_id.
func NewChunkIndex(db *sqlx.DB, dimension int) repository.ChunkIndex {
	return &chunkIndex{db: db, dimension: dimension}
}

// Upsert writes chunk vectors inside one transaction, replacing any
// existing entry for the same chunk id.
func (r *chunkIndex) Upsert(ctx context.Context, projectID string, chunks []entity.DocumentChunk) error {
	for i := range chunks {
		if len(chunks[i].Embedding.Slice()) != r.dimension {
			return fmt.Errorf("%w: got %d, index dimension %d",
				entity.ErrDimensionMismatch, len(chunks[i].Embedding.Slice()), r.dimension)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO document_chunks (id, document_id, project_id, chunk_index, content, page_number, paragraph_number, char_start, char_end, embedding, embedding_model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			page_number = EXCLUDED.page_number,
			paragraph_number = EXCLUDED.paragraph_number,
			char_start = EXCLUDED.char_start,
			char_end = EXCLUDED.char_end,
			embedding = EXCLUDED.embedding,
			embedding_model = EXCLUDED.embedding_model
	`

	for i := range chunks {
		_, err := tx.ExecContext(ctx, query,
			chunks[i].ID,
			chunks[i].DocumentID,
			projectID,
			chunks[i].ChunkIndex,
			chunks[i].Content,
			chunks[i].PageNumber,
			chunks[i].ParagraphNumber,
			chunks[i].CharStart,
			chunks[i].CharEnd,
			chunks[i].Embedding,
			chunks[i].EmbeddingModel,
			chunks[i].CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Search runs cosine nearest-neighbor search within one project collection,
// highest similarity first, ties broken by chunk index ascending.
func (r *chunkIndex) Search(ctx context.Context, projectID string, vector []float32, k int) ([]entity.SimilarChunk, error) {
	if len(vector) != r.dimension {
		return nil, fmt.Errorf("%w: got %d, index dimension %d",
			entity.ErrDimensionMismatch, len(vector), r.dimension)
	}

	query := `
		SELECT
			dc.id,
			dc.document_id,
			dc.project_id,
			dc.chunk_index,
			dc.content,
			dc.page_number,
			dc.paragraph_number,
			dc.char_start,
			dc.char_end,
			dc.embedding_model,
			dc.created_at,
			COALESCE(NULLIF(d.title, ''), d.original_name) AS document_name,
			1 - (dc.embedding <=> $1) AS similarity
		FROM document_chunks dc
		INNER JOIN documents d ON dc.document_id = d.id
		WHERE dc.project_id = $2
		AND d.status = $3
		ORDER BY dc.embedding <=> $1, dc.chunk_index ASC
		LIMIT $4
	`

	var chunks []entity.SimilarChunk
	err := r.db.SelectContext(ctx, &chunks, query,
		pgvector.NewVector(vector), projectID, entity.StatusIndexed, k)
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// DeleteByDocument removes all of a document's chunks from the collection.
func (r *chunkIndex) DeleteByDocument(ctx context.Context, projectID, documentID string) error {
	query := `DELETE FROM document_chunks WHERE project_id = $1 AND document_id = $2`
	_, err := r.db.ExecContext(ctx, query, projectID, documentID)
	return err
}

// ListByDocument returns a document's chunks in sequence order, without
// embeddings, for the inspection endpoint.
func (r *chunkIndex) ListByDocument(ctx context.Context, documentID string) ([]entity.DocumentChunk, error) {
	query := `
		SELECT id, document_id, project_id, chunk_index, content, page_number, paragraph_number, char_start, char_end, embedding_model, created_at
		FROM document_chunks
		WHERE document_id = $1
		ORDER BY chunk_index ASC
	`
	var chunks []entity.DocumentChunk
	err := r.db.SelectContext(ctx, &chunks, query, documentID)
	return chunks, err
}

// EmbeddingModels reports the distinct model ids present in a collection.
func (r *chunkIndex) EmbeddingModels(ctx context.Context, projectID string) ([]string, error) {
	var models []string
	query := `SELECT DISTINCT embedding_model FROM document_chunks WHERE project_id = $1`
	err := r.db.SelectContext(ctx, &models, query, projectID)
	return models, err
}
