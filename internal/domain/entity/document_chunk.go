package entity

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// PositionedBlock is a contiguous span of extracted text together with its
// location in the source document. Offsets are relative to the canonical
// extracted text (blocks joined by a blank line) and never overlap.
type PositionedBlock struct {
	Text            string `json:"text"`
	PageNumber      int    `json:"pageNumber,omitempty"`
	ParagraphNumber int    `json:"paragraphNumber,omitempty"`
	StartOffset     int    `json:"startOffset"`
	EndOffset       int    `json:"endOffset"`
}

type DocumentChunk struct {
	ID              string          `db:"id" json:"id"`
	DocumentID      string          `db:"document_id" json:"documentId"`
	ProjectID       string          `db:"project_id" json:"projectId"`
	ChunkIndex      int             `db:"chunk_index" json:"chunkIndex"`
	Content         string          `db:"content" json:"content"`
	PageNumber      int             `db:"page_number" json:"pageNumber,omitempty"`
	ParagraphNumber int             `db:"paragraph_number" json:"paragraphNumber,omitempty"`
	CharStart       int             `db:"char_start" json:"charStart"`
	CharEnd         int             `db:"char_end" json:"charEnd"`
	Embedding       pgvector.Vector `db:"embedding" json:"-"`
	EmbeddingModel  string          `db:"embedding_model" json:"-"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`

	// DocumentName is carried alongside the chunk for citation rendering;
	// the postgres index resolves it by join, the memory index stores it.
	DocumentName string `db:"document_name" json:"documentName,omitempty"`
}

type SimilarChunk struct {
	DocumentChunk
	Similarity float64 `db:"similarity" json:"similarity"`
}
