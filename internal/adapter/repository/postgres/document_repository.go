package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"research-api/internal/domain/entity"
	"research-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

// create document
func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	doc.ID = uuid.New().String()
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()

	query := `
		INSERT INTO documents (id, project_id, filename, original_name, file_path, file_size, mime_type, format, title, status, error, page_count, total_chunks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.ProjectID, doc.Filename, doc.OriginalName, doc.FilePath,
		doc.FileSize, doc.MimeType, doc.Format, doc.Title, doc.Status,
		doc.Error, doc.PageCount, doc.TotalChunks, doc.CreatedAt, doc.UpdatedAt,
	)
	return err
}

// find document by id
func (r *documentRepository) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	var doc entity.Document
	query := `SELECT * FROM documents WHERE id = $1`
	err := r.db.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// list documents for a project
func (r *documentRepository) List(ctx context.Context, projectID string, page, limit int) ([]entity.Document, int, error) {
	offset := (page - 1) * limit

	var docs []entity.Document
	query := `SELECT * FROM documents WHERE project_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &docs, query, projectID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int
	query = `SELECT COUNT(*) FROM documents WHERE project_id = $1`
	err = r.db.GetContext(ctx, &total, query, projectID)
	if err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// update status
func (r *documentRepository) UpdateStatus(ctx context.Context, id string, status entity.DocumentStatus) error {
	query := `UPDATE documents SET status = $1, error = '', updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

// mark indexed, recording chunk count, page count and sniffed title
func (r *documentRepository) MarkIndexed(ctx context.Context, id string, totalChunks, pageCount int, title string) error {
	query := `
		UPDATE documents
		SET status = $1, total_chunks = $2, page_count = $3,
		    title = CASE WHEN $4 <> '' THEN $4 ELSE title END,
		    error = '', indexed_at = NOW(), updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, entity.StatusIndexed, totalChunks, pageCount, title, id)
	return err
}

// mark failed with the original error kind for diagnostics
func (r *documentRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	query := `UPDATE documents SET status = $1, error = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, entity.StatusFailed, reason, id)
	return err
}

// list documents stuck in processing, for the supervisory sweep
func (r *documentRepository) ListStuck(ctx context.Context, olderThan time.Time) ([]entity.Document, error) {
	var docs []entity.Document
	query := `SELECT * FROM documents WHERE status = $1 AND updated_at < $2`
	err := r.db.SelectContext(ctx, &docs, query, entity.StatusProcessing, olderThan)
	return docs, err
}

// delete document
func (r *documentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
