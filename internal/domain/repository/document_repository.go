package repository

import (
	"context"
	"time"

	"research-api/internal/domain/entity"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	FindByID(ctx context.Context, id string) (*entity.Document, error)
	List(ctx context.Context, projectID string, page, limit int) ([]entity.Document, int, error)
	UpdateStatus(ctx context.Context, id string, status entity.DocumentStatus) error
	MarkIndexed(ctx context.Context, id string, totalChunks, pageCount int, title string) error
	MarkFailed(ctx context.Context, id string, reason string) error
	ListStuck(ctx context.Context, olderThan time.Time) ([]entity.Document, error)
	Delete(ctx context.Context, id string) error
}
