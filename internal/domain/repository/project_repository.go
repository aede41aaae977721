package repository

import (
	"context"

	"research-api/internal/domain/entity"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	FindByID(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context) ([]entity.Project, error)
}
