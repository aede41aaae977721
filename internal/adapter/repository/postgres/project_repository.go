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

type projectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

// create project
func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	project.ID = uuid.New().String()
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()

	query := `INSERT INTO projects (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Description, project.CreatedAt, project.UpdatedAt)
	return err
}

// find project by id
func (r *projectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	var project entity.Project
	query := `SELECT * FROM projects WHERE id = $1`
	err := r.db.GetContext(ctx, &project, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// list projects
func (r *projectRepository) List(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	query := `SELECT * FROM projects ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &projects, query)
	return projects, err
}
