package export

import (
	"context"
	"fmt"
	"strings"

	"research-api/internal/domain/entity"
	"research-api/internal/domain/repository"
)

// ExportUsecase renders read-only projections of a project's indexed
// documents as Markdown or BibTeX.
type ExportUsecase struct {
	projectRepo repository.ProjectRepository
	docRepo     repository.DocumentRepository
}

func NewExportUsecase(
	projectRepo repository.ProjectRepository,
	docRepo repository.DocumentRepository,
) *ExportUsecase {
	return &ExportUsecase{projectRepo: projectRepo, docRepo: docRepo}
}

func (uc *ExportUsecase) load(ctx context.Context, projectID string) (*entity.Project, []entity.Document, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if project == nil {
		return nil, nil, fmt.Errorf("project %s: %w", projectID, entity.ErrNotFound)
	}

	docs, _, err := uc.docRepo.List(ctx, projectID, 1, 1000)
	if err != nil {
		return nil, nil, err
	}
	return project, docs, nil
}

// Markdown renders a project summary with its document list and bibliography.
func (uc *ExportUsecase) Markdown(ctx context.Context, projectID string) (string, error) {
	project, docs, err := uc.load(ctx, projectID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", project.Name)
	if project.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", project.Description)
	}

	sb.WriteString("## Documents\n\n")
	for _, doc := range docs {
		fmt.Fprintf(&sb, "- **%s**\n", docTitle(doc))
		if doc.PageCount > 0 {
			fmt.Fprintf(&sb, "  - Pages: %d\n", doc.PageCount)
		}
		fmt.Fprintf(&sb, "  - Status: %s\n", doc.Status)
		fmt.Fprintf(&sb, "  - Uploaded: %s\n", doc.CreatedAt.Format("2006-01-02"))
	}

	sb.WriteString("\n## Bibliography\n\n")
	for _, doc := range docs {
		if doc.Status != entity.StatusIndexed {
			continue
		}
		fmt.Fprintf(&sb, "- %s. %s.\n", docTitle(doc), doc.CreatedAt.Format("2006"))
	}

	return sb.String(), nil
}

// BibTeX renders one @misc entry per indexed document.
func (uc *ExportUsecase) BibTeX(ctx context.Context, projectID string) (string, error) {
	_, docs, err := uc.load(ctx, projectID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, doc := range docs {
		if doc.Status != entity.StatusIndexed {
			continue
		}
		fmt.Fprintf(&sb, "@misc{doc_%s,\n", strings.ReplaceAll(doc.ID, "-", ""))
		fmt.Fprintf(&sb, "  title = {%s},\n", docTitle(doc))
		fmt.Fprintf(&sb, "  year = {%s},\n", doc.CreatedAt.Format("2006"))
		fmt.Fprintf(&sb, "  note = {%s}\n", doc.OriginalName)
		sb.WriteString("}\n\n")
	}
	return sb.String(), nil
}

func docTitle(doc entity.Document) string {
	if doc.Title != "" {
		return doc.Title
	}
	return doc.OriginalName
}
