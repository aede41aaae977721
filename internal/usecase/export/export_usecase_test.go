package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"research-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func (r *fakeProjectRepo) Create(_ context.Context, p *entity.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id string) (*entity.Project, error) {
	return r.projects[id], nil
}

func (r *fakeProjectRepo) List(_ context.Context) ([]entity.Project, error) {
	return nil, nil
}

type fakeDocLister struct {
	docs []entity.Document
}

func (r *fakeDocLister) Create(_ context.Context, _ *entity.Document) error { return nil }
func (r *fakeDocLister) FindByID(_ context.Context, _ string) (*entity.Document, error) {
	return nil, nil
}
func (r *fakeDocLister) List(_ context.Context, _ string, _, _ int) ([]entity.Document, int, error) {
	return r.docs, len(r.docs), nil
}
func (r *fakeDocLister) UpdateStatus(_ context.Context, _ string, _ entity.DocumentStatus) error {
	return nil
}
func (r *fakeDocLister) MarkIndexed(_ context.Context, _ string, _, _ int, _ string) error {
	return nil
}
func (r *fakeDocLister) MarkFailed(_ context.Context, _ string, _ string) error { return nil }
func (r *fakeDocLister) ListStuck(_ context.Context, _ time.Time) ([]entity.Document, error) {
	return nil, nil
}
func (r *fakeDocLister) Delete(_ context.Context, _ string) error { return nil }

func fixture() (*ExportUsecase, *fakeDocLister) {
	projects := &fakeProjectRepo{projects: map[string]*entity.Project{
		"p1": {ID: "p1", Name: "Climate Study", Description: "Long-running field measurements"},
	}}
	created := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	docs := &fakeDocLister{docs: []entity.Document{
		{
			ID:           "11111111-2222-3333-4444-555555555555",
			Title:        "Field Notes",
			OriginalName: "field_notes.pdf",
			Status:       entity.StatusIndexed,
			PageCount:    3,
			CreatedAt:    created,
		},
		{
			ID:           "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
			OriginalName: "draft.docx",
			Status:       entity.StatusFailed,
			CreatedAt:    created,
		},
	}}
	return NewExportUsecase(projects, docs), docs
}

func TestMarkdownExport(t *testing.T) {
	uc, _ := fixture()

	out, err := uc.Markdown(context.Background(), "p1")
	require.NoError(t, err)

	assert.Contains(t, out, "# Climate Study")
	assert.Contains(t, out, "Long-running field measurements")
	assert.Contains(t, out, "- **Field Notes**")
	assert.Contains(t, out, "Pages: 3")
	// failed documents appear in the list but not in the bibliography
	assert.Contains(t, out, "- **draft.docx**")
	_, bibliography, found := strings.Cut(out, "## Bibliography")
	require.True(t, found)
	assert.Contains(t, bibliography, "Field Notes. 2024.")
	assert.NotContains(t, bibliography, "draft.docx")
}

func TestBibTeXExportOnlyIndexed(t *testing.T) {
	uc, _ := fixture()

	out, err := uc.BibTeX(context.Background(), "p1")
	require.NoError(t, err)

	assert.Contains(t, out, "@misc{doc_11111111222233334444555555555555,")
	assert.Contains(t, out, "title = {Field Notes},")
	assert.Contains(t, out, "year = {2024},")
	assert.Contains(t, out, "note = {field_notes.pdf}")
	assert.NotContains(t, out, "draft.docx")
}

func TestExportUnknownProject(t *testing.T) {
	uc, _ := fixture()

	_, err := uc.Markdown(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = uc.BibTeX(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
