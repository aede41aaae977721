package qa

import (
	"context"
	"fmt"

	"research-api/internal/domain/entity"
	"research-api/internal/domain/repository"
)

type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Model() string
}

type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

const noEvidenceAnswer = "No supporting evidence was found in this project's documents."

type QAUsecase struct {
	projectRepo repository.ProjectRepository
	index       repository.ChunkIndex
	embedder    QueryEmbedder
	generator   Generator
	topK        int
	snippetLen  int
}

func NewQAUsecase(
	projectRepo repository.ProjectRepository,
	index repository.ChunkIndex,
	embedder QueryEmbedder,
	generator Generator,
	topK, snippetLen int,
) *QAUsecase {
	return &QAUsecase{
		projectRepo: projectRepo,
		index:       index,
		embedder:    embedder,
		generator:   generator,
		topK:        topK,
		snippetLen:  snippetLen,
	}
}

// Ask answers a question against a project's indexed documents. It returns
// either a complete answer with resolved citations or a typed failure,
// never a partial result.
func (uc *QAUsecase) Ask(ctx context.Context, projectID, question string) (*entity.Answer, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, entity.ErrNotFound)
	}

	evidence, err := uc.retrieve(ctx, projectID, question)
	if err != nil {
		return nil, err
	}

	if len(evidence) == 0 {
		return &entity.Answer{Text: noEvidenceAnswer, Citations: []entity.Citation{}}, nil
	}

	system, user := buildPrompt(question, evidence)
	answerText, err := uc.generator.Generate(ctx, system, user)
	if err != nil {
		return nil, err
	}

	markers, dropped := parseMarkers(answerText, len(evidence))
	citations := linkCitations(markers, evidence, uc.snippetLen)

	return &entity.Answer{
		Text:           answerText,
		Citations:      citations,
		DroppedMarkers: dropped,
	}, nil
}

// retrieve embeds the question and queries the project collection, verifying
// first that the index was built with the configured embedding model.
func (uc *QAUsecase) retrieve(ctx context.Context, projectID, question string) ([]entity.SimilarChunk, error) {
	models, err := uc.index.EmbeddingModels(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, m := range models {
		if m != "" && m != uc.embedder.Model() {
			return nil, fmt.Errorf("index built with model %q, configured %q: %w",
				m, uc.embedder.Model(), entity.ErrModelMismatch)
		}
	}

	vector, err := uc.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, err
	}

	results, err := uc.index.Search(ctx, projectID, vector, uc.topK)
	if err != nil {
		return nil, err
	}

	// defensive dedupe; the index should not return the same chunk twice but
	// callers must not depend on that
	seen := make(map[string]bool, len(results))
	deduped := results[:0]
	for _, r := range results {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		deduped = append(deduped, r)
	}
	return deduped, nil
}
