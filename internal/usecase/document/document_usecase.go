package document

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"research-api/internal/domain/entity"
	"research-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type EmbeddingService interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Model() string
}

type FileStorage interface {
	Save(name string, data []byte) (string, error)
	Load(path string) ([]byte, error)
	Delete(path string) error
}

// inflightLocks hands out one mutex per document id so a document never has
// two ingestion jobs running at the same time, and deletion can wait out an
// in-flight job.
type inflightLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newInflightLocks() *inflightLocks {
	return &inflightLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *inflightLocks) lockFor(documentID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[documentID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[documentID] = m
	}
	return m
}

// forget drops a document's entry once it no longer exists, so the map does
// not grow with every document ever touched.
func (l *inflightLocks) forget(documentID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locks, documentID)
}

type DocumentUsecase struct {
	docRepo     repository.DocumentRepository
	projectRepo repository.ProjectRepository
	index       repository.ChunkIndex
	embedder    EmbeddingService
	storage     FileStorage
	extractor   *TextExtractor
	chunker     *Chunker
	inflight    *inflightLocks
}

func NewDocumentUsecase(
	docRepo repository.DocumentRepository,
	projectRepo repository.ProjectRepository,
	index repository.ChunkIndex,
	embedder EmbeddingService,
	storage FileStorage,
	maxChars, overlapChars int,
) *DocumentUsecase {
	return &DocumentUsecase{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		index:       index,
		embedder:    embedder,
		storage:     storage,
		extractor:   NewTextExtractor(),
		chunker:     NewChunker(maxChars, overlapChars),
		inflight:    newInflightLocks(),
	}
}

// upload document
func (uc *DocumentUsecase) UploadDocument(
	ctx context.Context,
	projectID string,
	filename string,
	fileData []byte,
	mimeType string,
	declaredFormat string,
) (*entity.Document, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, entity.ErrNotFound)
	}

	// the declared format is recorded as-is; an unsupported value fails the
	// ingestion job, not the upload
	format := resolveFormat(declaredFormat, mimeType, filename)

	path, err := uc.storage.Save(filename, fileData)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	doc := &entity.Document{
		ProjectID:    projectID,
		Filename:     fmt.Sprintf("%d_%s", time.Now().Unix(), filename),
		OriginalName: filename,
		FilePath:     path,
		FileSize:     int64(len(fileData)),
		MimeType:     mimeType,
		Format:       format,
		Status:       entity.StatusPending,
	}

	if err := uc.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	if err := uc.dispatch(doc.ID); err != nil {
		return nil, err
	}
	return doc, nil
}

// dispatch claims the document's inflight lock and runs the ingestion job in
// the background (the queue is an external concern; the pipeline itself is
// directly callable via Process). A job already in flight is refused here,
// synchronously, so callers can report the conflict.
func (uc *DocumentUsecase) dispatch(documentID string) error {
	mu := uc.inflight.lockFor(documentID)
	if !mu.TryLock() {
		return fmt.Errorf("document %s: %w", documentID, entity.ErrIngestInProgress)
	}

	go func() {
		defer mu.Unlock()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic processing document %s: %v", documentID, r)
				uc.docRepo.MarkFailed(context.Background(), documentID, fmt.Sprintf("panic: %v", r))
			}
		}()

		if err := uc.processLocked(context.Background(), documentID); err != nil {
			log.Printf("error processing document %s: %v", documentID, err)
		}
	}()
	return nil
}

// Process runs the full ingestion pipeline for one document:
// extract -> chunk -> embed -> upsert, with pending -> processing ->
// indexed|failed transitions. Stage failures are recorded on the document;
// a second concurrent job for the same document is refused.
func (uc *DocumentUsecase) Process(ctx context.Context, documentID string) error {
	mu := uc.inflight.lockFor(documentID)
	if !mu.TryLock() {
		return fmt.Errorf("document %s: %w", documentID, entity.ErrIngestInProgress)
	}
	defer mu.Unlock()

	return uc.processLocked(ctx, documentID)
}

func (uc *DocumentUsecase) processLocked(ctx context.Context, documentID string) error {
	doc, err := uc.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document %s: %w", documentID, entity.ErrNotFound)
	}

	// persisted before any work so a crash leaves a visible state
	if err := uc.docRepo.UpdateStatus(ctx, doc.ID, entity.StatusProcessing); err != nil {
		return err
	}

	if err := uc.runPipeline(ctx, doc); err != nil {
		// no chunks from a failed run may stay indexed
		if derr := uc.index.DeleteByDocument(ctx, doc.ProjectID, doc.ID); derr != nil {
			log.Printf("rollback chunks for document %s: %v", doc.ID, derr)
		}
		if merr := uc.docRepo.MarkFailed(ctx, doc.ID, err.Error()); merr != nil {
			log.Printf("mark document %s failed: %v", doc.ID, merr)
		}
		return err
	}
	return nil
}

func (uc *DocumentUsecase) runPipeline(ctx context.Context, doc *entity.Document) error {
	data, err := uc.storage.Load(doc.FilePath)
	if err != nil {
		return fmt.Errorf("load stored file: %w", err)
	}

	// re-ingestion replaces the chunk set wholesale
	if err := uc.index.DeleteByDocument(ctx, doc.ProjectID, doc.ID); err != nil {
		return fmt.Errorf("clear previous chunks: %w", err)
	}

	// 1 extract positioned blocks
	blocks, title, err := uc.extractor.Extract(data, doc.Format)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return fmt.Errorf("%w: no text extracted", entity.ErrExtraction)
	}
	log.Printf("extracted %d blocks from document %s", len(blocks), doc.ID)

	// 2 chunk with overlap
	chunks, err := uc.chunker.Chunk(blocks)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("%w: no chunks generated", entity.ErrExtraction)
	}
	log.Printf("generated %d chunks from document %s", len(chunks), doc.ID)

	// 3 embed chunk texts, all-or-nothing
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}
	vectors, err := uc.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: got %d vectors for %d chunks", entity.ErrEmbeddingUnavailable, len(vectors), len(chunks))
	}
	log.Printf("generated %d embeddings for document %s", len(vectors), doc.ID)

	// 4 upsert into the project collection
	docName := doc.Title
	if docName == "" {
		docName = doc.OriginalName
	}
	now := time.Now()
	for i := range chunks {
		chunks[i].ID = uuid.New().String()
		chunks[i].DocumentID = doc.ID
		chunks[i].ProjectID = doc.ProjectID
		chunks[i].Embedding = pgvector.NewVector(vectors[i])
		chunks[i].EmbeddingModel = uc.embedder.Model()
		chunks[i].CreatedAt = now
		chunks[i].DocumentName = docName
	}
	if err := uc.index.Upsert(ctx, doc.ProjectID, chunks); err != nil {
		return fmt.Errorf("index chunks: %w", err)
	}

	pageCount := 0
	for i := range blocks {
		if blocks[i].PageNumber > pageCount {
			pageCount = blocks[i].PageNumber
		}
	}
	if err := uc.docRepo.MarkIndexed(ctx, doc.ID, len(chunks), pageCount, title); err != nil {
		return err
	}

	log.Printf("document %s indexed with %d chunks", doc.ID, len(chunks))
	return nil
}

// Reingest re-runs the pipeline from the stored bytes. The prior chunk set
// is deleted inside the pipeline before new chunks are written; if a job is
// already in flight the request is refused rather than silently dropped.
func (uc *DocumentUsecase) Reingest(ctx context.Context, documentID string) (*entity.Document, error) {
	doc, err := uc.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %s: %w", documentID, entity.ErrNotFound)
	}

	if err := uc.dispatch(doc.ID); err != nil {
		return nil, err
	}
	return doc, nil
}

// list documents
func (uc *DocumentUsecase) ListDocuments(
	ctx context.Context,
	projectID string,
	page, limit int,
) ([]entity.Document, int, error) {
	return uc.docRepo.List(ctx, projectID, page, limit)
}

// get document by id, used by the status-polling endpoint
func (uc *DocumentUsecase) GetDocumentByID(
	ctx context.Context,
	documentID string,
) (*entity.Document, error) {
	return uc.docRepo.FindByID(ctx, documentID)
}

// ListChunks exposes a document's ordered chunks with location metadata for
// inspection; not part of the retrieval path.
func (uc *DocumentUsecase) ListChunks(
	ctx context.Context,
	documentID string,
) ([]entity.DocumentChunk, error) {
	doc, err := uc.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %s: %w", documentID, entity.ErrNotFound)
	}
	return uc.index.ListByDocument(ctx, documentID)
}

// DeleteDocument waits out any in-flight ingestion job for the document
// before removing its chunks, stored file and record, so an orphaned upsert
// cannot revive a deleted document.
func (uc *DocumentUsecase) DeleteDocument(
	ctx context.Context,
	documentID string,
) error {
	doc, err := uc.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document %s: %w", documentID, entity.ErrNotFound)
	}

	mu := uc.inflight.lockFor(documentID)
	mu.Lock()
	defer mu.Unlock()

	if err := uc.index.DeleteByDocument(ctx, doc.ProjectID, doc.ID); err != nil {
		return err
	}
	if err := uc.storage.Delete(doc.FilePath); err != nil {
		log.Printf("delete stored file %s: %v", doc.FilePath, err)
	}
	if err := uc.docRepo.Delete(ctx, doc.ID); err != nil {
		return err
	}

	uc.inflight.forget(doc.ID)
	return nil
}

// ReapStuck fails documents sitting in processing beyond the timeout, so a
// crash mid-job surfaces instead of looking in-flight forever.
func (uc *DocumentUsecase) ReapStuck(ctx context.Context, olderThan time.Duration) (int, error) {
	stuck, err := uc.docRepo.ListStuck(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	for i := range stuck {
		if err := uc.docRepo.MarkFailed(ctx, stuck[i].ID, "processing timed out"); err != nil {
			return i, err
		}
		log.Printf("document %s stuck in processing, marked failed", stuck[i].ID)
	}
	return len(stuck), nil
}

// resolveFormat normalizes the declared format, falling back to the mime
// type and then the file extension.
func resolveFormat(declared, mimeType, filename string) entity.DocumentFormat {
	if declared != "" {
		return entity.DocumentFormat(strings.ToLower(strings.TrimSpace(declared)))
	}

	switch {
	case strings.Contains(mimeType, "pdf"):
		return entity.FormatPDF
	case strings.Contains(mimeType, "html"):
		return entity.FormatHTML
	case strings.Contains(mimeType, "markdown"):
		return entity.FormatMarkdown
	case strings.HasPrefix(mimeType, "text/"):
		return entity.FormatText
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return entity.FormatPDF
	case ".html", ".htm":
		return entity.FormatHTML
	case ".md", ".markdown":
		return entity.FormatMarkdown
	case ".txt":
		return entity.FormatText
	}
	return entity.DocumentFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."))
}
