package handler

import (
	"io"
	"strconv"

	"research-api/internal/delivery/http/dto"
	"research-api/internal/domain/entity"
	"research-api/internal/usecase/document"

	"github.com/gofiber/fiber/v2"
)

type DocumentHandler struct {
	docUsecase *document.DocumentUsecase
}

func NewDocumentHandler(docUsecase *document.DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{docUsecase: docUsecase}
}

// Upload godoc
// @Summary      Upload a document
// @Description  Upload a PDF, HTML, Markdown or plain-text file for asynchronous indexing
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file    true   "File to upload"
// @Param        projectId  formData  string  true   "Owning project ID"
// @Param        format     formData  string  false  "Declared format (pdf, html, markdown, text)"
// @Success      201  {object}  dto.UploadDocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/upload [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	projectID := c.FormValue("projectId")
	if projectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "projectId is required"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to get file"})
	}

	fileData, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer fileData.Close()

	buf, err := io.ReadAll(fileData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}

	doc, err := h.docUsecase.UploadDocument(
		c.Context(),
		projectID,
		file.Filename,
		buf,
		file.Header.Get("Content-Type"),
		c.FormValue("format"),
	)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UploadDocumentResponse{
		ID:       doc.ID,
		Filename: doc.OriginalName,
		Status:   string(doc.Status),
		Message:  "Document uploaded successfully. Processing in background.",
	})
}

// List godoc
// @Summary      List documents
// @Description  Get a paginated list of documents in a project
// @Tags         Documents
// @Produce      json
// @Param        projectId  query  string  true   "Project ID"
// @Param        page       query  int     false  "Page number" default(1)
// @Param        limit      query  int     false  "Items per page" default(10)
// @Success      200  {object}  dto.ListDocumentsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	projectID := c.Query("projectId")
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	docs, total, err := h.docUsecase.ListDocuments(c.Context(), projectID, page, limit)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	docInfos := make([]dto.DocumentInfo, 0, len(docs))
	for _, doc := range docs {
		docInfos = append(docInfos, toDocumentInfo(&doc))
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return c.Status(fiber.StatusOK).JSON(dto.ListDocumentsResponse{
		Data: docInfos,
		Meta: dto.PaginationMeta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	})
}

// GetByID godoc
// @Summary      Get document by ID
// @Description  Poll a document's ingestion status and chunk count
// @Tags         Documents
// @Produce      json
// @Param        id  path  string  true  "Document ID"
// @Success      200  {object}  dto.DocumentInfo
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	doc, err := h.docUsecase.GetDocumentByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if doc == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	}

	return c.Status(fiber.StatusOK).JSON(toDocumentInfo(doc))
}

// Chunks godoc
// @Summary      Inspect a document's chunks
// @Description  Returns the document's ordered chunks with location metadata
// @Tags         Documents
// @Produce      json
// @Param        id  path  string  true  "Document ID"
// @Success      200  {object}  dto.DocumentChunksResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/chunks [get]
func (h *DocumentHandler) Chunks(c *fiber.Ctx) error {
	documentID := c.Params("id")

	chunks, err := h.docUsecase.ListChunks(c.Context(), documentID)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	infos := make([]dto.ChunkInfo, 0, len(chunks))
	for _, ch := range chunks {
		infos = append(infos, dto.ChunkInfo{
			ID:              ch.ID,
			ChunkIndex:      ch.ChunkIndex,
			Content:         ch.Content,
			PageNumber:      ch.PageNumber,
			ParagraphNumber: ch.ParagraphNumber,
			CharStart:       ch.CharStart,
			CharEnd:         ch.CharEnd,
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.DocumentChunksResponse{
		DocumentID: documentID,
		Chunks:     infos,
	})
}

// Reingest godoc
// @Summary      Re-ingest a document
// @Description  Replaces the document's chunk set by re-running the pipeline from stored bytes
// @Tags         Documents
// @Produce      json
// @Param        id  path  string  true  "Document ID"
// @Success      202  {object}  dto.UploadDocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/reingest [post]
func (h *DocumentHandler) Reingest(c *fiber.Ctx) error {
	doc, err := h.docUsecase.Reingest(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusAccepted).JSON(dto.UploadDocumentResponse{
		ID:       doc.ID,
		Filename: doc.OriginalName,
		Status:   string(doc.Status),
		Message:  "Re-ingestion started.",
	})
}

// Delete godoc
// @Summary      Delete a document
// @Description  Removes the document, its stored file and all indexed chunks
// @Tags         Documents
// @Produce      json
// @Param        id  path  string  true  "Document ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.docUsecase.DeleteDocument(c.Context(), c.Params("id")); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Document deleted successfully"})
}

func toDocumentInfo(doc *entity.Document) dto.DocumentInfo {
	return dto.DocumentInfo{
		ID:           doc.ID,
		ProjectID:    doc.ProjectID,
		Filename:     doc.Filename,
		OriginalName: doc.OriginalName,
		FileSize:     doc.FileSize,
		MimeType:     doc.MimeType,
		Format:       string(doc.Format),
		Title:        doc.Title,
		Status:       string(doc.Status),
		Error:        doc.Error,
		PageCount:    doc.PageCount,
		TotalChunks:  doc.TotalChunks,
		CreatedAt:    doc.CreatedAt,
		IndexedAt:    doc.IndexedAt,
	}
}
