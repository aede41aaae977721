package handler

import (
	"strings"

	"research-api/internal/delivery/http/dto"
	"research-api/internal/usecase/qa"

	"github.com/gofiber/fiber/v2"
)

type QAHandler struct {
	qaUsecase *qa.QAUsecase
}

func NewQAHandler(qaUsecase *qa.QAUsecase) *QAHandler {
	return &QAHandler{qaUsecase: qaUsecase}
}

// Ask godoc
// @Summary      Ask a question
// @Description  Answers a natural-language question against a project's indexed documents, with citations
// @Tags         QA
// @Accept       json
// @Produce      json
// @Param        request  body  dto.AskRequest  true  "Question"
// @Success      200  {object}  dto.AskResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/qa/ask [post]
func (h *QAHandler) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.ProjectID == "" || strings.TrimSpace(req.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "projectId and question are required"})
	}

	answer, err := h.qaUsecase.Ask(c.Context(), req.ProjectID, req.Question)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	citations := make([]dto.CitationInfo, 0, len(answer.Citations))
	for _, cit := range answer.Citations {
		citations = append(citations, dto.CitationInfo{
			SourceNum:       cit.SourceNum,
			ChunkID:         cit.ChunkID,
			DocumentID:      cit.DocumentID,
			DocumentName:    cit.DocumentName,
			PageNumber:      cit.PageNumber,
			ParagraphNumber: cit.ParagraphNumber,
			CharStart:       cit.CharStart,
			CharEnd:         cit.CharEnd,
			Snippet:         cit.Snippet,
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.AskResponse{
		Question:       req.Question,
		Answer:         answer.Text,
		Citations:      citations,
		DroppedMarkers: answer.DroppedMarkers,
	})
}
