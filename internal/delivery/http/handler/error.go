package handler

import (
	"errors"

	"research-api/internal/domain/entity"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps the pipeline error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, entity.ErrUnsupportedFormat),
		errors.Is(err, entity.ErrInvalidChunkParams):
		return fiber.StatusBadRequest
	case errors.Is(err, entity.ErrIngestInProgress),
		errors.Is(err, entity.ErrModelMismatch):
		return fiber.StatusConflict
	case errors.Is(err, entity.ErrRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(err, entity.ErrTimeout):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, entity.ErrEmbeddingUnavailable),
		errors.Is(err, entity.ErrGenerationUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
