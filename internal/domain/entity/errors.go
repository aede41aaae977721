package entity

import "errors"

// Pipeline and query error taxonomy. Ingestion-stage errors are recorded on
// the document and never escape the upload caller; query-path errors
// propagate to the client as typed failures.
var (
	ErrUnsupportedFormat     = errors.New("unsupported document format")
	ErrExtraction            = errors.New("text extraction failed")
	ErrInvalidChunkParams    = errors.New("invalid chunking parameters")
	ErrEmbeddingUnavailable  = errors.New("embedding service unavailable")
	ErrDimensionMismatch     = errors.New("embedding dimension mismatch")
	ErrModelMismatch         = errors.New("embedding model mismatch")
	ErrGenerationUnavailable = errors.New("generation service unavailable")
	ErrRateLimited           = errors.New("rate limited by provider")
	ErrTimeout               = errors.New("operation timed out")
	ErrNotFound              = errors.New("not found")
	ErrIngestInProgress      = errors.New("ingestion already in progress")
)
