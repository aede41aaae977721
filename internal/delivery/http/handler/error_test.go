package handler

import (
	"errors"
	"fmt"
	"testing"

	"research-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{entity.ErrNotFound, 404},
		{fmt.Errorf("document x: %w", entity.ErrNotFound), 404},
		{entity.ErrUnsupportedFormat, 400},
		{entity.ErrInvalidChunkParams, 400},
		{entity.ErrIngestInProgress, 409},
		{entity.ErrModelMismatch, 409},
		{entity.ErrRateLimited, 429},
		{entity.ErrTimeout, 504},
		{entity.ErrEmbeddingUnavailable, 502},
		{entity.ErrGenerationUnavailable, 502},
		{errors.New("anything else"), 500},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), "error: %v", tc.err)
	}
}
