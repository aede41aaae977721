package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"research-api/internal/domain/entity"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"
)

type EmbeddingClient struct {
	client      *openai.Client
	model       string
	batchSize   int
	concurrency int
	maxRetries  uint64
	timeout     time.Duration
}

// NewEmbeddingClient creates a new OpenAI embedding client
func NewEmbeddingClient(apiKey, model string, batchSize, concurrency, maxRetries int, timeout time.Duration) *EmbeddingClient {
	if batchSize <= 0 {
		batchSize = 64
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &EmbeddingClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		batchSize:   batchSize,
		concurrency: concurrency,
		maxRetries:  uint64(maxRetries),
		timeout:     timeout,
	}
}

func (c *EmbeddingClient) Model() string {
	return c.model
}

// EmbedBatch returns one vector per input text, in input order. Texts are
// split into provider-sized batches fanned out with bounded concurrency;
// each batch retries transient errors with exponential backoff. Any batch
// exhausting its retries fails the whole call.
func (c *EmbeddingClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for start := 0; start < len(texts); start += c.batchSize {
		start := start
		end := start + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		g.Go(func() error {
			vectors, err := c.embedWithRetry(gctx, texts[start:end])
			if err != nil {
				return err
			}
			copy(out[start:end], vectors)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// EmbedQuery embeds a single query text.
func (c *EmbeddingClient) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.embedWithRetry(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *EmbeddingClient) embedWithRetry(ctx context.Context, batch []string) ([][]float32, error) {
	var vectors [][]float32

	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequest{
			Input: batch,
			Model: openai.EmbeddingModel(c.model),
		})
		if err != nil {
			return classifyProviderError(err)
		}
		if len(resp.Data) != len(batch) {
			return backoff.Permanent(fmt.Errorf("got %d embeddings for %d inputs", len(resp.Data), len(batch)))
		}

		vectors = make([][]float32, len(resp.Data))
		for i, data := range resp.Data {
			vectors[i] = data.Embedding
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, fmt.Errorf("embedding request: %w", entity.ErrTimeout)
		case errors.Is(err, entity.ErrRateLimited):
			return nil, err
		default:
			return nil, fmt.Errorf("%v: %w", err, entity.ErrEmbeddingUnavailable)
		}
	}
	return vectors, nil
}

// classifyProviderError separates retryable provider failures from
// permanent ones. 429 stays retryable but keeps its identity so exhaustion
// surfaces as rate limiting to the caller.
func classifyProviderError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == 429:
			return fmt.Errorf("%v: %w", err, entity.ErrRateLimited)
		case apiErr.HTTPStatusCode >= 400 && apiErr.HTTPStatusCode < 500:
			return backoff.Permanent(err)
		}
	}
	return err
}
