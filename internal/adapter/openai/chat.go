package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"research-api/internal/domain/entity"

	openai "github.com/sashabaranov/go-openai"
)

type ChatClient struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

func NewChatClient(apiKey, model string, maxTokens int, timeout time.Duration) *ChatClient {
	return &ChatClient{
		client:    openai.NewClient(apiKey),
		model:     model,
		maxTokens: maxTokens,
		timeout:   timeout,
	}
}

// Generate invokes the generation service once, with a single bounded retry
// on transient failure; user-facing latency takes priority over retrying.
func (c *ChatClient) Generate(ctx context.Context, system, user string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			Temperature: 0,
			MaxTokens:   c.maxTokens,
		})
		cancel()

		if err == nil {
			if len(resp.Choices) == 0 {
				return "", fmt.Errorf("%w: empty response", entity.ErrGenerationUnavailable)
			}
			return resp.Choices[0].Message.Content, nil
		}

		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("generation request: %w", entity.ErrTimeout)
		}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			if apiErr.HTTPStatusCode == 429 {
				return "", fmt.Errorf("%v: %w", err, entity.ErrRateLimited)
			}
			if apiErr.HTTPStatusCode >= 400 && apiErr.HTTPStatusCode < 500 {
				return "", fmt.Errorf("%v: %w", err, entity.ErrGenerationUnavailable)
			}
		}
		lastErr = err
	}

	return "", fmt.Errorf("%v: %w", lastErr, entity.ErrGenerationUnavailable)
}
