package adapter

import (
	"context"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	apperrors "shopmate/backend/pkg/errors"
	"shopmate/backend/pkg/logger"
)

// LLMClient handles communication with the Groq completion API. Groq exposes an
// OpenAI-compatible surface, so the openai client is pointed at its base URL.
type LLMClient struct {
	client    *openai.Client
	model     string
	maxTokens int
	logger    *zap.Logger
}

// NewLLMClient creates a new completion client
func NewLLMClient(baseURL, apiKey, model string, maxTokens int) *LLMClient {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &LLMClient{
		client:    openai.NewClientWithConfig(config),
		model:     model,
		maxTokens: maxTokens,
		logger:    logger.Get(),
	}
}

// Model returns the configured model identifier
func (c *LLMClient) Model() string {
	return c.model
}

// Complete sends a single completion request and returns the generated text.
// Provider failures are surfaced unchanged; there is no retry.
func (c *LLMClient) Complete(ctx context.Context, systemPrompt, userMsg string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userMsg,
			},
		},
		Temperature: 0.7,
		MaxTokens:   c.maxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("Completion request failed",
			zap.Error(err),
			zap.String("model", c.model),
		)
		return "", apperrors.NewLLMRequestFailed(c.model, err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.ErrLLMEmptyResponse
	}

	content := resp.Choices[0].Message.Content

	c.logger.Debug("Completion generated",
		zap.String("model", c.model),
		zap.Int("reply_length", len(content)),
	)

	return content, nil
}
