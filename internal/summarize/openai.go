// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIBackend summarizes through any OpenAI-compatible chat API
// (OpenAI itself, or local servers like vLLM and LM Studio via BaseURL).
type OpenAIBackend struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIBackend creates a backend for the given API key and model.
// baseURL overrides the OpenAI endpoint when non-empty.
func NewOpenAIBackend(apiKey, baseURL, model string, maxTokens int) *OpenAIBackend {
	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	return &OpenAIBackend{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Name identifies the backend in progress output.
func (b *OpenAIBackend) Name() string { return "openai" }

// Summarize sends one prompt as a chat completion and returns the
// model's reply.
func (b *OpenAIBackend) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       b.model,
		MaxTokens:   b.maxTokens,
		Temperature: 0.7,
		TopP:        0.9,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("calling chat API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices for model %s", b.model)
	}
	return resp.Choices[0].Message.Content, nil
}
