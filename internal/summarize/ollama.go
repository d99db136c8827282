// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// defaultOllamaBase is the local Ollama server. Overridden through
// SummaryConfig.BaseURL.
const defaultOllamaBase = "http://localhost:11434"

// OllamaBackend calls a local Ollama server's native API. Beyond
// summarization it exposes model management (list, pull) used by the
// models command.
type OllamaBackend struct {
	BaseURL   string
	Model     string
	MaxTokens int
	Client    *http.Client
}

// Name identifies the backend in progress output.
func (o *OllamaBackend) Name() string { return "ollama" }

func (o *OllamaBackend) base() string {
	if o.BaseURL != "" {
		return strings.TrimSuffix(o.BaseURL, "/")
	}
	return defaultOllamaBase
}

func (o *OllamaBackend) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return http.DefaultClient
}

// ollamaChatRequest is the request body for POST /api/chat.
type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
	Options  ollamaOptions       `json:"options"`
}

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaChatResponse is the non-streaming response from POST /api/chat.
type ollamaChatResponse struct {
	Message ollamaChatMessage `json:"message"`
}

// Summarize sends one prompt to the chat endpoint and returns the
// model's reply.
func (o *OllamaBackend) Summarize(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaChatRequest{
		Model: o.Model,
		Messages: []ollamaChatMessage{
			{Role: "user", Content: prompt},
		},
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.7,
			TopP:        0.9,
			NumPredict:  o.MaxTokens,
		},
	}

	var chatResp ollamaChatResponse
	if err := o.post(ctx, "/api/chat", reqBody, &chatResp); err != nil {
		return "", err
	}
	if chatResp.Message.Content == "" {
		return "", fmt.Errorf("ollama returned an empty reply for model %s", o.Model)
	}
	return chatResp.Message.Content, nil
}

// ollamaTagsResponse is the response from GET /api/tags.
type ollamaTagsResponse struct {
	Models []ollamaModel `json:"models"`
}

type ollamaModel struct {
	Name string `json:"name"`
}

// Models lists the model names installed on the server.
func (o *OllamaBackend) Models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.base()+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := o.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling ollama (is the server running?): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama returned %d: %s", resp.StatusCode, string(body))
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decoding ollama response: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Available reports whether the configured model is installed. Tag
// suffixes are matched loosely so "llama3.2" finds "llama3.2:3b".
func (o *OllamaBackend) Available(ctx context.Context) (bool, error) {
	names, err := o.Models(ctx)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if strings.Contains(name, o.Model) {
			return true, nil
		}
	}
	return false, nil
}

// ollamaPullRequest is the request body for POST /api/pull.
type ollamaPullRequest struct {
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
}

// Pull downloads a model onto the server. Blocks until the pull
// completes.
func (o *OllamaBackend) Pull(ctx context.Context, model string) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := o.post(ctx, "/api/pull", ollamaPullRequest{Model: model, Stream: false}, &status); err != nil {
		return err
	}
	if status.Status != "success" {
		return fmt.Errorf("pulling %s: status %q", model, status.Status)
	}
	return nil
}

// PullIfNeeded ensures the configured model is installed, pulling it
// when missing. Progress goes to w.
func (o *OllamaBackend) PullIfNeeded(ctx context.Context, w io.Writer) error {
	ok, err := o.Available(ctx)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	fmt.Fprintf(w, "pulling model %s\n", o.Model)
	return o.Pull(ctx, o.Model)
}

// post sends a JSON request to an Ollama endpoint and decodes the JSON
// response into out.
func (o *OllamaBackend) post(ctx context.Context, path string, body, out any) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.base()+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client().Do(req)
	if err != nil {
		return fmt.Errorf("calling ollama (is the server running?): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ollama returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding ollama response: %w", err)
	}
	return nil
}
