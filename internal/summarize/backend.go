// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"fmt"
	"net/http"

	"github.com/pdiddy/paperfinder/pkg/types"
)

// NewBackend constructs the Backend selected by the configuration. An
// empty backend kind defaults to Ollama.
func NewBackend(cfg types.SummaryConfig) (Backend, error) {
	switch cfg.Backend {
	case types.SummaryBackendOllama, "":
		return &OllamaBackend{
			BaseURL:   cfg.BaseURL,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
			Client:    &http.Client{Timeout: cfg.Timeout},
		}, nil
	case types.SummaryBackendOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai backend requires an API key")
		}
		return NewOpenAIBackend(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown summary backend %q (want ollama or openai)", cfg.Backend)
	}
}
