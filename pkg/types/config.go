package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperfinder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of results to return (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Category is an optional arXiv category filter (e.g. "cs.AI").
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// FullTextConfig holds settings for PDF download and text extraction.
type FullTextConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDir is the directory for cached PDFs. Empty means a
	// paperfinder subdirectory of the system temp dir.
	DownloadDir string `json:"download_dir" yaml:"download_dir"`

	// KeepPDFs disables cleanup of downloaded PDFs after processing.
	KeepPDFs bool `json:"keep_pdfs" yaml:"keep_pdfs"`
}

// SummaryBackendKind identifies the chat API used for summarization.
type SummaryBackendKind string

const (
	SummaryBackendOllama SummaryBackendKind = "ollama"
	SummaryBackendOpenAI SummaryBackendKind = "openai"
)

// SummaryConfig holds settings for the summarization stage.
type SummaryConfig struct {
	// Backend selects the chat API: ollama or openai.
	Backend SummaryBackendKind `json:"backend" yaml:"backend"`

	// Model is the model identifier (e.g. "llama3.2:3b").
	Model string `json:"model" yaml:"model"`

	// BaseURL overrides the API endpoint (Ollama host or an
	// OpenAI-compatible server).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey authenticates against OpenAI-compatible servers. Unused by Ollama.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the summary length in tokens (default 300).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Timeout is the per-request timeout for chat calls.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// LibraryConfig holds settings for the local paper library.
type LibraryConfig struct {
	// Dir is the directory containing the library database.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Search   SearchConfig   `json:"search" yaml:"search"`
	FullText FullTextConfig `json:"full_text" yaml:"full_text"`
	Summary  SummaryConfig  `json:"summary" yaml:"summary"`
	Library  LibraryConfig  `json:"library" yaml:"library"`
}
