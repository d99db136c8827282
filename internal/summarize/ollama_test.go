// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

// fakeOllama serves the subset of the Ollama API the backend uses.
type fakeOllama struct {
	models []string
	pulled []string
	reply  string
}

func (f *fakeOllama) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		type model struct {
			Name string `json:"name"`
		}
		var out struct {
			Models []model `json:"models"`
		}
		for _, name := range f.models {
			out.Models = append(out.Models, model{Name: name})
		}
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("/api/pull", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding pull request: %v", err)
		}
		f.pulled = append(f.pulled, req.Model)
		f.models = append(f.models, req.Model)
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding chat request: %v", err)
		}
		if req.Stream {
			t.Error("chat request has stream=true, want false")
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("chat messages = %+v, want one user message", req.Messages)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaChatMessage{Role: "assistant", Content: f.reply},
		})
	})
	return mux
}

func newOllamaBackend(t *testing.T, fake *fakeOllama) *OllamaBackend {
	t.Helper()
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)
	return &OllamaBackend{
		BaseURL:   server.URL,
		Model:     "llama3.2:3b",
		MaxTokens: 300,
	}
}

func TestOllamaSummarize(t *testing.T) {
	backend := newOllamaBackend(t, &fakeOllama{reply: "the summary"})
	got, err := backend.Summarize(context.Background(), "summarize this")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "the summary" {
		t.Errorf("Summarize = %q", got)
	}
}

func TestOllamaSummarizeEmptyReply(t *testing.T) {
	backend := newOllamaBackend(t, &fakeOllama{reply: ""})
	if _, err := backend.Summarize(context.Background(), "p"); err == nil {
		t.Error("expected error for empty reply")
	}
}

func TestOllamaModels(t *testing.T) {
	backend := newOllamaBackend(t, &fakeOllama{models: []string{"llama3.2:3b", "mistral:7b"}})
	got, err := backend.Models(context.Background())
	if err != nil {
		t.Fatalf("Models: %v", err)
	}
	if want := []string{"llama3.2:3b", "mistral:7b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Models = %v, want %v", got, want)
	}
}

func TestOllamaAvailable(t *testing.T) {
	backend := newOllamaBackend(t, &fakeOllama{models: []string{"llama3.2:3b"}})

	ok, err := backend.Available(context.Background())
	if err != nil || !ok {
		t.Errorf("Available = %v, %v, want true", ok, err)
	}

	// Loose matching: a bare model name finds its tagged variants.
	backend.Model = "llama3.2"
	ok, err = backend.Available(context.Background())
	if err != nil || !ok {
		t.Errorf("Available (bare name) = %v, %v, want true", ok, err)
	}

	backend.Model = "mistral"
	ok, err = backend.Available(context.Background())
	if err != nil || ok {
		t.Errorf("Available (missing) = %v, %v, want false", ok, err)
	}
}

func TestOllamaPullIfNeeded(t *testing.T) {
	fake := &fakeOllama{models: []string{"mistral:7b"}}
	backend := newOllamaBackend(t, fake)

	var buf bytes.Buffer
	if err := backend.PullIfNeeded(context.Background(), &buf); err != nil {
		t.Fatalf("PullIfNeeded: %v", err)
	}
	if !reflect.DeepEqual(fake.pulled, []string{"llama3.2:3b"}) {
		t.Errorf("pulled = %v, want [llama3.2:3b]", fake.pulled)
	}
	if !strings.Contains(buf.String(), "pulling model llama3.2:3b") {
		t.Errorf("missing pull progress: %q", buf.String())
	}

	// Second call finds the model installed and pulls nothing.
	buf.Reset()
	if err := backend.PullIfNeeded(context.Background(), &buf); err != nil {
		t.Fatalf("second PullIfNeeded: %v", err)
	}
	if len(fake.pulled) != 1 {
		t.Errorf("pulled again: %v", fake.pulled)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestOllamaServerDown(t *testing.T) {
	backend := &OllamaBackend{BaseURL: "http://127.0.0.1:1", Model: "llama3.2:3b"}
	if _, err := backend.Models(context.Background()); err == nil {
		t.Error("expected error when server is unreachable")
	}
	if _, err := backend.Summarize(context.Background(), "p"); err == nil {
		t.Error("expected error when server is unreachable")
	}
}

func TestOllamaServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	backend := &OllamaBackend{BaseURL: server.URL, Model: "nope"}
	_, err := backend.Summarize(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Summarize error = %v, want HTTP 404 mention", err)
	}
}
