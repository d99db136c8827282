// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fulltext downloads paper PDFs and extracts cleaned text for
// summarization. Downloads are cached on disk and extraction failures
// fall back to the abstract, so the summarization pipeline always has
// content to work with.
package fulltext

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/paperfinder/internal/httputil"
	"github.com/pdiddy/paperfinder/pkg/types"
)

// Fetcher downloads PDFs into a cache directory and extracts their text.
type Fetcher struct {
	client *http.Client
	cfg    types.FullTextConfig
	dir    string
}

// NewFetcher creates a Fetcher and its cache directory. An empty
// DownloadDir defaults to a paperfinder subdirectory of the system temp
// dir.
func NewFetcher(client *http.Client, cfg types.FullTextConfig) (*Fetcher, error) {
	dir := cfg.DownloadDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "paperfinder-papers")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}
	return &Fetcher{client: client, cfg: cfg, dir: dir}, nil
}

// Dir returns the cache directory.
func (f *Fetcher) Dir() string { return f.dir }

// Content returns the text to summarize for a paper: the extracted full
// text when useFullText is set and extraction succeeds, otherwise the
// abstract. Download or extraction failures are reported on w and degrade
// to the abstract rather than failing the pipeline.
func (f *Fetcher) Content(ctx context.Context, paper types.Paper, useFullText bool, w io.Writer) string {
	if !useFullText {
		return paper.Abstract
	}

	path, err := f.Download(ctx, paper.PDFURL, paper.ArxivID)
	if err != nil {
		fmt.Fprintf(w, "  warning: %s: %v; using abstract\n", paper.ArxivID, err)
		return paper.Abstract
	}

	text, err := ExtractText(path)
	if err != nil {
		fmt.Fprintf(w, "  warning: %s: %v; using abstract\n", paper.ArxivID, err)
		return paper.Abstract
	}
	return text
}

// Download fetches a PDF into the cache directory, skipping the request
// when the file is already present. It downloads to a temp file and
// renames on success so a partial download never poisons the cache.
func (f *Fetcher) Download(ctx context.Context, pdfURL, arxivID string) (string, error) {
	if pdfURL == "" {
		return "", fmt.Errorf("no PDF URL for %s", arxivID)
	}

	name := strings.ReplaceAll(arxivID, "/", "_") + ".pdf"
	destPath := filepath.Join(f.dir, name)

	if _, err := os.Stat(destPath); err == nil {
		return destPath, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, f.client, req, 0)
	if err != nil {
		return "", fmt.Errorf("downloading PDF: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, pdfURL)
	}

	tmpFile, err := os.CreateTemp(f.dir, ".download-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return destPath, nil
}

// Cleanup removes cached PDFs and the cache directory. A no-op when
// KeepPDFs is set.
func (f *Fetcher) Cleanup() error {
	if f.cfg.KeepPDFs {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(f.dir, "*.pdf"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return fmt.Errorf("removing %s: %w", m, err)
		}
	}

	// The directory may hold unrelated files; removal is best-effort.
	os.Remove(f.dir)
	return nil
}
