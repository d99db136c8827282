// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperfinder/internal/fulltext"
	"github.com/pdiddy/paperfinder/internal/library"
	"github.com/pdiddy/paperfinder/internal/output"
	"github.com/pdiddy/paperfinder/internal/search"
	"github.com/pdiddy/paperfinder/internal/semantic"
	"github.com/pdiddy/paperfinder/internal/summarize"
	"github.com/pdiddy/paperfinder/pkg/types"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultSummaryTimeout = 120 * time.Second
	defaultUserAgent      = "paperfinder/0.1"
	defaultModel          = "llama3.2:3b"
	defaultMaxTokens      = 300
	defaultLibraryDir     = ".paperfinder"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search arXiv with semantic query expansion",
	Long: `Search expands the query with synonyms, abbreviations, and related terms,
queries the arXiv API, and re-ranks results by relevance to the original
question.

With --summarize, each result is summarized by a language model; --full-text
downloads and extracts the PDF first instead of summarizing the abstract.
Results can be rendered as console, table, markdown, or json, saved to a
result file with --save, and stored in the local library with --store.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("mode", "moderate", "expansion mode: conservative, moderate, or aggressive")
	searchCmd.Flags().Int("max-results", 10, "maximum number of results to return")
	searchCmd.Flags().String("category", "", "arXiv category filter (e.g. cs.AI)")
	searchCmd.Flags().String("from", "", "publication date range start (YYYY-MM-DD)")
	searchCmd.Flags().String("to", "", "publication date range end (YYYY-MM-DD)")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	searchCmd.Flags().Bool("summarize", false, "generate an AI summary per paper")
	searchCmd.Flags().String("summary-type", "general", "summary focus: general, key_findings, methods, or implications")
	searchCmd.Flags().Bool("full-text", false, "summarize the full PDF text instead of the abstract")
	searchCmd.Flags().Bool("keep-pdfs", false, "keep downloaded PDFs after the run")
	searchCmd.Flags().String("download-dir", "", "directory for downloaded PDFs (default: system temp)")
	searchCmd.Flags().String("backend", "", "summary backend: ollama or openai (default ollama)")
	searchCmd.Flags().String("model", "", "model identifier (default "+defaultModel+")")
	searchCmd.Flags().String("base-url", "", "override the summary API endpoint")
	searchCmd.Flags().Int("max-tokens", defaultMaxTokens, "summary length cap in tokens")

	searchCmd.Flags().Bool("explain", false, "print the expansion trace before searching")
	searchCmd.Flags().String("format", "console", "output format: console, table, markdown, or json")
	searchCmd.Flags().String("output", "", "write rendered output to a file instead of stdout")
	searchCmd.Flags().String("save", "", "save the run (results and summaries) to a YAML file")
	searchCmd.Flags().Bool("store", false, "store results in the local library")
	searchCmd.Flags().String("library-dir", "", "library directory (default "+defaultLibraryDir+")")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	modeStr, _ := cmd.Flags().GetString("mode")
	mode, err := semantic.ParseMode(modeStr)
	if err != nil {
		return err
	}

	formatStr, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	q := search.Query{Text: args[0], Mode: mode}
	q.Category, _ = cmd.Flags().GetString("category")
	if q.DateFrom, err = parseDateFlag(cmd, "from"); err != nil {
		return err
	}
	if q.DateTo, err = parseDateFlag(cmd, "to"); err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	searchCfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		MaxResults: maxResults,
		Category:   q.Category,
	}

	eng := semantic.NewEngine()
	if explain, _ := cmd.Flags().GetBool("explain"); explain {
		fmt.Fprintln(os.Stderr, eng.Explain(q.Text, mode))
	}
	backend := &search.ArxivBackend{Client: &http.Client{Timeout: timeout}}

	fmt.Fprintf(os.Stderr, "searching arXiv (%s expansion)\n", mode)
	out, err := search.Run(ctx, eng, backend, q, searchCfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "found %d papers\n", len(out.Papers))

	var (
		summaries   map[string]string
		summaryType summarize.SummaryType
	)
	doSummarize, _ := cmd.Flags().GetBool("summarize")
	if doSummarize && len(out.Papers) > 0 {
		summaries, summaryType, err = summarizePapers(ctx, cmd, out.Papers)
		if err != nil {
			return err
		}
	}

	dest := os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		dest = f
		fmt.Fprintf(os.Stderr, "writing %s output to %s\n", format, outPath)
	}
	if err := output.Write(dest, format, out.Papers, summaries); err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := search.WriteResultFile(savePath, q, out, summaries); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved run to %s\n", savePath)
	}

	if store, _ := cmd.Flags().GetBool("store"); store {
		if err := storeInLibrary(ctx, cmd, out.Papers, summaries, string(summaryType)); err != nil {
			return err
		}
	}

	return nil
}

// summarizePapers runs the summarization stage for a search: resolve the
// backend, optionally fetch full texts, and summarize every paper.
func summarizePapers(ctx context.Context, cmd *cobra.Command, papers []types.Paper) (map[string]string, summarize.SummaryType, error) {
	typeStr, _ := cmd.Flags().GetString("summary-type")
	summaryType, err := summarize.ParseSummaryType(typeStr)
	if err != nil {
		return nil, "", err
	}

	cfg := summaryConfig(cmd)
	backend, err := summarize.NewBackend(cfg)
	if err != nil {
		return nil, "", err
	}

	if ollama, ok := backend.(*summarize.OllamaBackend); ok {
		if err := ollama.PullIfNeeded(ctx, os.Stderr); err != nil {
			return nil, "", err
		}
	}

	useFullText, _ := cmd.Flags().GetBool("full-text")
	keepPDFs, _ := cmd.Flags().GetBool("keep-pdfs")
	downloadDir, _ := cmd.Flags().GetString("download-dir")

	fetcher, err := fulltext.NewFetcher(&http.Client{Timeout: cfg.Timeout}, types.FullTextConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   cfg.Timeout,
			UserAgent: defaultUserAgent,
		},
		DownloadDir: downloadDir,
		KeepPDFs:    keepPDFs,
	})
	if err != nil {
		return nil, "", err
	}
	defer func() {
		if err := fetcher.Cleanup(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: cleanup failed: %v\n", err)
		}
	}()

	content := func(ctx context.Context, p types.Paper) string {
		return fetcher.Content(ctx, p, useFullText, os.Stderr)
	}

	summaries, batch := summarize.SummarizeAll(ctx, backend, papers, summaryType, content, os.Stderr)
	if batch.HasFailures() {
		fmt.Fprintf(os.Stderr, "warning: %d paper(s) failed summarization\n", batch.Failed)
	}
	return summaries, summaryType, nil
}

// summaryConfig assembles the summary backend settings from flags, the
// config file, and loaded secrets.
func summaryConfig(cmd *cobra.Command) types.SummaryConfig {
	backendStr, _ := cmd.Flags().GetString("backend")
	if backendStr == "" {
		backendStr = viper.GetString("summary.backend")
	}
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("summary.model")
	}
	if model == "" {
		model = defaultModel
	}
	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = secretDefault("ollama-host", viper.GetString("summary.base_url"))
	}
	maxTokens, _ := cmd.Flags().GetInt("max-tokens")

	return types.SummaryConfig{
		Backend:   types.SummaryBackendKind(backendStr),
		Model:     model,
		BaseURL:   baseURL,
		APIKey:    secretDefault("openai-api-key", viper.GetString("summary.api_key")),
		MaxTokens: maxTokens,
		Timeout:   defaultSummaryTimeout,
	}
}

func storeInLibrary(ctx context.Context, cmd *cobra.Command, papers []types.Paper, summaries map[string]string, summaryType string) error {
	store, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, papers, summaries, summaryType); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "stored %d paper(s) in the library\n", len(papers))
	return nil
}

// openLibrary opens the library store using the flag, config file, or
// default directory.
func openLibrary(cmd *cobra.Command) (*library.Store, error) {
	dir, _ := cmd.Flags().GetString("library-dir")
	if dir == "" {
		dir = secretDefault("library-dir", viper.GetString("library.dir"))
	}
	if dir == "" {
		dir = defaultLibraryDir
	}
	return library.NewStore(types.LibraryConfig{
		Dir:        dir,
		MaxResults: viper.GetInt("library.max_results"),
	})
}

// parseDateFlag parses a YYYY-MM-DD flag value. An empty flag yields the
// zero time.
func parseDateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q (want YYYY-MM-DD)", name, s)
	}
	return t, nil
}
