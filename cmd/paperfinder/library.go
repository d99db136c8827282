// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperfinder/internal/library"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local paper library",
	Long: `Library stores papers and their summaries in a local SQLite database.
Saved papers are full-text searchable across titles, abstracts, and
summaries.`,
}

// --- list subcommand ---

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved papers, most recent first",
	RunE:  runLibraryList,
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	store, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	maxResults, _ := cmd.Flags().GetInt("max-results")
	entries, err := store.List(cmd.Context(), maxResults)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatLibraryOutput(entries, jsonOutput)
}

// --- search subcommand ---

var librarySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over saved papers",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibrarySearch,
}

func runLibrarySearch(cmd *cobra.Command, args []string) error {
	store, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	maxResults, _ := cmd.Flags().GetInt("max-results")
	entries, err := store.Search(cmd.Context(), library.EscapeQuery(args[0]), maxResults)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatLibraryOutput(entries, jsonOutput)
}

// --- remove subcommand ---

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove [arxiv-id]",
	Short: "Remove a paper from the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "removed %s\n", args[0])
		return nil
	},
}

func formatLibraryOutput(entries []library.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No papers found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-15s  %-50s  %-12s  %-12s  %s\n",
		"ArXiv ID", "Title", "Published", "Saved", "Summary")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 105))

	for _, e := range entries {
		title := e.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		hasSummary := "-"
		if e.Summary != "" {
			hasSummary = e.SummaryType
		}
		fmt.Fprintf(os.Stdout, "%-15s  %-50s  %-12s  %-12s  %s\n",
			e.ArxivID, title, e.Published.Format("2006-01-02"),
			e.SavedAt.Format("2006-01-02"), hasSummary)
	}

	fmt.Fprintf(os.Stdout, "\n%d papers\n", len(entries))
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{libraryListCmd, librarySearchCmd} {
		cmd.Flags().Int("max-results", 0, "maximum number of papers to show (default 20)")
		cmd.Flags().Bool("json", false, "output as JSON")
		cmd.Flags().String("library-dir", "", "library directory (default "+defaultLibraryDir+")")
	}
	libraryRemoveCmd.Flags().String("library-dir", "", "library directory (default "+defaultLibraryDir+")")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(librarySearchCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	rootCmd.AddCommand(libraryCmd)
}
