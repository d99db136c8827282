// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperfinder/internal/summarize"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage Ollama models used for summarization",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List models installed on the Ollama server",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := ollamaBackend(cmd)
		names, err := backend.Models(cmd.Context())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No models installed.")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var modelsPullCmd = &cobra.Command{
	Use:   "pull [model]",
	Short: "Download a model onto the Ollama server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := ollamaBackend(cmd)
		fmt.Fprintf(os.Stderr, "pulling model %s\n", args[0])
		if err := backend.Pull(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "pulled %s\n", args[0])
		return nil
	},
}

func ollamaBackend(cmd *cobra.Command) *summarize.OllamaBackend {
	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = secretDefault("ollama-host", viper.GetString("summary.base_url"))
	}
	return &summarize.OllamaBackend{
		BaseURL: baseURL,
		Client:  http.DefaultClient,
	}
}

func init() {
	modelsListCmd.Flags().String("base-url", "", "Ollama server URL (default http://localhost:11434)")
	modelsPullCmd.Flags().String("base-url", "", "Ollama server URL (default http://localhost:11434)")

	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsPullCmd)
	rootCmd.AddCommand(modelsCmd)
}
