// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperfinder/internal/semantic"
)

var explainCmd = &cobra.Command{
	Use:   "explain [query]",
	Short: "Show how a query would be expanded",
	Long: `Explain prints the synonyms, abbreviation expansions, and related terms
found for a query, along with the final search expression, without
querying arXiv.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeStr, _ := cmd.Flags().GetString("mode")
		mode, err := semantic.ParseMode(modeStr)
		if err != nil {
			return err
		}

		fmt.Println(semantic.NewEngine().Explain(args[0], mode))
		return nil
	},
}

func init() {
	explainCmd.Flags().String("mode", "moderate", "expansion mode: conservative, moderate, or aggressive")

	rootCmd.AddCommand(explainCmd)
}
