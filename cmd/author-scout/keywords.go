// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/author-scout/internal/query"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords EXPRESSION [TEXT...]",
	Short: "Check a keyword expression and test it against sample text",
	Long: `Keywords parses a boolean keyword expression, prints how it groups, and
reports whether each TEXT argument matches. Matching is a case-insensitive
substring test. No network calls are made.`,
	Example: `  author-scout keywords "transformer AND attention OR diffusion"
  author-scout keywords "(graph OR gnn) AND molecule" "A GNN for molecule design"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKeywords,
}

func init() {
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	m, err := query.Compile(args[0])
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, m.String())

	texts := args[1:]
	for i, ok := range m.Mask(texts) {
		verdict := "no match"
		if ok {
			verdict = "match"
		}
		fmt.Fprintf(w, "%-8s  %s\n", verdict, texts[i])
	}
	return nil
}
