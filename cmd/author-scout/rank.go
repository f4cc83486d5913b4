// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/author-scout/internal/export"
	"github.com/pdiddy/author-scout/pkg/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the authors of recent arXiv papers",
	Long: `Rank fetches arXiv papers submitted in the date window for the given
categories, keeps those whose abstract matches --keywords, resolves the first
--author-limit authors of each paper on Semantic Scholar and prints one row
per (paper, author) pair that passes the quality filter (at least 10 papers
and 100 citations, h-index within [--min-h, --max-h]).

Keyword expressions use AND, OR and parentheses; AND binds tighter than OR:

  author-scout rank --category cs.LG --keywords "(transformer OR diffusion) AND attention"

A comma-separated list such as "transformer, attention" requires every term.`,
	Example: `  author-scout rank --category cs.LG --category cs.AI --from 2024-01-01 --to 2024-01-31
  author-scout rank --category cs.CL --keywords "large language model" --format csv --output authors.csv
  author-scout rank --load run.yaml --format json`,
	RunE: runRank,
}

func init() {
	addRankFlags(rankCmd)
	rootCmd.AddCommand(rankCmd)
}

func addRankFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("category", nil, "arXiv category code, repeatable or comma-separated (e.g. cs.LG)")
	f.String("from", "", "submission window start, YYYY-MM-DD (default: 7 days before --to)")
	f.String("to", "", "submission window end, YYYY-MM-DD (default: today)")
	f.Int("max-results", 0, "maximum number of papers to fetch (default from config, 10)")
	f.Int("author-limit", 0, "authors considered per paper (default from config, 5)")
	f.Int("min-h", 0, "minimum h-index (default from config, 1)")
	f.Int("max-h", 0, "maximum h-index (default from config, 25)")
	f.String("keywords", "", "boolean keyword expression matched against abstracts")
	f.String("format", export.FormatNameTable, "output format: table, json or csv")
	f.StringP("output", "o", "", "write output to a file instead of stdout")
	f.String("save", "", "save parameters and results to a YAML run file")
	f.String("load", "", "render a saved YAML run file instead of querying")
}

func runRank(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")
	savePath, _ := cmd.Flags().GetString("save")
	loadPath, _ := cmd.Flags().GetString("load")

	var (
		params types.SearchParams
		out    *types.RankOutput
	)
	if loadPath != "" {
		rf, err := export.ReadRunFile(loadPath)
		if err != nil {
			return err
		}
		if params, err = rf.Params.ToParams(); err != nil {
			return fmt.Errorf("run file %s: %w", loadPath, err)
		}
		out = rf.Output()
	} else {
		var err error
		params, err = paramsFromFlags(cmd, defaultParams(app.cfg, time.Now()))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(os.Stderr, "Ranking authors in %v from %s to %s...\n",
			params.Categories, params.From.Format(types.DateLayout), params.To.Format(types.DateLayout))
		out, err = newPipeline(app.cfg).Run(ctx, params)
		if err != nil {
			return err
		}
	}

	if savePath != "" {
		if err := export.WriteRunFile(savePath, params, out); err != nil {
			return fmt.Errorf("saving run file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved run to %s\n", savePath)
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return export.Write(w, format, out)
}

// paramsFromFlags overlays explicitly set flags on defaults.
func paramsFromFlags(cmd *cobra.Command, p types.SearchParams) (types.SearchParams, error) {
	f := cmd.Flags()

	p.Categories, _ = f.GetStringSlice("category")

	if s, _ := f.GetString("to"); s != "" {
		to, err := types.ParseDate(s)
		if err != nil {
			return p, &types.ValidationError{Field: "to", Message: err.Error()}
		}
		p.From = to.Add(p.From.Sub(p.To))
		p.To = to
	}
	if s, _ := f.GetString("from"); s != "" {
		from, err := types.ParseDate(s)
		if err != nil {
			return p, &types.ValidationError{Field: "from", Message: err.Error()}
		}
		p.From = from
	}

	if n, _ := f.GetInt("max-results"); f.Changed("max-results") {
		p.MaxResults = n
	}
	if n, _ := f.GetInt("author-limit"); f.Changed("author-limit") {
		p.AuthorLimit = n
	}
	if n, _ := f.GetInt("min-h"); f.Changed("min-h") {
		p.MinHIndex = n
	}
	if n, _ := f.GetInt("max-h"); f.Changed("max-h") {
		p.MaxHIndex = n
	}
	p.Keywords, _ = f.GetString("keywords")
	return p, nil
}

// runContext is cmd.Context with a fallback for direct calls in tests.
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
