package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leofalp/webscout/providers/search"
)

func newSearchCommand(flags *globalFlags) *cobra.Command {
	var (
		limit   int
		backend string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a web search and print the results as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if backend != "" {
				cfg.Search.Backend = backend
			}
			if limit <= 0 {
				limit = cfg.Search.MaxResults
			}

			searcher, err := search.NewFromConfig(cfg.Search)
			if err != nil {
				return err
			}

			results, err := searcher.Search(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return fmt.Errorf("%s search: %w", searcher.Name(), err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(results)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (default from config)")
	cmd.Flags().StringVar(&backend, "backend", "", "search backend: duckduckgo or brave (overrides config)")
	return cmd
}
