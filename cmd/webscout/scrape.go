package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leofalp/webscout/core/scrape"
)

func newScrapeCommand(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "Fetch a page and print its main content as JSON",
		Example: `  webscout scrape https://go.dev/blog/go1.23
  webscout scrape --format markdown https://pkg.go.dev/net/http`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, observer, err := flags.load(cmd)
			if err != nil {
				return err
			}

			scraper := scrape.NewFromConfig(cfg.Scrape, observer)
			result := scraper.Scrape(cmd.Context(), scrape.Request{URL: args[0], Format: scrape.Format(format)})

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			return result.Err()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(scrape.FormatText), "content format: text or markdown")
	return cmd
}
