// Command webscout answers questions by searching the web and reading the
// pages it finds.
//
//	webscout ask "What changed in Go 1.23?"
//	webscout ask                    # interactive session
//	webscout scrape https://go.dev/doc/go1.23 --format markdown
//	webscout search "go 1.23 release notes"
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
