package scrapeurl

import (
	"context"
	"strings"

	"github.com/leofalp/webscout/core/scrape"
	"github.com/leofalp/webscout/providers/tool"
)

// Name is the tool name advertised to the model.
const Name = "scrape_url"

const description = "Fetch a web page and return its main readable content, with navigation, ads and " +
	"other boilerplate removed. Use it on the most promising URL from search_web. Returns the page " +
	"title and text (truncated when long) or an error describing why the page could not be read."

// Scraper is the part of *scrape.Scraper the tool needs.
type Scraper interface {
	Scrape(ctx context.Context, req scrape.Request) scrape.Result
}

type Input struct {
	URL    string `json:"url" jsonschema:"description=Absolute http or https URL of the page to read,required"`
	Format string `json:"format,omitempty" jsonschema:"description=Output format of the page content,enum=text,enum=markdown,default=text"`
}

// NewScrapeURLTool returns the scrape_url tool backed by scraper.
func NewScrapeURLTool(scraper Scraper) *tool.Tool[Input, scrape.Result] {
	return tool.NewTool(Name, func(ctx context.Context, input Input) (scrape.Result, error) {
		return Scrape(ctx, scraper, input), nil
	}, tool.WithDescription(description))
}

// Scrape runs one request. Format names are matched case-insensitively and
// an empty format means text.
func Scrape(ctx context.Context, scraper Scraper, input Input) scrape.Result {
	return scraper.Scrape(ctx, scrape.Request{
		URL:    strings.TrimSpace(input.URL),
		Format: scrape.Format(strings.ToLower(strings.TrimSpace(input.Format))),
	})
}
