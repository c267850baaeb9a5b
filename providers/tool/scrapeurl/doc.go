// Package scrapeurl exposes the scrape pipeline to the model as the
// scrape_url tool.
//
// The tool never fails on a bad page: unreachable hosts, HTTP errors and
// pages without readable text come back as a failure result the model can
// reason about.
//
//	catalog := tool.NewCatalogWithTools(scrapeurl.NewScrapeURLTool(scraper))
package scrapeurl
