// Package scrape implements the one-shot content extraction pipeline behind
// the scrape_url tool: fetch a page, pull its readable text out with an
// ordered chain of strategies, and bound the result to a character budget.
//
//	scraper := scrape.New(scrape.NewFetcher())
//	result := scraper.Scrape(ctx, scrape.Request{URL: "https://go.dev/doc/"})
//	if result.Status == scrape.StatusSuccess {
//	    fmt.Println(result.Content)
//	}
//
// Failures never surface as Go errors from [Scraper.Scrape]; they are
// reported inside the [Result] so the model can read and react to them.
// Nothing is cached and no links are followed.
package scrape
