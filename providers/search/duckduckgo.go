package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/leofalp/webscout/internal/utils"
)

const (
	duckDuckGoLiteURL   = "https://lite.duckduckgo.com/lite/"
	duckDuckGoUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	// duckDuckGoInterval is the minimum spacing between two queries of the
	// same backend instance.
	duckDuckGoInterval = time.Second
)

// DuckDuckGo searches the DuckDuckGo lite HTML page. It needs no API key.
type DuckDuckGo struct {
	opts options

	mu   sync.Mutex
	last time.Time
}

func NewDuckDuckGo(opts ...Option) *DuckDuckGo {
	return &DuckDuckGo{opts: applyOptions(duckDuckGoLiteURL, opts)}
}

func (d *DuckDuckGo) Name() string {
	return "duckduckgo"
}

func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if err := d.wait(ctx); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.opts.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", duckDuckGoUserAgent)

	resp, err := d.opts.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Backend: d.Name(), StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing results page: %w", err)
	}
	return parseLiteResults(doc, clampLimit(limit)), nil
}

// wait enforces duckDuckGoInterval between queries.
func (d *DuckDuckGo) wait(ctx context.Context) error {
	d.mu.Lock()
	delay := time.Until(d.last.Add(duckDuckGoInterval))
	if delay < 0 {
		delay = 0
	}
	d.last = time.Now().Add(delay)
	d.mu.Unlock()

	if delay == 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// parseLiteResults reads the lite layout: each hit is a row holding
// a.result-link, followed by a row with td.result-snippet. Sponsored rows
// are skipped.
func parseLiteResults(doc *goquery.Document, limit int) []Result {
	var results []Result
	doc.Find("a.result-link").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		row := link.Closest("tr")
		if row.HasClass("result-sponsored") || link.Closest(".result-sponsored").Length() > 0 {
			return true
		}

		target := resolveDuckDuckGoURL(link.AttrOr("href", ""))
		title := strings.Join(strings.Fields(link.Text()), " ")
		if target == "" || title == "" {
			return true
		}

		var snippet string
		for next := row.Next(); next.Length() > 0; next = next.Next() {
			if next.Find("a.result-link").Length() > 0 {
				break
			}
			if cell := next.Find("td.result-snippet"); cell.Length() > 0 {
				snippet = cell.Text()
				break
			}
		}
		results = append(results, Result{
			Title:   title,
			URL:     target,
			Snippet: strings.Join(strings.Fields(snippet), " "),
		})
		return len(results) < limit
	})
	return results
}

// resolveDuckDuckGoURL unwraps //duckduckgo.com/l/?uddg=<target> redirect
// links and drops internal or non-http links.
func resolveDuckDuckGoURL(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if strings.HasSuffix(u.Host, "duckduckgo.com") {
		if target := u.Query().Get("uddg"); target != "" {
			return resolveDuckDuckGoURL(target)
		}
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
