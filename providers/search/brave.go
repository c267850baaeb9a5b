package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/leofalp/webscout/internal/utils"
)

const braveSearchURL = "https://api.search.brave.com/res/v1/web/search"

// Brave queries the Brave Search web endpoint.
type Brave struct {
	apiKey string
	opts   options
}

func NewBrave(apiKey string, opts ...Option) *Brave {
	return &Brave{apiKey: apiKey, opts: applyOptions(braveSearchURL, opts)}
}

func (b *Brave) Name() string {
	return "brave"
}

type braveResponse struct {
	Web *struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

func (b *Brave) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if b.apiKey == "" {
		return nil, errors.New("brave search requires an API key (BRAVE_SEARCH_API_KEY)")
	}
	limit = clampLimit(limit)

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(limit))
	params.Set("result_filter", "web")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.opts.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.opts.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Backend: b.Name(), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	var decoded braveResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	if decoded.Web == nil {
		return nil, nil
	}

	results := make([]Result, 0, min(limit, len(decoded.Web.Results)))
	for _, r := range decoded.Web.Results {
		if len(results) == limit {
			break
		}
		results = append(results, Result{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: stripTags(r.Description),
		})
	}
	return results, nil
}

// stripTags removes the <strong> highlighting and entities Brave puts in
// descriptions.
func stripTags(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
