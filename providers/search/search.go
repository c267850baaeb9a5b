package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/leofalp/webscout/core/config"
)

// ErrEmptyQuery is returned when a search is attempted with a blank query.
var ErrEmptyQuery = errors.New("search query is empty")

const (
	DefaultLimit   = 5
	DefaultTimeout = 15 * time.Second
	maxLimit       = 20
)

// Result is one ranked search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher runs a web search and returns up to limit results in rank order.
// A limit of zero or less selects DefaultLimit.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Name() string
}

// StatusError reports a non-2xx answer from a search backend.
type StatusError struct {
	Backend    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s search returned HTTP %d", e.Backend, e.StatusCode)
}

// NewFromConfig returns the backend selected by cfg.Backend.
func NewFromConfig(cfg config.SearchConfig) (Searcher, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Backend {
	case "", "duckduckgo":
		return NewDuckDuckGo(WithHTTPClient(client)), nil
	case "brave":
		return NewBrave(cfg.APIKey, WithHTTPClient(client)), nil
	default:
		return nil, fmt.Errorf("unknown search backend %q", cfg.Backend)
	}
}

// Option configures a backend.
type Option func(*options)

type options struct {
	client   *http.Client
	endpoint string
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.client = client
		}
	}
}

// WithEndpoint overrides the backend URL, mostly for tests.
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
	}
}

func applyOptions(defaultEndpoint string, opts []Option) options {
	o := options{
		client:   &http.Client{Timeout: DefaultTimeout},
		endpoint: defaultEndpoint,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > maxLimit:
		return maxLimit
	default:
		return limit
	}
}
