package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"github.com/leofalp/webscout/core/config"
	"github.com/leofalp/webscout/providers/observability"
)

// Format selects how extracted content is rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

type Request struct {
	URL    string
	Format Format
}

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Failure describes why a scrape produced no content.
type Failure struct {
	Kind    ErrorKind `json:"kind"`
	Status  int       `json:"status,omitempty"`
	Message string    `json:"message"`
}

// Result is the outcome of one scrape: either content (Status ==
// StatusSuccess) or a Failure, never both.
type Result struct {
	URL       string
	Status    Status
	Content   string
	Truncated bool
	Title     string
	Strategy  StrategyName
	Failure   *Failure
}

type successJSON struct {
	URL       string       `json:"url"`
	Status    Status       `json:"status"`
	Title     string       `json:"title,omitempty"`
	Content   string       `json:"content"`
	Truncated bool         `json:"truncated"`
	Strategy  StrategyName `json:"strategy"`
}

type failureJSON struct {
	URL    string   `json:"url"`
	Status Status   `json:"status"`
	Error  *Failure `json:"error"`
}

// MarshalJSON emits only the fields of the populated variant.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Status == StatusSuccess {
		return json.Marshal(successJSON{
			URL:       r.URL,
			Status:    r.Status,
			Title:     r.Title,
			Content:   r.Content,
			Truncated: r.Truncated,
			Strategy:  r.Strategy,
		})
	}
	return json.Marshal(failureJSON{URL: r.URL, Status: StatusFailure, Error: r.Failure})
}

// Err returns the failure as an *Error, or nil on success.
func (r Result) Err() error {
	if r.Status == StatusSuccess || r.Failure == nil {
		return nil
	}
	return &Error{Kind: r.Failure.Kind, Status: r.Failure.Status, URL: r.URL}
}

func failed(url string, err error) Result {
	failure := &Failure{Kind: KindNetwork, Message: err.Error()}
	var scrapeErr *Error
	if errors.As(err, &scrapeErr) {
		failure.Kind = scrapeErr.Kind
		failure.Status = scrapeErr.Status
	}
	return Result{URL: url, Status: StatusFailure, Failure: failure}
}

// Scraper runs fetch, extraction and truncation. It holds only immutable
// settings and is safe for concurrent use.
type Scraper struct {
	fetcher        *Fetcher
	primaryBudget  int
	fallbackBudget int
	observer       observability.Provider
	chainFor       func(pageURL *url.URL) *Chain
}

func defaultChain(pageURL *url.URL) *Chain {
	return NewChain(PrimaryStrategy{PageURL: pageURL}, FallbackStrategy{})
}

type Option func(*Scraper)

// WithBudgets sets the truncation budgets for text produced by the primary
// and fallback strategies.
func WithBudgets(primary, fallback int) Option {
	return func(s *Scraper) {
		if primary > 0 {
			s.primaryBudget = primary
		}
		if fallback > 0 {
			s.fallbackBudget = fallback
		}
	}
}

func WithObserver(observer observability.Provider) Option {
	return func(s *Scraper) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// New creates a Scraper. A nil fetcher gets NewFetcher's defaults.
func New(fetcher *Fetcher, opts ...Option) *Scraper {
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	s := &Scraper{
		fetcher:        fetcher,
		primaryBudget:  DefaultPrimaryBudget,
		fallbackBudget: DefaultFallbackBudget,
		observer:       observability.Nop(),
		chainFor:       defaultChain,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig builds a Scraper and its Fetcher from cfg.
func NewFromConfig(cfg config.ScrapeConfig, observer observability.Provider) *Scraper {
	fetcher := NewFetcher(
		WithTimeout(cfg.Timeout),
		WithUserAgent(cfg.UserAgent),
		WithMaxBodyBytes(cfg.MaxBodyBytes),
	)
	return New(fetcher,
		WithBudgets(cfg.PrimaryBudget, cfg.FallbackBudget),
		WithObserver(observer),
	)
}

// Scrape fetches req.URL and returns its main content. Invalid URLs fail
// with KindInvalidArgument before any network activity. Failures are
// reported in the Result, never as a Go error.
func (s *Scraper) Scrape(ctx context.Context, req Request) Result {
	start := time.Now()
	ctx, span := s.observer.StartSpan(ctx, observability.SpanScrape,
		observability.String(observability.AttrScrapeURL, req.URL),
	)
	defer span.End()

	result := s.scrape(ctx, span, req)

	attrs := []observability.Attribute{
		observability.String(observability.AttrScrapeURL, req.URL),
		observability.Duration(observability.AttrDuration, time.Since(start)),
	}
	if result.Status == StatusSuccess {
		span.SetStatus(observability.StatusOK, "")
		attrs = append(attrs,
			observability.String(observability.AttrScrapeStrategy, string(result.Strategy)),
			observability.Int(observability.AttrScrapeTextLength, len(result.Content)),
			observability.Bool(observability.AttrScrapeTruncated, result.Truncated),
		)
		s.observer.Debug(ctx, "Scrape succeeded", attrs...)
	} else {
		span.SetStatus(observability.StatusError, result.Failure.Message)
		attrs = append(attrs, observability.String(observability.AttrScrapeErrorKind, string(result.Failure.Kind)))
		if result.Failure.Status != 0 {
			attrs = append(attrs, observability.Int(observability.AttrHTTPStatusCode, result.Failure.Status))
		}
		s.observer.Info(ctx, "Scrape failed", attrs...)
	}

	return result
}

func (s *Scraper) scrape(ctx context.Context, span observability.Span, req Request) Result {
	target, err := ValidateURL(req.URL)
	if err != nil {
		return failed(req.URL, err)
	}

	format := req.Format
	if format == "" {
		format = FormatText
	}
	if format != FormatText && format != FormatMarkdown {
		return Result{URL: req.URL, Status: StatusFailure, Failure: &Failure{
			Kind:    KindInvalidArgument,
			Message: "format must be \"text\" or \"markdown\"",
		}}
	}

	page, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		span.RecordError(err)
		return failed(req.URL, err)
	}
	span.SetAttributes(
		observability.String(observability.AttrScrapeFinalURL, page.FinalURL),
		observability.String(observability.AttrScrapeEncoding, page.Encoding),
	)

	chosen, attempts, ok := s.chainFor(target).Run(page.Body, format)
	for _, attempt := range attempts {
		span.AddEvent(observability.EventExtractionAttempt,
			observability.String(observability.AttrScrapeStrategy, string(attempt.Strategy)),
			observability.Int(observability.AttrScrapeRawLength, attempt.RawLength),
			observability.Int(observability.AttrScrapeTextLength, len(attempt.Text)),
		)
	}
	if !ok {
		return Result{URL: req.URL, Status: StatusFailure, Failure: &Failure{
			Kind:    KindNoExtractableContent,
			Message: "no readable text found on the page",
		}}
	}

	budget := s.primaryBudget
	if chosen.Strategy == StrategyFallback {
		budget = s.fallbackBudget
	}
	content, truncated := Truncate(chosen.Text, budget)

	return Result{
		URL:       req.URL,
		Status:    StatusSuccess,
		Content:   content,
		Truncated: truncated,
		Title:     ExtractTitle(page.Body),
		Strategy:  chosen.Strategy,
	}
}
