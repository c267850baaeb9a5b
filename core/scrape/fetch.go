package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/leofalp/webscout/internal/utils"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultTimeout bounds a whole fetch, connection to last body byte.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxBodyBytes caps how much of a response body is read.
	DefaultMaxBodyBytes = 10 << 20
	// DefaultUserAgent is a desktop Chrome UA; many sites block obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	dialTimeout = 5 * time.Second
	maxRedirect = 10
)

// RawPage is a fetched document with its body decoded to UTF-8.
type RawPage struct {
	URL         string
	FinalURL    string
	StatusCode  int
	ContentType string
	Encoding    string
	Body        string
}

// Fetcher downloads a single URL. It never retries.
type Fetcher struct {
	client       *http.Client
	userAgent    string
	timeout      time.Duration
	maxBodyBytes int64
}

type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the default bounded client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

func WithUserAgent(userAgent string) FetcherOption {
	return func(f *Fetcher) {
		if userAgent != "" {
			f.userAgent = userAgent
		}
	}
}

func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

func WithMaxBodyBytes(n int64) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodyBytes = n
		}
	}
}

func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		userAgent:    DefaultUserAgent,
		timeout:      DefaultTimeout,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = newHTTPClient(f.timeout)
	}
	return f
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   dialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   dialTimeout,
			ResponseHeaderTimeout: timeout,
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			ForceAttemptHTTP2:     true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirect {
				return fmt.Errorf("too many redirects (>%d)", maxRedirect)
			}
			return nil
		},
	}
}

// Fetch performs one GET of rawURL. Every failure is an *Error with kind
// KindInvalidArgument, KindNetwork, KindHTTP or KindEmptyBody.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*RawPage, error) {
	target, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &Error{Kind: KindInvalidArgument, URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: rawURL, Err: err}
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &Error{Kind: KindHTTP, Status: resp.StatusCode, URL: rawURL}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: rawURL, Err: fmt.Errorf("reading body: %w", err)}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &Error{Kind: KindEmptyBody, URL: rawURL}
	}

	contentType := resp.Header.Get("Content-Type")
	body, encoding := decodeBody(raw, contentType)
	if strings.TrimSpace(body) == "" {
		return nil, &Error{Kind: KindEmptyBody, URL: rawURL}
	}

	return &RawPage{
		URL:         rawURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Encoding:    encoding,
		Body:        body,
	}, nil
}

// decodeBody converts raw to UTF-8 using a BOM, the Content-Type charset or
// a <meta charset> declaration. Without a declaration, valid UTF-8 is kept
// as-is; charset sniffing only looks at the first KiB and would otherwise
// guess windows-1252 for pages with an ASCII head. Undecodable input is
// passed through unchanged.
func decodeBody(raw []byte, contentType string) (string, string) {
	enc, name, certain := charset.DetermineEncoding(raw, contentType)
	if name == "utf-8" || (!certain && utf8.Valid(raw)) {
		return string(raw), "utf-8"
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw), "utf-8"
	}
	return string(decoded), name
}

// ValidateURL checks that rawURL is an absolute http or https URL with a
// host. The error is an *Error of kind KindInvalidArgument.
func ValidateURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, &Error{Kind: KindInvalidArgument, URL: rawURL, Err: errors.New("url is empty")}
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, &Error{Kind: KindInvalidArgument, URL: rawURL, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &Error{Kind: KindInvalidArgument, URL: rawURL, Err: fmt.Errorf("unsupported scheme %q, want http or https", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &Error{Kind: KindInvalidArgument, URL: rawURL, Err: errors.New("url has no host")}
	}
	return u, nil
}
