package scrape

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a scrape failure.
type ErrorKind string

const (
	// KindNetwork covers DNS failures, refused connections, timeouts and
	// cancellation.
	KindNetwork ErrorKind = "NetworkError"
	// KindHTTP is a non-2xx response; Error.Status carries the code.
	KindHTTP ErrorKind = "HttpError"
	// KindEmptyBody is a 2xx response with no (or only whitespace) content.
	KindEmptyBody ErrorKind = "EmptyBody"
	// KindNoExtractableContent means every extraction strategy came back empty.
	KindNoExtractableContent ErrorKind = "NoExtractableContent"
	// KindInvalidArgument is a URL rejected before any network activity.
	KindInvalidArgument ErrorKind = "InvalidArgument"
)

// Error is the typed failure used inside the pipeline.
type Error struct {
	Kind   ErrorKind
	Status int
	URL    string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindHTTP:
		return fmt.Sprintf("%s: status %d fetching %s", e.Kind, e.Status, e.URL)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.URL)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind carried by err, or "" when err is not (and
// does not wrap) an *Error.
func KindOf(err error) ErrorKind {
	var scrapeErr *Error
	if errors.As(err, &scrapeErr) {
		return scrapeErr.Kind
	}
	return ""
}
