package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrTimeout             = errors.New("upstream request timed out")
	ErrMalformedPayload    = errors.New("malformed listing payload")
	ErrNoQualifyingContent = errors.New("no qualifying content")
)

// HTTPStatusError is a non-2xx answer from reddit
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	if e.NotFound() {
		return fmt.Sprintf("subreddits not found (404): %s", e.URL)
	}
	return fmt.Sprintf("reddit status %d: %s", e.StatusCode, e.URL)
}

// NotFound reports whether the subreddit combination does not exist
func (e *HTTPStatusError) NotFound() bool {
	return e.StatusCode == 404
}

type ErrorKind string

const (
	KindTimeout   ErrorKind = "timeout"
	KindNotFound  ErrorKind = "not_found"
	KindHTTP      ErrorKind = "http_error"
	KindMalformed ErrorKind = "malformed_payload"
	KindNoContent ErrorKind = "no_qualifying_content"
	KindUnknown   ErrorKind = "unknown"
)

// Classify maps a fetch error onto the retry taxonomy
func Classify(err error) ErrorKind {
	var statusErr *HTTPStatusError
	var netErr net.Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoQualifyingContent):
		return KindNoContent
	case errors.Is(err, ErrMalformedPayload):
		return KindMalformed
	case errors.As(err, &statusErr):
		if statusErr.NotFound() {
			return KindNotFound
		}
		return KindHTTP
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return KindTimeout
	default:
		return KindUnknown
	}
}
