package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/loganintech/go-reddit/v2/reddit"
	"github.com/qepting91/reddit-video-feed/internal/domain"
	"golang.org/x/time/rate"
)

// ReadonlyClient goes through go-reddit's unauthenticated client. The
// typed listing helpers drop media fields, so it issues the raw request.
type ReadonlyClient struct {
	client  *reddit.Client
	limiter *rate.Limiter
}

func NewReadonlyClient(baseURL string, limiter *rate.Limiter, agents *UserAgentPool) (*ReadonlyClient, error) {
	opts := []reddit.Opt{reddit.WithHTTPClient(newHTTPClient(agents))}
	if baseURL != "" {
		opts = append(opts, reddit.WithBaseURL(strings.TrimRight(baseURL, "/")+"/"))
	}
	client, err := reddit.NewReadonlyClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("readonly reddit client: %w", err)
	}
	return &ReadonlyClient{client: client, limiter: limiter}, nil
}

func (rc *ReadonlyClient) FetchHot(ctx context.Context, subreddits []string, after string, limit int) (domain.Listing, error) {
	if err := rc.limiter.Wait(ctx); err != nil {
		return domain.Listing{}, fmt.Errorf("%w: rate limiter: %v", domain.ErrTimeout, err)
	}

	path := hotPath(subreddits)
	req, err := rc.client.NewRequest(http.MethodGet, path+"?"+hotQuery(after, limit), nil)
	if err != nil {
		return domain.Listing{}, err
	}
	// go-reddit only adds .json for its own default host
	if !strings.HasSuffix(req.URL.Path, ".json") {
		req.URL.Path += ".json"
	}

	var env listingEnvelope
	if _, err := rc.client.Do(ctx, req, &env); err != nil {
		return domain.Listing{}, rc.mapError(ctx, path, err)
	}
	return env.listing()
}

func (rc *ReadonlyClient) mapError(ctx context.Context, path string, err error) error {
	var errResp *reddit.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return &domain.HTTPStatusError{URL: path, StatusCode: errResp.Response.StatusCode}
	}
	var rateErr *reddit.RateLimitError
	if errors.As(err, &rateErr) {
		return &domain.HTTPStatusError{URL: path, StatusCode: http.StatusTooManyRequests}
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return fmt.Errorf("readonly fetch: %w", err)
}
