package collector

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/qepting91/reddit-video-feed/internal/domain"
	"golang.org/x/time/rate"
)

// PublicClient reads reddit's public JSON listings without credentials
type PublicClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

func NewPublicClient(baseURL string, limiter *rate.Limiter, agents *UserAgentPool) *PublicClient {
	return &PublicClient{
		httpClient: newHTTPClient(agents),
		limiter:    limiter,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (pc *PublicClient) FetchHot(ctx context.Context, subreddits []string, after string, limit int) (domain.Listing, error) {
	if err := pc.limiter.Wait(ctx); err != nil {
		return domain.Listing{}, fmt.Errorf("%w: rate limiter: %v", domain.ErrTimeout, err)
	}

	url := fmt.Sprintf("%s/%s.json?%s", pc.baseURL, hotPath(subreddits), hotQuery(after, limit))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Listing{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Listing{}, fmt.Errorf("%w: %v", domain.ErrTimeout, err)
		}
		return domain.Listing{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Listing{}, &domain.HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return decodeListing(resp.Body)
}
