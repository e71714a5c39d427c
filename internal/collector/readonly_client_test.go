package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/loganintech/go-reddit/v2/reddit"
	"github.com/qepting91/reddit-video-feed/internal/domain"
	"github.com/stretchr/testify/require"
)

func newTestReadonlyClient(t *testing.T, url string) *ReadonlyClient {
	t.Helper()
	rc, err := NewReadonlyClient(url, NewLimiter(0), NewUserAgentPool(""))
	require.NoError(t, err)
	return rc
}

func TestReadonlyClient_FetchHot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/r/BeAmazed+funny/hot.json", r.URL.Path)
		require.Equal(t, "t3_prev", r.URL.Query().Get("after"))
		require.Equal(t, "50", r.URL.Query().Get("limit"))
		require.True(t, slices.Contains(browserAgents, r.Header.Get("User-Agent")))
		w.Write([]byte(hotPage))
	}))
	defer srv.Close()

	listing, err := newTestReadonlyClient(t, srv.URL).FetchHot(context.Background(), []string{"BeAmazed", "funny"}, "t3_prev", 50)
	require.NoError(t, err)
	require.Equal(t, "t3_next", listing.After)
	require.Len(t, listing.Items, 2)
	require.Equal(t, "https://v.redd.it/abc/DASH_720.mp4", listing.Items[0].SecureMedia.RedditVideo.FallbackURL)
}

func TestReadonlyClient_Errors(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer notFound.Close()

	_, err := newTestReadonlyClient(t, notFound.URL).FetchHot(context.Background(), []string{"nope"}, "", 50)
	require.Equal(t, domain.KindNotFound, domain.Classify(err))

	malformed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"after": null}}`))
	}))
	defer malformed.Close()

	_, err = newTestReadonlyClient(t, malformed.URL).FetchHot(context.Background(), []string{"aww"}, "", 50)
	require.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestReadonlyClient_MapError(t *testing.T) {
	rc := &ReadonlyClient{}
	ctx := context.Background()

	err := rc.mapError(ctx, "r/a/hot", &reddit.ErrorResponse{Response: &http.Response{StatusCode: 404}})
	var statusErr *domain.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.True(t, statusErr.NotFound())

	err = rc.mapError(ctx, "r/a/hot", &reddit.RateLimitError{Message: "slow down"})
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.ErrorIs(t, rc.mapError(cancelled, "r/a/hot", context.Canceled), domain.ErrTimeout)
}
