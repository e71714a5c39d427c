package collector

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/qepting91/reddit-video-feed/internal/domain"
)

// MockClient implements domain.Collector with synthetic listings, for
// running the feed offline. Roughly a third of the clips carry audio.
type MockClient struct {
	latency time.Duration

	mu   sync.Mutex
	rnd  *rand.Rand
	page int
}

func NewMockClient(latency time.Duration) *MockClient {
	return &MockClient{
		latency: latency,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (mc *MockClient) FetchHot(ctx context.Context, subreddits []string, after string, limit int) (domain.Listing, error) {
	timer := time.NewTimer(mc.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return domain.Listing{}, fmt.Errorf("%w: %v", domain.ErrTimeout, ctx.Err())
	case <-timer.C:
	}
	if len(subreddits) == 0 {
		return domain.Listing{}, &domain.HTTPStatusError{URL: "mock", StatusCode: 404}
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.page++

	items := make([]domain.RawItem, 0, limit)
	for i := 0; i < limit; i++ {
		sub := subreddits[mc.rnd.Intn(len(subreddits))]
		id := fmt.Sprintf("mock%d_%d", mc.page, i)
		item := domain.RawItem{
			ID:        id,
			Title:     fmt.Sprintf("[%s] Simulated clip #%d", sub, i),
			Author:    "simulated_user",
			Ups:       mc.rnd.Intn(5000) - 100,
			Subreddit: sub,
			Permalink: fmt.Sprintf("/r/%s/comments/%s/simulated_clip/", sub, id),
			Thumbnail: "self",
		}
		switch mc.rnd.Intn(3) {
		case 0:
			item.Thumbnail = fmt.Sprintf("https://b.thumbs.redditmedia.com/%s.jpg", id)
			item.SecureMedia = &domain.RawMedia{RedditVideo: &domain.RawVideo{
				FallbackURL: fmt.Sprintf("https://v.redd.it/%s/DASH_720.mp4", id),
				HasAudio:    true,
			}}
		case 1:
			item.Preview = &domain.RawPreview{RedditVideoPreview: &domain.RawVideo{
				FallbackURL: fmt.Sprintf("https://v.redd.it/%s/DASH_480.mp4", id),
				HasAudio:    false,
			}}
		}
		items = append(items, item)
	}
	return domain.Listing{After: fmt.Sprintf("t3_mock%d", mc.page), Items: items}, nil
}
