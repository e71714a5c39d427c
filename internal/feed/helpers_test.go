package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/qepting91/reddit-video-feed/internal/domain"
	"github.com/stretchr/testify/require"
)

type fetchCall struct {
	subreddits []string
	after      string
	limit      int
	ctxErr     error
}

type respondFunc func(ctx context.Context, call int, subreddits []string, after string) (domain.Listing, error)

// scriptedCollector records every request and answers through respond
type scriptedCollector struct {
	calls   []fetchCall
	respond respondFunc
}

func (s *scriptedCollector) FetchHot(ctx context.Context, subreddits []string, after string, limit int) (domain.Listing, error) {
	idx := len(s.calls)
	s.calls = append(s.calls, fetchCall{subreddits: subreddits, after: after, limit: limit})
	listing, err := s.respond(ctx, idx, subreddits, after)
	s.calls[idx].ctxErr = ctx.Err()
	return listing, err
}

func names(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%02d", prefix, i)
	}
	return out
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(map[string][]string{
		"Viral": names("viral", 25),
		"Hot":   names("hot", 12),
	}, "Viral")
	require.NoError(t, err)
	return reg
}

func newTestEngine(t *testing.T, c domain.Collector, maxRetries int) *Engine {
	t.Helper()
	return NewEngine(c, testRegistry(t), "Viral", Options{
		MaxRetries: maxRetries,
		Rand:       rand.New(rand.NewSource(7)),
		Logger:     discardLogger(),
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func videoItem(id string, hasAudio any) domain.RawItem {
	return domain.RawItem{
		ID:        id,
		Title:     "clip " + id,
		Author:    "author_" + id,
		Ups:       42,
		Subreddit: "funny",
		Permalink: "/r/funny/comments/" + id + "/clip/",
		Thumbnail: "https://b.thumbs.redditmedia.com/" + id + ".jpg",
		SecureMedia: &domain.RawMedia{RedditVideo: &domain.RawVideo{
			FallbackURL: "https://v.redd.it/" + id + "/DASH_720.mp4?source=fallback",
			HasAudio:    hasAudio,
		}},
	}
}

func listingOf(after string, items ...domain.RawItem) domain.Listing {
	return domain.Listing{After: after, Items: items}
}

func ids(batch []domain.VideoRecord) []string {
	out := make([]string, len(batch))
	for i, v := range batch {
		out[i] = v.ID
	}
	return out
}
