package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/qepting91/reddit-video-feed/internal/domain"
)

const (
	// WindowSize is how many subreddits are combined into one request
	WindowSize = 10
	// PageLimit is the listing size asked from reddit
	PageLimit = 50

	DefaultMaxRetries     = 30
	DefaultRequestTimeout = 10 * time.Second

	// An empty page skips the whole window; a failed request only steps
	// past one subreddit in case a single source is the problem.
	emptyStride   = WindowSize
	failureStride = 1
)

type Options struct {
	MaxRetries     int
	RequestTimeout time.Duration
	Rand           *rand.Rand
	Logger         *slog.Logger
}

// Engine turns a category into batches of audio-qualified videos.
//
// One Engine backs one feed session. FetchVideos and SetCategory must not
// be called concurrently; callers serialize them.
type Engine struct {
	collector domain.Collector
	rotation  *Rotation
	cache     *Cache

	timeout time.Duration
	rnd     *rand.Rand
	log     *slog.Logger
}

func NewEngine(collector domain.Collector, registry *Registry, category string, opts Options) *Engine {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if category == "" {
		category = registry.Default()
	}

	return &Engine{
		collector: collector,
		rotation:  NewRotation(registry, opts.Rand, opts.MaxRetries, category),
		cache:     NewCache(),
		timeout:   opts.RequestTimeout,
		rnd:       opts.Rand,
		log:       opts.Logger,
	}
}

// SetCategory switches the feed. Switching to the active category is a no-op.
func (e *Engine) SetCategory(name string) {
	if name == e.rotation.Category() {
		return
	}
	e.rotation.Reset(name)
	e.log.Info("Category switched", "category", name)
}

func (e *Engine) Category() string {
	return e.rotation.Category()
}

// FetchVideos returns the next batch for the active category. It never
// fails: after the retry budget is spent, or when ctx is cancelled, it
// returns an empty batch.
func (e *Engine) FetchVideos(ctx context.Context) []domain.VideoRecord {
	for {
		key := newCacheKey(e.rotation.Category(), e.rotation.Token())
		if batch, ok := e.cache.Get(key); ok {
			return batch
		}

		window := e.rotation.NextWindow(WindowSize)
		listing, err := e.request(ctx, window, e.rotation.Token())
		if ctx.Err() != nil {
			e.log.Warn("Fetch abandoned", "category", key.Category, "err", ctx.Err())
			return []domain.VideoRecord{}
		}

		stride := failureStride
		if err == nil {
			e.rotation.SetToken(listing.After)
			batch := e.qualify(listing.Items)
			if len(batch) > 0 {
				e.cache.Put(key, batch)
				e.rotation.ResetRetries()
				e.rotation.Advance(WindowSize)
				return batch
			}
			err = domain.ErrNoQualifyingContent
			stride = emptyStride
		}

		if e.rotation.Exhausted() {
			e.log.Error("Retry budget exhausted",
				"category", key.Category,
				"retries", e.rotation.Retries(),
				"kind", domain.Classify(err),
				"err", err)
			e.rotation.ResetRetries()
			e.rotation.Advance(stride)
			e.rotation.SetToken("")
			return []domain.VideoRecord{}
		}

		e.rotation.BumpRetry()
		e.rotation.Advance(stride)
		e.rotation.SetToken("")
		e.log.Warn("Fetch failed, rotating",
			"category", key.Category,
			"window", strings.Join(window, "+"),
			"attempt", e.rotation.Retries(),
			"kind", domain.Classify(err),
			"err", err)
	}
}

// request runs one upstream call under its own deadline. The deadline is
// released before the caller moves on, so a late response cannot leak
// into a later attempt.
func (e *Engine) request(ctx context.Context, window []string, after string) (domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	listing, err := e.collector.FetchHot(ctx, window, after, PageLimit)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, domain.ErrTimeout) {
		err = fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return listing, err
}

// qualify normalizes, drops silent clips and duplicate ids, then shuffles
func (e *Engine) qualify(items []domain.RawItem) []domain.VideoRecord {
	seen := make(map[string]bool, len(items))
	batch := make([]domain.VideoRecord, 0, len(items))
	for _, item := range items {
		rec, ok := Normalize(item)
		if !ok || !rec.HasAudio || seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		batch = append(batch, rec)
	}
	e.rnd.Shuffle(len(batch), func(i, j int) {
		batch[i], batch[j] = batch[j], batch[i]
	})
	return batch
}
