package collector

import (
	"fmt"
	"time"

	"github.com/qepting91/reddit-video-feed/internal/config"
	"github.com/qepting91/reddit-video-feed/internal/domain"
	"golang.org/x/time/rate"
)

// NewCollector selects the correct implementation based on the mode
func NewCollector(cfg config.Config) (domain.Collector, error) {
	agents := NewUserAgentPool(cfg.UserAgent)

	switch cfg.CollectorMode {
	case config.ModePublic:
		return NewPublicClient(cfg.BaseURL, NewLimiter(cfg.RequestInterval), agents), nil
	case config.ModeReadonly:
		return NewReadonlyClient(cfg.BaseURL, NewLimiter(cfg.RequestInterval), agents)
	case config.ModeMock:
		return NewMockClient(500 * time.Millisecond), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'public', 'readonly', or 'mock')", cfg.CollectorMode)
	}
}

// NewLimiter paces requests to one per interval; zero disables pacing
func NewLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}
