package domain

import "context"

// VideoRecord is a playable, audio-qualified video ready for the feed
type VideoRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Ups       int    `json:"ups"`
	Subreddit string `json:"subreddit"`
	Permalink string `json:"permalink"`
	HasAudio  bool   `json:"has_audio"`
}

// RawItem is one listing child as reddit returns it
type RawItem struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Author      string      `json:"author"`
	Ups         int         `json:"ups"`
	Subreddit   string      `json:"subreddit"`
	Permalink   string      `json:"permalink"`
	Thumbnail   string      `json:"thumbnail"`
	SecureMedia *RawMedia   `json:"secure_media"`
	Preview     *RawPreview `json:"preview"`
}

type RawMedia struct {
	RedditVideo *RawVideo `json:"reddit_video"`
}

type RawPreview struct {
	RedditVideoPreview *RawVideo `json:"reddit_video_preview"`
}

// RawVideo keeps has_audio loose: reddit is not consistent about its type
type RawVideo struct {
	FallbackURL string `json:"fallback_url"`
	HasAudio    any    `json:"has_audio"`
}

// Listing is one page of a hot listing. After is empty on the last page.
type Listing struct {
	After string
	Items []RawItem
}

// Collector fetches one hot listing page for a set of subreddits
type Collector interface {
	FetchHot(ctx context.Context, subreddits []string, after string, limit int) (Listing, error)
}
