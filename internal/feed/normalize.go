package feed

import (
	"net/url"
	"strings"

	"github.com/qepting91/reddit-video-feed/internal/domain"
)

const (
	videoHost     = "v.redd.it"
	permalinkBase = "https://reddit.com"
)

// Normalize turns one listing child into a VideoRecord. It reports false
// when the item has no playable v.redd.it video or lacks id/author/subreddit.
func Normalize(item domain.RawItem) (domain.VideoRecord, bool) {
	videoURL, hasAudio := locateVideo(item)
	if videoURL == "" || !isVideoURL(videoURL) {
		return domain.VideoRecord{}, false
	}
	if item.ID == "" || item.Author == "" || item.Subreddit == "" {
		return domain.VideoRecord{}, false
	}

	return domain.VideoRecord{
		ID:        item.ID,
		Title:     item.Title,
		Author:    item.Author,
		URL:       videoURL,
		Thumbnail: normalizeThumbnail(item.Thumbnail),
		Ups:       item.Ups,
		Subreddit: item.Subreddit,
		Permalink: buildPermalink(item.Permalink),
		HasAudio:  hasAudio,
	}, true
}

// secure_media wins over preview when both are present
func locateVideo(item domain.RawItem) (string, bool) {
	if item.SecureMedia != nil && item.SecureMedia.RedditVideo != nil {
		v := item.SecureMedia.RedditVideo
		return v.FallbackURL, truthy(v.HasAudio)
	}
	if item.Preview != nil && item.Preview.RedditVideoPreview != nil {
		v := item.Preview.RedditVideoPreview
		return v.FallbackURL, truthy(v.HasAudio)
	}
	return "", false
}

func isVideoURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return (u.Scheme == "https" || u.Scheme == "http") && host == videoHost
}

// reddit uses sentinels such as "self", "default" and "nsfw" in place of a URL
func normalizeThumbnail(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return raw
}

func buildPermalink(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return permalinkBase + path
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
