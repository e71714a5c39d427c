package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/qepting91/reddit-video-feed/internal/domain"
)

// listingEnvelope mirrors reddit's listing JSON. Children stays nil when
// the field is missing or null, which marks the payload as malformed.
// Each child is decoded on its own so one odd item cannot sink the page.
type listingEnvelope struct {
	Data *struct {
		After    *string `json:"after"`
		Children []struct {
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (env listingEnvelope) listing() (domain.Listing, error) {
	if env.Data == nil || env.Data.Children == nil {
		return domain.Listing{}, fmt.Errorf("%w: missing data.children", domain.ErrMalformedPayload)
	}
	var listing domain.Listing
	if env.Data.After != nil {
		listing.After = *env.Data.After
	}
	listing.Items = make([]domain.RawItem, 0, len(env.Data.Children))
	for _, child := range env.Data.Children {
		var item domain.RawItem
		if err := json.Unmarshal(child.Data, &item); err != nil {
			continue
		}
		listing.Items = append(listing.Items, item)
	}
	return listing, nil
}

func decodeListing(r io.Reader) (domain.Listing, error) {
	var env listingEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return domain.Listing{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return env.listing()
}

// hotPath is the listing path for the combined subreddits, without the
// .json suffix
func hotPath(subreddits []string) string {
	return fmt.Sprintf("r/%s/hot", strings.Join(subreddits, "+"))
}

func hotQuery(after string, limit int) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("raw_json", "1")
	if after != "" {
		q.Set("after", after)
	}
	return q.Encode()
}
