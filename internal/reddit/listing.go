package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rickgao/redditor/internal/model"
)

// Fetch returns the current snapshot of the listing q names, using the
// configured source.
func (c *Client) Fetch(ctx context.Context, q model.FeedQuery) (model.Snapshot, error) {
	switch c.source {
	case SourceRSS:
		return c.GetFeed(ctx, q)
	default:
		return c.GetListing(ctx, q)
	}
}

// GetListing fetches a page of the JSON listing and decodes it.
func (c *Client) GetListing(ctx context.Context, q model.FeedQuery) (model.Snapshot, error) {
	path := "/r/" + url.PathEscape(q.Subreddit) + "/" + url.PathEscape(q.Sort.String()) + ".json"

	body, err := c.doWithRetry(ctx, http.MethodGet, path, listingQuery(q), acceptJSON)
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", q, err)
	}

	var resp ListingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("get listing %s: unmarshal response: %w", q, err)
	}

	snapshot, err := resp.ToSnapshot()
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", q, err)
	}

	return snapshot, nil
}

func listingQuery(q model.FeedQuery) url.Values {
	query := url.Values{}
	limit := q.Limit
	if limit <= 0 {
		limit = model.PageSize
	}
	query.Set("limit", strconv.Itoa(limit))
	// Titles come back without HTML entity escaping.
	query.Set("raw_json", "1")
	return query
}
