package reddit

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmcdole/gofeed"

	"github.com/rickgao/redditor/internal/model"
)

// GetFeed fetches the Atom rendition of a listing and decodes it.
func (c *Client) GetFeed(ctx context.Context, q model.FeedQuery) (model.Snapshot, error) {
	path := "/r/" + url.PathEscape(q.Subreddit) + "/" + url.PathEscape(q.Sort.String()) + "/.rss"

	query := listingQuery(q)
	query.Del("raw_json")

	body, err := c.doWithRetry(ctx, http.MethodGet, path, query, acceptFeed)
	if err != nil {
		return nil, fmt.Errorf("get feed %s: %w", q, err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("get feed %s: parse feed: %w", q, err)
	}

	snapshot := make(model.Snapshot, 0, len(feed.Items))
	for i, entry := range feed.Items {
		item, err := feedItem(entry)
		if err != nil {
			return nil, fmt.Errorf("get feed %s: entry %d: %w", q, i, err)
		}
		snapshot = append(snapshot, item)
	}

	return snapshot, nil
}

// feedItem converts an Atom entry. The link is reduced to its path so that
// Item.URL renders the same way for both sources.
func feedItem(entry *gofeed.Item) (model.Item, error) {
	if entry.Title == "" {
		return model.Item{}, &FieldError{Field: "title", Err: ErrMissingField}
	}
	if entry.Link == "" {
		return model.Item{}, &FieldError{Field: "link", Err: ErrMissingField}
	}

	link, err := url.Parse(entry.Link)
	if err != nil {
		return model.Item{}, &FieldError{Field: "link", Value: entry.Link, Err: err}
	}

	created := entry.PublishedParsed
	if created == nil {
		created = entry.UpdatedParsed
	}
	if created == nil {
		return model.Item{}, &FieldError{Field: "published", Err: ErrMissingField}
	}

	return model.Item{
		ID:        entry.GUID,
		Title:     entry.Title,
		Permalink: link.EscapedPath(),
		CreatedAt: *created,
	}, nil
}
