package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks that all required fields are set and values are valid.
// The listing sort is deliberately not checked; Reddit rejects bad values.
func (c *Config) Validate() error {
	if c.Feed.Subreddit == "" {
		return errors.New("feed.subreddit is required")
	}
	if c.Feed.Limit < 1 || c.Feed.Limit > 100 {
		return fmt.Errorf("feed.limit must be between 1 and 100, got %d", c.Feed.Limit)
	}
	switch c.Feed.Source {
	case "json", "rss":
	default:
		return fmt.Errorf("feed.source must be json or rss, got %q", c.Feed.Source)
	}

	if c.Poller.Interval < time.Second {
		return fmt.Errorf("poller.interval must be >= 1s, got %v", c.Poller.Interval)
	}
	switch c.Poller.Identity {
	case "title", "id":
	default:
		return fmt.Errorf("poller.identity must be title or id, got %q", c.Poller.Identity)
	}
	if c.Poller.SeenCapacity < 0 {
		return errors.New("poller.seen_capacity must be >= 0")
	}
	if c.Poller.SeenCapacity > 0 && c.Poller.SeenCapacity < c.Feed.Limit {
		return fmt.Errorf("poller.seen_capacity (%d) cannot be smaller than feed.limit (%d)", c.Poller.SeenCapacity, c.Feed.Limit)
	}

	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be > 0")
	}
	if (c.API.ClientID == "") != (c.API.ClientSecret == "") {
		return errors.New("api.client_id and api.client_secret must be set together")
	}

	switch c.Display.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("display.color must be auto, always or never, got %q", c.Display.Color)
	}
	if _, err := c.Display.LoadLocation(); err != nil {
		return fmt.Errorf("display.location: %w", err)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	return nil
}
