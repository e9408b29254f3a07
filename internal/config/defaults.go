package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultSort         = "hot"
	DefaultLimit        = 10
	DefaultSource       = "json"
	DefaultInterval     = 10 * time.Second
	DefaultIdentity     = "title"
	DefaultBaseURL      = "https://www.reddit.com"
	DefaultOAuthBaseURL = "https://oauth.reddit.com"
	DefaultTokenURL     = "https://www.reddit.com/api/v1/access_token"
	DefaultAPITimeout   = 30 * time.Second
	DefaultRetryBackoff = 1 * time.Second
	DefaultColor        = "auto"
	DefaultLogLevel     = "warn"
)

func (c *Config) applyDefaults() {
	// Feed defaults
	if c.Feed.Sort == "" {
		c.Feed.Sort = DefaultSort
	}
	if c.Feed.Limit == 0 {
		c.Feed.Limit = DefaultLimit
	}
	if c.Feed.Source == "" {
		c.Feed.Source = DefaultSource
	}

	// Poller defaults
	if c.Poller.Interval == 0 {
		c.Poller.Interval = DefaultInterval
	}
	if c.Poller.Identity == "" {
		c.Poller.Identity = DefaultIdentity
	}

	// API defaults
	if c.API.BaseURL == "" {
		if c.API.OAuth() {
			c.API.BaseURL = DefaultOAuthBaseURL
		} else {
			c.API.BaseURL = DefaultBaseURL
		}
	}
	if c.API.TokenURL == "" {
		c.API.TokenURL = DefaultTokenURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}

	// Display defaults
	if c.Display.Color == "" {
		c.Display.Color = DefaultColor
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
