package config

import "time"

// Config is the root configuration for a redditor process.
type Config struct {
	Feed    FeedConfig    `yaml:"feed"`
	Poller  PollerConfig  `yaml:"poller"`
	API     APIConfig     `yaml:"api"`
	Display DisplayConfig `yaml:"display"`
	Health  HealthConfig  `yaml:"health"`
	Log     LogConfig     `yaml:"log"`
}

// FeedConfig names the listing to watch.
type FeedConfig struct {
	Subreddit string `yaml:"subreddit"`
	Sort      string `yaml:"sort"`   // hot, new or top; passed through unchecked
	Limit     int    `yaml:"limit"`  // Items per fetch
	Source    string `yaml:"source"` // json or rss
}

// PollerConfig holds change-detection settings.
type PollerConfig struct {
	Interval     time.Duration `yaml:"interval"`
	Identity     string        `yaml:"identity"`      // title or id
	SeenCapacity int           `yaml:"seen_capacity"` // 0 = never forget
}

// APIConfig holds Reddit API settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"` // 0 = fail on the first error
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	ClientID     string        `yaml:"client_id"`     // Application OAuth client ID
	ClientSecret string        `yaml:"client_secret"` // Application OAuth secret
	TokenURL     string        `yaml:"token_url"`
}

// DisplayConfig holds terminal output settings.
type DisplayConfig struct {
	Color    string `yaml:"color"`    // auto, always or never
	Location string `yaml:"location"` // IANA zone for timestamps, empty = local
}

// HealthConfig holds the optional health endpoint settings.
type HealthConfig struct {
	Addr string `yaml:"addr"` // Listen address, empty = disabled
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// OAuth reports whether application credentials are configured.
func (c APIConfig) OAuth() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
