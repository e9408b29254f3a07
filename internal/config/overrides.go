package config

import "time"

// Overrides carries values given on the command line. A nil field leaves
// the loaded value untouched.
type Overrides struct {
	Subreddit  *string
	Sort       *string
	Interval   *time.Duration
	Color      *string
	HealthAddr *string
	LogLevel   *string
}

// Apply copies every set override into c.
func (c *Config) Apply(o Overrides) {
	if o.Subreddit != nil {
		c.Feed.Subreddit = *o.Subreddit
	}
	if o.Sort != nil {
		c.Feed.Sort = *o.Sort
	}
	if o.Interval != nil {
		c.Poller.Interval = *o.Interval
	}
	if o.Color != nil {
		c.Display.Color = *o.Color
	}
	if o.HealthAddr != nil {
		c.Health.Addr = *o.HealthAddr
	}
	if o.LogLevel != nil {
		c.Log.Level = *o.LogLevel
	}
}
