package display

import (
	"fmt"
	"io"
	"time"

	"github.com/rickgao/redditor/internal/model"
)

// TimeLayout formats item creation times, e.g. "14 November, 2023 22:13:20".
const TimeLayout = "02 January, 2006 15:04:05"

// Printer writes poller output to w.
type Printer struct {
	w      io.Writer
	loc    *time.Location
	styles styles
}

// Option configures a Printer.
type Option func(*printerConfig)

type printerConfig struct {
	loc  *time.Location
	mode ColorMode
}

// WithLocation sets the time zone used for item timestamps (default: time.Local).
func WithLocation(loc *time.Location) Option {
	return func(c *printerConfig) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithColor sets the color mode (default: ColorAuto).
func WithColor(mode ColorMode) Option {
	return func(c *printerConfig) {
		c.mode = mode
	}
}

// New creates a Printer writing to w.
func New(w io.Writer, opts ...Option) *Printer {
	cfg := printerConfig{loc: time.Local, mode: ColorAuto}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Printer{
		w:      w,
		loc:    cfg.loc,
		styles: newStyles(w, cfg.mode),
	}
}

// FormatTime renders t in loc using TimeLayout.
func FormatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimeLayout)
}

// Header announces the listing being watched.
func (p *Printer) Header(q model.FeedQuery) error {
	line := fmt.Sprintf("Showing posts from r/%s sorted by %s ...", q.Subreddit, q.Sort)
	_, err := fmt.Fprintf(p.w, "%s\n\n", p.styles.render(p.styles.header, line))
	return err
}

// Item writes one post followed by a blank line.
func (p *Printer) Item(it model.Item) error {
	_, err := fmt.Fprintf(p.w, "%s\n%s\n%s\n\n",
		p.styles.render(p.styles.title, it.Title),
		p.styles.render(p.styles.link, it.URL()),
		p.styles.render(p.styles.date, FormatTime(it.CreatedAt, p.loc)),
	)
	return err
}

// Started is printed once, after the first snapshot has been shown.
func (p *Printer) Started(interval time.Duration) error {
	line := fmt.Sprintf("Checking for new posts every %d seconds...", seconds(interval))
	_, err := fmt.Fprintf(p.w, "%s\n\n", p.styles.render(p.styles.header, line))
	return err
}

// Status reports the outcome of a steady-state cycle.
func (p *Printer) Status(foundNew bool, interval time.Duration) error {
	var line string
	if foundNew {
		line = fmt.Sprintf("Found the above new posts, checking again in %d seconds...", seconds(interval))
	} else {
		line = fmt.Sprintf("No new posts found, checking again in %d seconds...", seconds(interval))
	}
	_, err := fmt.Fprintf(p.w, "%s\n", p.styles.render(p.styles.status, line))
	return err
}

// Error reports a fatal error.
func (p *Printer) Error(e error) error {
	_, err := fmt.Fprintf(p.w, "%s\n", p.styles.render(p.styles.err, "Error: "+e.Error()))
	return err
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
