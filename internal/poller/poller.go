package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/redditor/internal/model"
	"github.com/rickgao/redditor/internal/seen"
)

// Fetcher returns the current snapshot of a listing.
type Fetcher interface {
	Fetch(ctx context.Context, q model.FeedQuery) (model.Snapshot, error)
}

// FetcherFunc is a function adapter for Fetcher.
type FetcherFunc func(context.Context, model.FeedQuery) (model.Snapshot, error)

func (f FetcherFunc) Fetch(ctx context.Context, q model.FeedQuery) (model.Snapshot, error) {
	return f(ctx, q)
}

// Display receives everything the poller reports.
type Display interface {
	Header(q model.FeedQuery) error
	Item(it model.Item) error
	Started(interval time.Duration) error
	Status(foundNew bool, interval time.Duration) error
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Config holds poller configuration.
type Config struct {
	Interval     time.Duration // Pause between cycles (default: 10s)
	Identity     Identity      // Item identity key (default: title)
	SeenCapacity int           // Seen window size, 0 = unbounded (default: 0)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:     10 * time.Second,
		Identity:     IdentityTitle,
		SeenCapacity: 0,
	}
}

// Option configures a Poller.
type Option func(*Poller)

// WithSleeper replaces the Sleeper used between cycles.
func WithSleeper(s Sleeper) Option {
	return func(p *Poller) {
		p.sleep = s
	}
}

// WithClock replaces the clock used for stats.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		p.now = now
	}
}

// WithSeenSet replaces the seen set built from Config.SeenCapacity.
func WithSeenSet(s seen.Set) Option {
	return func(p *Poller) {
		p.seen = s
	}
}

// Poller watches one listing and reports items it has not seen before.
type Poller struct {
	cfg     Config
	query   model.FeedQuery
	fetcher Fetcher
	display Display
	logger  *slog.Logger

	sleep Sleeper
	now   func() time.Time
	newID func() string

	// Touched only by the goroutine running Run.
	seen  seen.Set
	state State

	mu    sync.Mutex
	stats Stats
}

// New creates a new Poller.
func New(cfg Config, query model.FeedQuery, fetcher Fetcher, display Display, logger *slog.Logger, opts ...Option) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Identity == "" {
		cfg.Identity = IdentityTitle
	}

	p := &Poller{
		cfg:     cfg,
		query:   query,
		fetcher: fetcher,
		display: display,
		logger:  logger,
		sleep:   SleepContext,
		now:     time.Now,
		newID:   func() string { return uuid.Must(uuid.NewV7()).String() },
		seen:    seen.New(cfg.SeenCapacity),
		state:   StateSeeding,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.stats.State = p.state
	return p
}

// Run polls until ctx is cancelled or a cycle fails. It returns the cycle
// error, or ctx.Err() after cancellation.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.display.Header(p.query); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	p.logger.Info("poller started",
		"subreddit", p.query.Subreddit,
		"sort", p.query.Sort,
		"interval", p.cfg.Interval,
		"identity", p.cfg.Identity,
	)

	for {
		if err := p.cycle(ctx); err != nil {
			p.logger.Error("poll cycle failed", "subreddit", p.query.Subreddit, "err", err)
			return err
		}

		if err := p.sleep(ctx, p.cfg.Interval); err != nil {
			p.logger.Info("poller stopped", "reason", err)
			return err
		}
	}
}

// cycle runs one fetch, diff and report pass.
func (p *Poller) cycle(ctx context.Context) error {
	start := p.now()
	id := p.newID()

	snapshot, err := p.fetcher.Fetch(ctx, p.query)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", p.query, err)
	}

	seeding := p.state == StateSeeding
	foundNew := false
	var emitted, fresh int64

	for _, item := range snapshot {
		key := p.cfg.Identity.Key(item)
		if !seeding && p.seen.Contains(key) {
			continue
		}
		if !seeding {
			foundNew = true
			fresh++
		}

		if err := p.display.Item(item); err != nil {
			return fmt.Errorf("write item: %w", err)
		}
		p.seen.Add(key)
		emitted++
	}

	if seeding {
		err = p.display.Started(p.cfg.Interval)
	} else {
		err = p.display.Status(foundNew, p.cfg.Interval)
	}
	if err != nil {
		return fmt.Errorf("write status: %w", err)
	}

	p.state = StateSteady
	p.record(id, start, emitted, fresh)

	p.logger.Debug("poll cycle complete",
		"cycle_id", id,
		"items", len(snapshot),
		"emitted", emitted,
		"new", fresh,
		"seen", p.seen.Len(),
		"duration", p.now().Sub(start),
	)

	return nil
}

func (p *Poller) record(id string, at time.Time, emitted, fresh int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.State = p.state
	p.stats.Cycles++
	p.stats.Emitted += emitted
	p.stats.New += fresh
	p.stats.Seen = p.seen.Len()
	p.stats.LastCycleAt = at
	p.stats.LastCycleID = id
}

// Stats returns a point-in-time copy of the poller counters. Safe to call
// from any goroutine.
func (p *Poller) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
