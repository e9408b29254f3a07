// Command redditor watches a subreddit listing and prints new posts as they
// appear.
//
// Usage:
//
//	redditor -n golang -s new -w 30
//	redditor -config configs/redditor.example.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/redditor/internal/config"
	"github.com/rickgao/redditor/internal/display"
	"github.com/rickgao/redditor/internal/health"
	"github.com/rickgao/redditor/internal/model"
	"github.com/rickgao/redditor/internal/poller"
	"github.com/rickgao/redditor/internal/reddit"
	"github.com/rickgao/redditor/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// options holds parsed command line values.
type options struct {
	configPath string
	showVer    bool
	overrides  config.Overrides
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("redditor", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		name       string
		sort       string
		wait       int
		color      string
		healthAddr string
		logLevel   string
		opts       options
	)

	fs.StringVar(&name, "name", "", "subreddit to watch (required)")
	fs.StringVar(&name, "n", "", "shorthand for -name")
	fs.StringVar(&sort, "sort", config.DefaultSort, "listing sort: hot, new or top")
	fs.StringVar(&sort, "s", config.DefaultSort, "shorthand for -sort")
	fs.IntVar(&wait, "wait", int(config.DefaultInterval/time.Second), "seconds between checks")
	fs.IntVar(&wait, "w", int(config.DefaultInterval/time.Second), "shorthand for -wait")
	fs.StringVar(&opts.configPath, "config", "", "path to YAML config file")
	fs.StringVar(&color, "color", config.DefaultColor, "color output: auto, always or never")
	fs.StringVar(&healthAddr, "health-addr", "", "listen address for the health endpoint")
	fs.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	fs.BoolVar(&opts.showVer, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Only flags given explicitly override the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name", "n":
			opts.overrides.Subreddit = &name
		case "sort", "s":
			opts.overrides.Sort = &sort
		case "wait", "w":
			d := time.Duration(wait) * time.Second
			opts.overrides.Interval = &d
		case "color":
			opts.overrides.Color = &color
		case "health-addr":
			opts.overrides.HealthAddr = &healthAddr
		case "log-level":
			opts.overrides.LogLevel = &logLevel
		}
	})

	return &opts, nil
}

// run executes the program and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	printer := display.New(stdout, display.WithColor(display.ColorNever))

	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVer {
		fmt.Fprintln(stdout, "redditor", version.String())
		return 0
	}

	cfg, err := config.LoadAndValidate(opts.configPath, opts.overrides)
	if err != nil {
		printer.Error(err)
		return 1
	}

	// Set up structured logging; stdout belongs to the display.
	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	}))

	logger.Info("starting redditor",
		"version", version.Version,
		"commit", version.Commit,
		"config", opts.configPath,
	)

	loc, _ := cfg.Display.LoadLocation()
	printer = display.New(stdout,
		display.WithColor(display.ColorMode(cfg.Display.Color)),
		display.WithLocation(loc),
	)

	if err := serve(ctx, cfg, printer, logger); err != nil {
		printer.Error(err)
		return 1
	}

	logger.Info("redditor stopped")
	return 0
}

// serve runs the poller and the optional health server until ctx is
// cancelled or either of them fails.
func serve(ctx context.Context, cfg *config.Config, printer *display.Printer, logger *slog.Logger) error {
	query := model.NewFeedQuery(cfg.Feed.Subreddit, model.Sort(cfg.Feed.Sort))
	query.Limit = cfg.Feed.Limit
	if !query.Sort.Valid() {
		logger.Warn("unrecognized sort, passing it to reddit unchanged", "sort", query.Sort)
	}

	clientOpts := []reddit.ClientOption{
		reddit.WithLogger(logger),
		reddit.WithTimeout(cfg.API.Timeout),
		reddit.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
		reddit.WithUserAgent(cfg.API.UserAgent),
		reddit.WithSource(reddit.Source(cfg.Feed.Source)),
	}
	if cfg.API.OAuth() {
		clientOpts = append(clientOpts, reddit.WithCredentials(cfg.API.ClientID, cfg.API.ClientSecret, cfg.API.TokenURL))
	}
	client := reddit.NewClient(cfg.API.BaseURL, clientOpts...)

	p := poller.New(poller.Config{
		Interval:     cfg.Poller.Interval,
		Identity:     poller.Identity(cfg.Poller.Identity),
		SeenCapacity: cfg.Poller.SeenCapacity,
	}, query, client, printer, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.Run(gctx)
	})

	if cfg.Health.Addr != "" {
		srv := health.NewServer(cfg.Health.Addr, p, logger)
		g.Go(func() error {
			return srv.Run(gctx)
		})
	}

	err := g.Wait()
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		// Interrupted by a signal.
		return nil
	}
	return err
}
