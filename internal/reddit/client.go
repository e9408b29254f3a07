package reddit

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/rickgao/redditor/internal/version"
)

const (
	// DefaultBaseURL serves anonymous listing requests.
	DefaultBaseURL = "https://www.reddit.com"

	// OAuthBaseURL serves listing requests authorized with an application token.
	OAuthBaseURL = "https://oauth.reddit.com"

	// TokenURL issues application-only OAuth tokens.
	TokenURL = "https://www.reddit.com/api/v1/access_token"
)

// Source selects the listing representation to fetch.
type Source string

const (
	SourceJSON Source = "json"
	SourceRSS  Source = "rss"
)

// Client provides access to Reddit listings.
type Client struct {
	baseURL    string
	userAgent  string
	source     Source
	httpClient *http.Client
	logger     *slog.Logger

	maxRetries   int
	retryBackoff time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new listing client. An empty baseURL selects
// DefaultBaseURL. Retries are disabled unless WithRetries is given.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:   baseURL,
		userAgent: version.UserAgent(),
		source:    SourceJSON,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:       slog.Default(),
		maxRetries:   0,
		retryBackoff: time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration. max is the number of retries
// after the first attempt; backoff doubles after every retry.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithSource selects the JSON or RSS listing representation.
func WithSource(s Source) ClientOption {
	return func(c *Client) {
		c.source = s
	}
}

// WithCredentials authorizes requests with an application-only OAuth token
// obtained from tokenURL. It wraps the HTTP client configured so far, so it
// should come after WithHTTPClient.
func WithCredentials(clientID, clientSecret, tokenURL string) ClientOption {
	return func(c *Client) {
		if tokenURL == "" {
			tokenURL = TokenURL
		}
		cc := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}

		base := c.httpClient
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		hc := cc.Client(ctx)
		hc.Timeout = base.Timeout
		c.httpClient = hc
	}
}

// Source returns the configured listing representation.
func (c *Client) Source() Source {
	return c.source
}
