package model

import "fmt"

// SiteURL is prepended to an item permalink to build a browsable link.
const SiteURL = "https://www.reddit.com"

// PageSize is the number of items requested per listing fetch.
const PageSize = 10

// Sort is a subreddit listing order.
type Sort string

const (
	SortHot Sort = "hot"
	SortNew Sort = "new"
	SortTop Sort = "top"
)

// Valid reports whether s is one of the listing orders Reddit serves.
// The poller never rejects an invalid sort; the upstream does.
func (s Sort) Valid() bool {
	switch s {
	case SortHot, SortNew, SortTop:
		return true
	}
	return false
}

func (s Sort) String() string { return string(s) }

// FeedQuery identifies the listing being watched.
type FeedQuery struct {
	Subreddit string // Subreddit name without the "r/" prefix
	Sort      Sort   // Listing order
	Limit     int    // Page size (PageSize unless configured otherwise)
}

// NewFeedQuery returns a query for subreddit with the default page size.
func NewFeedQuery(subreddit string, sort Sort) FeedQuery {
	return FeedQuery{
		Subreddit: subreddit,
		Sort:      sort,
		Limit:     PageSize,
	}
}

func (q FeedQuery) String() string {
	return fmt.Sprintf("r/%s/%s", q.Subreddit, q.Sort)
}
