package model

import "time"

// Item is one post from a listing snapshot.
type Item struct {
	ID        string    // Upstream fullname (e.g. "t3_1abcde"), empty if the source has none
	Title     string    // Decoded post title
	Permalink string    // Site-relative path (e.g. "/r/golang/comments/...")
	CreatedAt time.Time // Creation time, from created_utc
}

// URL returns the absolute link to the post.
func (i Item) URL() string {
	return SiteURL + i.Permalink
}

// Snapshot is the ordered result of one fetch, newest-first as the upstream
// sort defines it.
type Snapshot []Item

// Titles returns the item titles in snapshot order.
func (s Snapshot) Titles() []string {
	titles := make([]string, len(s))
	for i, it := range s {
		titles[i] = it.Title
	}
	return titles
}
