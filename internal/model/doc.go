// Package model defines the data types shared between the Reddit client, the
// poller and the display.
//
// Conventions:
//   - A FeedQuery is built once at startup and never mutated.
//   - Items keep the upstream permalink path; Item.URL builds the absolute link.
//   - Timestamps are time.Time values derived from created_utc epoch seconds.
package model
