// Package reddit provides the client for Reddit subreddit listings.
//
// Listing endpoints:
//   - JSON: {base}/r/{subreddit}/{sort}.json?limit=N
//   - RSS/Atom: {base}/r/{subreddit}/{sort}/.rss?limit=N
//
// Base URLs:
//   - Anonymous: https://www.reddit.com
//   - Application OAuth: https://oauth.reddit.com (token from /api/v1/access_token)
//
// Raw listing fields are decoded into model.Item values; any missing or
// malformed field is reported as a *FieldError and fails the whole fetch.
package reddit
