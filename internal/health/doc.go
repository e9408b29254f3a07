// Package health serves an optional HTTP endpoint describing poller state.
//
// Routes:
//   - GET /health: JSON status built from poller.Stats plus the build version
//
// The endpoint is read-only. It never touches the seen set; it reads the
// copy of counters the poller publishes after every cycle.
package health
