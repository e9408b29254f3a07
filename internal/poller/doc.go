// Package poller implements the change-detection polling loop.
//
// The Poller:
//   - Fetches a snapshot of the listing once per cycle
//   - Shows every item on the first cycle and remembers it (seeding)
//   - Afterwards shows only items whose identity has not been seen (steady)
//   - Prints a status line per cycle, then sleeps for a fixed interval
//   - Stops on the first failed cycle; there is no retry at this level
package poller
