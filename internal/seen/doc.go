// Package seen tracks the identities of items already reported.
//
// Two implementations are provided:
//   - Unbounded: grows for the life of the process and never forgets.
//   - Window: remembers only the most recent N identities, evicting FIFO.
//
// Neither is safe for concurrent use; the poller owns its set exclusively.
package seen
