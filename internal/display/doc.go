// Package display renders poller output for a terminal.
//
// Every reported item is written as four lines: title, absolute URL,
// creation time in local time ("02 January, 2006 15:04:05") and a blank
// separator. Colors are applied with lipgloss only when enabled.
package display
