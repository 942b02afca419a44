// Package poller implements HTTP polling of an Ultimaker cluster printer.
//
// The package provides three cooperating pieces:
//
//   - Client: a connection-pooled HTTP client with per-request timeouts
//   - Updater: a throttled fetch-parse-cache cycle against the print-job endpoint
//   - Scheduler: a periodic loop emitting job-list snapshots on a channel
//
// This package is internal to printwatch and its API may change without notice.
package poller
