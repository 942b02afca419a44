// Package server provides the HTTP layer of printwatch: a JSON API for the
// current sensor readings, a Server-Sent Events stream of updates, and the
// embedded dashboard page.
//
// This package is internal to printwatch and its API may change without notice.
package server
