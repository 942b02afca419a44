// Package store provides in-memory storage of sensor readings with a
// publish-subscribe mechanism for real-time updates.
//
// The store holds the latest reading per sensor type and pushes each update
// to subscribers over buffered channels, which lets the HTTP layer stream
// changes via Server-Sent Events without polling the store.
//
// This package is internal to printwatch and its API may change without notice.
package store
