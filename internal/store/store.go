package store

import "time"

// Reading represents the current state of a sensor in storage.
//
// Reading is the storage representation of a sensor value, optimized for
// JSON serialization (used by the REST API and SSE). It is decoupled from
// the public printwatch.Reading type to allow independent evolution.
type Reading struct {
	// Sensor is the sensor type identifier (e.g. "percentage").
	Sensor string `json:"sensor"`

	// Name is the sensor's display name.
	Name string `json:"name"`

	// State is the display value. Empty until first derived.
	State string `json:"state"`

	// Unit is the unit of measurement, if any.
	Unit string `json:"unit,omitempty"`

	// Icon is the display icon identifier, if any.
	Icon string `json:"icon,omitempty"`

	// Stale reports that State was carried over from an earlier cycle.
	Stale bool `json:"stale"`

	// UpdatedAt is when State was last successfully derived.
	UpdatedAt time.Time `json:"updated_at"`

	// PolledAt is when the producing poll cycle ran.
	PolledAt time.Time `json:"polled_at"`

	// Error contains the poll error message, if any.
	// nil indicates the poll succeeded (the reading may still be stale).
	Error *string `json:"error"`
}

// Store defines the interface for storing and subscribing to sensor readings.
//
// Store implementations must be safe for concurrent access. The pub/sub
// mechanism allows real-time updates to be pushed to connected clients
// (e.g., via Server-Sent Events).
type Store interface {
	// Update stores a new reading and notifies all subscribers.
	// The reading is keyed by Sensor, so subsequent updates replace previous values.
	Update(r Reading)

	// GetAll returns all currently stored readings.
	// The returned slice is a snapshot; modifications do not affect the store.
	GetAll() []Reading

	// Subscribe returns a channel that receives reading updates.
	// The returned channel has a buffer; slow consumers may miss updates.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan Reading

	// Unsubscribe removes a subscription and closes the channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan Reading)
}
