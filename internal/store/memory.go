package store

import (
	"sort"
	"sync"
)

// displayOrder fixes the ordering of GetAll so the API and dashboard list
// sensors the way the original platform did.
var displayOrder = map[string]int{
	"time_elapsed": 0,
	"time_total":   1,
	"percentage":   2,
	"active":       3,
}

// MemoryStore is an in-memory implementation of [Store].
//
// MemoryStore provides thread-safe storage with a publish-subscribe mechanism
// for real-time updates. Readings are keyed by sensor type, with new readings
// replacing previous values.
//
// Subscribers receive updates via buffered channels (buffer size 100). Updates
// are sent non-blocking; if a subscriber's buffer is full, the update is dropped
// for that subscriber to prevent blocking the entire system.
type MemoryStore struct {
	mu          sync.RWMutex
	readings    map[string]Reading
	subscribers map[chan Reading]struct{}
	subMu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory [Store] implementation.
//
// The store is immediately ready for use. No cleanup is required when done.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		readings:    make(map[string]Reading),
		subscribers: make(map[chan Reading]struct{}),
	}
}

// Update stores a [Reading] and notifies all subscribers.
//
// The reading is stored using its Sensor as the key. Subsequent updates with
// the same sensor replace the previous value. All subscribers receive the
// update (unless their buffer is full).
func (m *MemoryStore) Update(r Reading) {
	m.mu.Lock()
	m.readings[r.Sensor] = r
	m.mu.Unlock()

	m.notifySubscribers(r)
}

// GetAll returns a snapshot of all currently stored readings in display order.
//
// The returned slice is a copy; modifications do not affect the store.
func (m *MemoryStore) GetAll() []Reading {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]Reading, 0, len(m.readings))
	for _, r := range m.readings {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		oi, oj := displayOrder[results[i].Sensor], displayOrder[results[j].Sensor]
		if oi != oj {
			return oi < oj
		}
		return results[i].Sensor < results[j].Sensor
	})
	return results
}

// Subscribe creates a new subscription and returns a channel for receiving updates.
//
// The returned channel has a buffer of 100 messages. If the buffer fills
// (slow consumer), new updates are dropped for this subscriber.
//
// Caller must call [MemoryStore.Unsubscribe] when done to prevent resource leaks.
func (m *MemoryStore) Subscribe() <-chan Reading {
	ch := make(chan Reading, 100)

	m.subMu.Lock()
	m.subscribers[ch] = struct{}{}
	m.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
//
// After calling Unsubscribe, the channel will be closed and no further
// updates will be sent. Safe to call multiple times or with an unknown channel.
func (m *MemoryStore) Unsubscribe(ch <-chan Reading) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	// find and delete the channel (need to convert to the right type)
	for subCh := range m.subscribers {
		if subCh == ch {
			delete(m.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// notifySubscribers sends the reading to all active subscribers.
//
// This is non-blocking: if a subscriber's channel buffer is full, the message
// is dropped for that subscriber rather than blocking the update path.
func (m *MemoryStore) notifySubscribers(r Reading) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for ch := range m.subscribers {
		select {
		case ch <- r:
		default:
			// subscriber is slow, drop the message
		}
	}
}
