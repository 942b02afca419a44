package poller

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultThrottle is the minimum wall-clock time between upstream polls.
const DefaultThrottle = 10 * time.Second

// DefaultTimeout is the per-request timeout for printer polls.
const DefaultTimeout = 5 * time.Second

// Updater owns the fetch-parse-cache cycle against a single printer.
//
// Update is throttled: calls arriving within the minimum interval of the
// previous attempt return immediately without touching the printer or the
// cache. This decouples how often sensors refresh from how often the
// printer is actually polled.
//
// Any network, HTTP, or parse failure clears the cache to "no data"; the
// previous payload is not kept. Callers that want stale-value behaviour
// implement it on top (the field mapper retains prior sensor states).
//
// Updater is safe for concurrent use.
type Updater struct {
	url      string
	throttle time.Duration
	timeout  time.Duration
	client   *Client

	mu          sync.Mutex
	jobs        []PrintJob
	hasData     bool
	lastAttempt time.Time
	lastSuccess time.Time
}

// NewUpdater creates an [Updater] for the given printer host and port.
//
// A throttle or timeout of 0 selects [DefaultThrottle] or [DefaultTimeout].
func NewUpdater(host string, port int, throttle, timeout time.Duration) *Updater {
	if throttle == 0 {
		throttle = DefaultThrottle
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Updater{
		url:      JobURL(host, port),
		throttle: throttle,
		timeout:  timeout,
		client:   NewClient(),
	}
}

// URL returns the print-job endpoint URL this updater polls.
func (u *Updater) URL() string {
	return u.url
}

// Update polls the printer unless throttled.
//
// The returned bool reports whether a poll was actually attempted; a
// throttled call returns (false, nil) and leaves the cache untouched.
// When a poll is attempted, any failure clears the cache and is returned.
//
// The throttle window starts when a poll begins, so a slow request does not
// extend the interval beyond its own duration.
func (u *Updater) Update(ctx context.Context) (bool, error) {
	u.mu.Lock()
	now := time.Now()
	if !u.lastAttempt.IsZero() && now.Sub(u.lastAttempt) < u.throttle {
		u.mu.Unlock()
		return false, nil
	}
	u.lastAttempt = now
	u.mu.Unlock()

	resp := u.client.Get(ctx, u.url, u.timeout)
	if resp.Error != nil {
		u.clear()
		return true, fmt.Errorf("cannot connect to printer: %w", resp.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		u.clear()
		return true, fmt.Errorf("printer returned HTTP %d", resp.StatusCode)
	}

	jobs, err := ParseJobs(resp.Body)
	if err != nil {
		u.clear()
		return true, err
	}

	u.mu.Lock()
	u.jobs = jobs
	u.hasData = true
	u.lastSuccess = time.Now()
	u.mu.Unlock()
	return true, nil
}

// Data returns the cached job list and whether cached data exists.
//
// The second return is false before the first successful poll and after any
// failed poll. An empty (non-nil-reported) job list with true means the
// printer responded and is idle.
func (u *Updater) Data() ([]PrintJob, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.jobs, u.hasData
}

// LastSuccess returns the time of the most recent successful poll, or the
// zero time if none has succeeded yet.
func (u *Updater) LastSuccess() time.Time {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.lastSuccess
}

// Close releases the underlying HTTP client's idle connections.
func (u *Updater) Close() {
	u.client.Close()
}

func (u *Updater) clear() {
	u.mu.Lock()
	u.jobs = nil
	u.hasData = false
	u.mu.Unlock()
}
