package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Snapshot is the outcome of one poll cycle.
//
// When Err is non-nil the cache was cleared and Jobs is nil; consumers
// should treat their derived values as stale rather than resetting them.
type Snapshot struct {
	// Jobs is the job list from the most recent successful poll.
	Jobs []PrintJob

	// HasData reports whether Jobs comes from a successful poll.
	// False after any failed poll.
	HasData bool

	// PolledAt is when this cycle ran.
	PolledAt time.Time

	// Err is the poll failure, if any.
	Err error
}

// Scheduler drives an [Updater] at a fixed scan interval.
//
// The scheduler polls immediately on Start, then on every tick, and emits a
// [Snapshot] per attempted poll on the Results channel. Ticks that land
// inside the updater's throttle window produce no snapshot.
//
// All lifecycle methods (Start, Stop) are safe for concurrent use.
type Scheduler struct {
	updater  *Updater
	interval time.Duration
	results  chan Snapshot
	logger   *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu        sync.Mutex
	started   bool
	stopped   bool
	closeOnce sync.Once
}

// NewScheduler creates a polling [Scheduler] around an updater.
//
// The scheduler must be started with [Scheduler.Start] and stopped with
// [Scheduler.Stop]. Results are available via [Scheduler.Results].
func NewScheduler(updater *Updater, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		updater:  updater,
		interval: interval,
		results:  make(chan Snapshot, 1),
		logger:   logger,
	}
}

// Results returns a receive-only channel that emits [Snapshot] values.
//
// The channel is closed when the scheduler stops. Consumers should read from
// this channel until it is closed to receive all poll results.
func (s *Scheduler) Results() <-chan Snapshot {
	return s.results
}

// Start begins the polling loop in a background goroutine.
//
// Start is non-blocking and returns immediately. The scheduler polls once
// right away, then ticks at the scan interval until [Scheduler.Stop] is
// called or the context is cancelled.
//
// If ctx is nil, context.Background() is used as the parent context.
// Start is idempotent; subsequent calls after the first are no-ops.
// If Stop was called before Start, Start is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	pollCtx := s.ctx // capture under lock to avoid race
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer s.closeOnce.Do(func() { close(s.results) })

		s.poll(pollCtx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				s.poll(pollCtx)
			}
		}
	}()
}

// Stop halts the scheduler and waits for the polling goroutine to complete.
//
// Stop is idempotent and safe to call multiple times. Calling Stop before
// Start is a safe no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		if s.cancel != nil {
			s.cancel()
		}
	}
	s.mu.Unlock()

	s.wg.Wait()

	// clean up client connections after the loop exits
	s.updater.Close()

	// ensure channel is closed even if Start() was never called
	s.closeOnce.Do(func() { close(s.results) })
}

// poll runs one update cycle and emits a snapshot if a poll was attempted.
func (s *Scheduler) poll(ctx context.Context) {
	attempted, err := s.updater.Update(ctx)
	if !attempted {
		s.logger.Debug("poll throttled", "url", s.updater.URL())
		return
	}

	jobs, hasData := s.updater.Data()
	snap := Snapshot{
		Jobs:     jobs,
		HasData:  hasData,
		PolledAt: time.Now(),
		Err:      err,
	}

	select {
	case s.results <- snap:
	case <-ctx.Done():
	}
}
