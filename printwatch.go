package printwatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/printwatch/printwatch/dashboard"
	"github.com/printwatch/printwatch/internal/poller"
	"github.com/printwatch/printwatch/internal/server"
	"github.com/printwatch/printwatch/internal/store"
)

const (
	defaultScanInterval   = 10 * time.Second
	defaultThrottle       = 10 * time.Second
	defaultRequestTimeout = 5 * time.Second
	defaultPort           = 8080
)

// Monitor is the main orchestrator for printer polling and sensor serving.
//
// Monitor coordinates the throttled polling of the printer's print-job
// endpoint, derives sensor readings from each poll, stores them, and serves
// a read-only API and dashboard via HTTP. It is created using [New] with
// functional options and started with [Monitor.Start].
//
// The typical lifecycle is:
//
//	mon, err := printwatch.New(printwatch.WithHost("192.168.1.50"))
//	if err != nil {
//	    slog.Error("failed to create monitor", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	mon.Start(ctx) // blocks until context cancelled
//
// The caller controls the lifecycle via the context. Cancel the context to
// trigger graceful shutdown.
type Monitor struct {
	title            string
	host             string
	printerPort      int
	scanInterval     time.Duration
	throttle         time.Duration
	requestTimeout   time.Duration
	port             int
	sensors          []Sensor
	logger           *slog.Logger
	readingCallbacks []func(Reading)
	serverDisabled   bool
}

// New creates a new [Monitor] instance with the given options.
//
// [WithHost] is required. Other options have sensible defaults:
//   - Scan interval: 10 seconds
//   - Throttle interval: 10 seconds
//   - Request timeout: 5 seconds
//   - Port: 8080
//   - Sensors: [DefaultSensors] (all four types)
//
// Returns an error if no host is configured, a sensor type appears twice,
// or any option is invalid.
//
// Example:
//
//	mon, err := printwatch.New(
//	    printwatch.WithHost("192.168.1.50"),
//	    printwatch.WithScanInterval(30 * time.Second),
//	    printwatch.WithPort(9090),
//	)
func New(opts ...Option) (*Monitor, error) {
	cfg := &monitorConfig{
		scanInterval:   defaultScanInterval,
		throttle:       defaultThrottle,
		requestTimeout: defaultRequestTimeout,
		port:           defaultPort,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.host == "" {
		return nil, errors.New("a printer host is required")
	}

	if len(cfg.sensors) == 0 {
		cfg.sensors = DefaultSensors()
	}

	// validate sensor type uniqueness (readings are keyed by type)
	seen := make(map[SensorType]bool, len(cfg.sensors))
	for _, s := range cfg.sensors {
		if seen[s.sensorType] {
			return nil, fmt.Errorf("duplicate sensor type: %q", s.sensorType)
		}
		seen[s.sensorType] = true
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Monitor{
		title:            cfg.title,
		host:             cfg.host,
		printerPort:      cfg.printerPort,
		scanInterval:     cfg.scanInterval,
		throttle:         cfg.throttle,
		requestTimeout:   cfg.requestTimeout,
		port:             cfg.port,
		sensors:          cfg.sensors,
		logger:           logger,
		readingCallbacks: cfg.readingCallbacks,
		serverDisabled:   cfg.serverDisabled,
	}, nil
}

// Start begins polling the printer and serving the sensor API.
//
// Start is a blocking call that runs until the provided context is cancelled.
// During execution:
//
//   - The printer is polled immediately, then at the scan interval
//     (bounded below by the throttle interval)
//   - Sensor readings are derived from each poll and stored
//   - Reading callbacks fire after each cycle
//   - The HTTP server starts on the configured port unless disabled
//
// Returns nil on graceful shutdown. Returns an error if the HTTP server
// fails to start.
func (m *Monitor) Start(ctx context.Context) error {
	m.logger.Info("printwatch starting",
		"printer", poller.JobURL(m.host, m.printerPort),
		"sensor_count", len(m.sensors),
	)
	m.logger.Info("polling configured",
		"scan_interval", m.scanInterval.String(),
		"throttle", m.throttle.String(),
	)

	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	readingStore := store.NewMemoryStore()

	updater := poller.NewUpdater(m.host, m.printerPort, m.throttle, m.requestTimeout)
	scheduler := poller.NewScheduler(updater, m.scanInterval, m.logger)
	scheduler.Start(ctx)

	d := m.newDeriver()

	// track the results consumer goroutine to ensure clean shutdown
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for snap := range scheduler.Results() {
			readings := d.apply(snap)

			for _, r := range readings {
				// store update first (callbacks fire after data is persisted)
				readingStore.Update(readingToStoreReading(r))

				for _, cb := range m.readingCallbacks {
					m.invokeCallbackSafe(cb, r)
				}
			}

			// log poll results (DEBUG level for success to reduce noise)
			logAttrs := []any{
				"jobs", len(snap.Jobs),
				"has_data", snap.HasData,
			}
			if snap.Err != nil {
				m.logger.Warn("poll failed", append(logAttrs, "error", snap.Err.Error())...)
			} else {
				m.logger.Debug("poll completed", logAttrs...)
			}
		}
	}()

	// cleanup function ensures scheduler is stopped and all results are processed
	cleanup := func() {
		scheduler.Stop() // closes results channel
		wg.Wait()        // wait for all results to be processed
	}

	if !m.serverDisabled {
		httpServer := server.NewServer(readingStore, m.port, dashboard.Assets, m.title, m.logger)
		if err := httpServer.Start(ctx); err != nil {
			cleanup()
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		m.logger.Info("dashboard available", "url", fmt.Sprintf("http://localhost:%d", m.port))
	}

	<-ctx.Done()
	cleanup()
	m.logger.Info("printwatch stopped")
	return nil
}

// Poll performs a single throttle-exempt poll and returns the derived readings.
//
// Poll is intended for one-shot use (e.g. a CLI status command); it does not
// touch the state of a running monitor. Returns an error if the printer
// cannot be reached or its response cannot be parsed.
func (m *Monitor) Poll(ctx context.Context) ([]Reading, error) {
	updater := poller.NewUpdater(m.host, m.printerPort, m.throttle, m.requestTimeout)
	defer updater.Close()

	if _, err := updater.Update(ctx); err != nil {
		return nil, err
	}

	jobs, hasData := updater.Data()
	return m.newDeriver().apply(poller.Snapshot{
		Jobs:     jobs,
		HasData:  hasData,
		PolledAt: time.Now(),
	}), nil
}

// Sensors returns a copy of the configured sensors.
//
// The returned slice is a copy; modifying it does not affect the Monitor.
// Each [Sensor] in the slice is immutable.
func (m *Monitor) Sensors() []Sensor {
	cp := make([]Sensor, len(m.sensors))
	copy(cp, m.sensors)
	return cp
}

// Host returns the configured printer host.
func (m *Monitor) Host() string {
	return m.host
}

// Port returns the configured HTTP port for the sensor API server.
func (m *Monitor) Port() int {
	return m.port
}

// ScanInterval returns the configured interval between sensor refreshes.
func (m *Monitor) ScanInterval() time.Duration {
	return m.scanInterval
}

// Throttle returns the configured minimum interval between upstream polls.
func (m *Monitor) Throttle() time.Duration {
	return m.throttle
}

// deriver turns poll snapshots into readings, retaining each sensor's last
// derived state across cycles.
type deriver struct {
	monitor *Monitor
	states  map[SensorType]derivedState
}

type derivedState struct {
	state     string
	updatedAt time.Time
}

func (m *Monitor) newDeriver() *deriver {
	return &deriver{
		monitor: m,
		states:  make(map[SensorType]derivedState, len(m.sensors)),
	}
}

// apply derives one reading per configured sensor from a snapshot.
//
// A failed poll stales every sensor without invoking any mapper. On a
// successful poll, a sensor whose mapper cannot derive a value keeps its
// previous state and is marked stale.
func (d *deriver) apply(snap poller.Snapshot) []Reading {
	var jobs []Job
	if snap.Err == nil && snap.HasData {
		jobs = jobsToPublic(snap.Jobs)
	}

	readings := make([]Reading, 0, len(d.monitor.sensors))
	for _, s := range d.monitor.sensors {
		prev := d.states[s.sensorType]

		r := Reading{
			Sensor:    s.sensorType,
			Name:      s.name,
			Unit:      s.unit,
			Icon:      s.icon,
			State:     prev.state,
			UpdatedAt: prev.updatedAt,
			PolledAt:  snap.PolledAt,
			Stale:     true,
			Err:       snap.Err,
		}

		if snap.Err == nil && snap.HasData {
			state, ok, err := d.safeMap(s, jobs)
			if err != nil {
				r.Err = err
			} else if ok {
				r.State = state
				r.UpdatedAt = snap.PolledAt
				r.Stale = false
				d.states[s.sensorType] = derivedState{state: state, updatedAt: snap.PolledAt}
			}
		}

		readings = append(readings, r)
	}
	return readings
}

// safeMap calls the sensor's mapper with panic recovery.
// If the mapper panics, it logs the full stack trace with a correlation ID
// and returns no value with a user-friendly error containing the ID.
func (d *deriver) safeMap(s Sensor, jobs []Job) (state string, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			stack := debug.Stack()

			// log full context server-side for debugging
			d.monitor.logger.Error("field mapper panic",
				"correlation_id", correlationID,
				"sensor", s.sensorType,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(stack),
			)

			state = ""
			ok = false
			err = fmt.Errorf("field mapper panic (correlation_id: %s)", correlationID)
		}
	}()
	state, ok = s.mapper(jobs)
	return state, ok, nil
}

// jobsToPublic converts internal poller jobs to the public API type.
// Creates defensive copies of pointer fields to prevent shared mutation.
func jobsToPublic(jobs []poller.PrintJob) []Job {
	out := make([]Job, len(jobs))
	for i, j := range jobs {
		out[i] = Job{
			UUID:        j.UUID,
			Name:        j.Name,
			Status:      j.Status,
			Owner:       j.Owner,
			StartedAt:   copyTimePtr(j.StartedAt),
			TimeElapsed: copyFloatPtr(j.TimeElapsed),
			TimeTotal:   copyFloatPtr(j.TimeTotal),
		}
	}
	return out
}

// readingToStoreReading converts a public reading to its storage form.
func readingToStoreReading(r Reading) store.Reading {
	var errStr *string
	if r.Err != nil {
		s := r.Err.Error()
		errStr = &s
	}

	return store.Reading{
		Sensor:    string(r.Sensor),
		Name:      r.Name,
		State:     r.State,
		Unit:      r.Unit,
		Icon:      r.Icon,
		Stale:     r.Stale,
		UpdatedAt: r.UpdatedAt,
		PolledAt:  r.PolledAt,
		Error:     errStr,
	}
}

// invokeCallbackSafe calls a reading callback with panic recovery.
// Panics are logged but do not propagate.
func (m *Monitor) invokeCallbackSafe(cb func(Reading), r Reading) {
	defer func() {
		if rec := recover(); rec != nil {
			m.logger.Error("reading callback panicked",
				"panic", rec,
				"sensor", r.Sensor,
			)
		}
	}()
	cb(r)
}

func copyTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func copyFloatPtr(f *float64) *float64 {
	if f == nil {
		return nil
	}
	cp := *f
	return &cp
}
