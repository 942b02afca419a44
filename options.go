package printwatch

import (
	"errors"
	"log/slog"
	"time"
)

// monitorConfig holds mutable state during Monitor construction.
type monitorConfig struct {
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

// Option is a function that configures a [Monitor] instance during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithHost], [WithPrinterPort], [WithScanInterval],
// [WithThrottle], [WithRequestTimeout], [WithPort], [WithSensor],
// [WithSensors], [WithTitle], [WithLogger], [WithReadingCallback],
// [WithoutServer].
type Option func(*monitorConfig) error

// WithHost sets the printer's hostname or IP address.
//
// This option is required; [New] fails without it. The monitor polls
// http://<host>/cluster-api/v1/print_jobs/printing.
//
// Returns an error if the host is empty.
func WithHost(host string) Option {
	return func(cfg *monitorConfig) error {
		if host == "" {
			return errors.New("host cannot be empty")
		}
		cfg.host = host
		return nil
	}
}

// WithPrinterPort sets a non-default HTTP port on the printer.
//
// When unset, the URL carries no explicit port and the printer's default
// HTTP port is used.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPrinterPort(port int) Option {
	return func(cfg *monitorConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("printer port must be between 1 and 65535")
		}
		cfg.printerPort = port
		return nil
	}
}

// WithScanInterval sets how often the monitor refreshes its sensors.
//
// Defaults to 10 seconds. Note that the upstream poll rate is additionally
// bounded by the throttle interval ([WithThrottle]); a scan interval shorter
// than the throttle refreshes sensors from cached data.
//
// Returns an error if the duration is zero or negative.
func WithScanInterval(d time.Duration) Option {
	return func(cfg *monitorConfig) error {
		if d <= 0 {
			return errors.New("scan interval must be positive")
		}
		cfg.scanInterval = d
		return nil
	}
}

// WithThrottle sets the minimum wall-clock time between upstream polls.
//
// The throttle protects the printer from aggressive polling regardless of
// how often sensor updates are requested. Defaults to 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithThrottle(d time.Duration) Option {
	return func(cfg *monitorConfig) error {
		if d <= 0 {
			return errors.New("throttle interval must be positive")
		}
		cfg.throttle = d
		return nil
	}
}

// WithRequestTimeout sets the per-request timeout for printer polls.
//
// Defaults to 5 seconds. A poll that exceeds the timeout counts as a failed
// poll: the cache is cleared and sensors go stale.
//
// Returns an error if the duration is zero or negative.
func WithRequestTimeout(d time.Duration) Option {
	return func(cfg *monitorConfig) error {
		if d <= 0 {
			return errors.New("request timeout must be positive")
		}
		cfg.requestTimeout = d
		return nil
	}
}

// WithPort sets the HTTP port for the monitor's own API and dashboard.
//
// Defaults to 8080 if not specified.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *monitorConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithSensor adds a single [Sensor] to the monitor.
//
// Can be called multiple times. When no sensors are configured,
// [DefaultSensors] is used.
func WithSensor(s Sensor) Option {
	return func(cfg *monitorConfig) error {
		cfg.sensors = append(cfg.sensors, s)
		return nil
	}
}

// WithSensors adds multiple [Sensor] values to the monitor.
//
// Equivalent to calling [WithSensor] multiple times.
func WithSensors(sensors ...Sensor) Option {
	return func(cfg *monitorConfig) error {
		cfg.sensors = append(cfg.sensors, sensors...)
		return nil
	}
}

// WithTitle sets the dashboard title displayed in the browser tab and header.
//
// If not specified, defaults to "PrintWatch".
func WithTitle(title string) Option {
	return func(cfg *monitorConfig) error {
		cfg.title = title
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the monitor.
//
// This allows SDK consumers to control where logs are written and in what
// format. If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *monitorConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithReadingCallback registers a function to be called with every sensor
// reading produced by a poll cycle.
//
// Multiple callbacks may be registered by calling WithReadingCallback
// multiple times; they execute in registration order.
//
// IMPORTANT: Callbacks must be non-blocking. Long-running operations should
// dispatch work to a separate goroutine. Blocking callbacks will delay
// subsequent poll result processing.
//
// Callbacks are invoked synchronously from a single goroutine. Panics within
// callbacks are recovered and logged; they do not crash the monitor.
//
// Example:
//
//	mon, err := printwatch.New(
//	    printwatch.WithHost("192.168.1.50"),
//	    printwatch.WithReadingCallback(func(r printwatch.Reading) {
//	        if r.Sensor == printwatch.SensorActive && r.State == "false" {
//	            log.Println("printer is idle")
//	        }
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithReadingCallback(cb func(Reading)) Option {
	return func(cfg *monitorConfig) error {
		if cb == nil {
			return nil // no-op for nil callback (safe to call)
		}
		cfg.readingCallbacks = append(cfg.readingCallbacks, cb)
		return nil
	}
}

// WithoutServer disables the monitor's HTTP API and dashboard.
//
// Use this when embedding the monitor purely for its callbacks, for example
// to feed readings into another system's entity layer.
func WithoutServer() Option {
	return func(cfg *monitorConfig) error {
		cfg.serverDisabled = true
		return nil
	}
}
