// Package printwatch provides a lightweight monitor for Ultimaker cluster
// printers, deriving read-only sensor values from the printer's print-job
// endpoint.
//
// PrintWatch is designed as an SDK-first library, allowing developers to
// programmatically configure and embed a print-status monitor in their
// applications. It follows functional programming principles with immutable
// types, pure derivation functions, and composable configuration via the
// functional options pattern.
//
// # Quick Start
//
// Create a monitor and start it with graceful shutdown:
//
//	mon, _ := printwatch.New(printwatch.WithHost("192.168.1.50"))
//
//	// Set up graceful shutdown on SIGINT/SIGTERM
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	mon.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// PrintWatch uses the functional options pattern for configuration:
//
//	mon, err := printwatch.New(
//	    printwatch.WithHost("192.168.1.50"),
//	    printwatch.WithScanInterval(10 * time.Second),
//	    printwatch.WithPort(9090),
//	    printwatch.WithSensors(
//	        printwatch.MustSensor(printwatch.SensorPercentage),
//	        printwatch.MustSensor(printwatch.SensorActive),
//	    ),
//	)
//
// Sensors can also be configured with options:
//
//	s, err := printwatch.NewSensor(printwatch.SensorTimeElapsed,
//	    printwatch.WithSensorName("Kitchen printer elapsed"),
//	    printwatch.WithSensorIcon("mdi:clock-outline"),
//	)
//
// # Sensors
//
// Four sensor types are derived from the printer's job list:
//
//   - [SensorTimeElapsed]: elapsed print time formatted as HH:MM
//   - [SensorTimeTotal]: estimated total print time formatted as HH:MM
//   - [SensorPercentage]: completion percentage (0-100, clamped)
//   - [SensorActive]: whether a print job is currently running
//
// A sensor retains its previous state when its value cannot be derived from
// the current poll (printer idle, field absent, or the poll itself failed);
// the reading is marked stale instead of being cleared.
//
// # Architecture
//
// PrintWatch consists of several internal packages (under internal/):
//
//   - internal/poller: Throttled HTTP polling of the cluster print-job endpoint
//   - internal/store: In-memory reading storage with pub/sub for real-time updates
//   - internal/server: HTTP server with REST API and Server-Sent Events
//   - dashboard: Embedded web UI assets
//
// The internal packages are not part of the public API and may change
// without notice. The library is designed for single-binary deployment
// using Go's embed directive for static assets.
package printwatch
