package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/printwatch/printwatch"
)

func main() {
	// start mock printer (see mock_printer.go)
	go StartMockPrinter(":9999")
	time.Sleep(100 * time.Millisecond)

	mon, err := printwatch.New(
		printwatch.WithHost("localhost"),
		printwatch.WithPrinterPort(9999),
		printwatch.WithScanInterval(5*time.Second),
		printwatch.WithThrottle(5*time.Second),
		printwatch.WithPort(8080),
		printwatch.WithTitle("Workshop printer"),
		printwatch.WithReadingCallback(func(r printwatch.Reading) {
			if r.Sensor == printwatch.SensorPercentage && !r.Stale {
				fmt.Printf("  progress: %s%%\n", r.State)
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create monitor", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  PrintWatch Demo")
	fmt.Println()
	fmt.Println("  Open http://localhost:8080 in your browser")
	fmt.Println("  A simulated 3-minute print job is in progress.")
	fmt.Println("  Press Ctrl+C to stop")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := mon.Start(ctx); err != nil {
		slog.Error("monitor error", "error", err)
		os.Exit(1)
	}
}
