package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// mockJob mirrors the wire shape of the cluster print-job endpoint.
type mockJob struct {
	UUID        string   `json:"uuid"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Owner       string   `json:"owner"`
	TimeElapsed *float64 `json:"time_elapsed"`
	TimeTotal   *float64 `json:"time_total"`
}

// StartMockPrinter runs a mock cluster print-job endpoint that simulates a
// print job progressing in real time. When the job completes, the printer
// reports idle (empty array) for a while and then starts a new job.
// Call this in a goroutine before creating the monitor.
func StartMockPrinter(addr string) {
	const (
		jobDuration  = 3 * time.Minute
		idleDuration = 30 * time.Second
	)

	var (
		mu        sync.Mutex
		startedAt = time.Now()
		idle      = false
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/cluster-api/v1/print_jobs/printing", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		elapsed := time.Since(startedAt)

		// flip between printing and idle phases
		if !idle && elapsed >= jobDuration {
			idle = true
			startedAt = time.Now()
			elapsed = 0
		} else if idle && elapsed >= idleDuration {
			idle = false
			startedAt = time.Now()
			elapsed = 0
		}
		isIdle := idle
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")

		if isIdle {
			_, _ = w.Write([]byte("[]"))
			return
		}

		elapsedSec := elapsed.Seconds()
		totalSec := jobDuration.Seconds()
		jobs := []mockJob{{
			UUID:        "4f8a2b1e-demo",
			Name:        "benchy.ufp",
			Status:      "printing",
			Owner:       "demo",
			TimeElapsed: &elapsedSec,
			TimeTotal:   &totalSec,
		}}
		_ = json.NewEncoder(w).Encode(jobs)
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock printer stopped", "error", err)
	}
}
