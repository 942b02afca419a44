package poller

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

// testPrinter runs a fake print-job endpoint and returns an updater aimed at
// it plus a pointer to the request counter.
func testPrinter(t *testing.T, throttle time.Duration, handler http.HandlerFunc) (*Updater, *atomic.Int64) {
	t.Helper()

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("failed to parse test server URL: %v", err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("failed to split test server host: %v", err)
	}
	port, _ := strconv.Atoi(portStr)

	updater := NewUpdater(host, port, throttle, time.Second)
	t.Cleanup(updater.Close)
	return updater, &requests
}

func printingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`[{"name":"benchy.ufp","status":"printing","time_elapsed":60,"time_total":120}]`))
}

func TestUpdater_CachesSuccessfulPoll(t *testing.T) {
	updater, _ := testPrinter(t, time.Hour, printingHandler)

	attempted, err := updater.Update(context.Background())
	if !attempted {
		t.Fatal("Update() attempted = false, want true for first call")
	}
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	jobs, hasData := updater.Data()
	if !hasData {
		t.Fatal("Data() hasData = false after successful poll")
	}
	if len(jobs) != 1 || jobs[0].Name != "benchy.ufp" {
		t.Errorf("Data() = %+v, want one benchy.ufp job", jobs)
	}
	if updater.LastSuccess().IsZero() {
		t.Error("LastSuccess() is zero after successful poll")
	}
}

func TestUpdater_ThrottleSuppressesUpstreamPolls(t *testing.T) {
	updater, requests := testPrinter(t, time.Hour, printingHandler)

	for i := 0; i < 5; i++ {
		attempted, err := updater.Update(context.Background())
		if err != nil {
			t.Fatalf("Update() %d error = %v", i, err)
		}
		if i == 0 && !attempted {
			t.Fatal("first Update() attempted = false, want true")
		}
		if i > 0 && attempted {
			t.Errorf("Update() %d attempted = true inside throttle window", i)
		}
	}

	if got := requests.Load(); got != 1 {
		t.Errorf("printer received %d requests, want 1 (throttled)", got)
	}

	// the throttled calls must not disturb the cache
	if _, hasData := updater.Data(); !hasData {
		t.Error("Data() hasData = false after throttled calls")
	}
}

func TestUpdater_PollsAgainAfterThrottleWindow(t *testing.T) {
	updater, requests := testPrinter(t, 50*time.Millisecond, printingHandler)

	if _, err := updater.Update(context.Background()); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	time.Sleep(80 * time.Millisecond)
	attempted, err := updater.Update(context.Background())
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !attempted {
		t.Fatal("Update() attempted = false after throttle window elapsed")
	}

	if got := requests.Load(); got != 2 {
		t.Errorf("printer received %d requests, want 2", got)
	}
}

func TestUpdater_FailureClearsCache(t *testing.T) {
	var fail atomic.Bool
	updater, _ := testPrinter(t, time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		printingHandler(w, r)
	})

	if _, err := updater.Update(context.Background()); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if _, hasData := updater.Data(); !hasData {
		t.Fatal("Data() hasData = false after successful poll")
	}

	fail.Store(true)
	time.Sleep(5 * time.Millisecond)
	_, err := updater.Update(context.Background())
	if err == nil {
		t.Fatal("Update() error = nil against failing printer")
	}

	// any failure means "no data", the previous payload is not kept
	if jobs, hasData := updater.Data(); hasData || jobs != nil {
		t.Errorf("Data() = (%v, %v) after failed poll, want (nil, false)", jobs, hasData)
	}

	// recovery restores the cache
	fail.Store(false)
	time.Sleep(5 * time.Millisecond)
	if _, err := updater.Update(context.Background()); err != nil {
		t.Fatalf("Update() error = %v after recovery", err)
	}
	if _, hasData := updater.Data(); !hasData {
		t.Error("Data() hasData = false after recovery")
	}
}

func TestUpdater_ParseFailureClearsCache(t *testing.T) {
	var garbage atomic.Bool
	updater, _ := testPrinter(t, time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		if garbage.Load() {
			_, _ = w.Write([]byte(`<html>definitely not json</html>`))
			return
		}
		printingHandler(w, r)
	})

	if _, err := updater.Update(context.Background()); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	garbage.Store(true)
	time.Sleep(5 * time.Millisecond)
	if _, err := updater.Update(context.Background()); err == nil {
		t.Fatal("Update() error = nil for unparseable body")
	}
	if _, hasData := updater.Data(); hasData {
		t.Error("Data() hasData = true after parse failure")
	}
}

func TestUpdater_UnreachablePrinter(t *testing.T) {
	// port from a closed listener: connection refused quickly
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to open listener: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	updater := NewUpdater("127.0.0.1", port, time.Millisecond, time.Second)
	defer updater.Close()

	if _, err := updater.Update(context.Background()); err == nil {
		t.Fatal("Update() error = nil against unreachable printer")
	}
	if _, hasData := updater.Data(); hasData {
		t.Error("Data() hasData = true, want false before any success")
	}
}

func TestNewUpdater_Defaults(t *testing.T) {
	updater := NewUpdater("printer.local", 0, 0, 0)
	defer updater.Close()

	if updater.throttle != DefaultThrottle {
		t.Errorf("throttle = %v, want %v", updater.throttle, DefaultThrottle)
	}
	if updater.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", updater.timeout, DefaultTimeout)
	}
	if updater.URL() != "http://printer.local/cluster-api/v1/print_jobs/printing" {
		t.Errorf("URL() = %q", updater.URL())
	}
}
