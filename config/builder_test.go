package config

import (
	"strings"
	"testing"
	"time"

	"github.com/printwatch/printwatch"
)

func TestBuildSensors_CanonicalNames(t *testing.T) {
	cfg := &Config{
		Sensors: []string{"time_elapsed", "time_total", "percentage", "active"},
	}

	sensors, err := BuildSensors(cfg)
	if err != nil {
		t.Fatalf("BuildSensors() error = %v", err)
	}
	if len(sensors) != 4 {
		t.Fatalf("len(sensors) = %d, want 4", len(sensors))
	}

	want := []printwatch.SensorType{
		printwatch.SensorTimeElapsed,
		printwatch.SensorTimeTotal,
		printwatch.SensorPercentage,
		printwatch.SensorActive,
	}
	for i, wantType := range want {
		if sensors[i].Type() != wantType {
			t.Errorf("sensors[%d].Type() = %v, want %v", i, sensors[i].Type(), wantType)
		}
	}
}

func TestBuildSensors_LegacyResourceKeys(t *testing.T) {
	cfg := &Config{
		Sensors: []string{"3dprinttimeelapsed", "3dprinttotal", "3dprintpercentage", "3dprintactive"},
	}

	sensors, err := BuildSensors(cfg)
	if err != nil {
		t.Fatalf("BuildSensors() error = %v", err)
	}
	if len(sensors) != 4 {
		t.Fatalf("len(sensors) = %d, want 4", len(sensors))
	}

	if sensors[0].Type() != printwatch.SensorTimeElapsed {
		t.Errorf("sensors[0].Type() = %v, want %v", sensors[0].Type(), printwatch.SensorTimeElapsed)
	}
	if sensors[1].Type() != printwatch.SensorTimeTotal {
		t.Errorf("sensors[1].Type() = %v, want %v", sensors[1].Type(), printwatch.SensorTimeTotal)
	}
}

func TestBuildSensors_Empty(t *testing.T) {
	cfg := &Config{}

	sensors, err := BuildSensors(cfg)
	if err != nil {
		t.Fatalf("BuildSensors() error = %v", err)
	}
	if sensors != nil {
		t.Errorf("BuildSensors() = %v, want nil", sensors)
	}
}

func TestBuildSensors_UnknownName(t *testing.T) {
	cfg := &Config{
		Sensors: []string{"percentage", "nozzle_temperature"},
	}

	_, err := BuildSensors(cfg)
	if err == nil {
		t.Fatal("BuildSensors() should fail for unknown sensor name")
	}
	if !strings.Contains(err.Error(), "sensors[1]") {
		t.Errorf("error should name the offending index, got: %v", err)
	}
}

func TestBuildSensors_Duplicate(t *testing.T) {
	cfg := &Config{
		Sensors: []string{"percentage", "percentage"},
	}

	_, err := BuildSensors(cfg)
	if err == nil {
		t.Fatal("BuildSensors() should fail for duplicate sensor")
	}
	if !strings.Contains(err.Error(), "duplicates") {
		t.Errorf("error = %v, want containing %q", err, "duplicates")
	}
}

func TestBuildSensors_DuplicateAcrossLegacyAndCanonical(t *testing.T) {
	// the legacy key resolves to the same sensor type as the canonical name
	cfg := &Config{
		Sensors: []string{"percentage", "3dprintpercentage"},
	}

	_, err := BuildSensors(cfg)
	if err == nil {
		t.Fatal("BuildSensors() should fail when legacy key duplicates canonical name")
	}
	if !strings.Contains(err.Error(), `"3dprintpercentage" duplicates "percentage"`) {
		t.Errorf("error = %v, want containing %q", err, `"3dprintpercentage" duplicates "percentage"`)
	}
}

func TestBuildOptions_Minimal(t *testing.T) {
	cfg := &Config{
		Host:         "printer.local",
		Port:         8080,
		ScanInterval: Duration(10 * time.Second),
		Throttle:     Duration(10 * time.Second),
		Timeout:      Duration(5 * time.Second),
	}

	opts, err := BuildOptions(cfg)
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}

	// verify the options produce a working Monitor
	mon, err := printwatch.New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if mon.Host() != "printer.local" {
		t.Errorf("Host() = %q, want %q", mon.Host(), "printer.local")
	}
	if mon.ScanInterval() != 10*time.Second {
		t.Errorf("ScanInterval() = %v, want 10s", mon.ScanInterval())
	}
	// empty sensors list falls back to defaults
	if got := len(mon.Sensors()); got != 4 {
		t.Errorf("len(Sensors()) = %d, want 4", got)
	}
}

func TestBuildOptions_WithSensorsAndTitle(t *testing.T) {
	cfg := &Config{
		Title:        "Workshop",
		Host:         "printer.local",
		PrinterPort:  8081,
		Port:         9090,
		ScanInterval: Duration(15 * time.Second),
		Throttle:     Duration(10 * time.Second),
		Timeout:      Duration(5 * time.Second),
		Sensors:      []string{"active"},
	}

	opts, err := BuildOptions(cfg)
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}

	mon, err := printwatch.New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sensors := mon.Sensors()
	if len(sensors) != 1 {
		t.Fatalf("len(Sensors()) = %d, want 1", len(sensors))
	}
	if sensors[0].Type() != printwatch.SensorActive {
		t.Errorf("sensors[0].Type() = %v, want %v", sensors[0].Type(), printwatch.SensorActive)
	}
}

func TestBuildOptions_InvalidSensor(t *testing.T) {
	cfg := &Config{
		Host:         "printer.local",
		Port:         8080,
		ScanInterval: Duration(10 * time.Second),
		Throttle:     Duration(10 * time.Second),
		Timeout:      Duration(5 * time.Second),
		Sensors:      []string{"bogus"},
	}

	_, err := BuildOptions(cfg)
	if err == nil {
		t.Fatal("BuildOptions() should fail for invalid sensor name")
	}
}
