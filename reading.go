package printwatch

import (
	"fmt"
	"time"
)

// SensorType identifies a derived sensor value.
//
// SensorType is a string type so readings serialize naturally to JSON and
// log lines stay human-readable, while the defined constants keep usage
// type-safe.
type SensorType string

const (
	// SensorTimeElapsed is the elapsed print time, formatted HH:MM.
	SensorTimeElapsed SensorType = "time_elapsed"

	// SensorTimeTotal is the estimated total print time, formatted HH:MM.
	SensorTimeTotal SensorType = "time_total"

	// SensorPercentage is the completion percentage, 0-100 clamped.
	SensorPercentage SensorType = "percentage"

	// SensorActive reports whether a print job is currently running.
	SensorActive SensorType = "active"
)

// String returns the string representation of the sensor type.
// This implements the fmt.Stringer interface.
func (t SensorType) String() string {
	return string(t)
}

// AllSensorTypes returns every supported sensor type in display order.
func AllSensorTypes() []SensorType {
	return []SensorType{SensorTimeElapsed, SensorTimeTotal, SensorPercentage, SensorActive}
}

// legacyResourceKeys maps the resource identifiers of the original
// Home Assistant platform configuration to sensor types, so existing
// configurations keep working unchanged.
var legacyResourceKeys = map[string]SensorType{
	"3dprinttimeelapsed": SensorTimeElapsed,
	"3dprinttotal":       SensorTimeTotal,
	"3dprintpercentage":  SensorPercentage,
	"3dprintactive":      SensorActive,
}

// ParseSensorType converts a string into a [SensorType].
//
// It accepts both the canonical names ("time_elapsed", "time_total",
// "percentage", "active") and the legacy resource keys of the original
// platform configuration ("3dprinttimeelapsed", "3dprinttotal",
// "3dprintpercentage", "3dprintactive").
func ParseSensorType(s string) (SensorType, error) {
	switch SensorType(s) {
	case SensorTimeElapsed, SensorTimeTotal, SensorPercentage, SensorActive:
		return SensorType(s), nil
	}
	if t, ok := legacyResourceKeys[s]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown sensor type %q", s)
}

// Job is a single entry of the printer's print-job endpoint.
//
// This is the public mirror of the poller's internal job type, decoupled so
// the internal packages can evolve independently. The time fields are
// pointers because the printer reports null before a job starts moving.
type Job struct {
	// UUID is the cluster-assigned job identifier.
	UUID string

	// Name is the human-readable job name.
	Name string

	// Status is the cluster status string (e.g. "printing", "paused").
	Status string

	// Owner is the user that submitted the job, if reported.
	Owner string

	// StartedAt is when the job started, if reported.
	StartedAt *time.Time

	// TimeElapsed is the elapsed print time in seconds. Nil when unknown.
	TimeElapsed *float64

	// TimeTotal is the estimated total print time in seconds. Nil when unknown.
	TimeTotal *float64
}

// Reading is the derived state of one sensor after a poll cycle.
//
// Reading is immutable after creation. State holds the display value as a
// string regardless of the sensor type: a clock string for the time sensors,
// a decimal integer for percentage, and "true"/"false" for active.
type Reading struct {
	// Sensor is the sensor type this reading belongs to.
	Sensor SensorType

	// Name is the sensor's display name (e.g. "3D print percentage").
	Name string

	// State is the display value. Empty until the first successful derivation.
	State string

	// Unit is the unit of measurement, if any (e.g. "%", "HH:mm").
	Unit string

	// Icon is the display icon identifier, if any.
	Icon string

	// Stale reports that State was carried over from an earlier cycle
	// because the current poll failed or the value was not derivable.
	Stale bool

	// UpdatedAt is when State was last successfully derived.
	// Zero until the first successful derivation.
	UpdatedAt time.Time

	// PolledAt is when the poll cycle producing this reading ran.
	PolledAt time.Time

	// Err is the poll failure that made this reading stale, if any.
	Err error
}
