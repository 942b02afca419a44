package printwatch

import "errors"

// sensorConfig holds mutable state during sensor construction.
type sensorConfig struct {
	name   string
	unit   string
	icon   string
	mapper FieldMapper
}

// SensorOption is a function that configures a [Sensor] during construction.
//
// SensorOption implements the functional options pattern, allowing optional
// configuration to be passed to [NewSensor] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithSensorName], [WithSensorUnit], [WithSensorIcon],
// [WithSensorMapper].
type SensorOption func(*sensorConfig) error

// WithSensorName overrides the sensor's display name.
//
// Example:
//
//	s, err := printwatch.NewSensor(printwatch.SensorActive,
//	    printwatch.WithSensorName("Printer busy"),
//	)
//
// Returns an error if the name is empty.
func WithSensorName(name string) SensorOption {
	return func(cfg *sensorConfig) error {
		if name == "" {
			return errors.New("sensor name cannot be empty")
		}
		cfg.name = name
		return nil
	}
}

// WithSensorUnit overrides the sensor's unit of measurement.
// An empty unit is valid and means the sensor is unitless.
func WithSensorUnit(unit string) SensorOption {
	return func(cfg *sensorConfig) error {
		cfg.unit = unit
		return nil
	}
}

// WithSensorIcon overrides the sensor's display icon identifier
// (e.g. "mdi:clock-outline"). An empty icon is valid.
func WithSensorIcon(icon string) SensorOption {
	return func(cfg *sensorConfig) error {
		cfg.icon = icon
		return nil
	}
}

// WithSensorMapper replaces the sensor's built-in [FieldMapper].
//
// Use this to derive custom values from the job list, for example a
// remaining-time sensor:
//
//	s, err := printwatch.NewSensor(printwatch.SensorTimeTotal,
//	    printwatch.WithSensorName("3D print time remaining"),
//	    printwatch.WithSensorMapper(func(jobs []printwatch.Job) (string, bool) {
//	        if len(jobs) == 0 || jobs[0].TimeElapsed == nil || jobs[0].TimeTotal == nil {
//	            return "", false
//	        }
//	        // ...
//	    }),
//	)
//
// Returns an error if the mapper is nil.
func WithSensorMapper(m FieldMapper) SensorOption {
	return func(cfg *sensorConfig) error {
		if m == nil {
			return errors.New("sensor mapper cannot be nil")
		}
		cfg.mapper = m
		return nil
	}
}
