package printwatch

import "fmt"

// sensorNamePrefix is prepended to the default display names, matching the
// naming of the original integration ("3D print time elapsed", ...).
const sensorNamePrefix = "3D print "

// sensorDefaults carries the per-type display metadata.
type sensorDefaults struct {
	name string // without prefix
	unit string
	icon string
}

// Display metadata carried over from the original platform.
var defaultsByType = map[SensorType]sensorDefaults{
	SensorTimeElapsed: {name: "time elapsed", unit: "HH:mm", icon: "mdi:thermometer"},
	SensorTimeTotal:   {name: "time total", unit: "HH:mm", icon: "mdi:thermometer"},
	SensorPercentage:  {name: "percentage", unit: "%", icon: "mdi:thermometer"},
	SensorActive:      {name: "active", unit: "", icon: ""},
}

// Sensor represents a single derived value exposed by the monitor.
//
// Sensor is immutable after creation via [NewSensor]. All fields are private
// with getter methods, ensuring a sensor cannot be modified after
// construction.
//
// Sensors are configured using the functional options pattern with
// [SensorOption] functions such as [WithSensorName], [WithSensorUnit],
// [WithSensorIcon], and [WithSensorMapper].
type Sensor struct {
	sensorType SensorType
	name       string
	unit       string
	icon       string
	mapper     FieldMapper
}

// Type returns the sensor's type.
func (s Sensor) Type() SensorType {
	return s.sensorType
}

// Name returns the sensor's display name.
// Defaults to the prefixed type name, e.g. "3D print percentage".
func (s Sensor) Name() string {
	return s.name
}

// Unit returns the sensor's unit of measurement, if any.
func (s Sensor) Unit() string {
	return s.unit
}

// Icon returns the sensor's display icon identifier, if any.
func (s Sensor) Icon() string {
	return s.icon
}

// Mapper returns the sensor's [FieldMapper].
// This is the built-in mapper for the type unless overridden with
// [WithSensorMapper].
func (s Sensor) Mapper() FieldMapper {
	return s.mapper
}

// NewSensor creates a [Sensor] of the given type with the given options.
//
// Display name, unit, and icon default to the values of the original
// integration and can be overridden per option. Returns an error if the
// sensor type is unknown or an option fails.
//
// Example:
//
//	s, err := printwatch.NewSensor(printwatch.SensorPercentage,
//	    printwatch.WithSensorName("Kitchen printer progress"),
//	)
func NewSensor(t SensorType, opts ...SensorOption) (Sensor, error) {
	defaults, ok := defaultsByType[t]
	if !ok {
		return Sensor{}, fmt.Errorf("unknown sensor type %q", t)
	}

	cfg := &sensorConfig{
		name: sensorNamePrefix + defaults.name,
		unit: defaults.unit,
		icon: defaults.icon,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Sensor{}, err
		}
	}

	mapper := cfg.mapper
	if mapper == nil {
		mapper = fieldMapperFor(t)
	}

	return Sensor{
		sensorType: t,
		name:       cfg.name,
		unit:       cfg.unit,
		icon:       cfg.icon,
		mapper:     mapper,
	}, nil
}

// MustSensor is like [NewSensor] but panics on error.
//
// Use this for compile-time constant sensor types where construction cannot
// fail. For runtime types (e.g. parsed from configuration), use [NewSensor].
func MustSensor(t SensorType, opts ...SensorOption) Sensor {
	s, err := NewSensor(t, opts...)
	if err != nil {
		panic("printwatch: " + err.Error())
	}
	return s
}

// DefaultSensors returns one sensor of each type with default metadata,
// mirroring the default resource list of the original platform.
func DefaultSensors() []Sensor {
	types := AllSensorTypes()
	sensors := make([]Sensor, len(types))
	for i, t := range types {
		sensors[i] = MustSensor(t)
	}
	return sensors
}
