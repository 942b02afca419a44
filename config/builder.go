package config

import (
	"fmt"

	"github.com/printwatch/printwatch"
)

// BuildOptions converts parsed configuration into SDK options for
// [printwatch.New].
//
// Sensor names are parsed with [printwatch.ParseSensorType], so both the
// canonical names and the legacy resource keys are accepted. An empty
// sensors list yields no sensor options, which means the SDK falls back to
// [printwatch.DefaultSensors].
func BuildOptions(cfg *Config) ([]printwatch.Option, error) {
	opts := []printwatch.Option{
		printwatch.WithHost(cfg.Host),
		printwatch.WithPort(cfg.Port),
		printwatch.WithScanInterval(cfg.ScanInterval.Duration()),
		printwatch.WithThrottle(cfg.Throttle.Duration()),
		printwatch.WithRequestTimeout(cfg.Timeout.Duration()),
	}

	if cfg.PrinterPort != 0 {
		opts = append(opts, printwatch.WithPrinterPort(cfg.PrinterPort))
	}
	if cfg.Title != "" {
		opts = append(opts, printwatch.WithTitle(cfg.Title))
	}

	sensors, err := BuildSensors(cfg)
	if err != nil {
		return nil, err
	}
	if len(sensors) > 0 {
		opts = append(opts, printwatch.WithSensors(sensors...))
	}

	return opts, nil
}

// BuildSensors converts the configured sensor names into SDK Sensor values.
//
// Returns nil (no error) when the config lists no sensors.
func BuildSensors(cfg *Config) ([]printwatch.Sensor, error) {
	if len(cfg.Sensors) == 0 {
		return nil, nil
	}

	sensors := make([]printwatch.Sensor, 0, len(cfg.Sensors))
	seen := make(map[printwatch.SensorType]string, len(cfg.Sensors))
	for i, name := range cfg.Sensors {
		t, err := printwatch.ParseSensorType(name)
		if err != nil {
			return nil, fmt.Errorf("sensors[%d]: %w", i, err)
		}
		if prev, dup := seen[t]; dup {
			return nil, fmt.Errorf("sensors[%d]: %q duplicates %q", i, name, prev)
		}
		seen[t] = name

		s, err := printwatch.NewSensor(t)
		if err != nil {
			return nil, fmt.Errorf("sensors[%d]: %w", i, err)
		}
		sensors = append(sensors, s)
	}
	return sensors, nil
}
