// Package config provides YAML configuration parsing for PrintWatch.
//
// This package enables running PrintWatch as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	title: Workshop printer
//	host: ${PRINTER_HOST:-192.168.1.50}
//	port: 8080
//	scan_interval: 10s
//	timeout: 5s
//
//	sensors:
//	  - time_elapsed
//	  - time_total
//	  - percentage
//	  - active
//
// The sensors list also accepts the legacy resource keys of the original
// platform configuration (3dprinttimeelapsed, 3dprinttotal,
// 3dprintpercentage, 3dprintactive).
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// minScanInterval is the minimum allowed scan interval for production configs.
// This prevents accidental DoS of the printer with overly aggressive polling.
const minScanInterval = 1 * time.Second

// Config is the root configuration structure for PrintWatch.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the dashboard title. Defaults to "PrintWatch" if not set.
	Title string `yaml:"title"`

	// Host is the printer's hostname or IP address. Required.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Host string `yaml:"host"`

	// PrinterPort is a non-default HTTP port on the printer.
	// Zero means the printer's default HTTP port.
	PrinterPort int `yaml:"printer_port"`

	// Port is the HTTP server port of the monitor itself. Defaults to 8080.
	Port int `yaml:"port"`

	// ScanInterval is the time between sensor refresh cycles.
	// Accepts duration strings like "10s", "1m", "500ms".
	// Defaults to 10s.
	ScanInterval Duration `yaml:"scan_interval"`

	// Throttle is the minimum time between upstream printer polls.
	// Defaults to 10s.
	Throttle Duration `yaml:"throttle"`

	// Timeout is the per-request timeout for printer polls. Defaults to 5s.
	Timeout Duration `yaml:"timeout"`

	// Sensors lists the sensor types to expose. Defaults to all four.
	Sensors []string `yaml:"sensors"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		// submatches[2] is ":-..." (non-empty if default syntax was used)
		// submatches[3] is the actual default value (may be empty for ${VAR:-})
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in the Host value. Defaults are applied
// for Port (8080), ScanInterval (10s), Throttle (10s), and Timeout (5s).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.ScanInterval == 0 {
		cfg.ScanInterval = Duration(10 * time.Second)
	}
	if cfg.Throttle == 0 {
		cfg.Throttle = Duration(10 * time.Second)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = Duration(5 * time.Second)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	expanded, err := expandEnvVars(c.Host)
	if err != nil {
		return fmt.Errorf("host: %w", err)
	}
	c.Host = expanded

	if c.PrinterPort != 0 && (c.PrinterPort < 1 || c.PrinterPort > 65535) {
		return fmt.Errorf("printer_port must be between 1 and 65535, got %d", c.PrinterPort)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.ScanInterval.Duration() < minScanInterval {
		return fmt.Errorf("scan_interval must be at least %s, got %s", minScanInterval, c.ScanInterval.Duration())
	}
	if c.Throttle.Duration() < time.Second {
		return fmt.Errorf("throttle must be at least 1s, got %s", c.Throttle.Duration())
	}

	if c.Timeout.Duration() < time.Second {
		return fmt.Errorf("timeout must be at least 1s, got %s", c.Timeout.Duration())
	}
	if c.Timeout.Duration() > time.Minute {
		return fmt.Errorf("timeout must not exceed 1m, got %s", c.Timeout.Duration())
	}

	return nil
}
