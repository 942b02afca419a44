package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/printwatch/printwatch/config"
)

// validateCmd validates a config file without starting the monitor.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a PrintWatch configuration file without starting the monitor.

This command parses the YAML, expands environment variables, and validates
all fields including the sensor list. It's useful for CI/CD pipelines or
pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  printwatch validate -c config.yaml
  printwatch validate --config /etc/printwatch/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// sensor names are validated here, not in Parse, so surface them too
	sensors, err := config.BuildSensors(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	sensorCount := len(sensors)
	if sensorCount == 0 {
		sensorCount = 4 // default sensor set
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Printer:       %s\n", cfg.Host)
	fmt.Printf("  Port:          %d\n", cfg.Port)
	fmt.Printf("  Scan interval: %s\n", cfg.ScanInterval.Duration())
	fmt.Printf("  Throttle:      %s\n", cfg.Throttle.Duration())
	fmt.Printf("  Sensors:       %d\n", sensorCount)

	return nil
}
