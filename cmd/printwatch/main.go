// Package main is the entry point for the printwatch CLI.
//
// PrintWatch can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	printwatch serve -c config.yaml    # Start the monitor and dashboard
//	printwatch validate -c config.yaml # Validate configuration
//	printwatch status --host HOST      # One-shot poll, print sensor values
//	printwatch version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "printwatch",
	Short: "A lightweight Ultimaker print-status monitor",
	Long: `PrintWatch polls an Ultimaker cluster printer's print-job endpoint
and exposes derived sensor values (time elapsed, time total, completion
percentage, active flag) over a JSON API and a live dashboard.

Quick start:
  1. Create a config file (printwatch.yaml)
  2. Run: printwatch serve -c printwatch.yaml
  3. Open http://localhost:8080 in your browser

Example config:
  host: 192.168.1.50
  port: 8080
  scan_interval: 10s
  sensors:
    - time_elapsed
    - time_total
    - percentage
    - active`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this printwatch binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("printwatch %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
