package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/printwatch/printwatch"
)

// statusCmd polls the printer once and prints the derived sensor values.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Poll the printer once and print sensor values",
	Long: `Poll the printer's print-job endpoint a single time and print the
derived sensor values to stdout.

Sensors whose value cannot be derived (e.g. the printer is idle) are shown
with an empty state.

Example:
  printwatch status --host 192.168.1.50
  printwatch status --host 192.168.1.50 --printer-port 10080 --json`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().String("host", "", "printer hostname or IP (required)")
	statusCmd.Flags().Int("printer-port", 0, "non-default HTTP port on the printer")
	statusCmd.Flags().Duration("timeout", 5*time.Second, "request timeout")
	statusCmd.Flags().Bool("json", false, "print readings as JSON")
	_ = statusCmd.MarkFlagRequired("host")
}

func runStatus(cmd *cobra.Command, args []string) error {
	host, _ := cmd.Flags().GetString("host")
	printerPort, _ := cmd.Flags().GetInt("printer-port")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	asJSON, _ := cmd.Flags().GetBool("json")

	opts := []printwatch.Option{
		printwatch.WithHost(host),
		printwatch.WithRequestTimeout(timeout),
		printwatch.WithoutServer(),
	}
	if printerPort != 0 {
		opts = append(opts, printwatch.WithPrinterPort(printerPort))
	}

	mon, err := printwatch.New(opts...)
	if err != nil {
		return err
	}

	readings, err := mon.Poll(cmd.Context())
	if err != nil {
		return fmt.Errorf("poll failed: %w", err)
	}

	if asJSON {
		return printJSON(readings)
	}

	for _, r := range readings {
		state := r.State
		if state == "" {
			state = "-"
		}
		if r.Unit != "" {
			fmt.Printf("%-24s %s %s\n", r.Name, state, r.Unit)
		} else {
			fmt.Printf("%-24s %s\n", r.Name, state)
		}
	}
	return nil
}

// printJSON encodes readings for machine consumption.
func printJSON(readings []printwatch.Reading) error {
	type jsonReading struct {
		Sensor string `json:"sensor"`
		Name   string `json:"name"`
		State  string `json:"state"`
		Unit   string `json:"unit,omitempty"`
	}

	out := make([]jsonReading, len(readings))
	for i, r := range readings {
		out[i] = jsonReading{
			Sensor: string(r.Sensor),
			Name:   r.Name,
			State:  r.State,
			Unit:   r.Unit,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
