package poller

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// endpointPath is the cluster resource listing currently-printing jobs.
// The printer returns a JSON array, empty when the printer is idle.
const endpointPath = "/cluster-api/v1/print_jobs/printing"

// PrintJob is a single entry of the cluster print-job endpoint.
//
// The time fields are pointers because the printer reports null for jobs
// that have not started moving yet (e.g. while pre-heating). Consumers must
// treat a nil field as "not yet known" rather than zero.
type PrintJob struct {
	// UUID is the cluster-assigned job identifier.
	UUID string `json:"uuid"`

	// Name is the human-readable job name, usually the sliced file name.
	Name string `json:"name"`

	// Status is the cluster status string (e.g. "printing", "paused").
	Status string `json:"status"`

	// Owner is the user that submitted the job, if the cluster reports one.
	Owner string `json:"owner"`

	// StartedAt is when the job started, if reported.
	StartedAt *time.Time `json:"started"`

	// TimeElapsed is the elapsed print time in seconds. Nil when unknown.
	TimeElapsed *float64 `json:"time_elapsed"`

	// TimeTotal is the estimated total print time in seconds. Nil when unknown.
	TimeTotal *float64 `json:"time_total"`
}

// ParseJobs decodes a print-job endpoint response body.
//
// The body must be a JSON array; anything else (including a JSON object or
// truncated payload) is a parse error. An empty array is valid and means the
// printer is idle.
func ParseJobs(body []byte) ([]PrintJob, error) {
	var jobs []PrintJob
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse print jobs: %w", err)
	}
	return jobs, nil
}

// JobURL builds the print-job endpoint URL for a printer host.
//
// The host may be a hostname or IP address. When port is non-zero it is
// appended; port 0 means the printer's default HTTP port.
func JobURL(host string, port int) string {
	hostport := host
	if port != 0 {
		hostport = net.JoinHostPort(host, strconv.Itoa(port))
	}
	u := url.URL{Scheme: "http", Host: hostport, Path: endpointPath}
	return u.String()
}
